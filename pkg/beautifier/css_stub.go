//go:build !cssbeautifier

package beautifier

// CSS returns nil when the CSS beautifier is not compiled in.
// Build with -tags cssbeautifier to enable it.
func CSS() Beautifier {
	return nil
}

// CSSAvailable returns false when the CSS beautifier is not compiled in.
func CSSAvailable() bool {
	return false
}
