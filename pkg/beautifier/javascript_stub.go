//go:build !jsbeautifier

package beautifier

// JavaScript returns nil when the JavaScript beautifier is not compiled in.
// Build with -tags jsbeautifier to enable it.
func JavaScript() Beautifier {
	return nil
}

// JavaScriptAvailable returns false when the JavaScript beautifier is not compiled in.
func JavaScriptAvailable() bool {
	return false
}
