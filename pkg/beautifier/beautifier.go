// Package beautifier provides the optional script and style beautifiers
// used by the beautify filter.
//
// Each beautifier is compiled in only with its build tag:
//
//	go build -tags jsbeautifier,cssbeautifier ./...
//
// Without the tag the constructor returns nil and callers skip that kind of
// block.
package beautifier

// Beautifier reformats source code of one language.
type Beautifier interface {
	// Beautify returns code reformatted with consistent indentation.
	Beautify(code string) (string, error)

	// Name returns the beautifier name for logging/debugging.
	Name() string
}
