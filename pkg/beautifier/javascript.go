//go:build jsbeautifier

package beautifier

import (
	"fmt"

	"github.com/ditashi/jsbeautifier-go/jsbeautifier"
)

// JSBeautifier reformats JavaScript using jsbeautifier-go.
type JSBeautifier struct {
	// IndentSize is the number of indent characters per level.
	IndentSize int
}

// JavaScript returns the JavaScript beautifier.
func JavaScript() Beautifier {
	return &JSBeautifier{IndentSize: 4}
}

// Beautify reformats JavaScript code.
func (b *JSBeautifier) Beautify(code string) (string, error) {
	options := jsbeautifier.DefaultOptions()
	if b.IndentSize > 0 {
		options["indent_size"] = b.IndentSize
	}
	out, err := jsbeautifier.Beautify(&code, options)
	if err != nil {
		return "", fmt.Errorf("beautifying javascript: %w", err)
	}
	return out, nil
}

// Name returns the beautifier name.
func (b *JSBeautifier) Name() string {
	return "jsbeautifier"
}

// JavaScriptAvailable returns true when the JavaScript beautifier is compiled in.
func JavaScriptAvailable() bool {
	return true
}
