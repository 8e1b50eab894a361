//go:build cssbeautifier

package beautifier

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// CSSBeautifier reformats stylesheets with one declaration per line.
type CSSBeautifier struct {
	// Indent is written once per nesting level.
	Indent string
}

// CSS returns the CSS beautifier.
func CSS() Beautifier {
	return &CSSBeautifier{Indent: "    "}
}

// CSSAvailable returns true when the CSS beautifier is compiled in.
func CSSAvailable() bool {
	return true
}

// Name returns the beautifier name.
func (b *CSSBeautifier) Name() string {
	return "cssbeautifier"
}

// Beautify reformats a stylesheet.
func (b *CSSBeautifier) Beautify(code string) (string, error) {
	p := css.NewParser(parse.NewInputString(code), false)

	var sb strings.Builder
	depth := 0
	line := func(s string) {
		sb.WriteString(strings.Repeat(b.Indent, depth))
		sb.WriteString(s)
		sb.WriteByte('\n')
	}

	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if errors.Is(p.Err(), io.EOF) {
				return strings.TrimRight(sb.String(), "\n"), nil
			}
			return "", fmt.Errorf("parsing css: %w", p.Err())
		case css.CommentGrammar:
			line(string(data))
		case css.AtRuleGrammar:
			line(joinTokens(string(data), p.Values()) + ";")
		case css.BeginAtRuleGrammar:
			line(joinTokens(string(data), p.Values()) + " {")
			depth++
		case css.QualifiedRuleGrammar:
			line(joinTokens("", p.Values()) + ",")
		case css.BeginRulesetGrammar:
			line(joinTokens("", p.Values()) + " {")
			depth++
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			line(string(data) + ": " + joinTokens("", p.Values()) + ";")
		case css.EndRulesetGrammar, css.EndAtRuleGrammar:
			if depth > 0 {
				depth--
			}
			line("}")
		default:
			line(strings.TrimSpace(string(data)))
		}
	}
}

// joinTokens concatenates tokens after prefix, collapsing whitespace runs to
// a single space.
func joinTokens(prefix string, tokens []css.Token) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	space := prefix != ""
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			space = sb.Len() > 0
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}
