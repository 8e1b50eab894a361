package filter

import (
	"fmt"

	"github.com/jmylchreest/contentfilter/internal/logger"
	"github.com/jmylchreest/contentfilter/pkg/beautifier"
	"github.com/jmylchreest/contentfilter/pkg/filter/markup"
)

// beautifyConfig is reserved for per-block options.
type beautifyConfig struct{}

// BeautifyFilter pretty-prints HTML and reformats embedded <script> and
// <style> blocks.
//
// Parser is required. Script and Style are optional: when one is nil the
// matching blocks are left as they are and an info notice is logged, the
// document is still pretty-printed.
type BeautifyFilter struct {
	Parser markup.Parser
	Script beautifier.Beautifier
	Style  beautifier.Beautifier
}

// NewBeautify creates a beautify filter with the goquery parser and
// whichever beautifiers are compiled in.
func NewBeautify() *BeautifyFilter {
	return &BeautifyFilter{
		Parser: markup.NewParser(),
		Script: beautifier.JavaScript(),
		Style:  beautifier.CSS(),
	}
}

// Name returns the filter kind.
func (f *BeautifyFilter) Name() string {
	return "beautify"
}

// Filter parses content, beautifies script and style payloads and returns
// the pretty-printed document.
func (f *BeautifyFilter) Filter(content string, subfilter Subfilter) (string, error) {
	if f.Parser == nil {
		return "", &UnavailableDependencyError{
			Filter:     f.Name(),
			Capability: "markup parser",
			Hint:       "configure a markup.Parser such as markup.NewParser()",
		}
	}

	var cfg beautifyConfig
	if err := decodeSubfilter(f.Name(), subfilter, &cfg); err != nil {
		return "", err
	}

	doc, err := f.Parser.Parse(content)
	if err != nil {
		return "", fmt.Errorf("beautify filter: %w", err)
	}

	if err := f.beautifyBlocks(doc, "script", f.Script, "jsbeautifier"); err != nil {
		return "", err
	}
	if err := f.beautifyBlocks(doc, "style", f.Style, "cssbeautifier"); err != nil {
		return "", err
	}

	return doc.Prettify()
}

// beautifyBlocks rewrites the payload of every tag element with b. Elements
// without a payload are skipped. A nil b is reported once per call.
func (f *BeautifyFilter) beautifyBlocks(doc markup.Document, tag string, b beautifier.Beautifier, capability string) error {
	notified := false
	for _, node := range doc.FindAll(tag) {
		text, ok := node.Text()
		if !ok || text == "" {
			continue
		}

		if b == nil {
			if !notified {
				logger.Info(fmt.Sprintf("%q is not installed, will not beautify <%s> tags", capability, tag),
					"filter", f.Name(), "capability", capability)
				notified = true
			}
			continue
		}

		out, err := b.Beautify(text)
		if err != nil {
			return fmt.Errorf("beautify filter: %s on <%s>: %w", b.Name(), tag, err)
		}
		node.SetText(out)
	}
	return nil
}
