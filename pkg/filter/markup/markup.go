// Package markup provides the markup parsing and pretty-printing capability
// used by the beautify filter.
package markup

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"
)

// Parser parses markup into a Document.
type Parser interface {
	Parse(content string) (Document, error)
}

// Document is a parsed markup tree.
type Document interface {
	// FindAll returns all elements with the given tag name in document order.
	FindAll(tag string) []Node

	// Prettify renders the tree as indentation-normalised markup.
	Prettify() (string, error)
}

// Node is an element of a Document.
type Node interface {
	// Tag returns the element name.
	Tag() string

	// Text returns the element's single text payload. ok is false when the
	// element is empty or has more than one child.
	Text() (text string, ok bool)

	// SetText replaces all children with a single text node.
	SetText(text string)
}

// GoqueryParser parses HTML with goquery.
type GoqueryParser struct{}

// NewParser creates a goquery backed parser.
func NewParser() *GoqueryParser {
	return &GoqueryParser{}
}

// Parse parses content as HTML.
func (p *GoqueryParser) Parse(content string) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}
	return &goqueryDocument{doc: doc}, nil
}

type goqueryDocument struct {
	doc *goquery.Document
}

func (d *goqueryDocument) FindAll(tag string) []Node {
	var nodes []Node
	d.doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &htmlNode{n: s.Get(0)})
	})
	return nodes
}

// rawTextTags hold payloads that Prettify writes out unchanged.
const rawTextTags = "script, style"

// Prettify indents the element tree with gohtml. The payloads of raw text
// elements are swapped for tokens while gohtml runs and restored verbatim
// afterwards, so their own line structure and indentation survive.
func (d *goqueryDocument) Prettify() (string, error) {
	var (
		texts    []*html.Node
		payloads []string
	)
	d.doc.Find(rawTextTags).Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		if c := n.FirstChild; c != nil && c == n.LastChild && c.Type == html.TextNode && strings.Contains(c.Data, "\n") {
			texts = append(texts, c)
			payloads = append(payloads, c.Data)
			c.Data = rawToken(len(texts) - 1)
		}
	})

	out, err := d.doc.Html()
	for i, c := range texts {
		c.Data = payloads[i]
	}
	if err != nil {
		return "", fmt.Errorf("rendering markup: %w", err)
	}

	out = gohtml.Format(out)
	for i, payload := range payloads {
		out = strings.Replace(out, rawToken(i), payload, 1)
	}
	return out, nil
}

func rawToken(i int) string {
	return fmt.Sprintf("contentfilter-raw-text-%d-end", i)
}

type htmlNode struct {
	n *html.Node
}

func (h *htmlNode) Tag() string {
	return h.n.Data
}

// Text follows single-child chains down to a text node, so
// <p><b>x</b></p> yields "x" while <p>a<b>x</b></p> yields nothing.
func (h *htmlNode) Text() (string, bool) {
	n := h.n
	for {
		child := n.FirstChild
		if child == nil || child != n.LastChild {
			return "", false
		}
		if child.Type == html.TextNode {
			return child.Data, true
		}
		if child.Type != html.ElementNode {
			return "", false
		}
		n = child
	}
}

func (h *htmlNode) SetText(text string) {
	for c := h.n.FirstChild; c != nil; {
		next := c.NextSibling
		h.n.RemoveChild(c)
		c = next
	}
	h.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}
