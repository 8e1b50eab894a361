package filter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/contentfilter/internal/logger"
	"github.com/jmylchreest/contentfilter/pkg/beautifier"
	"github.com/jmylchreest/contentfilter/pkg/filter/markup"
)

// fakeNode is a markup.Node whose payload is set directly.
type fakeNode struct {
	tag     string
	text    string
	present bool
}

func (n *fakeNode) Tag() string { return n.tag }

func (n *fakeNode) Text() (string, bool) { return n.text, n.present }

func (n *fakeNode) SetText(text string) {
	n.text, n.present = text, true
}

type fakeDocument struct {
	nodes map[string][]markup.Node
}

func (d *fakeDocument) FindAll(tag string) []markup.Node { return d.nodes[tag] }

func (d *fakeDocument) Prettify() (string, error) { return "prettified HTML", nil }

type fakeParser struct {
	doc    *fakeDocument
	parsed int
}

func (p *fakeParser) Parse(string) (markup.Document, error) {
	p.parsed++
	return p.doc, nil
}

// fakeBeautifier records the payloads it is given.
type fakeBeautifier struct {
	name   string
	result string
	err    error
	calls  []string
}

func (b *fakeBeautifier) Beautify(code string) (string, error) {
	b.calls = append(b.calls, code)
	return b.result, b.err
}

func (b *fakeBeautifier) Name() string { return b.name }

// get keeps a nil *fakeBeautifier from becoming a non-nil interface.
func (b *fakeBeautifier) get() beautifier.Beautifier {
	if b == nil {
		return nil
	}
	return b
}

func newFakeParser(scripts, styles []*fakeNode) *fakeParser {
	doc := &fakeDocument{nodes: map[string][]markup.Node{}}
	for _, n := range scripts {
		doc.nodes["script"] = append(doc.nodes["script"], n)
	}
	for _, n := range styles {
		doc.nodes["style"] = append(doc.nodes["style"], n)
	}
	return &fakeParser{doc: doc}
}

// captureLogs routes the package logger into a buffer for one test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	logger.Init(logger.Options{Output: buf})
	t.Cleanup(func() { logger.Init(logger.Options{}) })
	return buf
}

func TestBeautifyFilter_MissingParser(t *testing.T) {
	js := &fakeBeautifier{name: "js"}
	f := &BeautifyFilter{Script: js}

	for _, content := range []string{"<html></html>", ""} {
		_, err := f.Filter(content, nil)
		var depErr *UnavailableDependencyError
		require.ErrorAs(t, err, &depErr)
		assert.Equal(t, "markup parser", depErr.Capability)
	}
	assert.Empty(t, js.calls)
}

func TestBeautifyFilter_AllCapabilitiesPresent(t *testing.T) {
	script := &fakeNode{tag: "script", text: `console.log("hello");`, present: true}
	style := &fakeNode{tag: "style", text: "body { color: red; }", present: true}
	js := &fakeBeautifier{name: "js", result: "// beautified JS"}
	css := &fakeBeautifier{name: "css", result: "/* beautified CSS */"}
	parser := newFakeParser([]*fakeNode{script}, []*fakeNode{style})

	f := &BeautifyFilter{Parser: parser, Script: js, Style: css}
	got, err := f.Filter("<html>...</html>", nil)
	require.NoError(t, err)

	assert.Equal(t, "prettified HTML", got)
	assert.Equal(t, "// beautified JS", script.text)
	assert.Equal(t, "/* beautified CSS */", style.text)
	assert.Equal(t, []string{`console.log("hello");`}, js.calls)
	assert.Equal(t, []string{"body { color: red; }"}, css.calls)
}

func TestBeautifyFilter_OptionalCapabilityMissing(t *testing.T) {
	tests := []struct {
		name       string
		script     *fakeBeautifier
		style      *fakeBeautifier
		wantNotice string
		untouched  string // tag whose payload must stay as is
	}{
		{"script beautifier missing", nil, &fakeBeautifier{name: "css", result: "css!"}, `"jsbeautifier" is not installed`, "script"},
		{"style beautifier missing", &fakeBeautifier{name: "js", result: "js!"}, nil, `"cssbeautifier" is not installed`, "style"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)

			script := &fakeNode{tag: "script", text: "console.log('test');", present: true}
			style := &fakeNode{tag: "style", text: "body { color:red; }", present: true}
			f := &BeautifyFilter{
				Parser: newFakeParser([]*fakeNode{script}, []*fakeNode{style}),
				Script: tt.script.get(),
				Style:  tt.style.get(),
			}

			got, err := f.Filter("<html></html>", nil)
			require.NoError(t, err)
			assert.Equal(t, "prettified HTML", got)
			assert.Contains(t, logs.String(), tt.wantNotice)

			switch tt.untouched {
			case "script":
				assert.Equal(t, "console.log('test');", script.text)
				assert.Equal(t, "css!", style.text)
			case "style":
				assert.Equal(t, "body { color:red; }", style.text)
				assert.Equal(t, "js!", script.text)
			}
		})
	}
}

func TestBeautifyFilter_NoticeLoggedOncePerCall(t *testing.T) {
	logs := captureLogs(t)

	scripts := []*fakeNode{
		{tag: "script", text: "a()", present: true},
		{tag: "script", text: "b()", present: true},
	}
	f := &BeautifyFilter{Parser: newFakeParser(scripts, nil)}

	_, err := f.Filter("", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(logs.String(), `"jsbeautifier" is not installed`))
	assert.NotContains(t, logs.String(), "cssbeautifier", "no style blocks, no notice")
}

func TestBeautifyFilter_EmptyPayloadSkipped(t *testing.T) {
	logs := captureLogs(t)

	js := &fakeBeautifier{name: "js", result: "x"}
	css := &fakeBeautifier{name: "css", result: "y"}
	script := &fakeNode{tag: "script"}
	emptyScript := &fakeNode{tag: "script", text: "", present: true}
	style := &fakeNode{tag: "style"}

	f := &BeautifyFilter{
		Parser: newFakeParser([]*fakeNode{script, emptyScript}, []*fakeNode{style}),
		Script: js,
		Style:  css,
	}
	got, err := f.Filter("<html><script></script><style></style></html>", nil)
	require.NoError(t, err)
	assert.Equal(t, "prettified HTML", got)
	assert.Empty(t, js.calls)
	assert.Empty(t, css.calls)
	assert.False(t, script.present)
	assert.False(t, style.present)

	// Without beautifiers, empty blocks produce no notice either.
	f = &BeautifyFilter{Parser: newFakeParser([]*fakeNode{{tag: "script"}}, []*fakeNode{{tag: "style"}})}
	_, err = f.Filter("", nil)
	require.NoError(t, err)
	assert.NotContains(t, logs.String(), "is not installed")
}

func TestBeautifyFilter_BeautifierErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	script := &fakeNode{tag: "script", text: "x", present: true}
	f := &BeautifyFilter{
		Parser: newFakeParser([]*fakeNode{script}, nil),
		Script: &fakeBeautifier{name: "js", err: boom},
	}

	_, err := f.Filter("", nil)
	assert.ErrorIs(t, err, boom)
}

func TestBeautifyFilter_IgnoresUnknownSubfilterKeys(t *testing.T) {
	f := &BeautifyFilter{Parser: newFakeParser(nil, nil)}
	got, err := f.Filter("", Subfilter{"indent": 2})
	require.NoError(t, err)
	assert.Equal(t, "prettified HTML", got)
}

func TestBeautifyFilter_RealParser(t *testing.T) {
	captureLogs(t)

	content := `<html><head><style>body{color:red}</style></head><body><div><p>Hi</p></div><script>var a=1;</script></body></html>`
	js := &fakeBeautifier{name: "js", result: "var a = 1;"}
	f := &BeautifyFilter{Parser: markup.NewParser(), Script: js}

	got, err := f.Filter(content, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"var a=1;"}, js.calls)
	assert.Contains(t, got, "var a = 1;")
	assert.Contains(t, got, "body{color:red}", "style left as is without a style beautifier")
	assert.Contains(t, got, "\n", "output is pretty-printed")
	assert.Contains(t, got, "<p>")
}

func TestBeautifyFilter_RealParserKeepsNestedIndent(t *testing.T) {
	captureLogs(t)

	content := `<html><head><style>a{color:red}</style></head><body><div><script>function f(){return 1;}</script></div></body></html>`
	js := &fakeBeautifier{name: "js", result: "function f() {\n    return 1;\n}"}
	css := &fakeBeautifier{name: "css", result: "a {\n  color: red;\n}"}
	f := &BeautifyFilter{Parser: markup.NewParser(), Script: js, Style: css}

	got, err := f.Filter(content, nil)
	require.NoError(t, err)

	assert.Contains(t, got, "function f() {\n    return 1;\n}")
	assert.Contains(t, got, "a {\n  color: red;\n}")
	assert.Contains(t, got, "<div>")
}

func TestNewBeautify_WiresParser(t *testing.T) {
	f := NewBeautify()
	assert.NotNil(t, f.Parser)
	assert.Equal(t, "beautify", f.Name())
}
