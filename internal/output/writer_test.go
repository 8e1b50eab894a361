package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

var sample = Result{
	Filter:      "beautify",
	Source:      "page.html",
	InputBytes:  20,
	OutputBytes: 42,
	Content:     "<html>\n  <body>\n  </body>\n</html>",
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWrite_Text(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"adds trailing newline", "a\nb", "a\nb\n"},
		{"keeps existing newline", "a\n", "a\n"},
		{"empty", "", "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			if err := Write(buf, FormatText, Result{Content: tt.content}); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("Write() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestWrite_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Write(buf, FormatJSON, sample); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var got Result
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if got != sample {
		t.Errorf("decoded %+v, want %+v", got, sample)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`<html>`)) || bytes.Contains(buf.Bytes(), []byte(`\u003c`)) {
		t.Errorf("markup should not be HTML-escaped:\n%s", buf.String())
	}
}

func TestWrite_YAML(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Write(buf, FormatYAML, sample); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var got Result
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, buf.String())
	}
	if got != sample {
		t.Errorf("decoded %+v, want %+v", got, sample)
	}
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, Format("xml"), sample); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
