// Package output writes filter results in the formats the CLI supports.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format represents output format types.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Result is one filter run. Text output writes only Content; the
// structured formats include the metadata.
type Result struct {
	Filter      string `json:"filter" yaml:"filter"`
	Source      string `json:"source" yaml:"source"`
	InputBytes  int    `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int    `json:"output_bytes" yaml:"output_bytes"`
	Content     string `json:"content" yaml:"content"`
}

// ParseFormat validates a format name. The empty string is text.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (available: text, json, yaml)", name)
	}
}

// Write serialises r to w in the given format.
func Write(w io.Writer, format Format, r Result) error {
	switch format {
	case "", FormatText:
		content := r.Content
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		_, err := io.WriteString(w, content)
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
