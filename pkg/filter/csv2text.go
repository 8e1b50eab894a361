package filter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/jmylchreest/contentfilter/internal/logger"
)

// csv2textConfig is the subfilter accepted by Csv2TextFilter.
type csv2textConfig struct {
	// FormatMessage is the template rendered for every data record.
	FormatMessage string `mapstructure:"format_message" validate:"required"`
	// HasHeader overrides header detection when set.
	HasHeader *bool `mapstructure:"has_header"`
	// IgnoreHeader formats by position even when a header row exists.
	IgnoreHeader bool `mapstructure:"ignore_header"`
}

// Csv2TextFilter renders each CSV record as a line of text using a
// user-supplied template.
//
// With a header row, placeholders name columns ({name} binds the column
// whose lower-cased header is "name"). Without one, or with ignore_header,
// placeholders are column indexes ({0}, {1}, ...).
type Csv2TextFilter struct{}

// NewCsv2Text creates a new csv2text filter.
func NewCsv2Text() *Csv2TextFilter {
	return &Csv2TextFilter{}
}

// Name returns the filter kind.
func (f *Csv2TextFilter) Name() string {
	return "csv2text"
}

// Filter parses content as CSV and formats one output line per data record.
func (f *Csv2TextFilter) Filter(content string, subfilter Subfilter) (string, error) {
	var cfg csv2textConfig
	if err := decodeSubfilter(f.Name(), subfilter, &cfg); err != nil {
		return "", err
	}

	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return "", fmt.Errorf("csv2text filter: parsing CSV: %w", err)
	}

	hasHeader, err := f.hasHeader(cfg, content)
	if err != nil {
		return "", err
	}

	// The header row is removed whenever one exists, ignore_header only
	// decides whether it is used for naming.
	var header []string
	if hasHeader && len(records) > 0 {
		header, records = records[0], records[1:]
	}

	lines := make([]string, 0, len(records))
	for i, record := range records {
		line, err := Format(cfg.FormatMessage, f.args(cfg, header, record))
		if err != nil {
			var tbe *TemplateBindingError
			if errors.As(err, &tbe) {
				tbe.Record = i + 1
			}
			return "", err
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func (f *Csv2TextFilter) hasHeader(cfg csv2textConfig, content string) (bool, error) {
	if cfg.HasHeader != nil {
		return *cfg.HasHeader, nil
	}

	detected, err := SniffHeader(content)
	if errors.Is(err, ErrInsufficientSample) {
		logger.Debug("header detection undecided, assuming no header", "filter", f.Name())
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("csv2text filter: %w", err)
	}
	logger.Debug("header detection", "filter", f.Name(), "has_header", detected)
	return detected, nil
}

// args selects positional or named binding for one record.
func (f *Csv2TextFilter) args(cfg csv2textConfig, header, record []string) Args {
	if cfg.IgnoreHeader || header == nil {
		return Positional(record)
	}
	named := make(Named, len(header))
	for i := 0; i < len(header) && i < len(record); i++ {
		named[strings.ToLower(header[i])] = record[i]
	}
	return named
}
