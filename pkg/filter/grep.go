package filter

import (
	"github.com/dlclark/regexp2"
)

// grepConfig is the subfilter accepted by the regular expression line filters.
type grepConfig struct {
	Re string `mapstructure:"re" validate:"required"`
}

// InverseGrepFilter removes every line that matches a regular expression.
type InverseGrepFilter struct{}

// NewInverseGrep creates a new inverse grep filter.
func NewInverseGrep() *InverseGrepFilter {
	return &InverseGrepFilter{}
}

// Name returns the filter kind.
func (f *InverseGrepFilter) Name() string {
	return "re.inverse"
}

// Filter drops lines in which the "re" pattern matches anywhere.
func (f *InverseGrepFilter) Filter(content string, subfilter Subfilter) (string, error) {
	re, err := compileGrep(f.Name(), subfilter)
	if err != nil {
		return "", err
	}
	return lineFilter{keep: func(line string) (bool, error) {
		matched, err := re.MatchString(line)
		return !matched, err
	}}.apply(content)
}

// GrepFilter keeps only the lines that match a regular expression.
type GrepFilter struct{}

// NewGrep creates a new grep filter.
func NewGrep() *GrepFilter {
	return &GrepFilter{}
}

// Name returns the filter kind.
func (f *GrepFilter) Name() string {
	return "grep"
}

// Filter keeps lines in which the "re" pattern matches anywhere.
func (f *GrepFilter) Filter(content string, subfilter Subfilter) (string, error) {
	re, err := compileGrep(f.Name(), subfilter)
	if err != nil {
		return "", err
	}
	return lineFilter{keep: re.MatchString}.apply(content)
}

// compileGrep decodes the subfilter and compiles its pattern. Patterns use
// Perl/Python style syntax, so lookarounds and backreferences are allowed.
func compileGrep(name string, subfilter Subfilter) (*regexp2.Regexp, error) {
	var cfg grepConfig
	if err := decodeSubfilter(name, subfilter, &cfg); err != nil {
		return nil, err
	}
	re, err := regexp2.Compile(cfg.Re, regexp2.None)
	if err != nil {
		return nil, &ConfigurationError{Filter: name, Key: "re", Message: "invalid regular expression", Err: err}
	}
	return re, nil
}
