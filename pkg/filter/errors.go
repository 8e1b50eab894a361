package filter

import (
	"errors"
	"fmt"
)

// ErrInsufficientSample is returned by SniffHeader when the sample does not
// hold enough rows or consistent columns to decide on a header.
var ErrInsufficientSample = errors.New("insufficient sample to detect header")

// ConfigurationError reports a missing or invalid subfilter key.
type ConfigurationError struct {
	Filter  string // Filter kind the subfilter was meant for
	Key     string // Offending key, if known
	Message string
	Err     error // Underlying decode/compile error, if any
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("%s filter: %s", e.Filter, e.Message)
	if e.Key != "" {
		msg = fmt.Sprintf("%s filter: %s (key %q)", e.Filter, e.Message, e.Key)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// UnavailableDependencyError reports that a required capability is missing.
type UnavailableDependencyError struct {
	Filter     string
	Capability string
	Hint       string
}

// Error implements the error interface.
func (e *UnavailableDependencyError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s filter: %s is not available: %s", e.Filter, e.Capability, e.Hint)
	}
	return fmt.Sprintf("%s filter: %s is not available", e.Filter, e.Capability)
}

// TemplateBindingError reports a template placeholder that cannot be bound
// to the supplied arguments, or a malformed template.
type TemplateBindingError struct {
	Template    string
	Placeholder string
	Message     string
	Record      int // 1-based data record number, 0 when not formatting a record
}

// Error implements the error interface.
func (e *TemplateBindingError) Error() string {
	msg := fmt.Sprintf("template %q: %s", e.Template, e.Message)
	if e.Placeholder != "" {
		msg = fmt.Sprintf("template %q: placeholder {%s}: %s", e.Template, e.Placeholder, e.Message)
	}
	if e.Record > 0 {
		msg = fmt.Sprintf("record %d: %s", e.Record, msg)
	}
	return msg
}
