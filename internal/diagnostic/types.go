package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Codes of the diagnostics produced while building a session.
const (
	CodeUnknownSkippedType = "unknown-skipped-type"
	CodeDuplicateSkipped   = "duplicate-skipped-type"
	CodeLoadWarning        = "load-warning"
)

// Diagnostics holds the diagnostics produced for one project.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Source is the configuration or source file the diagnostic refers to.
	Source string
	// Subject is the offending name, if any.
	Subject string
	// Suggestions are likely intended values.
	Suggestions []string
}

// Severity is the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, source, subject string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Source:   source,
		Subject:  subject,
	})
}

// AddWarning adds a warning diagnostic and returns it for further
// decoration.
func (d *Diagnostics) AddWarning(code, message, source, subject string) *Diagnostic {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Source:   source,
		Subject:  subject,
	})

	return &d.Warnings[len(d.Warnings)-1]
}

// All returns errors followed by warnings.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings))
	out = append(out, d.Errors...)

	return append(out, d.Warnings...)
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// Empty reports whether there are no diagnostics at all.
func (d *Diagnostics) Empty() bool {
	return len(d.Errors) == 0 && len(d.Warnings) == 0
}

// Err returns a combined error from all error diagnostics, or nil.
func (d *Diagnostics) Err() error {
	if len(d.Errors) == 0 {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.Source != "" {
		msg = d.Source + ": " + msg
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	return msg
}
