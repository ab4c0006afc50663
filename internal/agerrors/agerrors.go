// Package agerrors splits every error this module raises into a short
// human-facing message and the full technical detail. The "human"
// audience is whoever is piping a grammar file through the CLI, and every
// error carries a correlation id so a report against a batch run of many
// grammar files can be tied back to one specific failure.
package agerrors

import (
	"fmt"

	"github.com/google/uuid"
)

// ParseError is raised by agparse for a line of grammar text that does not
// conform to the production/rule grammar.
type ParseError struct {
	Line int
	Text string
	Msg  string
	id   string
}

// NewParseError constructs a ParseError for line (1-based), the raw source
// text of that line, and a message describing what about it was invalid.
func NewParseError(line int, text, msg string) *ParseError {
	return &ParseError{Line: line, Text: text, Msg: msg, id: uuid.NewString()}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// HumanMessage is the short form suitable for a CLI's top-level error line.
func (e *ParseError) HumanMessage() string {
	return fmt.Sprintf("grammar error on line %d: %s", e.Line, e.Msg)
}

// ID is this error's correlation id, stable for its lifetime, for tying a
// failure reported to a user back to a specific run in a log.
func (e *ParseError) ID() string {
	return e.id
}

// Diagnostic wraps a lower-level error (I/O, cache decode, config decode)
// with a human-facing summary and a correlation id.
type Diagnostic struct {
	human string
	wrap  error
	id    string
}

// Wrap returns nil if err is nil, otherwise a Diagnostic pairing err with
// human, a short operator-facing description of what was being attempted.
func Wrap(err error, human string) error {
	if err == nil {
		return nil
	}
	return &Diagnostic{human: human, wrap: err, id: uuid.NewString()}
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.human, d.wrap)
}

func (d *Diagnostic) Unwrap() error {
	return d.wrap
}

// HumanMessage is the short form suitable for a CLI's top-level error line.
func (d *Diagnostic) HumanMessage() string {
	return d.human
}

func (d *Diagnostic) ID() string {
	return d.id
}
