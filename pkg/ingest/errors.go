package ingest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInputSchema marks a table that lacks a required column
	ErrInputSchema = errors.New("input schema mismatch")
	// ErrInvalidRow marks a row whose values cannot be used
	ErrInvalidRow = errors.New("invalid input row")
)

// SchemaError reports the required columns a table is missing. It is
// returned before any row is processed.
type SchemaError struct {
	Source  string
	Missing []string
	Header  []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required column(s) %s (header: %s)",
		e.Source, strings.Join(e.Missing, ", "), strings.Join(e.Header, ", "))
}

func (e *SchemaError) Unwrap() error {
	return ErrInputSchema
}

// RowError locates an unusable value
type RowError struct {
	Source string
	Line   int
	Column string
	Value  string
	Cause  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s:%d: column %s value %q: %v", e.Source, e.Line, e.Column, e.Value, e.Cause)
}

// Is matches ErrInvalidRow as well as the underlying cause
func (e *RowError) Is(target error) bool {
	return target == ErrInvalidRow
}

func (e *RowError) Unwrap() error {
	return e.Cause
}
