package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no record has the requested name.
var ErrNotFound = errors.New("not found")

// ErrNotCSV is returned when a table path lacks the .csv suffix.
var ErrNotCSV = errors.New("not a .csv file")

// ErrFileAccess wraps failures to open, read or write a table file.
var ErrFileAccess = errors.New("could not access file")

// ParseError describes a malformed line in a persisted table.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: column %s: invalid value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
