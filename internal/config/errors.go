package config

import (
	"errors"
	"fmt"
)

// ErrInvalid indicates an option value outside its allowed range.
var ErrInvalid = errors.New("invalid option")

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Line and Column locate the error when the decoder reports it.
	Line   int
	Column int
	// Err is the underlying decoder error.
	Err error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// invalid reports a bad value for the named option.
func invalid(name string, v any) error {
	return fmt.Errorf("%s = %v: %w", name, v, ErrInvalid)
}
