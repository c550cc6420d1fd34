package directive

import (
	"errors"
	"fmt"
)

// Errors returned by LineParser.
var (
	// ErrUnknownOption indicates the option name is not part of the schema.
	ErrUnknownOption = errors.New("unknown option")

	// ErrInvalidValue indicates the value cannot be converted to the option's type.
	ErrInvalidValue = errors.New("invalid value")

	// ErrMissingArgument indicates a statement is missing a required argument.
	ErrMissingArgument = errors.New("missing argument")

	// ErrUnknownFlag indicates an unrecognised --flag on a map statement.
	ErrUnknownFlag = errors.New("unknown flag")
)

// ParseError is a failure to parse one line.
type ParseError struct {
	Location Location
	Err      error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %v", e.Location, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
