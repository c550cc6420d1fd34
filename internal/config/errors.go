package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrSettingNotFound indicates the option name doesn't exist.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrTypeMismatch indicates the value type doesn't match the expected type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrColorTable indicates the ANSI color table could not be built.
	ErrColorTable = errors.New("invalid color table")
)

// FatalError aborts a load. It is returned only when the defaults cannot be
// read or a config file exists but cannot be read.
type FatalError struct {
	// Source is the path that failed.
	Source string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	return fmt.Sprintf("loading config from %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *FatalError) Unwrap() error {
	return e.Err
}

// TypeError is returned when a type conversion fails.
type TypeError struct {
	// Name is the option name.
	Name string
	// Expected is the expected type name.
	Expected string
	// Actual is the actual type name.
	Actual string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("type error for %s: expected %s, got %s", e.Name, e.Expected, e.Actual)
}

// Is implements error matching for TypeError.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}
