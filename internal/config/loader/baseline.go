package loader

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/alatty/internal/config/layer"
)

// LoadBaseline reads the default settings from a TOML file.
//
// Unlike config sources, a missing baseline is an error: every load starts
// from it.
func LoadBaseline(fsys FileSystem, path string) (*layer.Record, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading defaults %s: %w", path, err)
	}
	return ParseBaseline(path, data)
}

// ParseBaseline parses TOML default settings. Nested tables are flattened to
// dotted option names.
func ParseBaseline(source string, data []byte) (*layer.Record, error) {
	var values map[string]any
	if err := toml.Unmarshal(data, &values); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	return layer.NewRecordWithValues(layer.Flatten(values)), nil
}

// ParseError represents an error while parsing a defaults file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
