package config

import (
	_ "embed"

	"github.com/dshills/alatty/internal/config/layer"
	"github.com/dshills/alatty/internal/config/loader"
)

//go:embed defaults.toml
var defaultsTOML []byte

// DefaultsSource names the built-in defaults in diagnostics.
const DefaultsSource = "<defaults>"

// DefaultBaseline returns a fresh copy of the built-in defaults.
func DefaultBaseline() (*layer.Record, error) {
	rec, err := loader.ParseBaseline(DefaultsSource, defaultsTOML)
	if err != nil {
		return nil, &FatalError{Source: DefaultsSource, Err: err}
	}
	return rec, nil
}
