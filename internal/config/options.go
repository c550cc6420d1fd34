package config

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/dshills/alatty/internal/config/layer"
	"github.com/dshills/alatty/internal/input/action"
	"github.com/dshills/alatty/internal/input/keymap"
	"github.com/dshills/alatty/internal/input/mouse"
)

// provenance records where the settings of an Options came from.
type provenance struct {
	configPaths     []string
	allConfigPaths  []string
	configOverrides []string
}

// Options is the final settings record produced by a load.
//
// Options is immutable: every accessor returns a copy, and a reload builds a
// new Options instead of changing an existing one.
type Options struct {
	values     map[string]any
	modes      keymap.Modes
	mousemap   mouse.Mapping
	aliases    action.AliasMap
	provenance provenance
	generation uuid.UUID
}

// Get returns the value of an option.
func (o *Options) Get(name string) (any, bool) {
	v, ok := o.values[name]
	if !ok {
		return nil, false
	}
	return layer.CloneValue(v), true
}

// GetString returns a string option.
func (o *Options) GetString(name string) (string, error) {
	v, ok := o.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSettingNotFound, name)
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Name: name, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer option.
func (o *Options) GetInt(name string) (int, error) {
	v, ok := o.Get(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrSettingNotFound, name)
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	default:
		return 0, &TypeError{Name: name, Expected: "int", Actual: typeName(v)}
	}
}

// GetBool returns a boolean option.
func (o *Options) GetBool(name string) (bool, error) {
	v, ok := o.Get(name)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrSettingNotFound, name)
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Name: name, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetFloat returns a float option.
func (o *Options) GetFloat(name string) (float64, error) {
	v, ok := o.Get(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrSettingNotFound, name)
	}
	return toFloat(name, v)
}

// Values returns a copy of every option value.
func (o *Options) Values() map[string]any {
	return layer.CloneValues(o.values)
}

// KeyboardModes returns a copy of the compiled keyboard modes. The root mode
// is always present.
func (o *Options) KeyboardModes() keymap.Modes {
	return o.modes.Clone()
}

// MouseMap returns a copy of the compiled mouse mapping.
func (o *Options) MouseMap() mouse.Mapping {
	return o.mousemap.Clone()
}

// AliasMap returns the aliases the bindings were resolved with.
func (o *Options) AliasMap() action.AliasMap {
	return o.aliases
}

// ConfigPaths returns the config files that were found and read.
func (o *Options) ConfigPaths() []string {
	return slices.Clone(o.provenance.configPaths)
}

// AllConfigPaths returns every config file that was asked for, found or not.
func (o *Options) AllConfigPaths() []string {
	return slices.Clone(o.provenance.allConfigPaths)
}

// ConfigOverrides returns the override lines as given.
func (o *Options) ConfigOverrides() []string {
	return slices.Clone(o.provenance.configOverrides)
}

// Generation identifies the load that produced these Options.
func (o *Options) Generation() uuid.UUID {
	return o.generation
}

func toFloat(name string, v any) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	default:
		return 0, &TypeError{Name: name, Expected: "float64", Actual: typeName(v)}
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
