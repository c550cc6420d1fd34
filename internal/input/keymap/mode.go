package keymap

import (
	"maps"
	"slices"
	"sort"

	"github.com/dshills/alatty/internal/config/directive"
	"github.com/dshills/alatty/internal/input/key"
)

// RootMode is the name of the always-present default mode.
const RootMode = ""

// KeyboardMode is a named scope of key bindings.
type KeyboardMode struct {
	Name string

	// Keymap maps a trigger to its definitions in source order.
	Keymap map[key.Chord][]KeyDefinition

	// OnUnknown is what to do with a key that has no binding in this mode.
	OnUnknown string

	// OnAction is what to do after an action in this mode runs.
	OnAction string
}

// NewKeyboardMode creates an empty mode with default behaviour.
func NewKeyboardMode(name string) *KeyboardMode {
	return &KeyboardMode{
		Name:      name,
		Keymap:    make(map[key.Chord][]KeyDefinition),
		OnUnknown: directive.DefaultOnUnknown,
		OnAction:  directive.DefaultOnAction,
	}
}

// Lookup returns a copy of the definitions bound to a trigger.
func (m *KeyboardMode) Lookup(trigger key.Chord) []KeyDefinition {
	items := m.Keymap[trigger]
	if len(items) == 0 {
		return nil
	}
	out := make([]KeyDefinition, len(items))
	for i, d := range items {
		out[i] = d.Clone()
	}
	return out
}

// Triggers returns the bound triggers sorted by their canonical form.
func (m *KeyboardMode) Triggers() []key.Chord {
	out := slices.Collect(maps.Keys(m.Keymap))
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// Clone returns a deep copy of the mode.
func (m *KeyboardMode) Clone() *KeyboardMode {
	c := &KeyboardMode{
		Name:      m.Name,
		Keymap:    make(map[key.Chord][]KeyDefinition, len(m.Keymap)),
		OnUnknown: m.OnUnknown,
		OnAction:  m.OnAction,
	}
	for trigger := range m.Keymap {
		c.Keymap[trigger] = m.Lookup(trigger)
	}
	return c
}

// add inserts a definition, dropping shadowed sequence definitions first.
func (m *KeyboardMode) add(defn KeyDefinition) {
	items := m.Keymap[defn.Trigger]
	if defn.IsSequence {
		items = slices.DeleteFunc(items, defn.duplicates)
	}
	m.Keymap[defn.Trigger] = append(items, defn)
}

// Modes maps mode names to compiled modes.
type Modes map[string]*KeyboardMode

// Clone returns a deep copy of every mode.
func (ms Modes) Clone() Modes {
	out := make(Modes, len(ms))
	for name, m := range ms {
		out[name] = m.Clone()
	}
	return out
}

// Names returns the mode names sorted, root mode first.
func (ms Modes) Names() []string {
	names := slices.Collect(maps.Keys(ms))
	sort.Strings(names)
	return names
}
