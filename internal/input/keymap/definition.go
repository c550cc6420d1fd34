package keymap

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/alatty/internal/config/directive"
	"github.com/dshills/alatty/internal/input/action"
	"github.com/dshills/alatty/internal/input/key"
)

// KeyDefinition is a resolved key binding.
type KeyDefinition struct {
	// Trigger is the first chord of the binding.
	Trigger key.Chord

	// Rest holds the remaining chords of a sequence binding.
	Rest []key.Chord

	// IsSequence is set for multi-key bindings.
	IsSequence bool

	Options directive.KeyOptions

	// Action is the action text after alias expansion.
	Action string

	// Location is where the binding was declared.
	Location directive.Location
}

// ResolveError is a key binding that could not be resolved.
type ResolveError struct {
	Definition string
	Err        error
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	return fmt.Sprintf("ignoring map with invalid action %q: %v", e.Definition, e.Err)
}

// Unwrap returns the underlying error.
func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Resolve turns a key binding directive into a KeyDefinition. Trigger chords
// are canonicalised with appMod substituted for the alatty_mod placeholder,
// and aliases in the action text are expanded.
func Resolve(d directive.Directive, aliases action.AliasMap, appMod key.Modifier) (KeyDefinition, error) {
	fail := func(err error) (KeyDefinition, error) {
		return KeyDefinition{}, &ResolveError{Definition: d.Definition, Err: err}
	}

	trigger, err := key.ParseChord(d.Trigger, appMod)
	if err != nil {
		return fail(err)
	}

	var rest []key.Chord
	for _, spec := range d.Rest {
		c, err := key.ParseChord(spec, appMod)
		if err != nil {
			return fail(err)
		}
		rest = append(rest, c)
	}

	act, err := aliases.Resolve(d.Definition)
	if err != nil {
		return fail(err)
	}
	if act == "" && d.Options.NewMode == "" {
		return fail(fmt.Errorf("%w: empty action", action.ErrMalformedAction))
	}

	return KeyDefinition{
		Trigger:    trigger,
		Rest:       rest,
		IsSequence: d.IsSequence && len(rest) > 0,
		Options:    d.Options,
		Action:     act,
		Location:   d.Location,
	}, nil
}

// Clone returns a copy of d that shares no slices with it.
func (d KeyDefinition) Clone() KeyDefinition {
	d.Rest = slices.Clone(d.Rest)
	return d
}

// Keys returns the full canonical trigger, chords joined by ">".
func (d KeyDefinition) Keys() string {
	parts := make([]string, 0, 1+len(d.Rest))
	parts = append(parts, d.Trigger.String())
	for _, c := range d.Rest {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, ">")
}

// duplicates reports whether two sequence definitions for the same trigger
// would shadow each other.
func (d KeyDefinition) duplicates(other KeyDefinition) bool {
	return slices.Equal(d.Rest, other.Rest) && d.Options.WhenFocusOn == other.Options.WhenFocusOn
}

// EnterModeAction is the action a --new-mode binding is rewritten to.
func EnterModeAction(mode string) string {
	return "push_keyboard_mode " + mode
}
