// Package directive defines the structured form of a single configuration
// statement and the parser contract that produces it.
//
// A Directive is created per source line and consumed immediately by the
// loader. The engine never looks at raw text again except for diagnostics,
// which carry the original Location.
package directive

import (
	"fmt"
	"slices"
)

// Kind identifies what a directive configures.
type Kind uint8

const (
	// KindOption sets a scalar option (last write wins).
	KindOption Kind = iota
	// KindKeyBinding is a "map" statement.
	KindKeyBinding
	// KindMouseBinding is a "mouse_map" statement.
	KindMouseBinding
	// KindClearAllKeyBindings drops every key binding accumulated so far.
	KindClearAllKeyBindings
	// KindClearAllMouseBindings drops every mouse binding accumulated so far.
	KindClearAllMouseBindings
	// KindActionAlias declares a named action shorthand.
	KindActionAlias
	// KindKittenAlias declares a shorthand for "kitten NAME".
	KindKittenAlias
)

// String returns the config keyword for the kind.
func (k Kind) String() string {
	switch k {
	case KindOption:
		return "option"
	case KindKeyBinding:
		return "map"
	case KindMouseBinding:
		return "mouse_map"
	case KindClearAllKeyBindings:
		return "clear_all_shortcuts"
	case KindClearAllMouseBindings:
		return "clear_all_mouse_actions"
	case KindActionAlias:
		return "action_alias"
	case KindKittenAlias:
		return "kitten_alias"
	default:
		return "unknown"
	}
}

// Location is where a directive came from.
type Location struct {
	// File is the source file path, or the name of a literal source.
	File string
	// Number is the 1-based line number.
	Number int
	// Line is the raw line text.
	Line string
}

// String formats the location as file:line.
func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("line %d", l.Number)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Number)
}

// Key binding option defaults.
const (
	DefaultOnUnknown = "beep"
	DefaultOnAction  = "keep"
)

// KeyOptions are the per-binding flags of a "map" statement.
type KeyOptions struct {
	// Mode is the keyboard mode the binding belongs to. Empty is the root mode.
	Mode string `json:"mode" yaml:"mode"`
	// NewMode, when set, makes the binding enter that mode.
	NewMode string `json:"new_mode,omitempty" yaml:"new_mode,omitempty"`
	// OnUnknown is what the new mode does with an unbound key.
	OnUnknown string `json:"on_unknown" yaml:"on_unknown"`
	// OnAction is what the new mode does after running an action.
	OnAction string `json:"on_action" yaml:"on_action"`
	// WhenFocusOn restricts the binding to a focus condition.
	WhenFocusOn string `json:"when_focus_on,omitempty" yaml:"when_focus_on,omitempty"`
}

// DefaultKeyOptions returns the options of a plain "map" statement.
func DefaultKeyOptions() KeyOptions {
	return KeyOptions{
		OnUnknown: DefaultOnUnknown,
		OnAction:  DefaultOnAction,
	}
}

// Directive is one structured configuration statement.
type Directive struct {
	Kind Kind

	// Name is the option name for KindOption and the alias name for alias kinds.
	Name string

	// Value is the typed option value, or the expansion text of an alias.
	Value any

	// Trigger is the raw key or mouse specifier of a binding.
	Trigger string

	// Rest holds the remaining chords of a multi-key sequence.
	Rest []string

	// IsSequence is set for multi-key bindings.
	IsSequence bool

	// Options are the key binding flags. Unused for other kinds.
	Options KeyOptions

	// Definition is the raw action text of a binding.
	Definition string

	Location Location
}

// ClearAllKeyBindings returns the key binding reset sentinel.
func ClearAllKeyBindings(loc Location) Directive {
	return Directive{Kind: KindClearAllKeyBindings, Location: loc}
}

// ClearAllMouseBindings returns the mouse binding reset sentinel.
func ClearAllMouseBindings(loc Location) Directive {
	return Directive{Kind: KindClearAllMouseBindings, Location: loc}
}

// IsClear reports whether d is one of the clear-all sentinels.
func (d Directive) IsClear() bool {
	return d.Kind == KindClearAllKeyBindings || d.Kind == KindClearAllMouseBindings
}

// Clone returns a copy of d that shares no slices with it.
func (d Directive) Clone() Directive {
	d.Rest = slices.Clone(d.Rest)
	return d
}

// Parser turns one raw line into directives.
//
// A line may yield no directives (blank lines, comments, a disabled clear)
// or several (a mouse binding listing more than one grab mode). A failure is
// reported as an error, normally a *ParseError; the caller decides whether to
// collect or log it.
type Parser interface {
	Parse(line string, loc Location) ([]Directive, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(line string, loc Location) ([]Directive, error)

// Parse calls f.
func (f ParserFunc) Parse(line string, loc Location) ([]Directive, error) {
	return f(line, loc)
}
