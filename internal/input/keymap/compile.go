package keymap

import (
	"errors"
	"fmt"

	"github.com/dshills/alatty/internal/config/diag"
	"github.com/dshills/alatty/internal/config/directive"
	"github.com/dshills/alatty/internal/input/action"
	"github.com/dshills/alatty/internal/input/key"
)

// ErrUnknownMode indicates a binding for a mode that was never declared.
var ErrUnknownMode = errors.New("unknown keyboard mode")

// Compile builds the keyboard modes from key binding directives.
//
// A clear-all sentinel empties the definitions collected so far in this call
// only; it has no effect on Modes returned by earlier calls. Problems are
// reported to sink and the offending directive is skipped. A new_mode
// declaration always starts the mode afresh, dropping bindings given to an
// earlier mode of that name.
func Compile(directives []directive.Directive, aliases action.AliasMap, appMod key.Modifier, sink diag.Sink) Modes {
	defns := resolveAll(directives, aliases, appMod, sink)

	modes := Modes{RootMode: NewKeyboardMode(RootMode)}
	for _, defn := range defns {
		if name := defn.Options.NewMode; name != "" {
			nm := NewKeyboardMode(name)
			modes[name] = nm
			nm.OnUnknown = defn.Options.OnUnknown
			nm.OnAction = defn.Options.OnAction
			defn.Action = EnterModeAction(name)
		}

		m, ok := modes[defn.Options.Mode]
		if !ok {
			err := fmt.Errorf("%w %q, ignoring the mapping", ErrUnknownMode, defn.Options.Mode)
			sink.Report(diag.FromLocation(defn.Location, err))
			continue
		}
		m.add(defn)
	}
	return modes
}

// resolveAll resolves every key binding after the last clear-all sentinel.
func resolveAll(directives []directive.Directive, aliases action.AliasMap, appMod key.Modifier, sink diag.Sink) []KeyDefinition {
	var defns []KeyDefinition
	for _, d := range directives {
		switch d.Kind {
		case directive.KindClearAllKeyBindings:
			defns = nil
		case directive.KindKeyBinding:
			defn, err := Resolve(d, aliases, appMod)
			if err != nil {
				sink.Report(diag.FromLocation(d.Location, err))
				continue
			}
			defns = append(defns, defn)
		}
	}
	return defns
}
