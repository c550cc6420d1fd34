// Package keymap compiles key binding directives into per-mode lookup tables.
//
// # Key Concepts
//
// KeyDefinition: a "map" directive after alias expansion and trigger
// canonicalisation.
//
// KeyboardMode: a named scope of bindings. The root mode has the empty name
// and always exists. A binding with --new-mode creates a mode and is rewritten
// to enter it.
//
// Modes: the compiled result, mode name to KeyboardMode.
//
// # Compilation Order
//
// Directives are processed in the order they were encountered across all
// config sources. A clear_all_shortcuts sentinel drops every definition seen
// before it in the same compilation. For each trigger the surviving
// definitions keep their source order. Sequence bindings (multi-key, with
// Rest set) that share a trigger, remaining chords and focus condition are
// duplicates; only the last one is kept.
//
// # Usage
//
//	modes := keymap.Compile(record.KeyMap, aliases, key.ModCtrl|key.ModShift, sink)
//	for _, defn := range modes[keymap.RootMode].Lookup(key.MustParse("ctrl+shift+t")) {
//	    // defn.Action
//	}
//
// Compilation never fails. Directives with bad triggers, malformed actions or
// unknown modes are reported to the diag.Sink and left out.
package keymap
