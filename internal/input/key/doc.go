// Package key parses and canonicalises key triggers.
//
// This package defines the types bindings are keyed by:
//
//   - Modifier: a set of modifier keys (ctrl, alt, shift, super, hyper, meta)
//   - Chord: one key press with its modifiers
//
// # Key Specifications
//
// Specifications are "+" separated, modifiers first:
//
//   - Simple keys: "a", "A", "1", "enter", "f5"
//   - With modifiers: "ctrl+s", "alt+f4", "ctrl+shift+p"
//   - Placeholder: "alatty_mod+t", where alatty_mod expands to the configured
//     application modifier
//
// Chord.String returns a canonical form so that equivalent specifications
// ("Shift+Ctrl+T", "ctrl+shift+t", "alatty_mod+t") compare equal.
package key
