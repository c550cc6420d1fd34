// Package input groups the packages that turn binding directives into
// lookup tables for keyboard and mouse input.
//
// # Packages
//
//   - key: key chords and modifiers, with parsing and canonical names
//   - action: action and kitten aliases, and alias expansion
//   - keymap: keyboard modes compiled from map directives
//   - mouse: mouse triggers and the mapping compiled from mouse_map directives
//
// # Flow
//
//	directives ──► action.BuildAliasMap ──► keymap.Compile ──► Modes
//	                                   └──► mouse.Compile  ──► Mapping
//
// Compilation never fails as a whole: a directive that cannot be resolved is
// reported to a diag.Sink with its source location and skipped.
package input
