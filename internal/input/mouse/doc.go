// Package mouse compiles mouse_map directives into a lookup table keyed by
// button, modifiers, event type and grab mode.
package mouse
