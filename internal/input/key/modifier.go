package key

import (
	"fmt"
	"strings"
)

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModSuper indicates the Super key (Cmd on macOS, Win on Windows).
	ModSuper

	// ModHyper indicates the Hyper key.
	ModHyper

	// ModMeta indicates the Meta key.
	ModMeta
)

// canonicalOrder is the order modifiers are written in a canonical chord.
var canonicalOrder = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "ctrl"},
	{ModAlt, "alt"},
	{ModShift, "shift"},
	{ModSuper, "super"},
	{ModHyper, "hyper"},
	{ModMeta, "meta"},
}

// Has reports whether m includes mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// String returns the canonical form, like "ctrl+shift".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	for _, c := range canonicalOrder {
		if m.Has(c.mod) {
			parts = append(parts, c.name)
		}
	}
	return strings.Join(parts, "+")
}

// modifierNames holds every accepted spelling, including the macOS symbols.
var modifierNames = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"⌃":       ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"⌥":       ModAlt,
	"shift":   ModShift,
	"⇧":       ModShift,
	"super":   ModSuper,
	"cmd":     ModSuper,
	"command": ModSuper,
	"win":     ModSuper,
	"⌘":       ModSuper,
	"hyper":   ModHyper,
	"meta":    ModMeta,
}

// ModifierFromName looks a modifier up by name, ignoring case. Unknown names
// give ModNone.
func ModifierFromName(name string) Modifier {
	if m, ok := modifierNames[strings.ToLower(name)]; ok {
		return m
	}
	return ModNone
}

// ParseModifiers parses a "+" separated modifier list like "ctrl+shift".
// Every element must be a known modifier name.
func ParseModifiers(s string) (Modifier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ModNone, nil
	}

	var result Modifier
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		mod := ModifierFromName(part)
		if mod == ModNone {
			return ModNone, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, part)
		}
		result = result.With(mod)
	}
	return result, nil
}
