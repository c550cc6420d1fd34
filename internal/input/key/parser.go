package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Placeholder is the modifier name that stands for the configurable
// application modifier (the alatty_mod option).
const Placeholder = "alatty_mod"

// Parse parses a key specification with no placeholder substitution.
func Parse(spec string) (Chord, error) {
	return ParseChord(spec, ModNone)
}

// ParseChord parses a key specification into a Chord.
//
// Supported formats:
//   - Single character: "a", "A" (implies shift), "1", "@"
//   - Named keys: "enter", "Escape", "f5", "page_up", "kp_3", "plus"
//   - With modifiers: "ctrl+s", "alt+f4", "ctrl+shift+p", "cmd+c"
//   - The plus key itself: "+", "ctrl++"
//   - The placeholder: "alatty_mod+t", expanded to appMod
func ParseChord(spec string, appMod Modifier) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptySpec
	}

	parts := strings.Split(spec, "+")
	keyPart := parts[len(parts)-1]
	mods := parts[:len(parts)-1]
	if keyPart == "" {
		// "+" or "ctrl++" binds the plus key.
		if len(parts) < 2 || parts[len(parts)-2] != "" {
			return Chord{}, fmt.Errorf("%w: %q ends with a modifier", ErrInvalidSpec, spec)
		}
		keyPart = "+"
		mods = parts[:len(parts)-2]
	}

	var m Modifier
	for _, p := range mods {
		p = strings.TrimSpace(p)
		if strings.EqualFold(p, Placeholder) {
			m = m.With(appMod)
			continue
		}
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		m = m.With(mod)
	}

	name, implicit, ok := KeyFromName(strings.TrimSpace(keyPart))
	if !ok {
		return Chord{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
	}
	return Chord{Mods: m.With(implicit), Key: name}, nil
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Chord {
	c, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return c
}

// NormalizeSpec parses and re-formats a key specification to its canonical form.
func NormalizeSpec(spec string, appMod Modifier) (string, error) {
	c, err := ParseChord(spec, appMod)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}
