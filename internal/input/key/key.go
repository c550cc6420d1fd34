package key

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Chord is one key press with its modifiers, the unit a trigger is made of.
// Key holds the canonical key name: a lowercase name for special keys
// ("enter", "f5", "page_up") or the character itself.
type Chord struct {
	Mods Modifier
	Key  string
}

// String returns the canonical form, like "ctrl+shift+t".
func (c Chord) String() string {
	if c.Mods == ModNone {
		return c.Key
	}
	return c.Mods.String() + "+" + c.Key
}

// keyAliases maps accepted key names to their canonical name.
var keyAliases = map[string]string{
	"esc":          "escape",
	"escape":       "escape",
	"enter":        "enter",
	"return":       "enter",
	"cr":           "enter",
	"tab":          "tab",
	"backspace":    "backspace",
	"bs":           "backspace",
	"delete":       "delete",
	"del":          "delete",
	"insert":       "insert",
	"ins":          "insert",
	"home":         "home",
	"end":          "end",
	"page_up":      "page_up",
	"pageup":       "page_up",
	"pgup":         "page_up",
	"page_down":    "page_down",
	"pagedown":     "page_down",
	"pgdn":         "page_down",
	"up":           "up",
	"down":         "down",
	"left":         "left",
	"right":        "right",
	"space":        "space",
	" ":            "space",
	"pause":        "pause",
	"print_screen": "print_screen",
	"scroll_lock":  "scroll_lock",
	"num_lock":     "num_lock",
	"caps_lock":    "caps_lock",
	"menu":         "menu",
	"kp_add":       "kp_add",
	"kp_subtract":  "kp_subtract",
	"kp_multiply":  "kp_multiply",
	"kp_divide":    "kp_divide",
	"kp_decimal":   "kp_decimal",
	"kp_enter":     "kp_enter",
	"plus":         "+",
	"minus":        "-",
	"equal":        "=",
	"comma":        ",",
	"period":       ".",
	"slash":        "/",
	"backslash":    "\\",
	"semicolon":    ";",
	"apostrophe":   "'",
	"grave":        "`",
	"bracketleft":  "[",
	"bracketright": "]",
	"lt":           "<",
	"gt":           ">",
}

func init() {
	for i := 0; i <= 9; i++ {
		name := fmt.Sprintf("kp_%d", i)
		keyAliases[name] = name
	}
	for i := 1; i <= 35; i++ {
		name := fmt.Sprintf("f%d", i)
		keyAliases[name] = name
	}
}

// KeyFromName returns the canonical name for a key name or single character.
// Uppercase letters are reported with implicit=ModShift.
func KeyFromName(name string) (canonical string, implicit Modifier, ok bool) {
	if utf8.RuneCountInString(name) == 1 {
		lower := strings.ToLower(name)
		if lower != name {
			return lower, ModShift, true
		}
		if alias, ok := keyAliases[name]; ok {
			return alias, ModNone, true
		}
		return name, ModNone, true
	}

	if alias, ok := keyAliases[strings.ToLower(name)]; ok {
		return alias, ModNone, true
	}
	return "", ModNone, false
}
