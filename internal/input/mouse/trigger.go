package mouse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/alatty/internal/input/key"
)

// ErrInvalidTrigger indicates a mouse trigger that cannot be parsed.
var ErrInvalidTrigger = errors.New("invalid mouse trigger")

// Button represents a mouse button.
type Button uint8

const (
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft Button = iota
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonBack is mouse button 4.
	ButtonBack
	// ButtonForward is mouse button 5.
	ButtonForward
	// Button6 through Button8 are extra buttons.
	Button6
	Button7
	Button8
)

var buttonNames = map[string]Button{
	"left":   ButtonLeft,
	"b1":     ButtonLeft,
	"middle": ButtonMiddle,
	"b2":     ButtonMiddle,
	"right":  ButtonRight,
	"b3":     ButtonRight,
	"b4":     ButtonBack,
	"b5":     ButtonForward,
	"b6":     Button6,
	"b7":     Button7,
	"b8":     Button8,
}

// String returns the canonical button name.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return fmt.Sprintf("b%d", int(b)+1)
	}
}

// Event is the kind of button activity a binding reacts to.
type Event uint8

const (
	EventPress Event = iota
	EventRelease
	EventDoublePress
	EventTriplePress
	EventClick
	EventDoubleClick
)

var eventNames = map[string]Event{
	"press":       EventPress,
	"release":     EventRelease,
	"doublepress": EventDoublePress,
	"triplepress": EventTriplePress,
	"click":       EventClick,
	"doubleclick": EventDoubleClick,
}

// String returns the config name of the event.
func (e Event) String() string {
	for name, ev := range eventNames {
		if ev == e {
			return name
		}
	}
	return "unknown"
}

// Trigger identifies a mouse binding.
type Trigger struct {
	Mods   key.Modifier
	Button Button
	Event  Event
	// Grabbed selects bindings active while a program has grabbed the mouse.
	Grabbed bool
}

// String returns the canonical form, like "ctrl+left press ungrabbed".
func (t Trigger) String() string {
	button := t.Button.String()
	if t.Mods != key.ModNone {
		button = t.Mods.String() + "+" + button
	}
	mode := "ungrabbed"
	if t.Grabbed {
		mode = "grabbed"
	}
	return button + " " + t.Event.String() + " " + mode
}

// ParseTrigger parses "[mods+]button event mode". The alatty_mod
// placeholder in the modifiers expands to appMod.
func ParseTrigger(spec string, appMod key.Modifier) (Trigger, error) {
	fields := strings.Fields(spec)
	if len(fields) != 3 {
		return Trigger{}, fmt.Errorf("%w: %q needs a button, an event and a mode", ErrInvalidTrigger, spec)
	}

	var t Trigger
	parts := strings.Split(strings.ToLower(fields[0]), "+")
	for _, p := range parts[:len(parts)-1] {
		if p == key.Placeholder {
			t.Mods = t.Mods.With(appMod)
			continue
		}
		mod := key.ModifierFromName(p)
		if mod == key.ModNone {
			return Trigger{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidTrigger, p)
		}
		t.Mods = t.Mods.With(mod)
	}

	button, ok := buttonNames[parts[len(parts)-1]]
	if !ok {
		return Trigger{}, fmt.Errorf("%w: unknown button %q", ErrInvalidTrigger, parts[len(parts)-1])
	}
	t.Button = button

	event, ok := eventNames[strings.ToLower(fields[1])]
	if !ok {
		return Trigger{}, fmt.Errorf("%w: unknown event %q", ErrInvalidTrigger, fields[1])
	}
	t.Event = event

	switch strings.ToLower(fields[2]) {
	case "grabbed":
		t.Grabbed = true
	case "ungrabbed":
	default:
		return Trigger{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidTrigger, fields[2])
	}
	return t, nil
}
