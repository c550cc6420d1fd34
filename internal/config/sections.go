package config

import "fmt"

// Section accessor methods return snapshot structs built from the option
// values. An option with the wrong type falls back to the default shown in
// the accessor.

// FontConfig holds the font settings.
type FontConfig struct {
	Family           string
	Bold             string
	Italic           string
	Size             float64
	DisableLigatures string
}

// CursorConfig holds the cursor settings.
type CursorConfig struct {
	// Shape is "block", "beam" or "underline".
	Shape string

	// BlinkInterval is in seconds. Negative means the system default.
	BlinkInterval float64

	// StopBlinkingAfter is in seconds of inactivity.
	StopBlinkingAfter float64
}

// MouseConfig holds the mouse and selection settings.
type MouseConfig struct {
	URLStyle               string
	OpenURLWith            string
	DetectURLs             bool
	CopyOnSelect           string
	SelectByWordCharacters string
	ClickInterval          float64
	FocusFollowsMouse      bool
	HideWait               float64
}

// TitlebarColor is the decoded form of macos_titlebar_color.
type TitlebarColor int64

const (
	// TitlebarSystem uses the system titlebar color.
	TitlebarSystem TitlebarColor = 0
	// TitlebarBackground uses the window background color.
	TitlebarBackground TitlebarColor = 1
)

// RGB returns the explicit color, if one is set.
func (c TitlebarColor) RGB() (uint32, bool) {
	if c&0xff != 2 {
		return 0, false
	}
	return uint32(c >> 8), true
}

// String returns the config file spelling.
func (c TitlebarColor) String() string {
	switch c {
	case TitlebarSystem:
		return "system"
	case TitlebarBackground:
		return "background"
	}
	if rgb, ok := c.RGB(); ok {
		return fmt.Sprintf("#%06x", rgb)
	}
	return fmt.Sprintf("%d", int64(c))
}

// WindowConfig holds the OS window settings.
type WindowConfig struct {
	RememberSize          bool
	InitialWidth          int
	InitialHeight         int
	PaddingWidth          float64
	BackgroundOpacity     float64
	DynamicOpacity        bool
	HideDecorations       bool
	ConfirmClose          int
	MacOSTitlebarColor    TitlebarColor
	MacOSOptionAsAlt      string
	ScrollbackLines       int
	ScrollbackPager       string
	WheelScrollMultiplier float64
}

// Font returns the font settings.
func (o *Options) Font() FontConfig {
	return FontConfig{
		Family:           o.getStringOr("font_family", "monospace"),
		Bold:             o.getStringOr("bold_font", "auto"),
		Italic:           o.getStringOr("italic_font", "auto"),
		Size:             o.getFloatOr("font_size", 11),
		DisableLigatures: o.getStringOr("disable_ligatures", "never"),
	}
}

// Cursor returns the cursor settings.
func (o *Options) Cursor() CursorConfig {
	return CursorConfig{
		Shape:             o.getStringOr("cursor_shape", "block"),
		BlinkInterval:     o.getFloatOr("cursor_blink_interval", -1),
		StopBlinkingAfter: o.getFloatOr("cursor_stop_blinking_after", 15),
	}
}

// Mouse returns the mouse settings.
func (o *Options) Mouse() MouseConfig {
	return MouseConfig{
		URLStyle:               o.getStringOr("url_style", "curly"),
		OpenURLWith:            o.getStringOr("open_url_with", "default"),
		DetectURLs:             o.getBoolOr("detect_urls", true),
		CopyOnSelect:           o.getStringOr("copy_on_select", "no"),
		SelectByWordCharacters: o.getStringOr("select_by_word_characters", "@-./_~?&=%+#"),
		ClickInterval:          o.getFloatOr("click_interval", -1),
		FocusFollowsMouse:      o.getBoolOr("focus_follows_mouse", false),
		HideWait:               o.getFloatOr("mouse_hide_wait", 3),
	}
}

// Window returns the OS window settings.
func (o *Options) Window() WindowConfig {
	return WindowConfig{
		RememberSize:          o.getBoolOr("remember_window_size", true),
		InitialWidth:          o.getIntOr("initial_window_width", 640),
		InitialHeight:         o.getIntOr("initial_window_height", 400),
		PaddingWidth:          o.getFloatOr("window_padding_width", 0),
		BackgroundOpacity:     o.getFloatOr("background_opacity", 1),
		DynamicOpacity:        o.getBoolOr("dynamic_background_opacity", false),
		HideDecorations:       o.getBoolOr("hide_window_decorations", false),
		ConfirmClose:          o.getIntOr("confirm_os_window_close", -1),
		MacOSTitlebarColor:    TitlebarColor(o.getIntOr("macos_titlebar_color", 0)),
		MacOSOptionAsAlt:      o.getStringOr("macos_option_as_alt", "no"),
		ScrollbackLines:       o.getIntOr("scrollback_lines", 2000),
		ScrollbackPager:       o.getStringOr("scrollback_pager", "less"),
		WheelScrollMultiplier: o.getFloatOr("wheel_scroll_multiplier", 5),
	}
}

// Helper methods for getting values with defaults.

func (o *Options) getStringOr(name string, defaultValue string) string {
	v, err := o.GetString(name)
	if err != nil {
		return defaultValue
	}
	return v
}

func (o *Options) getIntOr(name string, defaultValue int) int {
	v, err := o.GetInt(name)
	if err != nil {
		return defaultValue
	}
	return v
}

func (o *Options) getBoolOr(name string, defaultValue bool) bool {
	v, err := o.GetBool(name)
	if err != nil {
		return defaultValue
	}
	return v
}

func (o *Options) getFloatOr(name string, defaultValue float64) float64 {
	v, err := o.GetFloat(name)
	if err != nil {
		return defaultValue
	}
	return v
}
