package config

import (
	"fmt"
	"strconv"
	"strings"
)

// commonOptionNames are the settings helper programs share with the terminal.
var commonOptionNames = []string{"select_by_word_characters"}

// CommonOptions returns the settings that helper programs need, keyed by
// option name.
func CommonOptions(opts *Options) map[string]any {
	out := make(map[string]any, len(commonOptionNames))
	for _, name := range commonOptionNames {
		if v, ok := opts.Get(name); ok {
			out[name] = v
		}
	}
	return out
}

// ColorTableSize is the number of entries in the ANSI color table.
const ColorTableSize = 256

// colorOptions lists every option that holds a #rrggbb color.
func colorOptions() []string {
	names := []string{"foreground", "background", "selection_foreground", "selection_background", "cursor"}
	for i := range ColorTableSize {
		names = append(names, colorName(i))
	}
	return names
}

// ColorTable builds the 256-color ANSI table as 0xRRGGBB values.
//
// Entries 0-15 come from the color0..color15 options. The rest are the
// standard 6x6x6 color cube and 24-step grayscale ramp, unless a colorN
// option overrides them.
func ColorTable(opts *Options) ([]uint32, error) {
	table := make([]uint32, 0, ColorTableSize)
	for i := range 16 {
		c, err := colorOption(opts, i)
		if err != nil {
			return nil, err
		}
		table = append(table, c)
	}

	levels := [6]uint32{0, 0x5f, 0x87, 0xaf, 0xd7, 0xff}
	for r := range 6 {
		for g := range 6 {
			for b := range 6 {
				table = append(table, levels[r]<<16|levels[g]<<8|levels[b])
			}
		}
	}
	for i := range 24 {
		v := uint32(8 + i*10)
		table = append(table, v<<16|v<<8|v)
	}

	for i := 16; i < len(table); i++ {
		if _, ok := opts.Get(colorName(i)); !ok {
			continue
		}
		c, err := colorOption(opts, i)
		if err != nil {
			return nil, err
		}
		table[i] = c
	}

	if len(table) != ColorTableSize {
		return nil, fmt.Errorf("%w: %d entries, want %d", ErrColorTable, len(table), ColorTableSize)
	}
	return table, nil
}

func colorName(i int) string {
	return "color" + strconv.Itoa(i)
}

func colorOption(opts *Options, i int) (uint32, error) {
	name := colorName(i)
	s, err := opts.GetString(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrColorTable, err)
	}
	c, err := ParseColor(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrColorTable, name, err)
	}
	return c, nil
}

// ParseColor parses "#rgb" or "#rrggbb" into 0xRRGGBB.
func ParseColor(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return 0, fmt.Errorf("color %q must start with #", s)
	}
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return 0, fmt.Errorf("color %q must have 3 or 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return uint32(v), nil
}
