package config

import (
	"github.com/dshills/alatty/internal/config/diag"
)

// conflict is a pair of options that cannot both be in effect. When check
// reports a conflict, resolve forces the second option to its disabled value.
type conflict struct {
	message string
	check   func(values map[string]any) bool
	resolve func(values map[string]any)
}

var conflicts = []conflict{
	{
		message: "Cannot use both macos_titlebar_color and background_opacity, ignoring macos_titlebar_color",
		check: func(values map[string]any) bool {
			opacity, err := toFloat("background_opacity", values["background_opacity"])
			if err != nil {
				return false
			}
			color, _ := values["macos_titlebar_color"].(int64)
			return opacity < 1.0 && color > 0
		},
		resolve: func(values map[string]any) {
			values["macos_titlebar_color"] = int64(0)
		},
	},
}

// validate applies cross-option rules to values in place. Conflicts are
// warnings; they never fail a load.
func validate(values map[string]any, sink diag.Sink) {
	for _, c := range conflicts {
		if c.check(values) {
			c.resolve(values)
			sink.Warn(c.message)
		}
	}
}
