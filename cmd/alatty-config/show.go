package main

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/alatty/internal/config"
	"github.com/dshills/alatty/internal/input/keymap"
)

type bindingView struct {
	Keys        string `yaml:"keys"`
	Action      string `yaml:"action"`
	WhenFocusOn string `yaml:"when_focus_on,omitempty"`
	Source      string `yaml:"source,omitempty"`
}

type modeView struct {
	Name      string        `yaml:"name"`
	OnUnknown string        `yaml:"on_unknown"`
	OnAction  string        `yaml:"on_action"`
	Bindings  []bindingView `yaml:"bindings"`
}

type optionsView struct {
	Generation      string            `yaml:"generation"`
	ConfigPaths     []string          `yaml:"config_paths"`
	AllConfigPaths  []string          `yaml:"all_config_paths"`
	ConfigOverrides []string          `yaml:"config_overrides"`
	Options         map[string]any    `yaml:"options"`
	KeyboardModes   []modeView        `yaml:"keyboard_modes"`
	MouseMap        map[string]string `yaml:"mouse_map"`
	ActionAliases   map[string]string `yaml:"action_aliases"`
	KittenAliases   map[string]string `yaml:"kitten_aliases"`
	CommonOptions   map[string]any    `yaml:"common_options"`
}

func newOptionsView(opts *config.Options) optionsView {
	v := optionsView{
		Generation:      opts.Generation().String(),
		ConfigPaths:     opts.ConfigPaths(),
		AllConfigPaths:  opts.AllConfigPaths(),
		ConfigOverrides: opts.ConfigOverrides(),
		Options:         opts.Values(),
		MouseMap:        make(map[string]string),
		ActionAliases:   opts.AliasMap().Actions(),
		KittenAliases:   opts.AliasMap().Kittens(),
		CommonOptions:   config.CommonOptions(opts),
	}

	modes := opts.KeyboardModes()
	for _, name := range modes.Names() {
		m := modes[name]
		mv := modeView{Name: name, OnUnknown: m.OnUnknown, OnAction: m.OnAction, Bindings: []bindingView{}}
		for _, trigger := range m.Triggers() {
			for _, d := range m.Lookup(trigger) {
				mv.Bindings = append(mv.Bindings, bindingView{
					Keys:        d.Keys(),
					Action:      d.Action,
					WhenFocusOn: d.Options.WhenFocusOn,
					Source:      d.Location.String(),
				})
			}
		}
		v.KeyboardModes = append(v.KeyboardModes, mv)
	}

	mm := opts.MouseMap()
	for _, t := range mm.Triggers() {
		v.MouseMap[t.String()] = mm[t]
	}
	return v
}

func newShowCmd(ro *rootOptions) *cobra.Command {
	var (
		format string
		colors bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := ro.loader()
			if err != nil {
				return err
			}
			opts, err := l.Load(ro.paths(), ro.overrides, nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if colors {
				return writeColors(out, opts)
			}
			switch format {
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(newOptionsView(opts)); err != nil {
					return fmt.Errorf("encoding yaml: %w", err)
				}
				return enc.Close()
			case "text":
				writeText(out, newOptionsView(opts))
				return nil
			default:
				return fmt.Errorf("unknown format %q, want text or yaml", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or yaml")
	cmd.Flags().BoolVar(&colors, "colors", false, "print the 256-color table instead")
	return cmd
}

// writeText prints the configuration in config file syntax.
func writeText(w io.Writer, v optionsView) {
	names := make([]string, 0, len(v.Options))
	for name := range v.Options {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s %v\n", name, v.Options[name])
	}

	for _, m := range v.KeyboardModes {
		prefix := "map "
		if m.Name != keymap.RootMode {
			prefix = "map --mode " + m.Name + " "
		}
		for _, b := range m.Bindings {
			fmt.Fprintf(w, "%s%s %s\n", prefix, b.Keys, b.Action)
		}
	}

	triggers := make([]string, 0, len(v.MouseMap))
	for t := range v.MouseMap {
		triggers = append(triggers, t)
	}
	slices.Sort(triggers)
	for _, t := range triggers {
		fmt.Fprintf(w, "mouse_map %s %s\n", t, v.MouseMap[t])
	}

	if len(v.ConfigPaths) > 0 {
		fmt.Fprintf(w, "# loaded from: %s\n", strings.Join(v.ConfigPaths, ", "))
	}
}

func writeColors(w io.Writer, opts *config.Options) error {
	table, err := config.ColorTable(opts)
	if err != nil {
		return err
	}
	for i, c := range table {
		fmt.Fprintf(w, "color%d #%06x\n", i, c)
	}
	return nil
}
