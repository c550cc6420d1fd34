// Package config loads the terminal's settings.
//
// A load starts from a baseline of default values, reads each config file in
// order, then applies command line overrides. Every line is parsed into a
// directive and folded into one record: option values are last-write-wins,
// while key bindings, mouse bindings and aliases are kept as ordered lists.
// After the last source the lists are compiled into keyboard modes and a
// mouse mapping, cross-option rules are checked, and the result is returned
// as an immutable Options.
//
//	┌──────────────────────────┐
//	│  3. Overrides (-o)       │  ← Highest priority
//	├──────────────────────────┤
//	│  2. Config files         │  ← in the order given
//	├──────────────────────────┤
//	│  1. Defaults             │  ← defaults.toml, embedded
//	└──────────────────────────┘
//
// # Sub-packages
//
//   - directive: one statement of a config file, and the line parser
//   - diag: non-fatal diagnostics and the sinks that receive them
//   - layer: the mergeable settings record
//   - loader: file access and the TOML defaults
//   - notify: change notification for reloads
//   - watcher: reloading when config files change
//
// # Basic Usage
//
//	baseline, err := config.DefaultBaseline()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts, err := config.LoadConfig(baseline, []string{path}, overrides, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	size := opts.Font().Size
//
// # Error Handling
//
// Only a FatalError stops a load: the defaults are unusable, or a config file
// exists but cannot be read. A bad line, a binding that cannot be resolved or
// a binding for an unknown mode is reported to the diag.Sink passed to the
// load and skipped. Pass a *diag.Collector to gather every problem, as the
// check command does, or nil to log each one as it happens.
package config
