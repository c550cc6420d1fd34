package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/alatty/internal/config/diag"
	"github.com/dshills/alatty/internal/config/directive"
	"github.com/dshills/alatty/internal/config/layer"
	"github.com/dshills/alatty/internal/config/loader"
	"github.com/dshills/alatty/internal/input/action"
	"github.com/dshills/alatty/internal/input/key"
	"github.com/dshills/alatty/internal/input/keymap"
	"github.com/dshills/alatty/internal/input/mouse"
)

// OverridesSource names command line overrides in diagnostics.
const OverridesSource = "<overrides>"

// defaultAppModifier is used when alatty_mod is missing or invalid.
const defaultAppModifier = key.ModCtrl | key.ModShift

// Loader turns config sources into Options.
//
// A Loader holds no state between loads: the baseline is cloned at the start
// of every call and never modified, so one Loader may serve any number of
// loads, including concurrent ones.
type Loader struct {
	baseline *layer.Record
	fsys     loader.FileSystem
	parser   directive.Parser
	logger   *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithFS sets the file system config files are read from.
func WithFS(fsys loader.FileSystem) Option {
	return func(l *Loader) {
		l.fsys = fsys
	}
}

// WithParser replaces the line parser.
func WithParser(p directive.Parser) Option {
	return func(l *Loader) {
		l.parser = p
	}
}

// WithLogger sets the logger used when no diagnostic sink is given.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a Loader. The baseline supplies the default value of every
// option, and by default its value types decide how option lines are parsed.
func New(baseline *layer.Record, opts ...Option) *Loader {
	l := &Loader{
		baseline: baseline.Clone(),
		fsys:     loader.DefaultFS(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.parser == nil {
		l.parser = newLineParser(l.baseline.Values)
	}
	return l
}

// newLineParser returns the default grammar, with color options checked as
// they are parsed.
func newLineParser(schema map[string]any) *directive.LineParser {
	p := directive.NewLineParser(schema)
	for _, name := range colorOptions() {
		if _, ok := schema[name]; ok {
			p.WithCoercer(name, parseColorOption)
		}
	}
	return p
}

func parseColorOption(raw string) (any, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if _, err := ParseColor(raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// LoadConfig loads paths then overrides on top of baseline. A nil sink logs
// diagnostics through slog.Default().
func LoadConfig(baseline *layer.Record, paths []string, overrides []string, sink diag.Sink) (*Options, error) {
	if baseline == nil {
		return nil, &FatalError{Source: DefaultsSource, Err: errors.New("no default settings")}
	}
	return New(baseline).Load(paths, overrides, sink)
}

// ParseBatch parses lines into a mergeable record. Lines that fail to parse
// are reported to sink and skipped.
func (l *Loader) ParseBatch(name string, lines []string, sink diag.Sink) *layer.Record {
	sink = l.sinkOrLog(sink)
	rec := layer.NewRecord()
	for i, line := range lines {
		loc := directive.Location{File: name, Number: i + 1, Line: line}
		ds, err := l.parser.Parse(line, loc)
		if err != nil {
			var perr *directive.ParseError
			if errors.As(err, &perr) {
				err = perr.Err
			}
			sink.Report(diag.FromLocation(loc, err))
			continue
		}
		for _, d := range ds {
			rec.Apply(d)
		}
	}
	return rec
}

// Load reads every path in order, then applies overrides, and compiles the
// result into Options.
//
// Missing files are skipped. Only an unreadable existing file is fatal;
// every other problem goes to sink, or to the log when sink is nil.
func (l *Loader) Load(paths []string, overrides []string, sink diag.Sink) (*Options, error) {
	sink = l.sinkOrLog(sink)
	rec := l.baseline.Clone()

	sources := make([]loader.Source, 0, len(paths)+1)
	for _, path := range paths {
		sources = append(sources, loader.File(path))
	}
	if len(overrides) > 0 {
		sources = append(sources, loader.Literal(OverridesSource, overrideLines(overrides)))
	}

	var found []string
	for _, src := range sources {
		lines, ok, err := loader.ReadLines(l.fsys, src)
		if err != nil {
			return nil, &FatalError{Source: src.Name, Err: err}
		}
		if !ok {
			l.logger.Debug("Config file not found", slog.String("path", src.Path))
			continue
		}
		if src.IsFile() {
			found = append(found, src.Path)
		}
		rec.Merge(l.ParseBatch(src.Name, lines, sink))
	}

	return l.finalize(rec, provenance{
		configPaths:     found,
		allConfigPaths:  append([]string(nil), paths...),
		configOverrides: append([]string(nil), overrides...),
	}, sink), nil
}

// finalize compiles the directive lists of rec and builds Options from it.
func (l *Loader) finalize(rec *layer.Record, prov provenance, sink diag.Sink) *Options {
	aliases := action.BuildAliasMap(rec.ActionAliases, rec.KittenAliases)
	appMod := appModifier(rec, sink)

	modes := keymap.Compile(rec.KeyMap, aliases, appMod, sink)
	mousemap := mouse.Compile(rec.MouseMap, aliases, appMod, sink)
	rec.ClearDirectives()

	validate(rec.Values, sink)

	return &Options{
		values:     rec.Values,
		modes:      modes,
		mousemap:   mousemap,
		aliases:    aliases,
		provenance: prov,
		generation: uuid.New(),
	}
}

func (l *Loader) sinkOrLog(sink diag.Sink) diag.Sink {
	if sink != nil {
		return sink
	}
	return diag.NewLogSink(l.logger)
}

// appModifier reads the alatty_mod option.
func appModifier(rec *layer.Record, sink diag.Sink) key.Modifier {
	v, ok := rec.Get("alatty_mod")
	if !ok {
		return defaultAppModifier
	}
	s, _ := v.(string)
	mod, err := key.ParseModifiers(s)
	if err != nil || mod == key.ModNone {
		sink.Warn(fmt.Sprintf("invalid alatty_mod %q, using %s", s, defaultAppModifier))
		return defaultAppModifier
	}
	return mod
}

// overrideLines turns "name=value" overrides into config lines. Overrides
// already written as config lines pass through unchanged.
func overrideLines(overrides []string) []string {
	out := make([]string, len(overrides))
	for i, o := range overrides {
		o = strings.TrimSpace(o)
		word, rest, _ := strings.Cut(o, " ")
		if name, value, ok := strings.Cut(word, "="); ok {
			o = strings.TrimSpace(name + " " + value + " " + rest)
		}
		out[i] = o
	}
	return out
}
