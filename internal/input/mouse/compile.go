package mouse

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/dshills/alatty/internal/config/diag"
	"github.com/dshills/alatty/internal/config/directive"
	"github.com/dshills/alatty/internal/input/action"
	"github.com/dshills/alatty/internal/input/key"
)

// Mapping maps mouse triggers to their action text.
type Mapping map[Trigger]string

// Lookup returns the action bound to t.
func (m Mapping) Lookup(t Trigger) (string, bool) {
	a, ok := m[t]
	return a, ok
}

// Clone returns a copy of the mapping.
func (m Mapping) Clone() Mapping {
	return maps.Clone(m)
}

// Triggers returns the bound triggers sorted by their canonical form.
func (m Mapping) Triggers() []Trigger {
	out := slices.Collect(maps.Keys(m))
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// Compile builds the mouse mapping from mouse binding directives.
//
// Directives apply in order: a non-empty action binds the trigger, an empty
// one removes it. A clear-all sentinel discards everything bound earlier in
// this call. Directives that fail to resolve are reported to sink and skipped.
func Compile(directives []directive.Directive, aliases action.AliasMap, appMod key.Modifier, sink diag.Sink) Mapping {
	type entry struct {
		trigger Trigger
		action  string
	}

	var pending []entry
	for _, d := range directives {
		switch d.Kind {
		case directive.KindClearAllMouseBindings:
			pending = nil
		case directive.KindMouseBinding:
			t, err := ParseTrigger(d.Trigger, appMod)
			if err != nil {
				sink.Report(diag.FromLocation(d.Location, err))
				continue
			}
			act, err := aliases.Resolve(d.Definition)
			if err != nil {
				err = fmt.Errorf("ignoring mouse_map with invalid action %q: %w", d.Definition, err)
				sink.Report(diag.FromLocation(d.Location, err))
				continue
			}
			pending = append(pending, entry{trigger: t, action: act})
		}
	}

	m := make(Mapping)
	for _, e := range pending {
		if e.action == "" {
			delete(m, e.trigger)
			continue
		}
		m[e.trigger] = e.action
	}
	return m
}
