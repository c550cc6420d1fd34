// Package layer holds the mergeable settings record that config sources are
// folded into.
//
// A Record has two kinds of fields. Scalar option values are last-write-wins:
// merging a later record replaces earlier values. Incremental fields (key
// bindings, mouse bindings, aliases) are ordered directive lists that are
// concatenated in source order, so the final order is the order in which the
// directives were encountered across all sources.
package layer

import (
	"github.com/dshills/alatty/internal/config/directive"
)

// Record is an accumulated settings record.
type Record struct {
	// Values holds scalar option values keyed by option name.
	Values map[string]any

	// KeyMap holds key binding directives, including clear-all sentinels.
	KeyMap []directive.Directive

	// MouseMap holds mouse binding directives, including clear-all sentinels.
	MouseMap []directive.Directive

	// ActionAliases and KittenAliases hold alias declarations in order.
	ActionAliases []directive.Directive
	KittenAliases []directive.Directive
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{Values: make(map[string]any)}
}

// NewRecordWithValues creates a record holding a deep copy of values.
func NewRecordWithValues(values map[string]any) *Record {
	return &Record{Values: CloneValues(values)}
}

// Clone creates a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return NewRecord()
	}
	return &Record{
		Values:        CloneValues(r.Values),
		KeyMap:        cloneDirectives(r.KeyMap),
		MouseMap:      cloneDirectives(r.MouseMap),
		ActionAliases: cloneDirectives(r.ActionAliases),
		KittenAliases: cloneDirectives(r.KittenAliases),
	}
}

// Apply folds a single directive into the record.
func (r *Record) Apply(d directive.Directive) {
	switch d.Kind {
	case directive.KindOption:
		if r.Values == nil {
			r.Values = make(map[string]any)
		}
		r.Values[d.Name] = CloneValue(d.Value)
	case directive.KindKeyBinding, directive.KindClearAllKeyBindings:
		r.KeyMap = append(r.KeyMap, d.Clone())
	case directive.KindMouseBinding, directive.KindClearAllMouseBindings:
		r.MouseMap = append(r.MouseMap, d.Clone())
	case directive.KindActionAlias:
		r.ActionAliases = append(r.ActionAliases, d.Clone())
	case directive.KindKittenAlias:
		r.KittenAliases = append(r.KittenAliases, d.Clone())
	}
}

// Merge folds src into r and returns r. Scalar values from src replace those
// in r; incremental lists from src are appended after those in r.
func (r *Record) Merge(src *Record) *Record {
	if src == nil {
		return r
	}
	if r.Values == nil {
		r.Values = make(map[string]any)
	}
	copyValues(r.Values, src.Values)
	r.KeyMap = append(r.KeyMap, cloneDirectives(src.KeyMap)...)
	r.MouseMap = append(r.MouseMap, cloneDirectives(src.MouseMap)...)
	r.ActionAliases = append(r.ActionAliases, cloneDirectives(src.ActionAliases)...)
	r.KittenAliases = append(r.KittenAliases, cloneDirectives(src.KittenAliases)...)
	return r
}

// ClearDirectives drops the incremental lists once they have been compiled,
// so that merging the record again cannot apply them twice.
func (r *Record) ClearDirectives() {
	r.KeyMap = nil
	r.MouseMap = nil
	r.ActionAliases = nil
	r.KittenAliases = nil
}

// Get returns a scalar value.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.Values[name]
	return v, ok
}

func cloneDirectives(src []directive.Directive) []directive.Directive {
	if src == nil {
		return nil
	}
	dst := make([]directive.Directive, len(src))
	for i, d := range src {
		dst[i] = d.Clone()
	}
	return dst
}
