package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/alatty/internal/config/directive"
)

func opt(name string, v any) directive.Directive {
	return directive.Directive{Kind: directive.KindOption, Name: name, Value: v}
}

func keyMap(trigger, action string) directive.Directive {
	return directive.Directive{Kind: directive.KindKeyBinding, Trigger: trigger, Definition: action}
}

func TestRecordApply(t *testing.T) {
	r := NewRecord()
	r.Apply(opt("font_size", 11.0))
	r.Apply(keyMap("ctrl+a", "quit"))
	r.Apply(directive.ClearAllKeyBindings(directive.Location{}))
	r.Apply(directive.Directive{Kind: directive.KindMouseBinding, Trigger: "left press ungrabbed"})
	r.Apply(directive.Directive{Kind: directive.KindActionAlias, Name: "a", Value: "b"})
	r.Apply(directive.Directive{Kind: directive.KindKittenAlias, Name: "k", Value: "k --x"})
	r.Apply(opt("font_size", 12.0))

	assert.Equal(t, 12.0, r.Values["font_size"])
	require.Len(t, r.KeyMap, 2)
	assert.True(t, r.KeyMap[1].IsClear())
	assert.Len(t, r.MouseMap, 1)
	assert.Len(t, r.ActionAliases, 1)
	assert.Len(t, r.KittenAliases, 1)
}

func TestRecordMergeOrder(t *testing.T) {
	a := NewRecordWithValues(map[string]any{"font_size": 11.0, "shell": "."})
	a.Apply(keyMap("x", "first"))

	b := NewRecord()
	b.Apply(opt("font_size", 14.0))
	b.Apply(keyMap("x", "second"))

	a.Merge(b)
	assert.Equal(t, 14.0, a.Values["font_size"])
	assert.Equal(t, ".", a.Values["shell"])
	require.Len(t, a.KeyMap, 2)
	assert.Equal(t, "first", a.KeyMap[0].Definition)
	assert.Equal(t, "second", a.KeyMap[1].Definition)

	b.KeyMap[0].Definition = "mutated"
	assert.Equal(t, "second", a.KeyMap[1].Definition)

	assert.Same(t, a, a.Merge(nil))
}

func TestRecordCloneIsDeep(t *testing.T) {
	r := NewRecordWithValues(map[string]any{"nested": map[string]any{"a": 1}})
	d := keyMap("x", "y")
	d.Rest = []string{"z"}
	r.Apply(d)

	c := r.Clone()
	c.Values["nested"].(map[string]any)["a"] = 2
	c.KeyMap[0].Rest[0] = "changed"
	c.Values["extra"] = true

	assert.Equal(t, 1, r.Values["nested"].(map[string]any)["a"])
	assert.Equal(t, "z", r.KeyMap[0].Rest[0])
	_, ok := r.Get("extra")
	assert.False(t, ok)

	var nilRecord *Record
	assert.NotNil(t, nilRecord.Clone().Values)
}

func TestRecordClearDirectives(t *testing.T) {
	r := NewRecord()
	r.Apply(keyMap("x", "y"))
	r.Apply(directive.Directive{Kind: directive.KindActionAlias, Name: "a", Value: "b"})
	r.Apply(opt("font_size", 3.0))
	r.ClearDirectives()

	assert.Empty(t, r.KeyMap)
	assert.Empty(t, r.ActionAliases)
	assert.Equal(t, 3.0, r.Values["font_size"])
}
