package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/alatty/internal/config/diag"
	"github.com/dshills/alatty/internal/config/directive"
	"github.com/dshills/alatty/internal/input/action"
	"github.com/dshills/alatty/internal/input/key"
)

const appMod = key.ModCtrl | key.ModShift

var lineNo int

func mapping(trigger, act string) directive.Directive {
	lineNo++
	return directive.Directive{
		Kind:       directive.KindKeyBinding,
		Trigger:    trigger,
		Options:    directive.DefaultKeyOptions(),
		Definition: act,
		Location:   directive.Location{File: "alatty.conf", Number: lineNo, Line: "map " + trigger + " " + act},
	}
}

func sequence(trigger string, rest []string, focus, act string) directive.Directive {
	d := mapping(trigger, act)
	d.IsSequence = true
	d.Rest = rest
	d.Options.WhenFocusOn = focus
	return d
}

func inMode(d directive.Directive, mode string) directive.Directive {
	d.Options.Mode = mode
	return d
}

func clearAll() directive.Directive {
	return directive.ClearAllKeyBindings(directive.Location{File: "alatty.conf"})
}

func actions(defns []KeyDefinition) []string {
	out := make([]string, len(defns))
	for i, d := range defns {
		out[i] = d.Action
	}
	return out
}

func compile(t *testing.T, ds ...directive.Directive) (Modes, *diag.Collector) {
	t.Helper()
	c := diag.NewCollector()
	return Compile(ds, action.AliasMap{}, appMod, c), c
}

func TestCompileRootModeAlwaysPresent(t *testing.T) {
	modes, c := compile(t)
	require.Contains(t, modes, RootMode)
	assert.Empty(t, modes[RootMode].Keymap)
	assert.Equal(t, directive.DefaultOnUnknown, modes[RootMode].OnUnknown)
	assert.Zero(t, c.Len())
}

func TestCompileCanonicalTriggers(t *testing.T) {
	modes, c := compile(t,
		mapping("alatty_mod+t", "new_tab"),
		mapping("Shift+Ctrl+T", "new_window"),
	)
	assert.Zero(t, c.Len())

	root := modes[RootMode]
	got := root.Lookup(key.MustParse("ctrl+shift+t"))
	assert.Equal(t, []string{"new_tab", "new_window"}, actions(got))
}

func TestCompileClearAllResetsPass(t *testing.T) {
	tail := []directive.Directive{
		mapping("ctrl+a", "select_all"),
		sequence("ctrl+x", []string{"s"}, "", "save"),
	}

	withPrefix := append([]directive.Directive{
		mapping("ctrl+a", "first"),
		mapping("ctrl+b", "second"),
		clearAll(),
	}, tail...)

	a, _ := compile(t, withPrefix...)
	b, _ := compile(t, tail...)
	assert.Equal(t, b, a)
	assert.Len(t, a[RootMode].Keymap, 2)
}

func TestCompileClearAllDoesNotTouchEarlierResult(t *testing.T) {
	first, _ := compile(t, mapping("ctrl+a", "first"))
	_, _ = compile(t, clearAll(), mapping("ctrl+b", "second"))

	assert.Equal(t, []string{"first"}, actions(first[RootMode].Lookup(key.MustParse("ctrl+a"))))
}

func TestCompileSequenceDedup(t *testing.T) {
	modes, _ := compile(t,
		sequence("ctrl+x", []string{"s"}, "", "save_old"),
		sequence("ctrl+x", []string{"c"}, "", "close"),
		sequence("ctrl+x", []string{"s"}, "", "save_new"),
	)
	got := modes[RootMode].Lookup(key.MustParse("ctrl+x"))
	assert.Equal(t, []string{"close", "save_new"}, actions(got))
}

func TestCompileSequenceFocusKeepsBoth(t *testing.T) {
	modes, _ := compile(t,
		sequence("ctrl+x", []string{"s"}, "title:vim", "vim_save"),
		sequence("ctrl+x", []string{"s"}, "", "save"),
	)
	got := modes[RootMode].Lookup(key.MustParse("ctrl+x"))
	assert.Equal(t, []string{"vim_save", "save"}, actions(got))
}

func TestCompileNonSequenceAccumulates(t *testing.T) {
	modes, _ := compile(t,
		mapping("f1", "one"),
		mapping("f1", "two"),
		sequence("f1", []string{"a"}, "", "three"),
	)
	got := modes[RootMode].Lookup(key.MustParse("f1"))
	assert.Equal(t, []string{"one", "two", "three"}, actions(got))
}

func TestCompileNewMode(t *testing.T) {
	enter := mapping("alatty_mod+f7", "no_op")
	enter.Options.NewMode = "mw"
	enter.Options.OnUnknown = "end"
	enter.Options.OnAction = "end"

	modes, c := compile(t,
		enter,
		inMode(mapping("left", "neighboring_window left"), "mw"),
		inMode(mapping("esc", "pop_keyboard_mode"), "mw"),
	)
	assert.Zero(t, c.Len())
	require.Contains(t, modes, "mw")

	mw := modes["mw"]
	assert.Equal(t, "mw", mw.Name)
	assert.Equal(t, "end", mw.OnUnknown)
	assert.Equal(t, "end", mw.OnAction)
	assert.Len(t, mw.Keymap, 2)

	root := modes[RootMode].Lookup(key.MustParse("ctrl+shift+f7"))
	require.Len(t, root, 1)
	assert.Equal(t, EnterModeAction("mw"), root[0].Action)
}

func TestCompileNewModeRedeclarationReplacesMode(t *testing.T) {
	first := mapping("f1", "no_op")
	first.Options.NewMode = "mw"
	again := mapping("f2", "no_op")
	again.Options.NewMode = "mw"
	again.Options.OnUnknown = "passthrough"

	modes, c := compile(t,
		first,
		inMode(mapping("x", "close_window"), "mw"),
		again,
		inMode(mapping("y", "new_window"), "mw"),
	)
	assert.Zero(t, c.Len())

	mw := modes["mw"]
	require.NotNil(t, mw)
	assert.Equal(t, "passthrough", mw.OnUnknown)
	assert.Empty(t, mw.Lookup(key.MustParse("x")))
	assert.Equal(t, []string{"new_window"}, actions(mw.Lookup(key.MustParse("y"))))
	assert.Len(t, mw.Keymap, 1)

	assert.Equal(t, []string{EnterModeAction("mw")}, actions(modes[RootMode].Lookup(key.MustParse("f1"))))
	assert.Equal(t, []string{EnterModeAction("mw")}, actions(modes[RootMode].Lookup(key.MustParse("f2"))))
}

func TestCompileNewModeWithoutAction(t *testing.T) {
	enter := mapping("f7", "")
	enter.Options.NewMode = "resize"

	modes, c := compile(t, enter, inMode(mapping("w", "resize_window wider"), "resize"))
	assert.Zero(t, c.Len())
	require.Contains(t, modes, "resize")
	assert.Len(t, modes["resize"].Keymap, 1)
	assert.Equal(t, []string{EnterModeAction("resize")}, actions(modes[RootMode].Lookup(key.MustParse("f7"))))
}

func TestCompileEmptyActionRejected(t *testing.T) {
	modes, c := compile(t, mapping("f7", ""))
	require.Len(t, c.BadLines(), 1)
	assert.ErrorIs(t, c.BadLines()[0].Err, action.ErrMalformedAction)
	assert.Empty(t, modes[RootMode].Keymap)
}

func TestCompileUnknownMode(t *testing.T) {
	d := inMode(mapping("left", "neighboring_window left"), "nowhere")
	modes, c := compile(t, d, mapping("right", "next_tab"))

	require.Len(t, c.BadLines(), 1)
	bad := c.BadLines()[0]
	assert.ErrorIs(t, bad.Err, ErrUnknownMode)
	assert.Equal(t, d.Location.Number, bad.Number)
	assert.Equal(t, d.Location.Line, bad.Line)

	assert.NotContains(t, modes, "nowhere")
	for _, m := range modes {
		assert.Empty(t, m.Lookup(key.MustParse("left")))
	}
	assert.Len(t, modes[RootMode].Keymap, 1)
}

func TestCompileModeMustBeDeclaredFirst(t *testing.T) {
	enter := mapping("f7", "no_op")
	enter.Options.NewMode = "resize"

	modes, c := compile(t, inMode(mapping("w", "resize_window wider"), "resize"), enter)
	assert.Len(t, c.BadLines(), 1)
	assert.Empty(t, modes["resize"].Keymap)
}

func TestCompileResolutionFailures(t *testing.T) {
	modes, c := compile(t,
		mapping("ctrl+nokey", "new_tab"),
		mapping("ctrl+a", "NotAnAction"),
		sequence("ctrl+x", []string{"bogus+q"}, "", "quit"),
		mapping("ctrl+b", "next_tab"),
	)
	bad := c.BadLines()
	require.Len(t, bad, 3)
	for _, b := range bad {
		var rerr *ResolveError
		assert.ErrorAs(t, b.Err, &rerr)
	}
	assert.ErrorIs(t, bad[0].Err, key.ErrInvalidSpec)
	assert.ErrorIs(t, bad[1].Err, action.ErrMalformedAction)
	assert.Len(t, modes[RootMode].Keymap, 1)
}

func TestCompileExpandsAliases(t *testing.T) {
	aliases := action.BuildAliasMap([]directive.Directive{
		{Kind: directive.KindActionAlias, Name: "launch_tab", Value: "launch --type=tab"},
	}, nil)

	c := diag.NewCollector()
	modes := Compile([]directive.Directive{mapping("f2", "launch_tab htop")}, aliases, appMod, c)
	got := modes[RootMode].Lookup(key.MustParse("f2"))
	require.Len(t, got, 1)
	assert.Equal(t, "launch --type=tab htop", got[0].Action)
	assert.Equal(t, "f2", got[0].Keys())
}

func TestModesCloneIsDeep(t *testing.T) {
	modes, _ := compile(t, sequence("ctrl+x", []string{"s"}, "", "save"))
	clone := modes.Clone()
	assert.Equal(t, modes, clone)

	trigger := key.MustParse("ctrl+x")
	clone[RootMode].Keymap[trigger][0].Rest[0] = key.MustParse("q")
	assert.Equal(t, "s", modes[RootMode].Keymap[trigger][0].Rest[0].Key)
	assert.Equal(t, []string{RootMode}, modes.Names())
	assert.Equal(t, []key.Chord{trigger}, modes[RootMode].Triggers())
}
