package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alatty.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestCheckClean(t *testing.T) {
	path := writeConfig(t, "font_size 14\nmap ctrl+a new_tab\n")
	out, err := execute(t, context.Background(), "check", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "OK: 1 config files")
}

func TestCheckReportsBadLines(t *testing.T) {
	path := writeConfig(t, "font_size 14\nno_such_option 3\nmap ctrl+a new_tab\n")
	out, err := execute(t, context.Background(), "check", "-c", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 invalid config lines")
	assert.Contains(t, out, path+":2:")
	assert.Contains(t, out, "no_such_option")
}

func TestCheckMissingDefaults(t *testing.T) {
	path := writeConfig(t, "")
	_, err := execute(t, context.Background(), "check", "-c", path, "--defaults", filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestShowText(t *testing.T) {
	path := writeConfig(t, "font_size 14\nmap ctrl+a new_tab\nmouse_map ctrl+left press ungrabbed mouse_selection normal\n")
	out, err := execute(t, context.Background(), "show", "-c", path, "-o", "scrollback_lines=500")
	require.NoError(t, err)
	assert.Contains(t, out, "font_size 14\n")
	assert.Contains(t, out, "scrollback_lines 500\n")
	assert.Contains(t, out, "map ctrl+a new_tab\n")
	assert.Contains(t, out, "mouse_map ctrl+left press ungrabbed mouse_selection normal\n")
	assert.Contains(t, out, "# loaded from: "+path)
}

func TestShowYAML(t *testing.T) {
	path := writeConfig(t, "map ctrl+a new_tab\n")
	out, err := execute(t, context.Background(), "show", "-c", path, "--format", "yaml")
	require.NoError(t, err)

	var doc struct {
		ConfigPaths   []string `yaml:"config_paths"`
		KeyboardModes []struct {
			Name     string `yaml:"name"`
			Bindings []struct {
				Keys   string `yaml:"keys"`
				Action string `yaml:"action"`
			} `yaml:"bindings"`
		} `yaml:"keyboard_modes"`
		Options map[string]any `yaml:"options"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, []string{path}, doc.ConfigPaths)
	require.Len(t, doc.KeyboardModes, 1)
	require.Len(t, doc.KeyboardModes[0].Bindings, 1)
	assert.Equal(t, "ctrl+a", doc.KeyboardModes[0].Bindings[0].Keys)
	assert.Equal(t, "new_tab", doc.KeyboardModes[0].Bindings[0].Action)
	assert.Contains(t, doc.Options, "alatty_mod")
}

func TestShowUnknownFormat(t *testing.T) {
	path := writeConfig(t, "")
	_, err := execute(t, context.Background(), "show", "-c", path, "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestShowColors(t *testing.T) {
	path := writeConfig(t, "")
	out, err := execute(t, context.Background(), "show", "-c", path, "--colors")
	require.NoError(t, err)
	assert.Contains(t, out, "color16 #000000\n")
	assert.Contains(t, out, "color255 #eeeeee\n")
}

func TestWatchStopsWithContext(t *testing.T) {
	path := writeConfig(t, "font_size 12\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := execute(t, ctx, "watch", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "watching 1 config files")
}

func TestCacheSetGetDelete(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	_, err := execute(t, ctx, "cache", "--cache-dir", dir, "set", "window", "size", "[80, 24]")
	require.NoError(t, err)
	_, err = execute(t, ctx, "cache", "--cache-dir", dir, "set", "window", "title", "hello world")
	require.NoError(t, err)

	out, err := execute(t, ctx, "cache", "--cache-dir", dir, "get", "window", "size")
	require.NoError(t, err)
	assert.Equal(t, "[80,24]\n", out)

	out, err = execute(t, ctx, "cache", "--cache-dir", dir, "get", "window")
	require.NoError(t, err)
	assert.Equal(t, "size [80,24]\ntitle \"hello world\"\n", out)

	_, err = execute(t, ctx, "cache", "--cache-dir", dir, "delete", "window", "size")
	require.NoError(t, err)
	_, err = execute(t, ctx, "cache", "--cache-dir", dir, "get", "window", "size")
	assert.ErrorContains(t, err, "no cached value")

	assert.FileExists(t, filepath.Join(dir, "window.json"))

	_, err = execute(t, ctx, "cache", "--cache-dir", dir, "set", "ids", "big", "9007199254740993")
	require.NoError(t, err)
	out, err = execute(t, ctx, "cache", "--cache-dir", dir, "get", "ids", "big")
	require.NoError(t, err)
	assert.Equal(t, "9007199254740993\n", out)
}
