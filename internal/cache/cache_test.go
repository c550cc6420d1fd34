package cache

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*Store, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return NewStore(filepath.Join(t.TempDir(), "cache"), WithLogger(logger)), &buf
}

func TestRoundTrip(t *testing.T) {
	s, logs := newStore(t)

	want := map[string]any{
		"window_size": []any{json.Number("800"), json.Number("600")},
		"last_tab":    "shell",
		"maximized":   true,
		"opacity":     json.Number("0.85"),
		"nested":      map[string]any{"a": "b"},
		"nothing":     nil,
	}
	s.With("main", func(values map[string]any) {
		assert.Empty(t, values)
		for k, v := range want {
			values[k] = v
		}
	})

	s.With("main", func(values map[string]any) {
		assert.Equal(t, want, values)
		values["last_tab"] = "htop"
		delete(values, "nothing")
	})

	scope := s.Open("main")
	assert.Equal(t, "htop", scope.Values["last_tab"])
	assert.NotContains(t, scope.Values, "nothing")
	assert.Empty(t, logs.String())
}

func TestScopesAreSeparateFiles(t *testing.T) {
	s, _ := newStore(t)
	s.With("a", func(v map[string]any) { v["x"] = 1.0 })
	s.With("b", func(v map[string]any) { v["x"] = 2.0 })

	assert.FileExists(t, s.Path("a"))
	assert.FileExists(t, s.Path("b"))
	assert.Equal(t, filepath.Join(s.Dir(), "a.json"), s.Path("a"))
	assert.Equal(t, json.Number("1"), s.Open("a").Values["x"])
	assert.Equal(t, json.Number("2"), s.Open("b").Values["x"])
}

func TestCorruptFileOpensEmpty(t *testing.T) {
	s, logs := newStore(t)
	require.NoError(t, os.MkdirAll(s.Dir(), 0o755))
	require.NoError(t, os.WriteFile(s.Path("main"), []byte("{not json"), 0o600))

	scope := s.Open("main")
	assert.Empty(t, scope.Values)
	assert.Contains(t, logs.String(), "Failed to load cached values")

	scope.Values["k"] = "v"
	s.Close(scope)
	assert.Equal(t, "v", s.Open("main").Values["k"])
}

func TestLargeIntegersSurviveUntouched(t *testing.T) {
	s, logs := newStore(t)
	require.NoError(t, os.MkdirAll(s.Dir(), 0o755))
	require.NoError(t, os.WriteFile(s.Path("main"), []byte(`{"id":9007199254740993,"ratio":0.1}`), 0o600))

	s.With("main", func(map[string]any) {})

	data, err := os.ReadFile(s.Path("main"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":9007199254740993,"ratio":0.1}`, string(data))
	assert.Contains(t, string(data), "9007199254740993")
	assert.Equal(t, json.Number("9007199254740993"), s.Open("main").Values["id"])
	assert.Empty(t, logs.String())
}

func TestTrailingDataOpensEmpty(t *testing.T) {
	s, logs := newStore(t)
	require.NoError(t, os.MkdirAll(s.Dir(), 0o755))
	require.NoError(t, os.WriteFile(s.Path("main"), []byte(`{"k":"v"} {"k":"w"}`), 0o600))

	assert.Empty(t, s.Open("main").Values)
	assert.Contains(t, logs.String(), "Failed to load cached values")
}

func TestNullFileOpensEmpty(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, os.MkdirAll(s.Dir(), 0o755))
	require.NoError(t, os.WriteFile(s.Path("main"), []byte("null"), 0o600))

	scope := s.Open("main")
	require.NotNil(t, scope.Values)
	scope.Values["k"] = "v"
}

func TestSaveFailureIsLogged(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	var buf bytes.Buffer
	s := NewStore(filepath.Join(blocker, "cache"), WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	assert.NotPanics(t, func() {
		s.With("main", func(v map[string]any) { v["k"] = "v" })
	})
	assert.Contains(t, buf.String(), "Failed to save cached values")
}

func TestInvalidScopeName(t *testing.T) {
	s, logs := newStore(t)
	for _, name := range []string{"", "..", "a/b"} {
		s.With(name, func(v map[string]any) { v["k"] = "v" })
	}
	assert.Contains(t, logs.String(), "Invalid cache scope name")
	_, err := os.Stat(s.Dir())
	assert.True(t, os.IsNotExist(err))
}

func TestSavedOnPanic(t *testing.T) {
	s, _ := newStore(t)
	assert.Panics(t, func() {
		s.With("main", func(v map[string]any) {
			v["k"] = "v"
			panic("boom")
		})
	})
	assert.Equal(t, "v", s.Open("main").Values["k"])
}

func TestWithScopeUsesEnvDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvCacheDir, dir)
	assert.Equal(t, dir, DefaultDir())

	defaultMu.Lock()
	defaultStore = nil
	defaultMu.Unlock()
	t.Cleanup(func() {
		defaultMu.Lock()
		defaultStore = nil
		defaultMu.Unlock()
	})

	WithScope("main", func(v map[string]any) { v["k"] = "v" })
	assert.FileExists(t, filepath.Join(dir, "main.json"))
}

func TestAtomicSaveNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, AtomicSave(path, []byte(`{"a":1}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
	assertNoTempFiles(t, filepath.Dir(path))
}

func TestAtomicSaveKeepsModeAndRefreshesMtime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o640))
	require.NoError(t, os.Chmod(path, 0o640))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	require.NoError(t, AtomicSave(path, []byte("new")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
	assert.WithinDuration(t, time.Now(), info.ModTime(), time.Hour)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assertNoTempFiles(t, filepath.Dir(path))
}

func TestAtomicSaveFollowsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.json")
	link := filepath.Join(dir, "link.json")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o600))
	require.NoError(t, os.Symlink(target, link))

	require.NoError(t, AtomicSave(link, []byte("new")))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestAtomicSaveRenameFailureRemovesTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), nil, 0o600))

	err := AtomicSave(path, []byte("data"))
	require.Error(t, err)
	assertNoTempFiles(t, dir)
}

func TestAtomicSaveMissingDirectory(t *testing.T) {
	err := AtomicSave(filepath.Join(t.TempDir(), "missing", "data.json"), []byte("x"))
	assert.Error(t, err)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
