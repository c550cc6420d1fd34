package loader

import (
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
	errs  map[string]error
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte), errs: make(map[string]error)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) FailOn(path string, err error) {
	m.errs[path] = err
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	if err, ok := m.errs[path]; ok {
		return nil, err
	}
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestReadLinesFile(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/alatty.conf", "font_size 12\r\nmap ctrl+a quit\n\n# done")

	lines, found, err := ReadLines(memfs, File("/alatty.conf"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"font_size 12", "map ctrl+a quit", "", "# done"}, lines)
}

func TestReadLinesMissingFile(t *testing.T) {
	lines, found, err := ReadLines(NewMemFS(), File("/missing.conf"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, lines)
}

func TestReadLinesIOFailure(t *testing.T) {
	memfs := NewMemFS()
	boom := errors.New("device not ready")
	memfs.FailOn("/broken.conf", boom)

	_, _, err := ReadLines(memfs, File("/broken.conf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestReadLinesLiteral(t *testing.T) {
	src := Literal("<override>", []string{"font_size 3"})
	assert.False(t, src.IsFile())

	lines, found, err := ReadLines(NewMemFS(), src)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"font_size 3"}, lines)
}

func TestParseBaseline(t *testing.T) {
	rec, err := ParseBaseline("defaults.toml", []byte(`
font_size = 11.0
scrollback_lines = 2000
confirm_os_window = true
alatty_mod = "ctrl+shift"

[colors]
color0 = "#000000"
`))
	require.NoError(t, err)
	assert.Equal(t, 11.0, rec.Values["font_size"])
	assert.Equal(t, int64(2000), rec.Values["scrollback_lines"])
	assert.Equal(t, true, rec.Values["confirm_os_window"])
	assert.Equal(t, "ctrl+shift", rec.Values["alatty_mod"])
	assert.Equal(t, "#000000", rec.Values["colors.color0"])
}

func TestParseBaselineInvalid(t *testing.T) {
	_, err := ParseBaseline("defaults.toml", []byte("font_size = \n[broken"))
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "defaults.toml", perr.Path)
	assert.Greater(t, perr.Line, 0)
}

func TestLoadBaselineMissingIsError(t *testing.T) {
	_, err := LoadBaseline(NewMemFS(), "/nope.toml")
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
