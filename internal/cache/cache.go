// Package cache persists small bits of state between runs, such as the last
// window size.
//
// State is grouped into named scopes. Each scope is one JSON object in its
// own file, <dir>/<name>.json. A scope is loaded when it is opened and saved
// atomically when it is closed. Cache problems are logged and never returned:
// a missing or corrupt file opens as an empty scope, and a failed save loses
// only the cached values.
//
// There is no locking between processes. If two writers save the same scope,
// the last rename wins.
package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// EnvCacheDir overrides the default cache directory.
const EnvCacheDir = "ALATTY_CACHE_DIRECTORY"

// Scope is the working set of one named cache scope.
//
// Values may be read and modified freely until the scope is closed. Numbers
// come back from disk as json.Number, so they are saved again exactly as read.
type Scope struct {
	Name   string
	Values map[string]any
	path   string
}

// Store opens scopes in one cache directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger cache failures are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a store rooted at dir. The directory is created on the
// first save.
func NewStore(dir string, opts ...Option) *Store {
	s := &Store{dir: dir, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file backing a scope.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Open loads a scope. It always returns a usable scope.
func (s *Store) Open(name string) *Scope {
	scope := &Scope{Name: name, Values: make(map[string]any)}
	if !validName(name) {
		s.logger.Error("Invalid cache scope name, values will not be saved", slog.String("scope", name))
		return scope
	}
	scope.path = s.Path(name)

	data, err := os.ReadFile(scope.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("Failed to load cached values",
				slog.String("scope", name), slog.Any("error", err))
		}
		return scope
	}
	if err := decodeValues(data, &scope.Values); err != nil {
		s.logger.Error("Failed to load cached values",
			slog.String("scope", name), slog.Any("error", err))
		scope.Values = make(map[string]any)
	}
	if scope.Values == nil {
		scope.Values = make(map[string]any)
	}
	return scope
}

// Close saves a scope.
func (s *Store) Close(scope *Scope) {
	if scope == nil || scope.path == "" {
		return
	}
	data, err := json.Marshal(scope.Values)
	if err == nil {
		err = os.MkdirAll(filepath.Dir(scope.path), 0o755)
	}
	if err == nil {
		err = AtomicSave(scope.path, data)
	}
	if err != nil {
		s.logger.Error("Failed to save cached values",
			slog.String("scope", scope.Name), slog.Any("error", err))
	}
}

// With opens a scope, passes its values to fn and saves them afterwards, even
// if fn panics.
func (s *Store) With(name string, fn func(values map[string]any)) {
	scope := s.Open(name)
	defer s.Close(scope)
	fn(scope.Values)
}

var (
	defaultMu    sync.Mutex
	defaultStore *Store
)

// DefaultDir returns the cache directory: $ALATTY_CACHE_DIRECTORY if set,
// otherwise alatty under the user cache directory.
func DefaultDir() string {
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		return dir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "alatty")
}

// Default returns the store for DefaultDir.
func Default() *Store {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultStore == nil {
		defaultStore = NewStore(DefaultDir())
	}
	return defaultStore
}

// WithScope runs fn with the values of a scope in the default store and
// saves them afterwards.
func WithScope(name string, fn func(values map[string]any)) {
	Default().With(name, fn)
}

// decodeValues decodes a scope file, keeping numbers as json.Number so that
// integers beyond float64 precision survive a load and save.
func decodeValues(data []byte, values *map[string]any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(values); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after the cached values")
	}
	return nil
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && filepath.Base(name) == name
}
