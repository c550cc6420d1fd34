package config

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/alatty/internal/config/diag"
	"github.com/dshills/alatty/internal/config/notify"
	"github.com/dshills/alatty/internal/config/watcher"
)

// ErrSystemClosed is returned when operations are attempted on a closed System.
var ErrSystemClosed = errors.New("config system is closed")

// System keeps the current Options for a running program and replaces them
// when the config files change.
//
// Thread Safety:
// System is safe for concurrent use. Options values it hands out are
// immutable, so a reader keeps a consistent view even across a reload.
type System struct {
	mu        sync.RWMutex
	loader    *Loader
	paths     []string
	overrides []string
	current   *Options
	lastDiag  *diag.Collector
	sink      diag.Sink
	logger    *slog.Logger
	notifier  *notify.Notifier
	watcher   *watcher.Watcher
	closed    atomic.Bool

	// Metrics for performance monitoring (protected by mu)
	loadTime     time.Duration
	lastReloadAt time.Time
}

// SystemOption configures a System instance.
type SystemOption func(*systemOptions)

type systemOptions struct {
	enableWatcher bool
	debounce      time.Duration
	sink          diag.Sink
	logger        *slog.Logger
}

// WithSystemWatcher enables or disables reloading when config files change.
func WithSystemWatcher(enable bool) SystemOption {
	return func(o *systemOptions) {
		o.enableWatcher = enable
	}
}

// WithSystemDebounce sets how long to wait for a burst of file changes to
// settle before reloading.
func WithSystemDebounce(d time.Duration) SystemOption {
	return func(o *systemOptions) {
		o.debounce = d
	}
}

// WithSystemSink sends load diagnostics to sink in addition to the system's
// own record of the last load. The default logs them.
func WithSystemSink(sink diag.Sink) SystemOption {
	return func(o *systemOptions) {
		o.sink = sink
	}
}

// WithSystemLogger sets the logger.
func WithSystemLogger(logger *slog.Logger) SystemOption {
	return func(o *systemOptions) {
		o.logger = logger
	}
}

// NewSystem loads the configuration and, if enabled, starts watching the
// config files for changes.
func NewSystem(l *Loader, paths, overrides []string, opts ...SystemOption) (*System, error) {
	options := &systemOptions{
		enableWatcher: true,
		debounce:      100 * time.Millisecond,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.sink == nil {
		options.sink = diag.NewLogSink(options.logger)
	}

	s := &System{
		loader:    l,
		paths:     append([]string(nil), paths...),
		overrides: append([]string(nil), overrides...),
		sink:      options.sink,
		logger:    options.logger,
		notifier:  notify.New(),
	}

	if _, _, err := s.load(); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if options.enableWatcher {
		w, err := watcher.New(watcher.WithDebounce(options.debounce), watcher.WithLogger(options.logger))
		if err != nil {
			return nil, fmt.Errorf("starting config watcher: %w", err)
		}
		for _, path := range s.paths {
			if err := w.Watch(path); err != nil {
				s.logger.Warn("Cannot watch config file", slog.String("path", path), slog.Any("error", err))
			}
		}
		w.OnChange(s.handleChange)
		s.watcher = w
	}

	return s, nil
}

// Close stops watching and releases resources.
// It is safe to call Close multiple times.
func (s *System) Close() {
	if s.closed.Swap(true) {
		return
	}
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	s.notifier.Close()
}

// Options returns the current settings.
func (s *System) Options() *Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reload reloads configuration from all sources. On failure the current
// Options are kept.
func (s *System) Reload() error {
	return s.reload("reload")
}

// Subscribe registers an observer for all configuration changes.
// Returns nil if the system has been closed.
func (s *System) Subscribe(observer notify.Observer) *notify.Subscription {
	if s.closed.Load() {
		return nil
	}
	return s.notifier.Subscribe(observer)
}

// SubscribeOption registers an observer for changes to one option.
// Returns nil if the system has been closed.
func (s *System) SubscribeOption(name string, observer notify.Observer) *notify.Subscription {
	if s.closed.Load() {
		return nil
	}
	return s.notifier.SubscribeOption(name, observer)
}

// LoadTime returns the duration of the last configuration load.
func (s *System) LoadTime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadTime
}

// LastReloadAt returns the time of the last successful load.
func (s *System) LastReloadAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastReloadAt
}

func (s *System) reload(source string) error {
	if s.closed.Load() {
		return ErrSystemClosed
	}
	old, current, err := s.load()
	if err != nil {
		return fmt.Errorf("reloading configuration: %w", err)
	}

	changes := notify.Diff(old.values, current.values, source)
	s.logger.Info("Config reloaded",
		slog.String("source", source),
		slog.String("generation", current.Generation().String()),
		slog.Int("changes", len(changes)),
	)
	s.notifier.Publish(changes, source)
	return nil
}

// load runs a full load and swaps it in, returning the replaced Options and
// the ones that replaced them.
func (s *System) load() (old, current *Options, err error) {
	collector := diag.NewCollector()
	start := time.Now()
	opts, err := s.loader.Load(s.paths, s.overrides, diag.Multi{collector, s.sink})
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	old = s.current
	s.current = opts
	s.lastDiag = collector
	s.loadTime = time.Since(start)
	s.lastReloadAt = time.Now()
	return old, opts, nil
}

func (s *System) handleChange(events []watcher.Event) {
	source := events[0].Path
	if err := s.reload(source); err != nil && !errors.Is(err, ErrSystemClosed) {
		s.logger.Error("Config reload failed", slog.String("source", source), slog.Any("error", err))
	}
}

// Health returns the health status of the configuration system.
func (s *System) Health() SystemHealth {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bad := s.lastDiag.BadLines()
	warnings := s.lastDiag.Warnings()
	status := HealthOK
	if len(bad) > 0 {
		status = HealthDegraded
	}

	return SystemHealth{
		Status:       status,
		LoadTime:     s.loadTime,
		LastReloadAt: s.lastReloadAt,
		Generation:   s.current.Generation().String(),
		BadLines:     bad,
		Warnings:     warnings,
	}
}

// SystemHealth represents the health status of the configuration system.
type SystemHealth struct {
	// Status is the overall health status.
	Status HealthStatus

	// LoadTime is the duration of the last configuration load.
	LoadTime time.Duration

	// LastReloadAt is the time of the last configuration load.
	LastReloadAt time.Time

	// Generation identifies the current Options.
	Generation string

	// BadLines and Warnings are the diagnostics of the last load.
	BadLines []diag.BadLine
	Warnings []string
}

// HealthStatus represents the health status of a component.
type HealthStatus int

const (
	// HealthOK indicates the last load skipped no lines. Warnings alone do not
	// degrade health.
	HealthOK HealthStatus = iota
	// HealthDegraded indicates the last load skipped bad lines.
	HealthDegraded
)

// String returns a human-readable status string.
func (s HealthStatus) String() string {
	switch s {
	case HealthOK:
		return "ok"
	case HealthDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}
