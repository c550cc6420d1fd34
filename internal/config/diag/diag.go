// Package diag carries non-fatal configuration diagnostics.
//
// Every stage of a config load reports problems through a Sink instead of
// failing. The caller picks the sink: a Collector keeps everything for batch
// reporting (a config checker), a LogSink writes each problem to slog as it
// happens (normal startup).
package diag

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/dshills/alatty/internal/config/directive"
)

// BadLine is a line or directive that could not be applied.
type BadLine struct {
	Number int
	Line   string
	Err    error
	File   string
}

// FromLocation builds a BadLine for a directive location.
func FromLocation(loc directive.Location, err error) BadLine {
	return BadLine{Number: loc.Number, Line: loc.Line, Err: err, File: loc.File}
}

// Error implements the error interface.
func (b BadLine) Error() string {
	if b.File == "" {
		return fmt.Sprintf("line %d: %v (%q)", b.Number, b.Err, b.Line)
	}
	return fmt.Sprintf("%s:%d: %v (%q)", b.File, b.Number, b.Err, b.Line)
}

// Unwrap returns the underlying error.
func (b BadLine) Unwrap() error {
	return b.Err
}

// Sink receives diagnostics.
type Sink interface {
	// Report records a bad line or directive.
	Report(bad BadLine)
	// Warn records a problem that is not tied to a single line.
	Warn(message string)
}

// Collector accumulates diagnostics for later inspection.
type Collector struct {
	mu       sync.Mutex
	badLines []BadLine
	warnings []string
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Report implements Sink.
func (c *Collector) Report(bad BadLine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.badLines = append(c.badLines, bad)
}

// Warn implements Sink.
func (c *Collector) Warn(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, message)
}

// BadLines returns a copy of the collected bad lines in report order.
func (c *Collector) BadLines() []BadLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]BadLine, len(c.badLines))
	copy(out, c.badLines)
	return out
}

// Warnings returns a copy of the collected warnings in report order.
func (c *Collector) Warnings() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// Len returns the number of bad lines plus warnings.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.badLines) + len(c.warnings)
}

// Err returns every bad line as one error, or nil if there were none.
// Warnings are not errors and are not included.
func (c *Collector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var result *multierror.Error
	for _, b := range c.badLines {
		result = multierror.Append(result, b)
	}
	return result.ErrorOrNil()
}

// LogSink writes diagnostics to a logger as they arrive.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a LogSink. A nil logger uses slog.Default().
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Report implements Sink.
func (s *LogSink) Report(bad BadLine) {
	s.logger.Error("Ignoring invalid config line",
		slog.String("file", bad.File),
		slog.Int("line", bad.Number),
		slog.String("text", bad.Line),
		slog.Any("error", bad.Err),
	)
}

// Warn implements Sink.
func (s *LogSink) Warn(message string) {
	s.logger.Warn(message)
}

// Multi fans diagnostics out to several sinks.
type Multi []Sink

// Report implements Sink.
func (m Multi) Report(bad BadLine) {
	for _, s := range m {
		s.Report(bad)
	}
}

// Warn implements Sink.
func (m Multi) Warn(message string) {
	for _, s := range m {
		s.Warn(message)
	}
}

// Discard drops every diagnostic.
var Discard Sink = discard{}

type discard struct{}

func (discard) Report(BadLine) {}
func (discard) Warn(string)    {}
