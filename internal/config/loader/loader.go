// Package loader reads configuration sources.
//
// A source is either a file on disk or a literal list of lines (command line
// overrides). Files are read whole and split into lines; the caller feeds the
// lines to a directive parser in order.
package loader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// Source is one configuration source.
type Source struct {
	// Name identifies the source in diagnostics. For files it is the path.
	Name string

	// Path is set for file sources.
	Path string

	// Lines is set for literal sources.
	Lines []string
}

// File returns a file source.
func File(path string) Source {
	return Source{Name: path, Path: path}
}

// Literal returns a source made of the given lines.
func Literal(name string, lines []string) Source {
	return Source{Name: name, Lines: lines}
}

// IsFile reports whether the source is backed by a file.
func (s Source) IsFile() bool {
	return s.Path != ""
}

// ReadLines returns the lines of a source.
//
// A file source that does not exist yields found=false and no error. Any
// other read failure is returned and should abort the load.
func ReadLines(fsys FileSystem, src Source) (lines []string, found bool, err error) {
	if !src.IsFile() {
		return src.Lines, true, nil
	}

	data, err := fsys.ReadFile(src.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading config file %s: %w", src.Path, err)
	}

	lines, err = SplitLines(data)
	if err != nil {
		return nil, false, fmt.Errorf("reading config file %s: %w", src.Path, err)
	}
	return lines, true, nil
}

// SplitLines splits data into lines, dropping line terminators.
func SplitLines(data []byte) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
