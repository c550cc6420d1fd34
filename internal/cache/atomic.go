package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// AtomicSave replaces the file at path with data so that readers see either
// the old content or the new, never a partial write.
//
// The data is written to a temporary file in the same directory, which then
// takes over the permissions of any existing file, gets a fresh modification
// time and is renamed onto path. If path is a symlink, its target is
// replaced. The temporary file never outlives a failed save.
func AtomicSave(path string, data []byte) (err error) {
	if real, rerr := filepath.EvalSymlinks(path); rerr == nil {
		path = real
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmp := f.Name()
	defer func() {
		if err == nil {
			return
		}
		if rerr := os.Remove(tmp); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
			err = errors.Join(err, fmt.Errorf("removing temp file %s: %w", tmp, rerr))
		}
	}()

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp, err)
	}

	if info, serr := os.Stat(path); serr == nil {
		if err = os.Chmod(tmp, info.Mode().Perm()); err != nil {
			return fmt.Errorf("copying mode of %s: %w", path, err)
		}
	}
	now := time.Now()
	if err = os.Chtimes(tmp, now, now); err != nil {
		return fmt.Errorf("touching %s: %w", tmp, err)
	}

	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
