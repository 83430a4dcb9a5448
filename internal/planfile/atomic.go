package planfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrUnreadable is returned by AtomicWrite when content fails its check.
var ErrUnreadable = errors.New("refusing to write content that cannot be read back")

// AtomicWrite replaces path with content. check, when not nil, must accept
// content before anything touches the disk. The previous file is kept as
// path.bak and the new content lands through a rename from a sibling temp
// file, so readers see either the old file or the new one.
func AtomicWrite(path string, content []byte, check func([]byte) error) error {
	if check != nil {
		if err := check(content); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := backup(path); err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	committed = true
	return nil
}

// backup copies path to path.bak. A missing path is not an error.
func backup(path string) error {
	old, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path+".bak", old, mode)
}
