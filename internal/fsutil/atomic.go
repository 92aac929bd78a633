// Package fsutil provides the file system operations behind saving and
// temporary materialization: destination opening, atomic streamed writes,
// unique temp files and tolerant removal.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultPerm is the mode new destination files are created with, before
// the process umask applies.
const DefaultPerm os.FileMode = 0666

// OpenDestination opens path for writing, creating or truncating it.
func OpenDestination(path string, perm os.FileMode) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return nil, fmt.Errorf("failed to open destination: %w", err)
	}
	return f, nil
}

// AtomicWriteFrom fills path through write atomically.
// write receives a temporary file in the same directory; once it returns
// without error the file is synced and renamed over path, so readers see
// either the old content or the complete new content.
//
// Steps:
// 1. Create a unique temp file next to {path}
// 2. Let write fill it
// 3. Sync and close
// 4. Rename to {path}
// 5. Sync parent directory
func AtomicWriteFrom(path string, perm os.FileMode, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir, 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	f, err := createTemp(dir, "."+filepath.Base(path)+".", ".tmp", perm)
	if err != nil {
		return err
	}
	tmpPath := f.Name()

	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := SafeRename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	// Best effort: the rename already happened.
	_ = syncDir(dir)

	return nil
}

// SafeRename renames a file safely.
// On Unix systems, os.Rename is atomic if src and dst are on the same filesystem.
func SafeRename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// syncDir syncs a directory so new entries survive a crash.
func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Sync()
}
