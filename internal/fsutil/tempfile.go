package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"
)

// tempAttempts bounds retries when a generated name is already taken.
const tempAttempts = 10

// CreateTemp creates a new file named {prefix}{ulid}{suffix} in dir, open
// for reading and writing with mode 0600. An empty dir means os.TempDir().
// The caller is responsible for removing the file.
func CreateTemp(dir, prefix, suffix string) (*os.File, error) {
	return createTemp(dir, prefix, suffix, 0600)
}

func createTemp(dir, prefix, suffix string, perm os.FileMode) (*os.File, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	var lastErr error
	for i := 0; i < tempAttempts; i++ {
		name := filepath.Join(dir, prefix+ulid.Make().String()+suffix)

		f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, perm)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("failed to create temp file: %w", err)
		}
		lastErr = err
	}

	return nil, fmt.Errorf("failed to create temp file after %d attempts: %w", tempAttempts, lastErr)
}
