// Package spool moves content between readers, files and writers.
package spool

import (
	"fmt"
	"os"
)

// LazyFile is a read handle on a path that is only opened when first read.
// Close releases the handle; reads after Close fail with os.ErrClosed.
type LazyFile struct {
	path   string
	file   *os.File
	closed bool
}

// NewLazyFile creates a LazyFile for path. The file is not opened until
// the first Read.
func NewLazyFile(path string) *LazyFile {
	return &LazyFile{path: path}
}

func (f *LazyFile) open() error {
	if f.closed {
		return os.ErrClosed
	}
	if f.file != nil {
		return nil
	}

	file, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.path, err)
	}
	f.file = file
	return nil
}

// Read implements io.Reader.
func (f *LazyFile) Read(p []byte) (int, error) {
	if err := f.open(); err != nil {
		return 0, err
	}
	return f.file.Read(p)
}

// Close closes the underlying file if it was opened. It is safe to call
// more than once.
func (f *LazyFile) Close() error {
	f.closed = true
	if f.file != nil {
		err := f.file.Close()
		f.file = nil
		return err
	}
	return nil
}
