package spool

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
)

// DefaultChunkSize is the copy buffer size used when none is given.
const DefaultChunkSize = 64 * 1024

// ErrLimitExceeded is returned once a write would pass the size limit.
var ErrLimitExceeded = errors.New("size limit exceeded")

// Writer forwards data to a destination in chunks, hashing it on the way
// and enforcing an optional size limit.
type Writer struct {
	dst       io.Writer
	hash      hash.Hash
	written   int64
	maxSize   int64
	chunkSize int
}

// NewWriter creates a chunked writer.
//
// Parameters:
//   - dst: destination writer
//   - maxSize: maximum number of bytes (0 for unlimited)
//   - chunkSize: buffer size for WriteFrom (0 for DefaultChunkSize)
func NewWriter(dst io.Writer, maxSize int64, chunkSize int) *Writer {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &Writer{
		dst:       dst,
		hash:      sha256.New(),
		maxSize:   maxSize,
		chunkSize: chunkSize,
	}
}

// Write writes p to the destination and updates the hash. Nothing is
// written when p would take the total past the limit.
func (w *Writer) Write(p []byte) (int, error) {
	if w.maxSize > 0 && w.written+int64(len(p)) > w.maxSize {
		return 0, fmt.Errorf("%w: %d bytes", ErrLimitExceeded, w.maxSize)
	}

	n, err := w.dst.Write(p)
	w.hash.Write(p[:n])
	w.written += int64(n)
	if err != nil {
		return n, err
	}
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// WriteFrom copies r to the destination chunk by chunk until r is drained.
func (w *Writer) WriteFrom(r io.Reader) error {
	buf := make([]byte, w.chunkSize)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, writeErr := w.Write(buf[:n]); writeErr != nil {
				return writeErr
			}
		}

		if err == io.EOF {
			return nil
		}

		if err != nil {
			return fmt.Errorf("failed to read from source: %w", err)
		}
	}
}

// Written returns the number of bytes written so far.
func (w *Writer) Written() int64 {
	return w.written
}

// Sum returns the hex SHA-256 of everything written so far.
func (w *Writer) Sum() string {
	return hex.EncodeToString(w.hash.Sum(nil))
}
