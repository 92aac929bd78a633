package spool

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"
)

// TestWriterWritten tests the Written() method
func TestWriterWritten(t *testing.T) {
	var dst bytes.Buffer
	writer := NewWriter(&dst, 1024*1024, 1024)

	if writer.Written() != 0 {
		t.Errorf("Initial Written() = %d, want 0", writer.Written())
	}

	data1 := []byte("first write")
	n1, err := writer.Write(data1)
	if err != nil {
		t.Fatalf("First Write failed: %v", err)
	}
	if writer.Written() != int64(n1) {
		t.Errorf("After first write, Written() = %d, want %d", writer.Written(), n1)
	}

	data2 := []byte("second write")
	n2, err := writer.Write(data2)
	if err != nil {
		t.Fatalf("Second Write failed: %v", err)
	}

	expectedTotal := int64(n1 + n2)
	if writer.Written() != expectedTotal {
		t.Errorf("After second write, Written() = %d, want %d", writer.Written(), expectedTotal)
	}
	if dst.String() != "first writesecond write" {
		t.Errorf("Destination = %q", dst.String())
	}
}

// TestWriterSum tests that the hash covers exactly what was written
func TestWriterSum(t *testing.T) {
	var dst bytes.Buffer
	writer := NewWriter(&dst, 0, 7)

	content := strings.Repeat("hash me ", 100)
	if err := writer.WriteFrom(strings.NewReader(content)); err != nil {
		t.Fatalf("WriteFrom failed: %v", err)
	}

	want := sha256.Sum256([]byte(content))
	if got := writer.Sum(); got != hex.EncodeToString(want[:]) {
		t.Errorf("Sum() = %s, want %s", got, hex.EncodeToString(want[:]))
	}
	if dst.String() != content {
		t.Error("Destination content mismatch")
	}
}

// TestWriterLimit tests the size limit
func TestWriterLimit(t *testing.T) {
	tests := []struct {
		name    string
		maxSize int64
		size    int
		wantErr bool
	}{
		{"unlimited", 0, 4096, false},
		{"under limit", 100, 99, false},
		{"exactly at limit", 100, 100, false},
		{"over limit", 100, 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst bytes.Buffer
			writer := NewWriter(&dst, tt.maxSize, 16)

			err := writer.WriteFrom(bytes.NewReader(bytes.Repeat([]byte{'x'}, tt.size)))
			if tt.wantErr {
				if !errors.Is(err, ErrLimitExceeded) {
					t.Fatalf("Expected ErrLimitExceeded, got %v", err)
				}
				if writer.Written() > tt.maxSize {
					t.Errorf("Written() = %d exceeds limit %d", writer.Written(), tt.maxSize)
				}
				return
			}
			if err != nil {
				t.Fatalf("WriteFrom failed: %v", err)
			}
			if writer.Written() != int64(tt.size) {
				t.Errorf("Written() = %d, want %d", writer.Written(), tt.size)
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	return len(p) / 2, nil
}

// TestWriterErrors tests error propagation from source and destination
func TestWriterErrors(t *testing.T) {
	t.Run("source error", func(t *testing.T) {
		writer := NewWriter(io.Discard, 0, 0)
		err := writer.WriteFrom(failingReader{})
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("Expected io.ErrUnexpectedEOF, got %v", err)
		}
	})

	t.Run("short write", func(t *testing.T) {
		writer := NewWriter(shortWriter{}, 0, 0)
		_, err := writer.Write([]byte("abcd"))
		if !errors.Is(err, io.ErrShortWrite) {
			t.Errorf("Expected io.ErrShortWrite, got %v", err)
		}
		if writer.Written() != 2 {
			t.Errorf("Written() = %d, want 2", writer.Written())
		}
	})
}
