package datasrc

import "io"

// Origin identifies which of the four sources a Data was built from.
type Origin int

const (
	// OriginNone is the zero value. A Data with no origin is broken.
	OriginNone Origin = iota

	// OriginBytes holds raw bytes in the instance encoding.
	OriginBytes

	// OriginText holds already decoded text.
	OriginText

	// OriginStream holds an open reader supplied by the caller.
	OriginStream

	// OriginPath holds a file system path, opened on demand.
	OriginPath
)

// String returns the lower-case origin name.
func (o Origin) String() string {
	switch o {
	case OriginBytes:
		return "bytes"
	case OriginText:
		return "text"
	case OriginStream:
		return "stream"
	case OriginPath:
		return "path"
	default:
		return "none"
	}
}

// EncodedReader is a stream that declares the encoding of its bytes, the
// equivalent of a file opened in text mode. A Data built from one treats
// the stream as text and adopts its encoding unless WithEncoding overrides
// it.
type EncodedReader interface {
	io.Reader

	// Encoding returns the codec name of the stream's bytes, e.g. "latin1".
	// An empty name means the stream is binary.
	Encoding() string
}

// Field represents a structured logging field.
type Field struct {
	Key   string
	Value interface{}
}

// SaveResult describes a completed save.
type SaveResult struct {
	// Number of bytes written to the destination
	Written int64 `json:"written"`

	// Hex SHA-256 of the bytes written
	SHA256 string `json:"sha256"`
}
