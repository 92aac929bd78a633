package datasrc

import (
	"fmt"
	"io"
	"os"
)

// Bytes returns the full content encoded with the instance encoding.
//
//   - Bytes origins are returned as is, without copying.
//   - Text origins are encoded.
//   - Streams are read to the end. A stream with a declared encoding is
//     decoded with that encoding and re-encoded with the instance one.
//   - Paths are opened, read completely and closed; every call re-reads.
//
// For streams the content is consumed: a second call returns what is left,
// which is usually nothing.
func (d *Data) Bytes() ([]byte, error) {
	switch d.origin {
	case OriginBytes:
		return d.raw, nil

	case OriginText:
		return d.codec.Encode(d.text)

	case OriginStream:
		if d.streamCodec != nil {
			text, err := d.streamText()
			if err != nil {
				return nil, err
			}
			return d.codec.Encode(text)
		}
		if d.view != nil {
			if d.view.closed {
				return nil, ErrClosed
			}
			return d.view.remaining()
		}
		return io.ReadAll(d.stream)

	case OriginPath:
		b, err := os.ReadFile(d.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", d.path, err)
		}
		return b, nil
	}

	return nil, ErrBrokenState
}

// Text returns the full content as text.
//
// Text origins are returned as is and streams with a declared encoding are
// decoded with it. Everything else is Bytes decoded with the instance
// encoding.
func (d *Data) Text() (string, error) {
	switch {
	case d.origin == OriginText:
		return d.text, nil
	case d.origin == OriginStream && d.streamCodec != nil:
		return d.streamText()
	}

	b, err := d.Bytes()
	if err != nil {
		return "", err
	}
	return d.codec.Decode(b)
}

// streamText reads the rest of a declared-encoding stream as text,
// through the view when one is open so buffered characters are kept.
func (d *Data) streamText() (string, error) {
	if d.view != nil {
		if d.view.closed {
			return "", ErrClosed
		}
		b, err := io.ReadAll(d.view.br)
		return string(b), err
	}

	b, err := io.ReadAll(d.streamCodec.DecodingReader(d.stream))
	return string(b), err
}
