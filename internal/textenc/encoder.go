package textenc

import (
	"fmt"

	"golang.org/x/text/transform"
)

// TextEncoder encodes successive pieces of one text with a single
// transformer, so encoder state such as a pending byte order mark carries
// over from piece to piece instead of restarting each time.
//
// Empty pieces encode to nothing and leave the state untouched.
type TextEncoder struct {
	name string
	t    transform.Transformer
}

// NewTextEncoder returns an encoder positioned at the start of a text. If
// the codec writes a byte order mark, it precedes the first non-empty
// piece only.
func (c *Codec) NewTextEncoder() *TextEncoder {
	e := &TextEncoder{name: c.name}
	if !c.IsUTF8() {
		e.t = c.enc.NewEncoder()
	}
	return e
}

// NewTailEncoder returns an encoder for text that continues a stream whose
// start has already been written, so it never writes a byte order mark.
func (c *Codec) NewTailEncoder() *TextEncoder {
	e := c.NewTextEncoder()
	if e.t != nil {
		// Push the transformer past its start-of-text output.
		var scratch [16]byte
		_, _, _ = e.t.Transform(scratch[:], []byte{'a'}, true)
	}
	return e
}

// Encode converts the next piece of text to bytes. Characters the codec
// cannot represent produce an error.
func (e *TextEncoder) Encode(s string) ([]byte, error) {
	if e.t == nil {
		return []byte(s), nil
	}
	if s == "" {
		return []byte{}, nil
	}

	src := []byte(s)
	dst := make([]byte, 2*len(src)+8)
	out := make([]byte, 0, len(dst))
	for {
		nDst, nSrc, err := e.t.Transform(dst, src, true)
		out = append(out, dst[:nDst]...)
		src = src[nSrc:]

		if err == transform.ErrShortDst {
			if nDst == 0 && nSrc == 0 {
				dst = make([]byte, 2*len(dst))
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("encode as %s: %w", e.name, err)
		}
		return out, nil
	}
}

// deferredStart holds back a transformer until the first source byte, so
// an empty stream encodes to nothing rather than to a lone byte order mark.
type deferredStart struct {
	t       transform.Transformer
	started bool
}

func (d *deferredStart) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	if !d.started {
		if len(src) == 0 {
			return 0, 0, nil
		}
		d.started = true
	}
	return d.t.Transform(dst, src, atEOF)
}

func (d *deferredStart) Reset() {
	d.started = false
	d.t.Reset()
}
