package textenc

import (
	"bufio"
	"io"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// RuneDecoder decodes one character at a time from a byte stream, so a
// caller can interleave character reads with raw byte reads on the same
// underlying reader without losing its place.
type RuneDecoder struct {
	codec   *Codec
	src     *bufio.Reader
	dec     transform.Transformer
	raw     []byte
	pending []rune
	dst     [4 * utf8.UTFMax]byte

	// tail re-encodes pending characters mid-stream; created on demand.
	tail *TextEncoder
}

// NewRuneDecoder returns a decoder reading from src with the codec c.
func (c *Codec) NewRuneDecoder(src *bufio.Reader) *RuneDecoder {
	return &RuneDecoder{
		codec: c,
		src:   src,
		dec:   c.enc.NewDecoder(),
	}
}

// ReadRune returns the next decoded character, or io.EOF.
func (d *RuneDecoder) ReadRune() (rune, error) {
	if len(d.pending) > 0 {
		r := d.pending[0]
		d.pending = d.pending[1:]
		return r, nil
	}

	if d.codec.IsUTF8() && len(d.raw) == 0 {
		r, _, err := d.src.ReadRune()
		return r, err
	}

	for {
		atEOF := false
		b, err := d.src.ReadByte()
		switch {
		case err == io.EOF:
			if len(d.raw) == 0 {
				return 0, io.EOF
			}
			atEOF = true
		case err != nil:
			return 0, err
		default:
			d.raw = append(d.raw, b)
		}

		nDst, nSrc, terr := d.dec.Transform(d.dst[:], d.raw, atEOF)
		d.raw = d.raw[:copy(d.raw, d.raw[nSrc:])]

		if nDst > 0 {
			d.queue(d.dst[:nDst])
			return d.ReadRune()
		}

		if atEOF {
			// Undecodable tail with nothing to show for it.
			d.raw = d.raw[:0]
			return 0, io.EOF
		}

		if terr != nil && terr != transform.ErrShortSrc {
			return 0, terr
		}
	}
}

func (d *RuneDecoder) queue(text []byte) {
	for len(text) > 0 {
		r, size := utf8.DecodeRune(text)
		d.pending = append(d.pending, r)
		text = text[size:]
	}
}

// Unread hands back everything the decoder has consumed from the source
// but not yet returned, encoded with the codec again, and clears it. The
// re-encoded characters continue the stream, so no byte order mark is
// added in front of them.
func (d *RuneDecoder) Unread() ([]byte, error) {
	if len(d.pending) == 0 && len(d.raw) == 0 {
		return nil, nil
	}

	var out []byte
	if len(d.pending) > 0 {
		if d.tail == nil {
			d.tail = d.codec.NewTailEncoder()
		}
		b, err := d.tail.Encode(string(d.pending))
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
		d.pending = d.pending[:0]
	}

	out = append(out, d.raw...)
	d.raw = d.raw[:0]
	return out, nil
}
