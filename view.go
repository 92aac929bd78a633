package datasrc

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/aigotowork/datasrc/internal/spool"
	"github.com/aigotowork/datasrc/internal/textenc"
)

// view is the cursor behind incremental reads. Text views read UTF-8
// characters; binary views read raw bytes in the instance encoding and
// decode characters one at a time, so both read modes advance the same
// position.
type view struct {
	text   bool
	br     *bufio.Reader
	runes  *textenc.RuneDecoder
	file   *spool.LazyFile
	closed bool

	// enc encodes ReadBytes results of a text view. It is created on the
	// first ReadBytes call and kept, so a byte order mark appears at most
	// once and only when that call starts at the beginning.
	enc *textenc.TextEncoder

	// moved records that characters were handed out.
	moved bool
}

// ensureView returns the view, creating it on first use.
func (d *Data) ensureView() (*view, error) {
	if d.view != nil {
		if d.view.closed {
			return nil, ErrClosed
		}
		return d.view, nil
	}
	if d.streamClosed {
		return nil, ErrClosed
	}

	v := &view{}
	switch d.origin {
	case OriginBytes:
		v.br = bufio.NewReader(bytes.NewReader(d.raw))
	case OriginText:
		v.text = true
		v.br = bufio.NewReader(strings.NewReader(d.text))
	case OriginStream:
		if d.streamCodec != nil {
			v.text = true
			v.br = bufio.NewReader(d.streamCodec.DecodingReader(d.stream))
		} else {
			v.br = bufio.NewReader(d.stream)
		}
	case OriginPath:
		v.file = spool.NewLazyFile(d.path)
		v.br = bufio.NewReader(v.file)
	default:
		return nil, ErrBrokenState
	}

	if !v.text {
		v.runes = d.codec.NewRuneDecoder(v.br)
	}

	d.view = v
	d.log().Debug("view opened", Field{"origin", d.origin}, Field{"text", v.text})
	return v, nil
}

// encoder returns the text view's encoder, creating it on first use.
func (v *view) encoder(c *textenc.Codec) *textenc.TextEncoder {
	if v.enc == nil {
		if v.moved {
			v.enc = c.NewTailEncoder()
		} else {
			v.enc = c.NewTextEncoder()
		}
	}
	return v.enc
}

// readRune returns the next character from the view.
func (v *view) readRune() (rune, error) {
	if v.text {
		r, _, err := v.br.ReadRune()
		return r, err
	}
	return v.runes.ReadRune()
}

// remaining returns everything left in a binary view as raw bytes.
func (v *view) remaining() ([]byte, error) {
	head, err := v.runes.Unread()
	if err != nil {
		return nil, err
	}
	rest, err := io.ReadAll(v.br)
	if err != nil {
		return nil, err
	}
	if len(head) == 0 {
		return rest, nil
	}
	return append(head, rest...), nil
}

// reader returns the rest of a binary view as a stream, for saving.
func (v *view) reader() (io.Reader, error) {
	head, err := v.runes.Unread()
	if err != nil {
		return nil, err
	}
	if len(head) == 0 {
		return v.br, nil
	}
	return io.MultiReader(bytes.NewReader(head), v.br), nil
}

func (v *view) close() error {
	v.closed = true
	if v.file != nil {
		return v.file.Close()
	}
	return nil
}

func (d *Data) log() Logger {
	if d.logger == nil {
		return NewNoopLogger()
	}
	return d.logger
}
