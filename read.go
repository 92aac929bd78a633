package datasrc

import (
	"errors"
	"io"
	"iter"
	"strings"
)

// Read returns up to size characters from the current position. A
// negative size reads everything that is left and never reports io.EOF.
// Otherwise Read returns "", io.EOF once the source is exhausted.
//
// Read, ReadBytes and ReadLine share one position.
func (d *Data) Read(size int) (string, error) {
	v, err := d.ensureView()
	if err != nil {
		return "", err
	}

	if size < 0 {
		if v.text {
			b, err := io.ReadAll(v.br)
			v.moved = v.moved || len(b) > 0
			return string(b), err
		}
		b, err := v.remaining()
		if err != nil {
			return "", err
		}
		v.moved = v.moved || len(b) > 0
		return d.codec.Decode(b)
	}

	if size == 0 {
		return "", nil
	}

	var sb strings.Builder
	for i := 0; i < size; i++ {
		r, err := v.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return sb.String(), err
		}
		sb.WriteRune(r)
	}

	if sb.Len() == 0 {
		return "", io.EOF
	}
	v.moved = true
	return sb.String(), nil
}

// ReadBytes returns content from the current position as bytes in the
// instance encoding. On binary origins size counts bytes; on text origins
// it counts characters, which are then encoded. A negative size reads
// everything that is left and never reports io.EOF. Otherwise ReadBytes
// returns nil, io.EOF once the source is exhausted.
func (d *Data) ReadBytes(size int) ([]byte, error) {
	v, err := d.ensureView()
	if err != nil {
		return nil, err
	}

	if v.text {
		// Taken before reading: the mark belongs to the start only.
		enc := v.encoder(d.codec)
		s, err := d.Read(size)
		if err != nil {
			return nil, err
		}
		return enc.Encode(s)
	}

	head, err := v.runes.Unread()
	if err != nil {
		return nil, err
	}

	if size < 0 {
		rest, err := io.ReadAll(v.br)
		if err != nil {
			return nil, err
		}
		return append(head, rest...), nil
	}

	if size == 0 {
		return []byte{}, nil
	}

	// Bytes handed back by the character decoder come first; they may
	// exceed size when a multi-character sequence was split.
	need := size - len(head)
	if need <= 0 {
		return head, nil
	}

	buf := make([]byte, need)
	n, err := io.ReadFull(v.br, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}

	out := append(head, buf[:n]...)
	if len(out) == 0 {
		return nil, io.EOF
	}
	return out, nil
}

// ReadLine returns the next line including its "\n" terminator. The last
// line is returned without a terminator if the source does not end with
// one. At the end of the source ReadLine returns "", io.EOF.
func (d *Data) ReadLine() (string, error) {
	v, err := d.ensureView()
	if err != nil {
		return "", err
	}

	if v.text || d.codec.IsUTF8() {
		line, err := v.br.ReadString('\n')
		v.moved = v.moved || line != ""
		if err == io.EOF {
			if line == "" {
				return "", io.EOF
			}
			return line, nil
		}
		return line, err
	}

	// A newline byte may be part of another character, e.g. in UTF-16.
	var sb strings.Builder
	for {
		r, err := v.readRune()
		if err == io.EOF {
			if sb.Len() == 0 {
				return "", io.EOF
			}
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}
		sb.WriteRune(r)
		if r == '\n' {
			return sb.String(), nil
		}
	}
}

// ReadLines returns all remaining lines, as repeated ReadLine calls would.
// An exhausted or empty source yields an empty slice.
func (d *Data) ReadLines() ([]string, error) {
	var lines []string
	for line, err := range d.Lines() {
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Lines iterates over the remaining lines. Iteration stops at the end of
// the source or after yielding the first error.
//
// Example:
//
//	for line, err := range d.Lines() {
//		if err != nil {
//			return err
//		}
//		fmt.Print(line)
//	}
func (d *Data) Lines() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for {
			line, err := d.ReadLine()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield("", err)
				return
			}
			if !yield(line, nil) {
				return
			}
		}
	}
}
