// Package textenc resolves codec names and converts between text and bytes.
package textenc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultName is the codec used when nothing else is specified.
const DefaultName = "utf8"

// ErrUnknownEncoding is returned by Lookup for names no codec answers to.
var ErrUnknownEncoding = errors.New("unknown encoding")

// aliases covers the short names people type; everything else goes
// through the IANA and WHATWG registries.
var aliases = map[string]encoding.Encoding{
	"utf8":         unicode.UTF8,
	"utf-8":        unicode.UTF8,
	"u8":           unicode.UTF8,
	"latin1":       charmap.ISO8859_1,
	"latin-1":      charmap.ISO8859_1,
	"l1":           charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso8859-1":    charmap.ISO8859_1,
	"cp819":        charmap.ISO8859_1,
	"cp1252":       charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"utf16":        unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf-16":       unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf-16-le":    unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16le":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16-be":    unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf-16be":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
}

// Codec is a resolved encoding together with the name it was asked for.
type Codec struct {
	name string
	enc  encoding.Encoding
}

// Lookup resolves name to a Codec. Names are case-insensitive and
// underscores are treated as hyphens, so "UTF_8" and "utf-8" are equal.
func Lookup(name string) (*Codec, error) {
	key := normalize(name)
	if key == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownEncoding)
	}

	if enc, ok := aliases[key]; ok {
		return &Codec{name: name, enc: enc}, nil
	}

	// The registries spell some names with underscores (Shift_JIS), so
	// try the name as given before the normalized form.
	for _, k := range []string{strings.TrimSpace(name), key} {
		if enc, err := ianaindex.IANA.Encoding(k); err == nil && enc != nil {
			return &Codec{name: name, enc: enc}, nil
		}
		if enc, err := htmlindex.Get(k); err == nil && enc != nil {
			return &Codec{name: name, enc: enc}, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

// MustLookup is like Lookup but panics on error.
func MustLookup(name string) *Codec {
	c, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return c
}

func normalize(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(key, "_", "-")
}

// Name returns the name the codec was looked up with.
func (c *Codec) Name() string {
	return c.name
}

// IsUTF8 reports whether the codec is UTF-8, the native string encoding.
func (c *Codec) IsUTF8() bool {
	return c.enc == unicode.UTF8
}

// Encode converts a whole text to bytes. Characters the codec cannot
// represent produce an error. Empty text encodes to no bytes, without a
// byte order mark.
func (c *Codec) Encode(s string) ([]byte, error) {
	return c.NewTextEncoder().Encode(s)
}

// Decode converts bytes to text.
func (c *Codec) Decode(b []byte) (string, error) {
	if c.IsUTF8() {
		return string(b), nil
	}

	out, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode as %s: %w", c.name, err)
	}
	return string(out), nil
}

// DecodingReader returns a reader yielding UTF-8 text decoded from r.
func (c *Codec) DecodingReader(r io.Reader) io.Reader {
	if c.IsUTF8() {
		return r
	}
	return transform.NewReader(r, c.enc.NewDecoder())
}

// EncodingReader returns a reader yielding r's UTF-8 text encoded with c.
func (c *Codec) EncodingReader(r io.Reader) io.Reader {
	if c.IsUTF8() {
		return r
	}
	return transform.NewReader(r, &deferredStart{t: c.enc.NewEncoder()})
}

// Transcode streams r, encoded with from, as bytes encoded with to.
// Nothing is buffered beyond the transformer's internal window.
func Transcode(r io.Reader, from, to *Codec) io.Reader {
	return to.EncodingReader(from.DecodingReader(r))
}
