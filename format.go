package datasrc

import (
	"fmt"
	"unicode/utf8"
)

// previewLen is how many bytes or characters String shows.
const previewLen = 20

// String renders the origin, a short preview and the encoding, e.g.
//
//	Data(data="hello", encoding="utf8")
//	Data(data="0123456789abcdefghij"..., encoding="utf8")
//	Data(file="/etc/hosts", encoding="latin1")
//
// Streams show their file name when they have one and their type
// otherwise. String never reads from a stream or a path.
func (d *Data) String() string {
	switch d.origin {
	case OriginBytes:
		return fmt.Sprintf("Data(data=%s, encoding=%q)", headBytes(d.raw), d.Encoding())
	case OriginText:
		return fmt.Sprintf("Data(data=%s, encoding=%q)", headText(d.text), d.Encoding())
	case OriginStream:
		return fmt.Sprintf("Data(file=%s, encoding=%q)", streamName(d.stream), d.Encoding())
	case OriginPath:
		return fmt.Sprintf("Data(file=%q, encoding=%q)", d.path, d.Encoding())
	}
	return "Data(<no origin>)"
}

// GoString implements fmt.GoStringer so %#v shows the same preview.
func (d *Data) GoString() string {
	return d.String()
}

func headBytes(b []byte) string {
	if len(b) <= previewLen {
		return fmt.Sprintf("%q", b)
	}
	return fmt.Sprintf("%q...", b[:previewLen])
}

func headText(s string) string {
	if utf8.RuneCountInString(s) <= previewLen {
		return fmt.Sprintf("%q", s)
	}
	runes := []rune(s)
	return fmt.Sprintf("%q...", string(runes[:previewLen]))
}

func streamName(r any) string {
	if n, ok := r.(interface{ Name() string }); ok {
		return fmt.Sprintf("%q", n.Name())
	}
	return fmt.Sprintf("<%T>", r)
}
