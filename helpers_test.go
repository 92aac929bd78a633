package datasrc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aigotowork/datasrc/internal/textenc"
)

var (
	sampleValues = []string{
		"This is sample data as unicode. äüöå \\",
		"",
		"\x00",
		"multi\nline\ninput",
		"日本語\nテキスト",
	}

	// utf16 writes a byte order mark and shift_jis mixes one and two byte
	// characters.
	sampleEncodings = []string{"utf8", "latin1", "utf16", "shift_jis"}

	// Every way a caller can hand over the same content.
	originKinds = []string{
		"file",
		"filename",
		"unicode",
		"string",
		"smart_file",
		"smart_unicode",
		"smart_string",
		"text_stream",
	}
)

// encode returns val in the named encoding.
func encode(t *testing.T, val, enc string) []byte {
	t.Helper()
	b, err := textenc.MustLookup(enc).Encode(val)
	require.NoError(t, err)
	return b
}

// representable reports whether enc can hold val; latin1 has no Japanese
// and shift_jis no umlauts.
func representable(val, enc string) bool {
	_, err := textenc.MustLookup(enc).Encode(val)
	return err == nil
}

// writeTemp stores content in a fresh file and returns its path.
func writeTemp(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "value.bin")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

// openFile opens path for reading and closes it when the test ends.
func openFile(t *testing.T, path string) *os.File {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

// newSample builds a Data of the given kind holding val in enc.
func newSample(t *testing.T, kind, val, enc string) *Data {
	t.Helper()

	raw := encode(t, val, enc)
	path := writeTemp(t, raw)

	var (
		d   *Data
		err error
	)
	switch kind {
	case "file":
		d, err = New(nil, WithFile(openFile(t, path)), WithEncoding(enc))
	case "filename":
		d, err = New(nil, WithFile(path), WithEncoding(enc))
	case "unicode":
		d, err = New(nil, WithData(val), WithEncoding(enc))
	case "string":
		d, err = New(nil, WithData(raw), WithEncoding(enc))
	case "smart_file":
		d, err = New(openFile(t, path), WithEncoding(enc))
	case "smart_unicode":
		d, err = New(val, WithEncoding(enc))
	case "smart_string":
		d, err = New(raw, WithEncoding(enc))
	case "text_stream":
		// The stream declares its encoding, nothing else does.
		d, err = New(NewTextReader(openFile(t, path), enc))
	default:
		t.Fatalf("unknown origin kind %q", kind)
	}
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

// forEachSample runs fn for every origin kind, encoding and value.
func forEachSample(t *testing.T, fn func(t *testing.T, d *Data, val string, want []byte)) {
	for _, kind := range originKinds {
		for _, enc := range sampleEncodings {
			for i, val := range sampleValues {
				if !representable(val, enc) {
					continue
				}
				t.Run(fmt.Sprintf("%s/%s/%d", kind, enc, i), func(t *testing.T) {
					fn(t, newSample(t, kind, val, enc), val, encode(t, val, enc))
				})
			}
		}
	}
}

// splitLines is the reference line split: terminators kept, no trailing
// empty element.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.SplitAfter(s, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
