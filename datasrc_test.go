package datasrc

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigotowork/datasrc/internal/textenc"
)

func TestBytesAllOrigins(t *testing.T) {
	forEachSample(t, func(t *testing.T, d *Data, val string, want []byte) {
		got, err := d.Bytes()
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got))
	})
}

func TestTextAllOrigins(t *testing.T) {
	forEachSample(t, func(t *testing.T, d *Data, val string, want []byte) {
		got, err := d.Text()
		require.NoError(t, err)
		assert.Equal(t, val, got)
	})
}

func TestTextRoundTrip(t *testing.T) {
	for _, enc := range sampleEncodings {
		for _, val := range sampleValues {
			if !representable(val, enc) {
				continue
			}
			d, err := FromText(val, WithEncoding(enc))
			require.NoError(t, err)

			got, err := d.Bytes()
			require.NoError(t, err)
			assert.Equal(t, string(encode(t, val, enc)), string(got), "%s %q", enc, val)
		}
	}
}

func TestScenarios(t *testing.T) {
	t.Run("text as utf8 bytes", func(t *testing.T) {
		d := MustNew(nil, WithData("hello"), WithEncoding("utf8"))
		b, err := d.Bytes()
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), b)
	})

	t.Run("latin1 bytes as text", func(t *testing.T) {
		d := MustNew(nil, WithData([]byte("hello")), WithEncoding("latin1"))
		s, err := d.Text()
		require.NoError(t, err)
		assert.Equal(t, "hello", s)
	})

	t.Run("empty positional string", func(t *testing.T) {
		d := MustNew("")
		s, err := d.Text()
		require.NoError(t, err)
		assert.Equal(t, "", s)

		lines, err := d.ReadLines()
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}

func TestOriginSelection(t *testing.T) {
	path := writeTemp(t, []byte("x"))

	tests := []struct {
		name   string
		arg    any
		opts   []Option
		origin Origin
	}{
		{"positional string", "x", nil, OriginText},
		{"positional bytes", []byte("x"), nil, OriginBytes},
		{"positional nil bytes", []byte(nil), nil, OriginBytes},
		{"positional reader", strings.NewReader("x"), nil, OriginStream},
		{"positional file", openFile(t, path), nil, OriginStream},
		{"data string", nil, []Option{WithData("x")}, OriginText},
		{"data bytes", nil, []Option{WithData([]byte("x"))}, OriginBytes},
		{"file reader", nil, []Option{WithFile(bytes.NewBufferString("x"))}, OriginStream},
		{"file path", nil, []Option{WithFile(path)}, OriginPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.arg, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.origin, d.Origin())
			assert.Equal(t, "utf8", d.Encoding())
		})
	}
}

func TestNamedConstructors(t *testing.T) {
	path := writeTemp(t, []byte("from path"))

	d, err := FromBytes(nil)
	require.NoError(t, err)
	assert.Equal(t, OriginBytes, d.Origin())

	d, err = FromText("t", WithEncoding("latin1"))
	require.NoError(t, err)
	assert.Equal(t, OriginText, d.Origin())
	assert.Equal(t, "latin1", d.Encoding())

	d, err = FromReader(strings.NewReader("r"))
	require.NoError(t, err)
	assert.Equal(t, OriginStream, d.Origin())

	d, err = FromPath(path)
	require.NoError(t, err)
	assert.Equal(t, OriginPath, d.Origin())
	assert.Equal(t, path, d.Path())

	s, err := d.Text()
	require.NoError(t, err)
	assert.Equal(t, "from path", s)

	// A string given to FromPath is never treated as content
	_, err = FromPath("does not exist")
	require.NoError(t, err)
}

func TestConstructionErrors(t *testing.T) {
	var nilFile *os.File

	tests := []struct {
		name string
		arg  any
		opts []Option
	}{
		{"nothing", nil, nil},
		{"typed nil file", nilFile, nil},
		{"positional and data", "a", []Option{WithData("b")}},
		{"positional and file", "a", []Option{WithFile("b")}},
		{"data and file", nil, []Option{WithData("a"), WithFile("b")}},
		{"all three", "a", []Option{WithData("b"), WithFile("c")}},
		{"unsupported positional", 42, nil},
		{"unsupported data", nil, []Option{WithData(3.14)}},
		{"unsupported file", nil, []Option{WithFile(42)}},
		{"reader as data", nil, []Option{WithData(strings.NewReader("x"))}},
		{"unknown encoding", "a", []Option{WithEncoding("klingon-8")}},
		{"unknown declared encoding", NewTextReader(strings.NewReader("a"), "klingon-8"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.arg, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, d)
			assert.True(t, errors.Is(err, ErrConfiguration), "got %v", err)
		})
	}

	assert.Panics(t, func() { MustNew(nil) })
}

func TestUnknownEncodingWrapsCause(t *testing.T) {
	_, err := New("a", WithEncoding("klingon-8"))
	assert.True(t, errors.Is(err, textenc.ErrUnknownEncoding))
}

func TestZeroValueIsBroken(t *testing.T) {
	var d Data

	_, err := d.Bytes()
	assert.ErrorIs(t, err, ErrBrokenState)

	_, err = d.Text()
	assert.ErrorIs(t, err, ErrBrokenState)

	_, err = d.Read(1)
	assert.ErrorIs(t, err, ErrBrokenState)

	_, err = d.SaveToWriter(io.Discard)
	assert.ErrorIs(t, err, ErrBrokenState)

	assert.Equal(t, OriginNone, d.Origin())
	assert.Equal(t, "", d.Encoding())
	assert.NoError(t, d.Close())
}

// TestDeclaredEncodingReencoded pins down that Bytes re-encodes a text
// stream with the instance encoding, not the stream's own.
func TestDeclaredEncodingReencoded(t *testing.T) {
	stream := NewTextReader(bytes.NewReader([]byte{'a', 0xe4}), "latin1")

	d, err := New(stream, WithEncoding("utf8"))
	require.NoError(t, err)
	assert.Equal(t, "utf8", d.Encoding())

	b, err := d.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("aä"), b)
}

func TestDeclaredEncodingText(t *testing.T) {
	stream := NewTextReader(bytes.NewReader([]byte{'a', 0xe4}), "latin1")

	d, err := New(stream, WithEncoding("utf8"))
	require.NoError(t, err)

	s, err := d.Text()
	require.NoError(t, err)
	assert.Equal(t, "aä", s)
}

func TestDeclaredEncodingAdopted(t *testing.T) {
	d, err := New(NewTextReader(strings.NewReader("x"), "latin1"))
	require.NoError(t, err)
	assert.Equal(t, "latin1", d.Encoding())

	// An empty declaration is a binary stream
	d, err = New(NewTextReader(strings.NewReader("x"), ""))
	require.NoError(t, err)
	assert.Equal(t, "utf8", d.Encoding())
}

func TestPathBytesRereads(t *testing.T) {
	path := writeTemp(t, []byte("first"))
	d, err := FromPath(path)
	require.NoError(t, err)

	b, err := d.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "first", string(b))

	require.NoError(t, os.WriteFile(path, []byte("second"), 0644))

	b, err = d.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "second", string(b))
}

func TestPathNotFound(t *testing.T) {
	d, err := FromPath("/nonexistent/datasrc/missing.txt")
	require.NoError(t, err)

	_, err = d.Bytes()
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = d.Text()
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = d.Read(1)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStreamBytesConsumes(t *testing.T) {
	d, err := FromReader(strings.NewReader("once"))
	require.NoError(t, err)

	b, err := d.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "once", string(b))

	b, err = d.Bytes()
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestUnencodableText(t *testing.T) {
	d, err := FromText("snow ☃", WithEncoding("latin1"))
	require.NoError(t, err)

	_, err = d.Bytes()
	assert.Error(t, err)
}
