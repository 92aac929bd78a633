/*
Package datasrc represents "some data, from some source".

A Data is built from exactly one of four origins: raw bytes, decoded
text, an open io.Reader, or a file system path. Whatever the origin,
callers read it the same way, either in full or incrementally, and save
it to a writer or a path.

Quick Start:

	// Accept anything data-like
	d, err := datasrc.New(input, datasrc.WithEncoding("latin1"))
	if err != nil {
		return err
	}
	defer d.Close()

	// Read it whole
	text, err := d.Text()

	// Or persist it without buffering large files in memory
	res, err := d.SaveToPath("/tmp/copy.bin")

Origin selection:

New takes one positional value plus the optional WithData and WithFile
options; exactly one of the three must be non-nil. The positional value
is a file when it implements io.Reader and data otherwise. Data is text
when it is a string and raw bytes when it is a []byte. A file is a
stream when it implements io.Reader and a path when it is a string.
FromBytes, FromText, FromReader and FromPath skip the guessing.

Encoding:

Every conversion between text and bytes uses one codec fixed at
construction: WithEncoding if given, else the encoding declared by an
EncodedReader, else UTF-8.

Concurrency:

A Data is not safe for concurrent incremental reads: Read, ReadBytes and
ReadLine share one cursor. Callers must synchronize externally.
*/
package datasrc

import (
	"fmt"
	"io"
	"reflect"

	"github.com/aigotowork/datasrc/internal/spool"
	"github.com/aigotowork/datasrc/internal/textenc"
)

// Data is one unit of content from exactly one origin.
//
// The zero value has no origin; every content operation on it fails with
// ErrBrokenState. Construct instances with New or one of the From
// functions.
type Data struct {
	origin Origin

	raw    []byte
	text   string
	stream io.Reader
	path   string

	// codec is the instance encoding; streamCodec is set only for an
	// EncodedReader origin and decodes the stream's own bytes.
	codec       *textenc.Codec
	streamCodec *textenc.Codec

	// view is the lazily opened cursor shared by all incremental reads.
	view *view

	// streamClosed is set once Close has closed a caller stream.
	streamClosed bool

	logger    Logger
	chunkSize int
}

// New builds a Data from arg, WithData or WithFile, whichever one is
// non-nil. It fails with ErrConfiguration when none or more than one is
// supplied, when a value has an unsupported type, or when the encoding
// is unknown.
//
// Example:
//
//	d, err := datasrc.New("hello")                 // text
//	d, err := datasrc.New([]byte("hello"))         // bytes
//	d, err := datasrc.New(os.Stdin)                // stream
//	d, err := datasrc.New(nil, datasrc.WithFile("in.txt")) // path
func New(arg any, opts ...Option) (*Data, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	supplied := 0
	for _, v := range []any{arg, o.data, o.file} {
		if !isNil(v) {
			supplied++
		}
	}
	if supplied != 1 {
		return nil, fmt.Errorf("%w: must supply exactly one of data or file", ErrConfiguration)
	}

	data, file := o.data, o.file
	if !isNil(arg) {
		if _, ok := arg.(io.Reader); ok {
			file = arg
		} else {
			data = arg
		}
	}

	d := &Data{
		logger:    o.logger,
		chunkSize: o.chunkSize,
	}
	if d.logger == nil {
		d.logger = NewNoopLogger()
	}
	if d.chunkSize <= 0 {
		d.chunkSize = spool.DefaultChunkSize
	}

	declared := ""
	if !isNil(data) {
		switch v := data.(type) {
		case string:
			d.origin = OriginText
			d.text = v
		case []byte:
			d.origin = OriginBytes
			d.raw = v
		default:
			return nil, fmt.Errorf("%w: unsupported data type %T", ErrConfiguration, data)
		}
	} else {
		switch v := file.(type) {
		case io.Reader:
			d.origin = OriginStream
			d.stream = v
			if er, ok := v.(EncodedReader); ok {
				declared = er.Encoding()
			}
		case string:
			d.origin = OriginPath
			d.path = v
		default:
			return nil, fmt.Errorf("%w: unsupported file type %T", ErrConfiguration, file)
		}
	}

	name := o.encoding
	if name == "" {
		name = declared
	}
	if name == "" {
		name = textenc.DefaultName
	}

	codec, err := textenc.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	d.codec = codec

	if declared != "" {
		streamCodec, err := textenc.Lookup(declared)
		if err != nil {
			return nil, fmt.Errorf("%w: stream declares %w", ErrConfiguration, err)
		}
		d.streamCodec = streamCodec
	}

	return d, nil
}

// MustNew is like New but panics on error.
// Useful for literals in tests and initialization code.
func MustNew(arg any, opts ...Option) *Data {
	d, err := New(arg, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// FromBytes builds a Data whose origin is b. A nil slice is empty content.
func FromBytes(b []byte, opts ...Option) (*Data, error) {
	if b == nil {
		b = []byte{}
	}
	return New(nil, append(opts[:len(opts):len(opts)], WithData(b))...)
}

// FromText builds a Data whose origin is the decoded text s.
func FromText(s string, opts ...Option) (*Data, error) {
	return New(nil, append(opts[:len(opts):len(opts)], WithData(s))...)
}

// FromReader builds a Data reading from r. If r is an EncodedReader its
// declared encoding applies unless WithEncoding overrides it.
func FromReader(r io.Reader, opts ...Option) (*Data, error) {
	return New(nil, append(opts[:len(opts):len(opts)], WithFile(r))...)
}

// FromPath builds a Data backed by the file at path. The file is not
// touched until content is requested.
func FromPath(path string, opts ...Option) (*Data, error) {
	return New(nil, append(opts[:len(opts):len(opts)], WithFile(path))...)
}

// Origin returns which source the Data was built from.
func (d *Data) Origin() Origin {
	return d.origin
}

// Encoding returns the name of the instance encoding.
func (d *Data) Encoding() string {
	if d.codec == nil {
		return ""
	}
	return d.codec.Name()
}

// Path returns the path for a path origin and "" otherwise.
func (d *Data) Path() string {
	return d.path
}

// isText reports whether the origin natively holds characters.
func (d *Data) isText() bool {
	return d.origin == OriginText || d.streamCodec != nil
}

// isNil treats typed nil pointers, maps, channels and funcs as absent. A
// nil []byte is still data: empty content.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}
