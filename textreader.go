package datasrc

import "io"

// TextReader wraps a reader whose bytes are text in a known encoding. It
// implements EncodedReader, so a Data built from it decodes with that
// encoding.
//
// Example:
//
//	f, _ := os.Open("legacy.txt")
//	d, err := datasrc.New(datasrc.NewTextReader(f, "latin1"))
type TextReader struct {
	r        io.Reader
	encoding string
}

// NewTextReader declares that r yields text encoded with encoding.
func NewTextReader(r io.Reader, encoding string) *TextReader {
	return &TextReader{r: r, encoding: encoding}
}

// Read implements io.Reader.
func (t *TextReader) Read(p []byte) (int, error) {
	return t.r.Read(p)
}

// Encoding implements EncodedReader.
func (t *TextReader) Encoding() string {
	return t.encoding
}

// Close closes the wrapped reader when it is an io.Closer.
func (t *TextReader) Close() error {
	if c, ok := t.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
