package datasrc

import (
	"errors"
	"fmt"
	"io"

	"github.com/aigotowork/datasrc/internal/fsutil"
	"github.com/aigotowork/datasrc/internal/spool"
	"github.com/aigotowork/datasrc/internal/textenc"
)

// SaveTo writes the content to dst, which is either an io.Writer or a
// path string. Any other destination fails with ErrConfiguration.
func (d *Data) SaveTo(dst any, opts ...SaveOption) (SaveResult, error) {
	switch v := dst.(type) {
	case string:
		return d.SaveToPath(v, opts...)
	case io.Writer:
		if isNil(v) {
			break
		}
		return d.SaveToWriter(v, opts...)
	}
	return SaveResult{}, fmt.Errorf("%w: unsupported destination %T", ErrConfiguration, dst)
}

// SaveToWriter writes the content to w.
//
// Paths and binary streams are copied chunk by chunk without holding the
// whole content in memory, and streams with a declared encoding are
// transcoded on the fly. Only bytes and text origins are materialized.
// The caller keeps ownership of w.
func (d *Data) SaveToWriter(w io.Writer, opts ...SaveOption) (SaveResult, error) {
	o := saveOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	sw := spool.NewWriter(w, o.maxSize, d.chunkSize)

	var err error
	switch d.origin {
	case OriginPath:
		err = d.copyPath(sw)
	case OriginStream:
		var src io.Reader
		src, err = d.streamSource()
		if err == nil {
			err = sw.WriteFrom(src)
		}
	case OriginBytes, OriginText:
		var b []byte
		b, err = d.Bytes()
		if err == nil {
			_, err = sw.Write(b)
		}
	default:
		err = ErrBrokenState
	}

	res := SaveResult{Written: sw.Written(), SHA256: sw.Sum()}
	if errors.Is(err, spool.ErrLimitExceeded) {
		err = fmt.Errorf("%w: %w", ErrTooLarge, err)
	}
	if err != nil {
		return res, err
	}

	d.log().Debug("content saved",
		Field{"origin", d.origin},
		Field{"written", res.Written},
		Field{"sha256", res.SHA256},
	)
	return res, nil
}

// SaveToPath writes the content to the file at path, creating or
// truncating it. Writer and path destinations behave the same because
// this opens the file and hands it to SaveToWriter.
//
// With WithAtomic the content goes to a temporary file in the same
// directory that replaces path only once it is complete. Without it, other
// failures can leave a partly written file at path; a WithMaxSize failure
// removes it.
func (d *Data) SaveToPath(path string, opts ...SaveOption) (SaveResult, error) {
	o := saveOptions{perm: fsutil.DefaultPerm}
	for _, opt := range opts {
		opt(&o)
	}

	if o.atomic {
		var res SaveResult
		err := fsutil.AtomicWriteFrom(path, o.perm, func(w io.Writer) error {
			var err error
			res, err = d.SaveToWriter(w, opts...)
			return err
		})
		return res, err
	}

	f, err := fsutil.OpenDestination(path, o.perm)
	if err != nil {
		return SaveResult{}, err
	}

	res, err := d.SaveToWriter(f, opts...)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close destination: %w", cerr)
	}

	// A cut-off copy is not left behind as if it were the content.
	if errors.Is(err, ErrTooLarge) {
		if _, rerr := fsutil.RemoveIfExists(path); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}
	return res, err
}

// copyPath streams a path origin from the start of the file, independent
// of the incremental read position.
func (d *Data) copyPath(sw *spool.Writer) error {
	f := spool.NewLazyFile(d.path)
	defer f.Close()

	return sw.WriteFrom(f)
}

// streamSource returns the rest of a stream origin as bytes in the
// instance encoding.
func (d *Data) streamSource() (io.Reader, error) {
	if d.view != nil {
		if d.view.closed {
			return nil, ErrClosed
		}
		if d.view.text {
			return d.codec.EncodingReader(d.view.br), nil
		}
		return d.view.reader()
	}

	if d.streamCodec != nil {
		return textenc.Transcode(d.stream, d.streamCodec, d.codec), nil
	}
	return d.stream, nil
}
