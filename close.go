package datasrc

import (
	"errors"
	"io"
)

// Close releases what the Data holds open: the file it opened for
// incremental reads of a path, and a caller-supplied stream that
// implements io.Closer. It is safe to call at any time and more than once.
// When nothing is held, Close does nothing and reads carry on as before.
//
// After Close has released something, incremental reads fail with
// ErrClosed. Bytes, Text and saves of a path origin keep working since
// they open their own handle.
func (d *Data) Close() error {
	var err error

	if d.view != nil && !d.view.closed {
		err = d.view.close()
	}

	if d.origin == OriginStream && !d.streamClosed {
		if c, ok := d.stream.(io.Closer); ok {
			d.streamClosed = true
			err = errors.Join(err, c.Close())
		}
	}

	return err
}
