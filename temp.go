package datasrc

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aigotowork/datasrc/internal/fsutil"
	"github.com/aigotowork/datasrc/internal/naming"
)

// TempSaved saves the content to a new temporary file and calls fn with
// the file open and positioned at its start. When fn returns, or panics,
// the file is closed and removed.
//
// fn may close or delete the file itself; a file that is already gone
// counts as cleaned up. If both fn and the cleanup fail, the returned
// error joins the two.
//
// Example:
//
//	err := d.TempSaved(func(f *os.File) error {
//		return exec.Command("pdftotext", f.Name(), "-").Run()
//	}, datasrc.WithTempSuffix(".pdf"))
func (d *Data) TempSaved(fn func(f *os.File) error, opts ...TempOption) (err error) {
	o := tempOptions{prefix: "tmp"}
	for _, opt := range opts {
		opt(&o)
	}

	f, err := fsutil.CreateTemp(o.dir, naming.SanitizeAffix(o.prefix), naming.SanitizeAffix(o.suffix))
	if err != nil {
		return err
	}
	name := f.Name()
	d.log().Debug("temp file created", Field{"path", name})

	defer func() {
		// fn is allowed to close the file first.
		_ = f.Close()

		removed, rerr := fsutil.RemoveIfExists(name)
		if rerr != nil {
			d.log().Warn("temp file cleanup failed", Field{"path", name}, Field{"error", rerr})
			err = errors.Join(err, rerr)
			return
		}
		d.log().Debug("temp file removed", Field{"path", name}, Field{"removed", removed})
	}()

	if _, err := d.SaveToWriter(f, o.save...); err != nil {
		return err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind temp file: %w", err)
	}

	return fn(f)
}
