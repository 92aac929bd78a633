package datasrc

import "os"

// Option is a function that configures a Data at construction.
type Option func(*options)

// options holds construction settings.
type options struct {
	data      any
	file      any
	encoding  string
	logger    Logger
	chunkSize int
}

// WithData supplies the origin explicitly as content: a string is text,
// a []byte is raw bytes.
//
// Example:
//
//	d, err := datasrc.New(nil, datasrc.WithData([]byte{0xe4}), datasrc.WithEncoding("latin1"))
func WithData(v any) Option {
	return func(o *options) {
		o.data = v
	}
}

// WithFile supplies the origin explicitly as a file: an io.Reader is an
// open stream, a string is a path.
//
// Example:
//
//	d, err := datasrc.New(nil, datasrc.WithFile("/etc/hosts"))
func WithFile(v any) Option {
	return func(o *options) {
		o.file = v
	}
}

// WithEncoding sets the codec used for every text/bytes conversion. It
// overrides an encoding declared by an EncodedReader. Defaults to "utf8".
func WithEncoding(name string) Option {
	return func(o *options) {
		o.encoding = name
	}
}

// WithLogger sets a custom logger. Data logs nothing by default.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithChunkSize sets the buffer size used when copying streams and files
// during saves. Non-positive values keep the default of 64 KiB.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// SaveOption is a function that configures a save.
type SaveOption func(*saveOptions)

// saveOptions holds options for SaveTo and friends.
type saveOptions struct {
	atomic  bool
	maxSize int64
	perm    os.FileMode
}

// WithAtomic makes SaveToPath write to a temporary file next to the
// destination and rename it into place once complete. It has no effect on
// writer destinations.
func WithAtomic() SaveOption {
	return func(o *saveOptions) {
		o.atomic = true
	}
}

// WithMaxSize fails the save with ErrTooLarge once more than n bytes would
// be written. Zero means unlimited.
//
// Bytes up to the limit have already reached a writer destination by then.
// SaveToPath does not keep them: the partial file is removed, and with
// WithAtomic it never replaces the destination.
func WithMaxSize(n int64) SaveOption {
	return func(o *saveOptions) {
		o.maxSize = n
	}
}

// WithPerm sets the mode for files created by SaveToPath. Defaults to
// 0666 before umask.
func WithPerm(perm os.FileMode) SaveOption {
	return func(o *saveOptions) {
		o.perm = perm
	}
}

// TempOption is a function that configures TempSaved.
type TempOption func(*tempOptions)

// tempOptions holds options for TempSaved.
type tempOptions struct {
	dir    string
	prefix string
	suffix string
	save   []SaveOption
}

// WithTempDir sets the directory the temporary file is created in.
// Defaults to os.TempDir().
func WithTempDir(dir string) TempOption {
	return func(o *tempOptions) {
		o.dir = dir
	}
}

// WithTempPrefix sets the file name prefix. Defaults to "tmp".
func WithTempPrefix(prefix string) TempOption {
	return func(o *tempOptions) {
		o.prefix = prefix
	}
}

// WithTempSuffix sets the file name suffix, e.g. ".pdf".
func WithTempSuffix(suffix string) TempOption {
	return func(o *tempOptions) {
		o.suffix = suffix
	}
}

// WithTempSaveOptions passes save options through to the save into the
// temporary file, e.g. WithMaxSize.
func WithTempSaveOptions(opts ...SaveOption) TempOption {
	return func(o *tempOptions) {
		o.save = append(o.save, opts...)
	}
}
