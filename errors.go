package datasrc

import "errors"

// Common errors returned by Data operations.
var (
	// ErrConfiguration is returned when a Data is constructed with zero or
	// more than one origin, with an unsupported value type, or with an
	// unknown encoding. It is also returned for unsupported save
	// destinations.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrBrokenState is returned when content is requested from a Data
	// that has no origin, such as the zero value. It signals a programming
	// error, not a recoverable condition.
	ErrBrokenState = errors.New("broken data: no origin populated")

	// ErrTooLarge is returned when a save would write more than the
	// configured maximum size.
	ErrTooLarge = errors.New("content exceeds MaxSize limit")

	// ErrClosed is returned by incremental reads after Close.
	ErrClosed = errors.New("data closed")
)
