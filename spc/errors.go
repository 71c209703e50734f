package spc

import "errors"

var (
	// ErrFormatMismatch means the data is not an SPC spectrum; a format
	// registry should try the next codec.
	ErrFormatMismatch = errors.New("not an SPC spectrum")
	// ErrTruncated means the file ended before the declared payload.
	ErrTruncated = errors.New("truncated SPC data")
	// ErrBadDimension covers dimensions other than 1 or 2 and lengths that
	// do not fit the header.
	ErrBadDimension = errors.New("invalid SPC dimensions")
	// ErrCorrupt means the bitmap points outside the declared channels.
	ErrCorrupt = errors.New("corrupt SPC payload")
	// ErrUnsupportedSpectrum is returned by Write for channel types it
	// cannot encode.
	ErrUnsupportedSpectrum = errors.New("unsupported spectrum type")
)

// Error records the stage of the codec that failed.
type Error struct {
	Op  string // "detect", "read" or "write"
	Err error
}

func (e *Error) Error() string {
	return "spc " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func opError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
