package extract

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat reports a file extension outside the supported set.
// Callers treat it as a skip, not a failure.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// DecodeError reports source bytes the format parser rejected. Unlike an
// unsupported extension it is fatal for the invocation that hit it.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
