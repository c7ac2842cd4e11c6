package extractor

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for documents whose extension has no
// extractor. Callers skip such documents rather than failing.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// DecodeError reports bytes that could not be decoded as text.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s document: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ParseError reports a structured or packaged document that could not be
// read or converted.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s document: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// recoveredError converts a recovered panic value into an error.
func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}

	return fmt.Errorf("panic: %v", r)
}
