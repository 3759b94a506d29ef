package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedVersion = errors.New("protocol: unsupported version")
	ErrMalformed          = errors.New("protocol: malformed message")
	ErrLengthMismatch     = errors.New("protocol: total length mismatch")
	ErrTypeMismatch       = errors.New("protocol: type mismatch")
	ErrLimitExceeded      = errors.New("protocol: limit exceeded")
	ErrInvalidValue       = errors.New("protocol: invalid value")
)

// LimitError reports which wire bound was violated and where.
type LimitError struct {
	Path   string // field path, e.g. "trades[1].price"
	Bound  string // bound name, e.g. "maxStringBytes"
	Limit  int
	Actual int
}

func (e LimitError) Error() string {
	return fmt.Sprintf("protocol: limit exceeded at %s: %s is %d, max %d",
		e.Path, e.Bound, e.Actual, e.Limit)
}

func (e LimitError) Unwrap() error { return ErrLimitExceeded }
