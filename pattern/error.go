package pattern

import (
	"errors"
	"fmt"
)

// ErrInvalidPattern is wrapped by every error returned from Parse.
var ErrInvalidPattern = errors.New("invalid pattern")

// Error describes a malformed pattern.
type Error struct {
	Pattern string
	Offset  int // byte offset where the problem was detected
	Msg     string
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("invalid pattern %q at offset %d: %s", e.Pattern, e.Offset, e.Msg)
}

// Unwrap returns ErrInvalidPattern
func (e *Error) Unwrap() error {
	return ErrInvalidPattern
}
