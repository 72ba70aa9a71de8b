package unitext

import (
	"errors"
	"fmt"

	"github.com/dshills/unitext/internal/codec"
)

// Errors returned by Text and Cursor operations.
var (
	ErrOutOfRange         = errors.New("index out of bounds")
	ErrEmptyPop           = errors.New("cannot pop from an empty string")
	ErrIncompleteSequence = errors.New("incomplete unit sequence pending")
	ErrDetached           = errors.New("cursor is not attached to a text")

	// ErrInvalidSequence is returned for input that is not a well-formed
	// sequence of Unicode scalar values in its encoding.
	ErrInvalidSequence = codec.ErrInvalidSequence

	// ErrTruncatedSequence is returned by a NarrowPrefixDecoder while its
	// input ends inside a character that more bytes could complete.
	ErrTruncatedSequence = codec.ErrTruncated

	ErrUnsupportedCharset = codec.ErrUnsupportedCharset
	ErrUnrepresentable    = codec.ErrUnrepresentable
)

// OpError records the operation and codepoint index that failed.
type OpError struct {
	Op    string // "At", "Insert", "PopBack", "Push", "FromUTF16", ...
	Index int    // Codepoint index, or -1 when the operation has none
	Err   error
}

func (e *OpError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("unitext: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("unitext: %s %d: %v", e.Op, e.Index, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opError(op string, index int, err error) error {
	return &OpError{Op: op, Index: index, Err: err}
}

// invalid makes sure a decode failure matches ErrInvalidSequence.
func invalid(err error) error {
	if errors.Is(err, ErrInvalidSequence) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidSequence, err)
}
