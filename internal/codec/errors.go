package codec

import (
	"errors"
	"fmt"
)

// Errors returned by codec operations.
var (
	// ErrInvalidSequence indicates input that does not denote a sequence
	// of Unicode scalar values in its encoding.
	ErrInvalidSequence = errors.New("invalid unit sequence")

	// ErrTruncated indicates input that ends inside a multi-byte sequence
	// which further units could still complete.
	ErrTruncated = errors.New("truncated unit sequence")

	// ErrUnsupportedCharset indicates a charset name that cannot be resolved.
	ErrUnsupportedCharset = errors.New("unsupported charset")

	// ErrUnrepresentable indicates text that the target charset cannot encode.
	ErrUnrepresentable = errors.New("text not representable in charset")
)

// SequenceError reports where a unit sequence stopped being well formed.
type SequenceError struct {
	Encoding string // "utf-8", "utf-16", "utf-32" or a charset name
	Offset   int    // Unit offset of the offending unit
	Reason   string
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("%s: %s at unit %d", e.Encoding, e.Reason, e.Offset)
}

// Unwrap lets errors.Is match ErrInvalidSequence.
func (e *SequenceError) Unwrap() error {
	return ErrInvalidSequence
}

// CharsetError wraps a failure of a charset operation.
type CharsetError struct {
	Charset string
	Op      string // "lookup", "decode" or "encode"
	Err     error
}

func (e *CharsetError) Error() string {
	return fmt.Sprintf("charset %s: %s: %v", e.Charset, e.Op, e.Err)
}

func (e *CharsetError) Unwrap() error {
	return e.Err
}
