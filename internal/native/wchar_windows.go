//go:build windows

package native

import "github.com/dshills/unitext/internal/codec"

// WChar is one platform wide-character unit. On Windows wide strings
// hold UTF-16.
type WChar = uint16

// WideCharset names the wide form.
const WideCharset = "utf-16"

func encodeWide(s string, sizeHint int) []WChar {
	return codec.EncodeUTF16(s, sizeHint)
}

func decodeWide(w []WChar) (string, error) {
	return codec.DecodeUTF16(w)
}

// WideSequenceLen returns how many wide units the sequence starting with
// lead occupies.
func WideSequenceLen(lead WChar) int {
	if codec.IsHighSurrogate(lead) {
		return 2
	}
	return 1
}
