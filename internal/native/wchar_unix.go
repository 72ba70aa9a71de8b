//go:build !windows

package native

import "github.com/dshills/unitext/internal/codec"

// WChar is one platform wide-character unit. On Unix-like systems wide
// strings hold UTF-32.
type WChar = uint32

// WideCharset names the wide form.
const WideCharset = "utf-32"

func encodeWide(s string, sizeHint int) []WChar {
	runes := codec.EncodeUTF32(s, sizeHint)
	out := make([]WChar, len(runes))
	for i, r := range runes {
		out[i] = WChar(r)
	}
	return out
}

func decodeWide(w []WChar) (string, error) {
	runes := make([]rune, len(w))
	for i, u := range w {
		runes[i] = rune(u) // values above MaxInt32 wrap negative and are rejected
	}
	return codec.DecodeUTF32(runes)
}

// WideSequenceLen returns how many wide units the sequence starting with
// lead occupies. UTF-32 units are always complete.
func WideSequenceLen(lead WChar) int {
	return 1
}
