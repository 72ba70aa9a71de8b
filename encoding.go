package unitext

import (
	"strings"

	"github.com/dshills/unitext/internal/native"
)

// WChar is one platform wide-character unit: uint32 holding UTF-32 on
// Unix-like systems, uint16 holding UTF-16 on Windows.
type WChar = native.WChar

// Encoding identifies a source or target form of a Text.
type Encoding uint8

const (
	Narrow Encoding = iota // Host narrow charset, byte units
	Wide                   // Platform wide form, WChar units
	UTF8                   // byte units
	UTF16                  // uint16 units
	UTF32                  // rune units
)

// String returns the canonical name of the encoding.
func (e Encoding) String() string {
	switch e {
	case Narrow:
		return "narrow"
	case Wide:
		return "wide"
	case UTF8:
		return "utf-8"
	case UTF16:
		return "utf-16"
	case UTF32:
		return "utf-32"
	default:
		return "unknown"
	}
}

// ParseEncoding parses an encoding name. Both "utf-8" and "utf8" styles
// are accepted.
func ParseEncoding(s string) (Encoding, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "narrow":
		return Narrow, true
	case "wide":
		return Wide, true
	case "utf-8", "utf8":
		return UTF8, true
	case "utf-16", "utf16":
		return UTF16, true
	case "utf-32", "utf32":
		return UTF32, true
	default:
		return Narrow, false
	}
}
