package codec

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Surrogate ranges.
const (
	surrHighStart = 0xD800
	surrLowStart  = 0xDC00
	surrEnd       = 0xE000
)

// IsHighSurrogate reports whether u opens a UTF-16 surrogate pair.
func IsHighSurrogate(u uint16) bool {
	return u >= surrHighStart && u < surrLowStart
}

// IsLowSurrogate reports whether u closes a UTF-16 surrogate pair.
func IsLowSurrogate(u uint16) bool {
	return u >= surrLowStart && u < surrEnd
}

// IsScalar reports whether r is a Unicode scalar value.
func IsScalar(r rune) bool {
	return r >= 0 && r <= utf8.MaxRune && (r < surrHighStart || r >= surrEnd)
}

// UTF8SequenceLen returns the length of the UTF-8 sequence introduced by
// lead, or 0 if lead cannot start a sequence.
func UTF8SequenceLen(lead byte) int {
	switch {
	case lead < 0x80:
		return 1
	case lead >= 0xC2 && lead <= 0xDF:
		return 2
	case lead >= 0xE0 && lead <= 0xEF:
		return 3
	case lead >= 0xF0 && lead <= 0xF4:
		return 4
	default:
		return 0
	}
}

// CheckUTF8Prefix validates b as the start of a single UTF-8 sequence.
// It reports whether b holds the whole sequence; a proper prefix that
// more bytes could complete returns false and a nil error.
func CheckUTF8Prefix(b []byte) (bool, error) {
	if len(b) == 0 {
		return false, nil
	}
	n := UTF8SequenceLen(b[0])
	if n == 0 {
		return false, &SequenceError{Encoding: "utf-8", Offset: 0, Reason: "invalid lead byte"}
	}
	if len(b) > n {
		return false, &SequenceError{Encoding: "utf-8", Offset: n, Reason: "sequence too long"}
	}
	for i := 1; i < len(b); i++ {
		lo, hi := byte(0x80), byte(0xBF)
		if i == 1 {
			lo, hi = secondByteRange(b[0])
		}
		if b[i] < lo || b[i] > hi {
			return false, &SequenceError{Encoding: "utf-8", Offset: i, Reason: "invalid continuation byte"}
		}
	}
	return len(b) == n, nil
}

// secondByteRange narrows the first continuation byte so that overlong
// forms, surrogates and values above U+10FFFF are refused early.
func secondByteRange(lead byte) (byte, byte) {
	switch lead {
	case 0xE0:
		return 0xA0, 0xBF
	case 0xED:
		return 0x80, 0x9F
	case 0xF0:
		return 0x90, 0xBF
	case 0xF4:
		return 0x80, 0x8F
	default:
		return 0x80, 0xBF
	}
}

// DecodeUTF8 validates b and returns it as a string.
func DecodeUTF8(b []byte) (string, error) {
	for i := 0; i < len(b); {
		if b[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			reason := "invalid byte"
			if n := UTF8SequenceLen(b[i]); n > len(b)-i {
				reason = "truncated sequence"
			}
			return "", &SequenceError{Encoding: "utf-8", Offset: i, Reason: reason}
		}
		i += size
	}
	return string(b), nil
}

// DecodeUTF16 decodes UTF-16 code units, rejecting unpaired surrogates.
func DecodeUTF16(units []uint16) (string, error) {
	var sb strings.Builder
	sb.Grow(len(units))

	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case IsHighSurrogate(u):
			if i+1 >= len(units) {
				return "", &SequenceError{Encoding: "utf-16", Offset: i, Reason: "truncated surrogate pair"}
			}
			if !IsLowSurrogate(units[i+1]) {
				return "", &SequenceError{Encoding: "utf-16", Offset: i, Reason: "unpaired high surrogate"}
			}
			sb.WriteRune(utf16.DecodeRune(rune(u), rune(units[i+1])))
			i++
		case IsLowSurrogate(u):
			return "", &SequenceError{Encoding: "utf-16", Offset: i, Reason: "unpaired low surrogate"}
		default:
			sb.WriteRune(rune(u))
		}
	}
	return sb.String(), nil
}

// ValidateUTF32 reports the first element of runes that is not a
// Unicode scalar value.
func ValidateUTF32(runes []rune) error {
	for i, r := range runes {
		if !IsScalar(r) {
			return &SequenceError{Encoding: "utf-32", Offset: i, Reason: "not a scalar value"}
		}
	}
	return nil
}

// DecodeUTF32 encodes codepoints as UTF-8, rejecting non-scalar values.
func DecodeUTF32(runes []rune) (string, error) {
	if err := ValidateUTF32(runes); err != nil {
		return "", err
	}
	return string(runes), nil
}

// EncodeUTF16 encodes well-formed UTF-8 as UTF-16 code units.
// sizeHint preallocates the result when the unit count is known.
func EncodeUTF16(s string, sizeHint int) []uint16 {
	out := make([]uint16, 0, max(sizeHint, 0))
	for _, r := range s {
		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			out = append(out, uint16(hi), uint16(lo))
			continue
		}
		out = append(out, uint16(r))
	}
	return out
}

// EncodeUTF32 encodes well-formed UTF-8 as codepoints.
// sizeHint preallocates the result when the codepoint count is known.
func EncodeUTF32(s string, sizeHint int) []rune {
	out := make([]rune, 0, max(sizeHint, 0))
	for _, r := range s {
		out = append(out, r)
	}
	return out
}
