package rope

import "unicode/utf8"

// ByteOffset represents an absolute byte position in the rope.
type ByteOffset uint64

// TextSummary holds aggregated metrics for a text span.
// It is the summary type of the tree and forms a monoid under Add.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes ByteOffset

	// Runes is the number of Unicode scalar values.
	Runes uint64

	// UTF16Units is the UTF-16 code unit count.
	UTF16Units uint64

	// Flags indicate text properties for fast paths.
	Flags TextFlags
}

// TextFlags indicate text properties for optimization fast paths.
type TextFlags uint8

const (
	// FlagASCII indicates all characters are ASCII (< 128).
	FlagASCII TextFlags = 1 << iota

	// FlagBMP indicates all characters are in the Basic Multilingual Plane,
	// so every codepoint is a single UTF-16 unit.
	FlagBMP
)

// Add combines two summaries (monoid operation).
// This is called when concatenating rope sections.
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}

	return TextSummary{
		Bytes:      s.Bytes + other.Bytes,
		Runes:      s.Runes + other.Runes,
		UTF16Units: s.UTF16Units + other.UTF16Units,
		Flags:      s.Flags & other.Flags, // all sections must have the property
	}
}

// Zero returns the identity element for the summary monoid.
func (TextSummary) Zero() TextSummary {
	return TextSummary{Flags: FlagASCII | FlagBMP}
}

// IsZero returns true if this is the zero/identity summary.
func (s TextSummary) IsZero() bool {
	return s.Bytes == 0
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	sum := TextSummary{Flags: FlagASCII | FlagBMP}
	if len(s) == 0 {
		return sum
	}

	sum.Bytes = ByteOffset(len(s))
	for _, r := range s {
		sum.Runes++
		if r >= utf8.RuneSelf {
			sum.Flags &^= FlagASCII
		}
		if r > 0xFFFF {
			sum.UTF16Units += 2 // surrogate pair
			sum.Flags &^= FlagBMP
		} else {
			sum.UTF16Units++
		}
	}

	return sum
}

// runeByteOffset returns the byte offset of the n-th codepoint in s,
// or len(s) when s holds n codepoints or fewer.
func runeByteOffset(s string, ascii bool, n uint64) int {
	if ascii {
		if n >= uint64(len(s)) {
			return len(s)
		}
		return int(n)
	}

	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}
