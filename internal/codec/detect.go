package codec

import (
	"bytes"
	"unicode/utf8"
)

// Byte order marks.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
)

// DetectEncoding guesses the charset of content.
// It checks for BOM markers first (UTF-32 before UTF-16, since the
// little-endian UTF-32 mark starts with the UTF-16 one), then validates
// UTF-8. Falls back to ISO-8859-1, which accepts all byte sequences.
func DetectEncoding(content []byte) *Charset {
	switch {
	case bytes.HasPrefix(content, bomUTF8):
		return UTF8
	case bytes.HasPrefix(content, bomUTF32LE), bytes.HasPrefix(content, bomUTF32BE):
		return UTF32
	case bytes.HasPrefix(content, bomUTF16LE), bytes.HasPrefix(content, bomUTF16BE):
		return UTF16
	case utf8.Valid(content):
		return UTF8
	}

	latin1, err := Lookup("iso-8859-1")
	if err != nil {
		return UTF8
	}
	return latin1
}

// StripBOM removes a leading UTF-8 BOM from content.
// UTF-16 and UTF-32 marks are left for the generic charsets to consume.
func StripBOM(content []byte) []byte {
	return bytes.TrimPrefix(content, bomUTF8)
}
