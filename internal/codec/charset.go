package codec

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// Charset is a named byte serialization of Unicode text.
// A Charset is immutable and safe for concurrent use.
type Charset struct {
	name      string
	enc       encoding.Encoding
	variants  []bomVariant // Checked in order when decoding
	encodeBOM []byte       // Written before encoded output
}

// bomVariant selects an encoding when input starts with bom.
type bomVariant struct {
	bom []byte
	enc encoding.Encoding
}

var (
	utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	utf32BE = utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	utf32LE = utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
)

// Predefined Unicode charsets. The generic "utf-16" and "utf-32" forms
// honor a leading BOM, default to big endian and write a BOM on encode.
var (
	UTF8 = &Charset{
		name:     "utf-8",
		enc:      unicode.UTF8,
		variants: []bomVariant{{bomUTF8, unicode.UTF8}},
	}
	UTF16 = &Charset{
		name:      "utf-16",
		enc:       utf16BE,
		variants:  []bomVariant{{bomUTF16BE, utf16BE}, {bomUTF16LE, utf16LE}},
		encodeBOM: bomUTF16BE,
	}
	UTF16LE = &Charset{name: "utf-16le", enc: utf16LE}
	UTF16BE = &Charset{name: "utf-16be", enc: utf16BE}
	UTF32   = &Charset{
		name:      "utf-32",
		enc:       utf32BE,
		variants:  []bomVariant{{bomUTF32BE, utf32BE}, {bomUTF32LE, utf32LE}},
		encodeBOM: bomUTF32BE,
	}
	UTF32LE = &Charset{name: "utf-32le", enc: utf32LE}
	UTF32BE = &Charset{name: "utf-32be", enc: utf32BE}
)

var builtin = map[string]*Charset{
	"utf-8":    UTF8,
	"utf8":     UTF8,
	"utf-16":   UTF16,
	"utf16":    UTF16,
	"utf-16le": UTF16LE,
	"utf-16be": UTF16BE,
	"utf-32":   UTF32,
	"utf32":    UTF32,
	"utf-32le": UTF32LE,
	"utf-32be": UTF32BE,
}

// New wraps an x/text encoding as a Charset with the given name.
func New(name string, enc encoding.Encoding) *Charset {
	return &Charset{name: strings.ToLower(name), enc: enc}
}

// Lookup resolves a charset name. Unicode forms are built in; anything
// else goes through the IANA registry ("iso-8859-1", "latin1",
// "windows-1252", "shift_jis", ...).
func Lookup(name string) (*Charset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	alt := strings.ReplaceAll(key, "_", "-")
	if cs, ok := builtin[alt]; ok {
		return cs, nil
	}

	enc, err := ianaindex.IANA.Encoding(key)
	if err != nil || enc == nil {
		enc, err = ianaindex.IANA.Encoding(alt)
	}
	if err != nil || enc == nil {
		return nil, &CharsetError{Charset: name, Op: "lookup", Err: ErrUnsupportedCharset}
	}

	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil {
		canonical = key
	}
	return New(canonical, enc), nil
}

// Name returns the lower-case charset name.
func (c *Charset) Name() string {
	return c.name
}

// Decode converts bytes in this charset to a UTF-8 string.
// Input that the charset would not produce again on encode is rejected.
func (c *Charset) Decode(b []byte) (string, error) {
	enc := c.enc
	for _, v := range c.variants {
		if bytes.HasPrefix(b, v.bom) {
			enc = v.enc
			b = b[len(v.bom):]
			break
		}
	}

	decoded, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", &CharsetError{Charset: c.name, Op: "decode", Err: err}
	}
	if !utf8.Valid(decoded) {
		return "", &CharsetError{Charset: c.name, Op: "decode", Err: ErrInvalidSequence}
	}

	again, err := enc.NewEncoder().Bytes(decoded)
	if err != nil || !bytes.Equal(again, b) {
		return "", &CharsetError{
			Charset: c.name,
			Op:      "decode",
			Err:     &SequenceError{Encoding: c.name, Offset: firstDifference(again, b), Reason: "malformed input"},
		}
	}

	return string(decoded), nil
}

// DecodePrefix decodes b as the beginning of a stream in this charset,
// typically one character pushed a byte at a time. It returns
// ErrTruncated while b ends inside a sequence that more bytes could
// complete, and an error matching ErrInvalidSequence once none could.
func (c *Charset) DecodePrefix(b []byte) (string, error) {
	if c.enc == unicode.UTF8 {
		complete, err := CheckUTF8Prefix(b)
		if err != nil {
			return "", &CharsetError{Charset: c.name, Op: "decode", Err: err}
		}
		if !complete {
			return "", ErrTruncated
		}
		return string(b), nil
	}

	dst := make([]byte, utf8.UTFMax*(len(b)+1))
	nDst, nSrc, err := c.enc.NewDecoder().Transform(dst, b, false)
	if errors.Is(err, transform.ErrShortSrc) {
		return "", ErrTruncated
	}
	if err != nil || nSrc != len(b) {
		return "", &CharsetError{
			Charset: c.name,
			Op:      "decode",
			Err:     &SequenceError{Encoding: c.name, Offset: nSrc, Reason: "malformed input"},
		}
	}

	decoded := dst[:nDst]
	again, err := c.enc.NewEncoder().Bytes(decoded)
	if err != nil || !utf8.Valid(decoded) || !bytes.Equal(again, b) {
		return "", &CharsetError{
			Charset: c.name,
			Op:      "decode",
			Err:     &SequenceError{Encoding: c.name, Offset: firstDifference(again, b), Reason: "malformed input"},
		}
	}
	return string(decoded), nil
}

// Encode converts a well-formed UTF-8 string to bytes in this charset.
// Text the charset cannot represent fails with ErrUnrepresentable, even
// when the underlying encoder would substitute a replacement byte.
func (c *Charset) Encode(s string) ([]byte, error) {
	encoded, err := c.enc.NewEncoder().String(s)
	if err != nil {
		return nil, &CharsetError{Charset: c.name, Op: "encode", Err: ErrUnrepresentable}
	}

	back, err := c.enc.NewDecoder().String(encoded)
	if err != nil || back != s {
		return nil, &CharsetError{Charset: c.name, Op: "encode", Err: ErrUnrepresentable}
	}

	if len(c.encodeBOM) == 0 {
		return []byte(encoded), nil
	}
	out := make([]byte, 0, len(c.encodeBOM)+len(encoded))
	out = append(out, c.encodeBOM...)
	return append(out, encoded...), nil
}

// firstDifference returns the first index where a and b differ.
func firstDifference(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
