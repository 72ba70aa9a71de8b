package unitext

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dshills/unitext/internal/codec"
	"github.com/dshills/unitext/internal/native"
	"github.com/dshills/unitext/internal/rope"
)

// Text is a Unicode string addressed by scalar value.
// The zero value is an empty Text using DefaultNative.
type Text struct {
	rope    rope.Rope
	pending pending
	native  Native
	logger  Logger
}

// New creates an empty Text.
func New(opts ...Option) *Text {
	t := &Text{rope: rope.New()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// FromNarrow decodes bytes in the host narrow charset.
func FromNarrow(b []byte, opts ...Option) (*Text, error) {
	t := New(opts...)
	s, err := t.decodeNarrow(b)
	return t.init("FromNarrow", s, err)
}

// FromWide decodes platform wide units.
func FromWide(w []WChar, opts ...Option) (*Text, error) {
	t := New(opts...)
	s, err := t.decodeWide(w)
	return t.init("FromWide", s, err)
}

// FromUTF8 decodes UTF-8 bytes.
func FromUTF8(b []byte, opts ...Option) (*Text, error) {
	t := New(opts...)
	s, err := codec.DecodeUTF8(b)
	return t.init("FromUTF8", s, err)
}

// FromString decodes a UTF-8 string.
func FromString(s string, opts ...Option) (*Text, error) {
	t := New(opts...)
	s, err := decodeString(s)
	return t.init("FromString", s, err)
}

// FromUTF16 decodes UTF-16 code units.
func FromUTF16(u []uint16, opts ...Option) (*Text, error) {
	t := New(opts...)
	s, err := codec.DecodeUTF16(u)
	return t.init("FromUTF16", s, err)
}

// FromUTF32 decodes UTF-32 code units.
func FromUTF32(r []rune, opts ...Option) (*Text, error) {
	if err := codec.ValidateUTF32(r); err != nil {
		return nil, opError("FromUTF32", -1, err)
	}
	t := New(opts...)
	t.rope = rope.FromRunes(r)
	return t, nil
}

// FromEncoded decodes bytes serialized in the named charset, for example
// "utf-16le", "utf-32" (BOM aware) or "iso-8859-1".
func FromEncoded(b []byte, charset string, opts ...Option) (*Text, error) {
	cs, err := native.Lookup(charset)
	if err != nil {
		return nil, opError("FromEncoded", -1, err)
	}

	t := New(opts...)
	s, err := cs.Decode(b)
	if err != nil {
		err = invalid(err)
	}
	return t.init("FromEncoded", s, err)
}

func (t *Text) init(op, s string, err error) (*Text, error) {
	if err != nil {
		return nil, opError(op, -1, err)
	}
	t.rope = rope.FromString(s)
	return t, nil
}

// IsEmpty reports whether the text holds no codepoints.
func (t *Text) IsEmpty() bool {
	return t.rope.IsEmpty()
}

// Count returns the number of Unicode scalar values.
func (t *Text) Count() int {
	return int(t.rope.RuneCount())
}

// At returns the codepoint at index i.
func (t *Text) At(i int) (rune, error) {
	if i < 0 || i >= t.Count() {
		return utf8.RuneError, opError("At", i, ErrOutOfRange)
	}
	r, _ := t.rope.RuneAt(uint64(i))
	return r, nil
}

// String returns the text as UTF-8.
func (t *Text) String() string {
	return t.rope.String()
}

// ToUTF8 returns the text as UTF-8 bytes.
func (t *Text) ToUTF8() []byte {
	return []byte(t.rope.String())
}

// ToUTF16 returns the text as UTF-16 code units.
func (t *Text) ToUTF16() []uint16 {
	return codec.EncodeUTF16(t.rope.String(), int(t.rope.UTF16Len()))
}

// ToUTF32 returns the text as codepoints.
func (t *Text) ToUTF32() []rune {
	return codec.EncodeUTF32(t.rope.String(), t.Count())
}

// ToNarrow returns the text in the host narrow charset. When the host
// cannot encode it, the UTF-8 bytes are returned instead.
func (t *Text) ToNarrow() []byte {
	s := t.rope.String()
	b, err := t.host().EncodeNarrow(s)
	if err != nil {
		t.debug("ToNarrow: using UTF-8 bytes: %v", err)
		return []byte(s)
	}
	return b
}

// ToWide returns the text as platform wide units, or nil when the host
// cannot encode it.
func (t *Text) ToWide() []WChar {
	w, err := t.host().EncodeWide(t.rope.String())
	if err != nil {
		t.debug("ToWide: returning empty result: %v", err)
		return nil
	}
	return w
}

// Encode serializes the text in the named charset. Unlike ToNarrow it
// fails with ErrUnrepresentable instead of falling back.
func (t *Text) Encode(charset string) ([]byte, error) {
	cs, err := native.Lookup(charset)
	if err != nil {
		return nil, opError("Encode", -1, err)
	}
	b, err := cs.Encode(t.rope.String())
	if err != nil {
		return nil, opError("Encode", -1, err)
	}
	return b, nil
}

// Equal reports whether t and other hold the same codepoint sequence.
// Pending units are not part of the value.
func (t *Text) Equal(other *Text) bool {
	if t == other {
		return true
	}
	if other == nil {
		return t.IsEmpty()
	}
	return t.rope.Equals(other.rope)
}

// Clone returns an independent copy sharing the same options.
func (t *Text) Clone() *Text {
	c := *t
	c.pending = t.pending.clone()
	return &c
}

// WriteTo writes the narrow form of the text in double quotes.
func (t *Text) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, Quote(string(t.ToNarrow())))
	return int64(n), err
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Quote wraps s in double quotes, escaping only backslash and the quote
// character.
func Quote(s string) string {
	return `"` + quoteEscaper.Replace(s) + `"`
}

func (t *Text) host() Native {
	if t.native != nil {
		return t.native
	}
	return DefaultNative()
}

func (t *Text) debug(msg string, args ...any) {
	if t.logger != nil {
		t.logger.Debug(msg, args...)
	}
}

func (t *Text) decodeNarrow(b []byte) (string, error) {
	s, err := t.host().DecodeNarrow(b)
	if err != nil {
		return "", invalid(err)
	}
	return s, nil
}

func (t *Text) decodeWide(w []WChar) (string, error) {
	s, err := t.host().DecodeWide(w)
	if err != nil {
		return "", invalid(err)
	}
	return s, nil
}

func decodeString(s string) (string, error) {
	if utf8.ValidString(s) {
		return s, nil
	}
	return codec.DecodeUTF8([]byte(s))
}
