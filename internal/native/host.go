package native

import (
	"fmt"
	"strings"

	"github.com/gdamore/encoding"

	"github.com/dshills/unitext/internal/codec"
)

// ASCII is the US-ASCII charset used for the C and POSIX locales.
var ASCII = codec.New("us-ascii", encoding.ASCII)

// Host converts between UTF-8 and the host's narrow and wide forms.
// A Host is immutable and safe for concurrent use.
type Host struct {
	narrow *codec.Charset
}

// New creates a Host with an explicit narrow charset.
func New(narrow *codec.Charset) *Host {
	if narrow == nil {
		narrow = codec.UTF8
	}
	return &Host{narrow: narrow}
}

// Detect creates a Host for the running process. When the locale names a
// charset that cannot be resolved, UTF-8 is used and the lookup error is
// returned alongside the usable Host.
func Detect() (*Host, error) {
	return FromName(hostCharsetName())
}

// FromName creates a Host whose narrow charset is looked up by name.
// On failure it still returns a UTF-8 Host together with the error.
func FromName(name string) (*Host, error) {
	cs, err := Lookup(name)
	if err != nil {
		return New(codec.UTF8), fmt.Errorf("narrow charset %q: %w", name, err)
	}
	return New(cs), nil
}

// Lookup resolves a narrow charset name, adding US-ASCII to the names
// codec.Lookup knows.
func Lookup(name string) (*codec.Charset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "us-ascii", "ascii", "ansi_x3.4-1968", "c", "posix":
		return ASCII, nil
	}
	return codec.Lookup(name)
}

// NarrowCharset returns the narrow charset in use.
func (h *Host) NarrowCharset() *codec.Charset {
	return h.narrow
}

// EncodeNarrow encodes UTF-8 text in the narrow charset.
func (h *Host) EncodeNarrow(s string) ([]byte, error) {
	return h.narrow.Encode(s)
}

// DecodeNarrow decodes narrow bytes into UTF-8 text.
func (h *Host) DecodeNarrow(b []byte) (string, error) {
	if h.narrow == codec.UTF8 {
		// Narrow UTF-8 never carries a BOM.
		return codec.DecodeUTF8(b)
	}
	return h.narrow.Decode(b)
}

// DecodeNarrowPrefix decodes b as the start of narrow input. It returns
// codec.ErrTruncated while more bytes could complete a character.
func (h *Host) DecodeNarrowPrefix(b []byte) (string, error) {
	return h.narrow.DecodePrefix(b)
}

// EncodeWide encodes UTF-8 text as platform wide units.
func (h *Host) EncodeWide(s string) ([]WChar, error) {
	return encodeWide(s, len(s)), nil
}

// DecodeWide decodes platform wide units into UTF-8 text.
func (h *Host) DecodeWide(w []WChar) (string, error) {
	return decodeWide(w)
}
