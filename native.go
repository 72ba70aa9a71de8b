package unitext

import (
	"sync"

	"github.com/dshills/unitext/internal/native"
)

// Native converts between UTF-8 and the host's narrow and wide text
// forms. Implementations must be safe for concurrent use.
type Native interface {
	EncodeNarrow(s string) ([]byte, error)
	DecodeNarrow(b []byte) (string, error)
	EncodeWide(s string) ([]WChar, error)
	DecodeWide(w []WChar) (string, error)
}

// NarrowPrefixDecoder is an optional Native capability that lets
// PushNarrow assemble multi-byte narrow characters one byte at a time.
// DecodeNarrowPrefix returns ErrTruncatedSequence while b is a proper
// prefix of a valid character, and any other error once no further bytes
// could make it valid. A Native without it decodes every pushed byte on
// its own.
type NarrowPrefixDecoder interface {
	DecodeNarrowPrefix(b []byte) (string, error)
}

var (
	defaultOnce   sync.Once
	defaultNative Native
)

// DefaultNative returns the Native for the running process, detected once
// from the locale. A locale charset that cannot be resolved leaves UTF-8
// as the narrow form.
func DefaultNative() Native {
	defaultOnce.Do(func() {
		h, _ := native.Detect()
		defaultNative = h
	})
	return defaultNative
}

// NativeFor returns a Native whose narrow form is the named charset
// ("utf-8", "iso-8859-1", "windows-1252", "us-ascii", ...).
func NativeFor(narrow string) (Native, error) {
	cs, err := native.Lookup(narrow)
	if err != nil {
		return nil, err
	}
	return native.New(cs), nil
}
