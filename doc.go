// Package unitext provides Text, a Unicode string that can be built from
// and converted to the host narrow encoding, the platform wide encoding,
// UTF-8, UTF-16 and UTF-32.
//
// Whatever the source encoding, a Text is addressed by Unicode scalar
// value: a surrogate pair, a four byte UTF-8 sequence or a single UTF-32
// unit each occupy one index.
//
// Basic usage:
//
//	t, _ := unitext.FromString(`¯\_(`)
//	_ = t.PushUTF16('ツ')
//	_ = t.AppendUTF32([]rune(")_/¯"))
//	fmt.Println(t) // ¯\_(ツ)_/¯
//
//	r, err := t.At(4) // 'ツ'
//
// Internally the text is stored once, as a rope of UTF-8 chunks whose
// nodes cache codepoint and UTF-16 counts, so Count is constant time and
// At and Insert seek in logarithmic time.
//
// Narrow and wide conversions go through a Native implementation. The
// default one follows the process locale (the ANSI code page on Windows).
// Encoding to narrow falls back to UTF-8 bytes when the host cannot
// represent the text; encoding to wide yields nil on failure.
//
// A Text is not safe for concurrent mutation.
package unitext
