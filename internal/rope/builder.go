package rope

import (
	"strings"
	"unicode/utf8"
)

// builder accumulates codepoints and cuts them into chunks in batches.
type builder struct {
	chunks []Chunk
	buffer strings.Builder
}

func (b *builder) writeRune(r rune) {
	if r < utf8.RuneSelf {
		b.buffer.WriteByte(byte(r))
	} else {
		b.buffer.WriteRune(r)
	}

	if b.buffer.Len() >= MaxChunkSize*2 {
		b.flush()
	}
}

func (b *builder) flush() {
	if b.buffer.Len() == 0 {
		return
	}
	s := b.buffer.String()
	b.buffer.Reset()
	b.chunks = append(b.chunks, splitIntoChunks(s)...)
}

func (b *builder) build() Rope {
	b.flush()
	if len(b.chunks) == 0 {
		return New()
	}
	return buildFromChunks(b.chunks)
}

// FromRunes creates a rope from a codepoint slice.
// The caller guarantees every element is a Unicode scalar value.
func FromRunes(runes []rune) Rope {
	if len(runes) == 0 {
		return New()
	}

	var b builder
	b.buffer.Grow(min(len(runes), MaxChunkSize*2))
	for _, r := range runes {
		b.writeRune(r)
	}
	return b.build()
}
