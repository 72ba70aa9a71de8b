package unitext

import (
	"fmt"
	"iter"
	"unicode/utf8"
)

// Cursor is a forward position over the codepoints of a Text.
// The zero value is detached and cannot be dereferenced.
type Cursor struct {
	parent *Text
	index  int
}

// Begin returns a cursor at the first codepoint.
func (t *Text) Begin() Cursor {
	return Cursor{parent: t}
}

// End returns a cursor one past the last codepoint.
func (t *Text) End() Cursor {
	return Cursor{parent: t, index: t.Count()}
}

// Advance moves the cursor forward and returns it.
func (c *Cursor) Advance() *Cursor {
	c.index++
	return c
}

// PostAdvance moves the cursor forward and returns its prior position.
func (c *Cursor) PostAdvance() Cursor {
	prev := *c
	c.index++
	return prev
}

// Codepoint returns the codepoint under the cursor. A cursor at End
// fails with ErrOutOfRange.
func (c Cursor) Codepoint() (rune, error) {
	if c.parent == nil {
		return utf8.RuneError, opError("Codepoint", c.index, ErrDetached)
	}
	return c.parent.At(c.index)
}

// Index returns the codepoint index of the cursor.
func (c Cursor) Index() int {
	return c.index
}

// Equal reports whether both cursors walk the same Text at the same index.
func (c Cursor) Equal(other Cursor) bool {
	return c.parent == other.parent && c.index == other.index
}

func (c Cursor) String() string {
	return fmt.Sprintf("cursor(parent=%p, index=%d)", c.parent, c.index)
}

// Codepoints returns an iterator over the codepoints present when
// iteration starts.
func (t *Text) Codepoints() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		it := t.rope.Runes()
		for it.Next() {
			if !yield(it.Rune()) {
				return
			}
		}
	}
}

// All returns an iterator over index and codepoint pairs.
func (t *Text) All() iter.Seq2[int, rune] {
	return func(yield func(int, rune) bool) {
		it := t.rope.Runes()
		for it.Next() {
			if !yield(int(it.Index()), it.Rune()) {
				return
			}
		}
	}
}
