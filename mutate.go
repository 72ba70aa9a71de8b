package unitext

import (
	"unicode/utf8"

	"github.com/dshills/unitext/internal/codec"
	"github.com/dshills/unitext/internal/rope"
)

// Clear empties the text and drops any pending units.
func (t *Text) Clear() {
	t.rope = rope.New()
	t.pending.reset()
}

// PopBack removes and returns the last codepoint.
func (t *Text) PopBack() (rune, error) {
	if err := t.checkNoPending("PopBack", -1); err != nil {
		return utf8.RuneError, err
	}
	if t.rope.IsEmpty() {
		return utf8.RuneError, opError("PopBack", -1, ErrEmptyPop)
	}

	r, size := t.rope.LastRune()
	end := t.rope.Len()
	t.rope = t.rope.Delete(end-rope.ByteOffset(size), end)
	return r, nil
}

// AppendNarrow decodes b in the host narrow charset and appends it.
func (t *Text) AppendNarrow(b []byte) error {
	s, err := t.decodeNarrow(b)
	return t.appendDecoded(s, err)
}

// AppendWide decodes platform wide units and appends them.
func (t *Text) AppendWide(w []WChar) error {
	s, err := t.decodeWide(w)
	return t.appendDecoded(s, err)
}

// AppendUTF8 decodes UTF-8 bytes and appends them.
func (t *Text) AppendUTF8(b []byte) error {
	s, err := codec.DecodeUTF8(b)
	return t.appendDecoded(s, err)
}

// AppendString appends a UTF-8 string.
func (t *Text) AppendString(s string) error {
	s, err := decodeString(s)
	return t.appendDecoded(s, err)
}

// AppendUTF16 decodes UTF-16 code units and appends them.
func (t *Text) AppendUTF16(u []uint16) error {
	s, err := codec.DecodeUTF16(u)
	return t.appendDecoded(s, err)
}

// AppendUTF32 decodes UTF-32 code units and appends them.
func (t *Text) AppendUTF32(r []rune) error {
	s, err := codec.DecodeUTF32(r)
	return t.appendDecoded(s, err)
}

// InsertNarrow decodes b in the host narrow charset and inserts it
// before the codepoint at index.
func (t *Text) InsertNarrow(index int, b []byte) error {
	s, err := t.decodeNarrow(b)
	return t.insertDecoded(index, s, err)
}

// InsertWide decodes platform wide units and inserts them before the
// codepoint at index.
func (t *Text) InsertWide(index int, w []WChar) error {
	s, err := t.decodeWide(w)
	return t.insertDecoded(index, s, err)
}

// InsertUTF8 decodes UTF-8 bytes and inserts them before the codepoint
// at index.
func (t *Text) InsertUTF8(index int, b []byte) error {
	s, err := codec.DecodeUTF8(b)
	return t.insertDecoded(index, s, err)
}

// InsertString inserts a UTF-8 string before the codepoint at index.
func (t *Text) InsertString(index int, s string) error {
	s, err := decodeString(s)
	return t.insertDecoded(index, s, err)
}

// InsertUTF16 decodes UTF-16 code units and inserts them before the
// codepoint at index.
func (t *Text) InsertUTF16(index int, u []uint16) error {
	s, err := codec.DecodeUTF16(u)
	return t.insertDecoded(index, s, err)
}

// InsertUTF32 decodes UTF-32 code units and inserts them before the
// codepoint at index.
func (t *Text) InsertUTF32(index int, r []rune) error {
	s, err := codec.DecodeUTF32(r)
	return t.insertDecoded(index, s, err)
}

func (t *Text) appendDecoded(s string, err error) error {
	if perr := t.checkNoPending("Append", -1); perr != nil {
		return perr
	}
	if err != nil {
		return opError("Append", -1, err)
	}
	t.commit(s)
	return nil
}

// insertDecoded splices s before the codepoint at index. The index must
// name an existing codepoint, so inserting at Count fails.
func (t *Text) insertDecoded(index int, s string, err error) error {
	if perr := t.checkNoPending("Insert", index); perr != nil {
		return perr
	}
	if index < 0 || index >= t.Count() {
		return opError("Insert", index, ErrOutOfRange)
	}
	if err != nil {
		return opError("Insert", index, err)
	}
	t.rope = t.rope.Insert(t.rope.RuneOffset(uint64(index)), s)
	return nil
}

// commit appends well-formed UTF-8 to the stored text.
func (t *Text) commit(s string) {
	t.rope = t.rope.Insert(t.rope.Len(), s)
}
