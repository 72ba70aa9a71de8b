package unitext

import (
	"errors"

	"github.com/dshills/unitext/internal/codec"
	"github.com/dshills/unitext/internal/native"
)

// pending holds pushed units that do not yet form a whole codepoint.
// Only one encoding is buffered at a time.
type pending struct {
	enc   Encoding
	bytes []byte // Narrow or UTF8
	units []uint16
	wide  []WChar
}

func (p *pending) len() int {
	return len(p.bytes) + len(p.units) + len(p.wide)
}

func (p *pending) reset() {
	p.bytes = p.bytes[:0]
	p.units = p.units[:0]
	p.wide = p.wide[:0]
}

func (p pending) clone() pending {
	return pending{
		enc:   p.enc,
		bytes: append([]byte(nil), p.bytes...),
		units: append([]uint16(nil), p.units...),
		wide:  append([]WChar(nil), p.wide...),
	}
}

// Pending reports the encoding and number of units pushed but not yet
// committed because they do not complete a codepoint.
func (t *Text) Pending() (Encoding, int) {
	return t.pending.enc, t.pending.len()
}

func (t *Text) checkNoPending(op string, index int) error {
	if t.pending.len() > 0 {
		return opError(op, index, ErrIncompleteSequence)
	}
	return nil
}

// checkPushable rejects a push in enc while units of another encoding
// are pending.
func (t *Text) checkPushable(enc Encoding) error {
	if t.pending.len() > 0 && t.pending.enc != enc {
		return opError("Push", -1, ErrIncompleteSequence)
	}
	t.pending.enc = enc
	return nil
}

// rejectPush drops the pending units along with the unit that could not
// continue them.
func (t *Text) rejectPush(err error) error {
	t.pending.reset()
	return opError("Push", -1, invalid(err))
}

// PushNarrow appends one byte in the host narrow charset. Bytes are held
// while they form a proper prefix of a character and rejected as soon as
// no continuation could complete them.
func (t *Text) PushNarrow(b byte) error {
	if err := t.checkPushable(Narrow); err != nil {
		return err
	}

	p := &t.pending
	buf := append(p.bytes, b)
	s, err := t.decodeNarrowPrefix(buf)
	switch {
	case errors.Is(err, ErrTruncatedSequence):
		p.bytes = buf
		return nil
	case err != nil:
		return t.rejectPush(err)
	}
	p.reset()
	t.commit(s)
	return nil
}

func (t *Text) decodeNarrowPrefix(b []byte) (string, error) {
	host := t.host()
	if d, ok := host.(NarrowPrefixDecoder); ok {
		return d.DecodeNarrowPrefix(b)
	}
	return host.DecodeNarrow(b)
}

// PushWide appends one platform wide unit.
func (t *Text) PushWide(w WChar) error {
	if err := t.checkPushable(Wide); err != nil {
		return err
	}

	p := &t.pending
	p.wide = append(p.wide, w)
	if len(p.wide) < native.WideSequenceLen(p.wide[0]) {
		return nil
	}
	s, err := t.host().DecodeWide(p.wide)
	if err != nil {
		return t.rejectPush(err)
	}
	p.reset()
	t.commit(s)
	return nil
}

// PushByte appends one UTF-8 code unit.
func (t *Text) PushByte(b byte) error {
	if err := t.checkPushable(UTF8); err != nil {
		return err
	}

	p := &t.pending
	buf := append(p.bytes, b)
	complete, err := codec.CheckUTF8Prefix(buf)
	switch {
	case err != nil:
		return t.rejectPush(err)
	case !complete:
		p.bytes = buf
		return nil
	}
	s := string(buf)
	p.reset()
	t.commit(s)
	return nil
}

// PushUTF16 appends one UTF-16 code unit. A high surrogate is held until
// its low surrogate arrives.
func (t *Text) PushUTF16(u uint16) error {
	if err := t.checkPushable(UTF16); err != nil {
		return err
	}

	p := &t.pending
	if len(p.units) == 0 && codec.IsHighSurrogate(u) {
		p.units = append(p.units, u)
		return nil
	}

	s, err := codec.DecodeUTF16(append(p.units, u))
	if err != nil {
		return t.rejectPush(err)
	}
	p.reset()
	t.commit(s)
	return nil
}

// PushRune appends one UTF-32 code unit.
func (t *Text) PushRune(r rune) error {
	if err := t.checkPushable(UTF32); err != nil {
		return err
	}
	if !codec.IsScalar(r) {
		return t.rejectPush(&codec.SequenceError{Encoding: "utf-32", Offset: 0, Reason: "not a scalar value"})
	}
	t.commit(string(r))
	return nil
}
