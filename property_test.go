package unitext

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"
	"unicode/utf16"
)

// scalars is a quick.Generator producing Unicode scalar values biased
// toward multi-unit codepoints.
type scalars []rune

func (scalars) Generate(rnd *rand.Rand, size int) reflect.Value {
	out := make(scalars, rnd.Intn(size+1))
	for i := range out {
		switch rnd.Intn(4) {
		case 0:
			out[i] = rune(rnd.Intn(0x80))
		case 1:
			out[i] = rune(0x80 + rnd.Intn(0x800-0x80))
		case 2:
			r := rune(0x800 + rnd.Intn(0x10000-0x800))
			if r >= 0xD800 && r < 0xE000 {
				r -= 0x800
			}
			out[i] = r
		default:
			out[i] = rune(0x10000 + rnd.Intn(0x110000-0x10000))
		}
	}
	return reflect.ValueOf(out)
}

func TestPropertyRoundTrip(t *testing.T) {
	opt := WithNative(utf8Native)

	f := func(s scalars) bool {
		src := []rune(s)
		txt, err := FromUTF32(src, opt)
		if err != nil {
			return false
		}

		from := []func() (*Text, error){
			func() (*Text, error) { return FromNarrow(txt.ToNarrow(), opt) },
			func() (*Text, error) { return FromWide(txt.ToWide(), opt) },
			func() (*Text, error) { return FromUTF8(txt.ToUTF8(), opt) },
			func() (*Text, error) { return FromUTF16(txt.ToUTF16(), opt) },
			func() (*Text, error) { return FromUTF32(txt.ToUTF32(), opt) },
		}
		for _, build := range from {
			back, err := build()
			if err != nil || !back.Equal(txt) {
				return false
			}
		}
		return reflect.DeepEqual(txt.ToUTF32(), src) || len(src) == 0
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestPropertyAtMatchesCursor(t *testing.T) {
	f := func(s scalars) bool {
		txt, err := FromUTF16(utf16.Encode(s))
		if err != nil {
			return false
		}

		c := txt.Begin()
		for i := range txt.Count() {
			at, err := txt.At(i)
			if err != nil {
				return false
			}
			cur, err := c.PostAdvance().Codepoint()
			if err != nil || cur != at {
				return false
			}
		}
		if !c.Equal(txt.End()) {
			return false
		}
		_, err = txt.At(txt.Count())
		return errors.Is(err, ErrOutOfRange)
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestPropertyPopCount(t *testing.T) {
	f := func(s scalars) bool {
		txt, err := FromUTF32(s)
		if err != nil {
			return false
		}

		n := txt.Count()
		for i := n - 1; i >= 0; i-- {
			r, err := txt.PopBack()
			if err != nil || r != s[i] {
				return false
			}
		}
		_, err = txt.PopBack()
		return errors.Is(err, ErrEmptyPop) && txt.IsEmpty() && txt.Count() == 0
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestPropertyInsertAtCountFails(t *testing.T) {
	f := func(s scalars, ins scalars) bool {
		txt, err := FromUTF32(s)
		if err != nil {
			return false
		}
		err = txt.InsertUTF32(txt.Count(), ins)
		return errors.Is(err, ErrOutOfRange)
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestPropertyInsertMatchesSliceSplice(t *testing.T) {
	f := func(s scalars, ins scalars, at uint16) bool {
		if len(s) == 0 {
			return true
		}
		idx := int(at) % len(s)

		txt, err := FromUTF32(s)
		if err != nil {
			return false
		}
		if err := txt.InsertUTF16(idx, utf16.Encode(ins)); err != nil {
			return false
		}

		want := append(append(append([]rune{}, s[:idx]...), ins...), s[idx:]...)
		return reflect.DeepEqual(txt.ToUTF32(), want)
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestPropertyPushUnitsMatchesBulkDecode(t *testing.T) {
	f := func(s scalars) bool {
		want, err := FromUTF32(s)
		if err != nil {
			return false
		}

		byByte := New()
		for _, b := range want.ToUTF8() {
			if byByte.PushByte(b) != nil {
				return false
			}
		}
		byUnit := New()
		for _, u := range want.ToUTF16() {
			if byUnit.PushUTF16(u) != nil {
				return false
			}
		}
		return byByte.Equal(want) && byUnit.Equal(want)
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}
