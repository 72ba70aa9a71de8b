package unitext

import (
	"errors"
	"fmt"
	"testing"
)

func TestCursorEmpty(t *testing.T) {
	txt := New()
	if !txt.Begin().Equal(txt.End()) {
		t.Error("Begin should equal End for an empty text")
	}
}

func TestCursorWalk(t *testing.T) {
	txt := mustText(t, "έӭᔼő?")
	if txt.Begin().Equal(txt.End()) {
		t.Fatal("Begin should differ from End")
	}

	c := txt.Begin()
	for _, want := range []rune{'έ', 'ӭ', 'ᔼ', 'ő', '?'} {
		got, err := c.PostAdvance().Codepoint()
		if err != nil || got != want {
			t.Errorf("Codepoint = %q, %v; want %q", got, err, want)
		}
	}

	if !c.Equal(txt.End()) {
		t.Errorf("cursor at %d, want End %d", c.Index(), txt.End().Index())
	}
	_, err := c.Codepoint()
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("dereferencing End: err = %v, want ErrOutOfRange", err)
	}
}

func TestCursorAdvance(t *testing.T) {
	txt := mustText(t, "ab")
	c := txt.Begin()

	if got := c.Advance(); got != &c || c.Index() != 1 {
		t.Errorf("Advance should move in place and return the cursor")
	}
	prev := c.PostAdvance()
	if prev.Index() != 1 || c.Index() != 2 {
		t.Errorf("PostAdvance: prev=%d cur=%d", prev.Index(), c.Index())
	}
}

func TestCursorDetached(t *testing.T) {
	var c Cursor
	if _, err := c.Codepoint(); !errors.Is(err, ErrDetached) {
		t.Errorf("err = %v, want ErrDetached", err)
	}
	if !c.Equal(Cursor{}) {
		t.Error("zero cursors should be equal")
	}
}

func TestCursorEqualityNeedsSameParent(t *testing.T) {
	a := mustText(t, "x")
	b := mustText(t, "x")
	if a.Begin().Equal(b.Begin()) {
		t.Error("cursors over different texts should differ")
	}
}

func TestCursorString(t *testing.T) {
	txt := mustText(t, "abc")
	c := txt.Begin()
	c.Advance()

	want := fmt.Sprintf("cursor(parent=%p, index=1)", txt)
	if got := c.String(); got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}

func TestRangeOverCodepoints(t *testing.T) {
	txt, err := FromUTF16([]uint16{0xAF, '\\', '_', '(', 0x30C4, ')', '_', '/', 0xAF})
	if err != nil {
		t.Fatal(err)
	}

	var got []rune
	for r := range txt.Codepoints() {
		got = append(got, r)
	}
	if string(got) != `¯\_(ツ)_/¯` {
		t.Errorf("got %q", string(got))
	}
}

func TestRangeOverAll(t *testing.T) {
	txt := mustText(t, "a🙂b")

	want := []rune{'a', '🙂', 'b'}
	n := 0
	for i, r := range txt.All() {
		if i != n || r != want[i] {
			t.Errorf("pair %d = (%d, %q)", n, i, r)
		}
		n++
	}
	if n != 3 {
		t.Errorf("iterated %d codepoints, want 3", n)
	}

	for i := range txt.All() {
		if i == 1 {
			break
		}
	}
}

func TestIterationSnapshotsText(t *testing.T) {
	txt := mustText(t, "abc")

	var got []rune
	for r := range txt.Codepoints() {
		got = append(got, r)
		if len(got) == 1 {
			if err := txt.AppendString("def"); err != nil {
				t.Fatal(err)
			}
		}
	}
	if string(got) != "abc" {
		t.Errorf("iteration saw %q", string(got))
	}
}
