package script

import (
	"fmt"
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/unitext"
)

const textTypeName = "unitext.Text"

// binding holds the constructor options shared by the module functions.
type binding struct {
	opts []unitext.Option
}

func registerModule(L *lua.LState, opts []unitext.Option) {
	mt := L.NewTypeMetatable(textTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), textMethods))
	L.SetField(mt, "__tostring", L.NewFunction(textToString))
	L.SetField(mt, "__len", L.NewFunction(textCount))
	L.SetField(mt, "__eq", L.NewFunction(textEqual))

	b := &binding{opts: opts}
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"new":          b.newText,
		"from_narrow":  b.fromNarrow,
		"from_utf16":   b.fromUTF16,
		"from_utf32":   b.fromUTF32,
		"from_encoded": b.fromEncoded,
		"char":         char,
	})
	L.SetGlobal("unitext", mod)
}

var textMethods = map[string]lua.LGFunction{
	"count":         textCount,
	"is_empty":      textIsEmpty,
	"at":            textAt,
	"clear":         textClear,
	"push":          textPush,
	"pending":       textPending,
	"pop":           textPop,
	"append":        textAppend,
	"append_narrow": textAppendNarrow,
	"append_utf16":  textAppendUTF16,
	"append_utf32":  textAppendUTF32,
	"insert":        textInsert,
	"insert_utf16":  textInsertUTF16,
	"insert_utf32":  textInsertUTF32,
	"narrow":        textNarrow,
	"utf16":         textUTF16,
	"utf32":         textUTF32,
	"encode":        textEncode,
	"codepoints":    textCodepoints,
	"clone":         textClone,
	"equals":        textEqual,
}

func pushText(L *lua.LState, t *unitext.Text) {
	ud := L.NewUserData()
	ud.Value = t
	L.SetMetatable(ud, L.GetTypeMetatable(textTypeName))
	L.Push(ud)
}

func checkText(L *lua.LState, n int) *unitext.Text {
	ud := L.CheckUserData(n)
	if t, ok := ud.Value.(*unitext.Text); ok {
		return t
	}
	L.ArgError(n, "unitext.Text expected")
	return nil
}

// checkUnits reads a sequence table of integers.
func checkUnits(L *lua.LState, n int) []int64 {
	tbl := L.CheckTable(n)
	units := make([]int64, tbl.Len())
	for i := range units {
		num, ok := tbl.RawGetInt(i + 1).(lua.LNumber)
		if !ok {
			L.ArgError(n, fmt.Sprintf("element %d is not a number", i+1))
			return nil
		}
		units[i] = int64(num)
	}
	return units
}

func checkUTF16(L *lua.LState, n int) []uint16 {
	units := checkUnits(L, n)
	out := make([]uint16, len(units))
	for i, u := range units {
		if u < 0 || u > 0xFFFF {
			L.ArgError(n, fmt.Sprintf("element %d is not a UTF-16 unit", i+1))
			return nil
		}
		out[i] = uint16(u)
	}
	return out
}

func checkUTF32(L *lua.LState, n int) []rune {
	units := checkUnits(L, n)
	out := make([]rune, len(units))
	for i, u := range units {
		// Out-of-range values are left for the decoder to reject.
		if u < -1<<31 || u > 1<<31-1 {
			u = -1
		}
		out[i] = rune(u)
	}
	return out
}

func raise(L *lua.LState, err error) int {
	L.RaiseError("%s", err.Error())
	return 0
}

func unitTable(L *lua.LState, units []int64) *lua.LTable {
	tbl := L.CreateTable(len(units), 0)
	for _, u := range units {
		tbl.Append(lua.LNumber(u))
	}
	return tbl
}

func (b *binding) newText(L *lua.LState) int {
	t, err := unitext.FromString(L.OptString(1, ""), b.opts...)
	if err != nil {
		return raise(L, err)
	}
	pushText(L, t)
	return 1
}

func (b *binding) fromNarrow(L *lua.LState) int {
	t, err := unitext.FromNarrow([]byte(L.CheckString(1)), b.opts...)
	if err != nil {
		return raise(L, err)
	}
	pushText(L, t)
	return 1
}

func (b *binding) fromUTF16(L *lua.LState) int {
	t, err := unitext.FromUTF16(checkUTF16(L, 1), b.opts...)
	if err != nil {
		return raise(L, err)
	}
	pushText(L, t)
	return 1
}

func (b *binding) fromUTF32(L *lua.LState) int {
	t, err := unitext.FromUTF32(checkUTF32(L, 1), b.opts...)
	if err != nil {
		return raise(L, err)
	}
	pushText(L, t)
	return 1
}

func (b *binding) fromEncoded(L *lua.LState) int {
	t, err := unitext.FromEncoded([]byte(L.CheckString(1)), L.CheckString(2), b.opts...)
	if err != nil {
		return raise(L, err)
	}
	pushText(L, t)
	return 1
}

// char encodes codepoints as a UTF-8 string; Lua 5.1 has no utf8 library.
func char(L *lua.LState) int {
	var buf []byte
	for i := 1; i <= L.GetTop(); i++ {
		cp := L.CheckInt64(i)
		if cp < 0 || cp > utf8.MaxRune || !utf8.ValidRune(rune(cp)) {
			L.ArgError(i, "not a Unicode scalar value")
			return 0
		}
		buf = utf8.AppendRune(buf, rune(cp))
	}
	L.Push(lua.LString(buf))
	return 1
}

func textToString(L *lua.LState) int {
	L.Push(lua.LString(checkText(L, 1).String()))
	return 1
}

func textCount(L *lua.LState) int {
	L.Push(lua.LNumber(checkText(L, 1).Count()))
	return 1
}

func textIsEmpty(L *lua.LState) int {
	L.Push(lua.LBool(checkText(L, 1).IsEmpty()))
	return 1
}

func textEqual(L *lua.LState) int {
	L.Push(lua.LBool(checkText(L, 1).Equal(checkText(L, 2))))
	return 1
}

func textAt(L *lua.LState) int {
	r, err := checkText(L, 1).At(L.CheckInt(2))
	if err != nil {
		return raise(L, err)
	}
	L.Push(lua.LNumber(r))
	return 1
}

func textClear(L *lua.LState) int {
	checkText(L, 1).Clear()
	return 0
}

// textPush implements t:push(unit [, encoding]); the encoding defaults
// to "utf-32".
func textPush(L *lua.LState) int {
	t := checkText(L, 1)
	unit := L.CheckInt64(2)
	enc, ok := unitext.ParseEncoding(L.OptString(3, "utf-32"))
	if !ok {
		L.ArgError(3, "unknown encoding")
		return 0
	}

	var err error
	switch enc {
	case unitext.Narrow:
		err = pushByte(L, unit, t.PushNarrow)
	case unitext.UTF8:
		err = pushByte(L, unit, t.PushByte)
	case unitext.UTF16:
		if unit < 0 || unit > 0xFFFF {
			L.ArgError(2, "not a UTF-16 unit")
			return 0
		}
		err = t.PushUTF16(uint16(unit))
	case unitext.Wide:
		if unit < 0 || unit > int64(^unitext.WChar(0)) {
			L.ArgError(2, "not a wide unit")
			return 0
		}
		err = t.PushWide(unitext.WChar(unit))
	default:
		if unit < 0 || unit > 1<<31-1 {
			unit = -1
		}
		err = t.PushRune(rune(unit))
	}
	if err != nil {
		return raise(L, err)
	}
	return 0
}

func pushByte(L *lua.LState, unit int64, push func(byte) error) error {
	if unit < 0 || unit > 0xFF {
		L.ArgError(2, "not a byte")
		return nil
	}
	return push(byte(unit))
}

func textPending(L *lua.LState) int {
	enc, n := checkText(L, 1).Pending()
	L.Push(lua.LString(enc.String()))
	L.Push(lua.LNumber(n))
	return 2
}

func textPop(L *lua.LState) int {
	r, err := checkText(L, 1).PopBack()
	if err != nil {
		return raise(L, err)
	}
	L.Push(lua.LNumber(r))
	return 1
}

func textAppend(L *lua.LState) int {
	if err := checkText(L, 1).AppendString(L.CheckString(2)); err != nil {
		return raise(L, err)
	}
	return 0
}

func textAppendNarrow(L *lua.LState) int {
	if err := checkText(L, 1).AppendNarrow([]byte(L.CheckString(2))); err != nil {
		return raise(L, err)
	}
	return 0
}

func textAppendUTF16(L *lua.LState) int {
	if err := checkText(L, 1).AppendUTF16(checkUTF16(L, 2)); err != nil {
		return raise(L, err)
	}
	return 0
}

func textAppendUTF32(L *lua.LState) int {
	if err := checkText(L, 1).AppendUTF32(checkUTF32(L, 2)); err != nil {
		return raise(L, err)
	}
	return 0
}

func textInsert(L *lua.LState) int {
	if err := checkText(L, 1).InsertString(L.CheckInt(2), L.CheckString(3)); err != nil {
		return raise(L, err)
	}
	return 0
}

func textInsertUTF16(L *lua.LState) int {
	if err := checkText(L, 1).InsertUTF16(L.CheckInt(2), checkUTF16(L, 3)); err != nil {
		return raise(L, err)
	}
	return 0
}

func textInsertUTF32(L *lua.LState) int {
	if err := checkText(L, 1).InsertUTF32(L.CheckInt(2), checkUTF32(L, 3)); err != nil {
		return raise(L, err)
	}
	return 0
}

func textNarrow(L *lua.LState) int {
	L.Push(lua.LString(checkText(L, 1).ToNarrow()))
	return 1
}

func textUTF16(L *lua.LState) int {
	units := checkText(L, 1).ToUTF16()
	wide := make([]int64, len(units))
	for i, u := range units {
		wide[i] = int64(u)
	}
	L.Push(unitTable(L, wide))
	return 1
}

func textUTF32(L *lua.LState) int {
	runes := checkText(L, 1).ToUTF32()
	wide := make([]int64, len(runes))
	for i, r := range runes {
		wide[i] = int64(r)
	}
	L.Push(unitTable(L, wide))
	return 1
}

func textEncode(L *lua.LState) int {
	b, err := checkText(L, 1).Encode(L.CheckString(2))
	if err != nil {
		return raise(L, err)
	}
	L.Push(lua.LString(b))
	return 1
}

// textCodepoints returns a generic-for iterator yielding index, codepoint.
func textCodepoints(L *lua.LState) int {
	t := checkText(L, 1)
	c := t.Begin()
	end := t.End()

	L.Push(L.NewFunction(func(L *lua.LState) int {
		if c.Equal(end) {
			L.Push(lua.LNil)
			return 1
		}
		cur := c.PostAdvance()
		r, err := cur.Codepoint()
		if err != nil {
			return raise(L, err)
		}
		L.Push(lua.LNumber(cur.Index()))
		L.Push(lua.LNumber(r))
		return 2
	}))
	return 1
}

func textClone(L *lua.LState) int {
	pushText(L, checkText(L, 1).Clone())
	return 1
}
