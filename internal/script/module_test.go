package script

import (
	"context"
	"strings"
	"testing"
)

func TestModule(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{
			name: "count and index",
			code: `local t = unitext.new("aℬ©déf⌘🙂👨🏻‍💻")
print(#t, t:count(), t:at(0), t:at(11))`,
			want: "12\t12\t97\t128187",
		},
		{
			name: "tostring",
			code: `print(tostring(unitext.new("naïve")))`,
			want: "naïve",
		},
		{
			name: "insert across encodings",
			code: `local t = unitext.new("abef")
t:insert(2, "cd")
t:insert_utf16(0, {0x24CC})
t:insert_utf32(6, {0x1F642})
print(t)`,
			want: "Ⓦabcde🙂f",
		},
		{
			name: "pop",
			code: `local t = unitext.new("x🙂")
print(t:pop(), t:pop(), t:is_empty())`,
			want: "128578\t120\ttrue",
		},
		{
			name: "pending units",
			code: `local t = unitext.new()
t:push(0xE2, "utf-8")
t:push(0x8C, "utf-8")
local enc, n = t:pending()
t:push(0x98, "utf-8")
print(enc, n, t)`,
			want: "utf-8\t2\t⌘",
		},
		{
			name: "unit tables",
			code: `local t = unitext.from_utf32({0x1F642, 0x61})
local u = t:utf16()
print(#u, u[1], u[2], u[3], t:utf32()[1])`,
			want: "3\t55357\t56898\t97\t128578",
		},
		{
			name: "codepoints iterator",
			code: `local parts = {}
for i, cp in unitext.new("añ🙂"):codepoints() do
  parts[#parts + 1] = i .. ":" .. cp
end
print(table.concat(parts, " "))`,
			want: "0:97 1:241 2:128578",
		},
		{
			name: "equality and clone",
			code: `local a = unitext.new("!?")
local b = unitext.from_utf16({0x21, 0x3F})
local c = a:clone()
c:append("x")
print(a == b, a:equals(c), c)`,
			want: "true\tfalse\t!?x",
		},
		{
			name: "encode and decode charsets",
			code: `local t = unitext.from_encoded("\255\254h\0i\0", "utf-16")
print(t, #t:encode("utf-16le"), #t:encode("utf-32be"))`,
			want: "hi\t4\t8",
		},
		{
			name: "char",
			code: `print(unitext.char(0x61, 0x30C4, 0x1F642))`,
			want: "aツ🙂",
		},
		{
			name: "clear",
			code: `local t = unitext.new("abc")
t:clear()
print(#t, t:is_empty())`,
			want: "0\ttrue",
		},
		{
			name: "narrow",
			code: `local t = unitext.from_narrow("caf\195\169")
t:append_narrow("!")
print(t:narrow())`,
			want: "café!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out := newTestRunner(t)
			if err := r.DoString(context.Background(), tt.code); err != nil {
				t.Fatalf("DoString: %v", err)
			}
			if got := strings.TrimSuffix(out.String(), "\n"); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModuleErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"at out of range", `unitext.new("abc"):at(3)`, "index out of bounds"},
		{"insert at end", `unitext.new("abc"):insert(3, "d")`, "index out of bounds"},
		{"pop empty", `unitext.new():pop()`, "cannot pop from an empty string"},
		{"lone surrogate", `unitext.from_utf16({0xD800})`, "surrogate"},
		{"pending blocks append", `local t = unitext.new()
t:push(0xD83D, "utf-16")
t:append("x")`, "incomplete unit sequence"},
		{"bad encoding name", `unitext.new():push(1, "ebcdic")`, "unknown encoding"},
		{"wide unit too large", `unitext.new():push(0x100000041, "wide")`, "not a wide unit"},
		{"negative wide unit", `unitext.new():push(-1, "wide")`, "not a wide unit"},
		{"invalid narrow byte", `unitext.new():push(0xFF, "narrow")`, "invalid"},
		{"bad unit table", `unitext.from_utf32({"a"})`, "element 1 is not a number"},
		{"unknown charset", `unitext.from_encoded("x", "klingon")`, "unsupported charset"},
		{"non-scalar char", `unitext.char(0xD800)`, "not a Unicode scalar value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRunner(t)
			err := r.DoString(context.Background(), tt.code)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestModuleErrorsAreCatchable(t *testing.T) {
	r, out := newTestRunner(t)
	code := `local ok, err = pcall(function() return unitext.new():pop() end)
print(ok, string.find(err, "empty") ~= nil)`
	if err := r.DoString(context.Background(), code); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out.String()); got != "false\ttrue" {
		t.Errorf("output = %q", got)
	}
}
