package unitext_test

import (
	"fmt"
	"os"

	"github.com/dshills/unitext"
)

// Example assembles one string from three encodings.
func Example() {
	utf8Host, err := unitext.NativeFor("utf-8")
	if err != nil {
		fmt.Println(err)
		return
	}

	txt, err := unitext.FromUTF8([]byte(`¯\_(`), unitext.WithNative(utf8Host))
	if err != nil {
		fmt.Println(err)
		return
	}
	_ = txt.PushUTF16('ツ')
	_ = txt.AppendUTF32([]rune(")_/¯"))

	fmt.Println(string(txt.ToNarrow()))
	fmt.Println(txt.Count(), len(txt.ToUTF16()))
	// Output:
	// ¯\_(ツ)_/¯
	// 9 9
}

func ExampleText_At() {
	txt, _ := unitext.FromString("a👨🏻‍💻")
	for i := range txt.Count() {
		r, _ := txt.At(i)
		fmt.Printf("%d U+%04X\n", i, r)
	}
	_, err := txt.At(txt.Count())
	fmt.Println(err)
	// Output:
	// 0 U+0061
	// 1 U+1F468
	// 2 U+1F3FB
	// 3 U+200D
	// 4 U+1F4BB
	// unitext: At 5: index out of bounds
}

func ExampleText_InsertUTF16() {
	txt, _ := unitext.FromString("abef")
	_ = txt.InsertUTF16(2, []uint16{'c', 'd'})
	fmt.Println(txt)

	err := txt.InsertString(txt.Count(), "g")
	fmt.Println(err)
	// Output:
	// abcdef
	// unitext: Insert 6: index out of bounds
}

func ExampleText_WriteTo() {
	utf8Host, _ := unitext.NativeFor("utf-8")
	txt, _ := unitext.FromString("Hello 👋", unitext.WithNative(utf8Host))
	_, _ = txt.WriteTo(os.Stdout)
	fmt.Println()
	// Output:
	// "Hello 👋"
}

func ExampleText_Codepoints() {
	txt, _ := unitext.FromUTF32([]rune("naïve"))
	for r := range txt.Codepoints() {
		fmt.Printf("%c ", r)
	}
	fmt.Println()
	// Output:
	// n a ï v e
}
