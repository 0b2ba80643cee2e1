package wcwidth

import (
	"testing"

	"src.arbor.sh/pkg/tt"
)

func TestOf(t *testing.T) {
	tt.Test(t, tt.Fn("Of", Of), tt.Table{
		tt.Args("\u0301").Rets(0), // Combining acute accent
		tt.Args("a").Rets(1),
		tt.Args("Ω").Rets(1),
		tt.Args("好").Rets(2),
		tt.Args("か").Rets(2),
		tt.Args("abc").Rets(3),
		tt.Args("你好").Rets(4),
		tt.Args("\t").Rets(0),
		tt.Args("🎉").Rets(2),
	})
}

func TestOverride(t *testing.T) {
	r := '❱'
	oldw := OfRune(r)
	w := oldw + 1

	Override(r, w)
	if OfRune(r) != w {
		t.Errorf("OfRune(%q) != %d after Override", r, w)
	}
	Unoverride(r)
	if OfRune(r) != oldw {
		t.Errorf("OfRune(%q) != %d after Unoverride", r, oldw)
	}
}

func TestOverride_NegativeWidthRemovesOverride(t *testing.T) {
	Override('x', 2)
	Override('x', -1)
	if OfRune('x') != 1 {
		t.Errorf("Override with negative width did not remove override")
	}
}

func TestConcurrentOverride(t *testing.T) {
	go Override('y', 2)
	_ = OfRune('y')
}

func TestTrim(t *testing.T) {
	tt.Test(t, tt.Fn("Trim", Trim), tt.Table{
		tt.Args("abc", 1).Rets("a"),
		tt.Args("abc", 2).Rets("ab"),
		tt.Args("abc", 3).Rets("abc"),
		tt.Args("abc", 4).Rets("abc"),

		tt.Args("你好", 1).Rets(""),
		tt.Args("你好", 2).Rets("你"),
		tt.Args("你好", 3).Rets("你"),
		tt.Args("你好", 4).Rets("你好"),
		tt.Args("你好", 5).Rets("你好"),
	})
}

func TestForce(t *testing.T) {
	tt.Test(t, tt.Fn("Force", Force), tt.Table{
		// Trimming
		tt.Args("abc", 2).Rets("ab"),
		tt.Args("你好", 2).Rets("你"),
		// Padding
		tt.Args("abc", 4).Rets("abc "),
		tt.Args("你好", 5).Rets("你好 "),
		// Trimming and Padding
		tt.Args("你好", 3).Rets("你 "),
	})
}

func TestTrimEachLine(t *testing.T) {
	got := TrimEachLine("abcdefg\n你好", 3)
	if want := "abc\n你"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
