package termrender

import (
	"testing"

	"src.arbor.sh/pkg/tt"
)

func TestCanvas_WriteString(t *testing.T) {
	c := NewCanvas(6, 2)
	if n := c.WriteString(Pos{0, 1}, "abc", -1); n != 3 {
		t.Errorf("WriteString returned %d, want 3", n)
	}
	c.WriteString(Pos{1, 4}, "你好", -1)
	c.WriteString(Pos{5, 0}, "off", -1)
	if got, want := c.String(), " abc\n    你\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCanvas_WriteString_Limit(t *testing.T) {
	c := NewCanvas(10, 1)
	if n := c.WriteString(Pos{0, 0}, "你好", 3); n != 2 {
		t.Errorf("WriteString returned %d, want 2", n)
	}
	if got, want := c.String(), "你\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCanvas_OverwriteHalfOfWideCharacter(t *testing.T) {
	c := NewCanvas(4, 1)
	c.WriteString(Pos{0, 0}, "好", -1)
	c.WriteString(Pos{0, 1}, "x", -1)
	if got, want := c.String(), " x\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCanvas_TTYString(t *testing.T) {
	c := NewCanvas(3, 1)
	c.WriteString(Pos{0, 0}, "ab", -1)
	want := "┌───┐\n" +
		"│ab │\n" +
		"└───┘\n"
	if got := c.TTYString(); got != want {
		t.Errorf("TTYString() = %q, want %q", got, want)
	}
}

func TestCanvas_EmptyString(t *testing.T) {
	if got := NewCanvas(3, 3).String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
}

func TestWrap(t *testing.T) {
	tt.Test(t, tt.Fn("wrap", wrap), tt.Table{
		tt.Args("hello", 10).Rets([]string{"hello"}),
		tt.Args("hello", 2).Rets([]string{"he", "ll", "o"}),
		tt.Args("你好", 3).Rets([]string{"你", "好"}),
		tt.Args("你好", 1).Rets([]string{"你", "好"}),
		tt.Args("hello", 0).Rets([]string(nil)),
	})
}
