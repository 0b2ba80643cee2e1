package view_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.arbor.sh/pkg/fiber"
	"src.arbor.sh/pkg/fiber/fibertest"
	"src.arbor.sh/pkg/tt"
	. "src.arbor.sh/pkg/view"
)

func TestForEach_Keys(t *testing.T) {
	keyed := ForEach[string]{
		Data: []string{"a", "b"},
		ID:   func(s string) any { return "key-" + s },
		Row:  func(s string) fiber.View { return Text(s) },
	}
	var keys []any
	for _, child := range fiber.Children(keyed) {
		keys = append(keys, child.(ID).Key)
	}
	if diff := cmp.Diff([]any{"key-a", "key-b"}, keys); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}

	indexed := ForEach[string]{Data: []string{"a", "b"}, Row: func(s string) fiber.View { return Text(s) }}
	keys = nil
	for _, child := range fiber.Children(indexed) {
		keys = append(keys, child.(ID).Key)
	}
	if diff := cmp.Diff([]any{0, 1}, keys); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
}

func TestIf(t *testing.T) {
	if n := len(fiber.Children(If(true, Text("a")))); n != 1 {
		t.Errorf("If(true) has %d children, want 1", n)
	}
	if n := len(fiber.Children(If(false, Text("a")))); n != 0 {
		t.Errorf("If(false) has %d children, want 0", n)
	}
}

func TestButton(t *testing.T) {
	pressed := 0
	b := Button{Label: "ok", Action: func() { pressed++ }}
	b.Press()
	Button{Label: "no action"}.Press()
	if pressed != 1 {
		t.Errorf("action called %d times, want 1", pressed)
	}
	if diff := cmp.Diff([]fiber.View{Text("ok")}, fiber.Children(b)); diff != "" {
		t.Errorf("children (-want +got):\n%s", diff)
	}
}

func TestAlignment(t *testing.T) {
	tt.Test(t, tt.Fn("ParseAlignment", ParseAlignment), tt.Table{
		tt.Args("center").Rets(Center, true),
		tt.Args("").Rets(Center, true),
		tt.Args("leading").Rets(Leading, true),
		tt.Args("trailing").Rets(Trailing, true),
		tt.Args("diagonal").Rets(tt.Any, false),
	})
	for _, a := range []Alignment{Center, Leading, Trailing} {
		if got, _ := ParseAlignment(a.String()); got != a {
			t.Errorf("ParseAlignment(%q) = %v, want %v", a.String(), got, a)
		}
	}
	if got := Alignment(10).String(); got != "Alignment(10)" {
		t.Errorf("String() = %q", got)
	}
}

func TestText_SizeThatFits(t *testing.T) {
	sizeThatFits := func(text string, p fiber.Proposal) fiber.Size {
		return Text(text).SizeThatFits(p, nil)
	}
	tt.Test(t, tt.Fn("Text.SizeThatFits", sizeThatFits), tt.Table{
		tt.Args("hello", fiber.Unspecified).Rets(fiber.Size{Width: 5, Height: 1}),
		tt.Args("hello", fiber.Proposal{Width: 10, Height: 1}).Rets(fiber.Size{Width: 5, Height: 1}),
		tt.Args("hello", fiber.Proposal{Width: 2, Height: 1}).Rets(fiber.Size{Width: 2, Height: 3}),
		tt.Args("hello", fiber.Proposal{Width: 0, Height: 1}).Rets(fiber.Size{Width: 1, Height: 5}),
		tt.Args("你好", fiber.Unspecified).Rets(fiber.Size{Width: 4, Height: 1}),
		tt.Args("", fiber.Unspecified).Rets(fiber.Size{Width: 0, Height: 1}),
	})
}

func TestHStack_DividesWidth(t *testing.T) {
	h := fibertest.Mount(HStack{Content: []fiber.View{
		Text("aaaaaaaaaa"),
		Text("bb"),
	}}, fibertest.WithLayout(), fibertest.WithSize(8, 5))
	var sizes []fiber.Size
	for _, c := range h.Tree.Root.Children()[0].Children() {
		sizes = append(sizes, c.Geometry().Size)
	}
	want := []fiber.Size{{Width: 6, Height: 2}, {Width: 2, Height: 1}}
	if diff := cmp.Diff(want, sizes); diff != "" {
		t.Errorf("sizes (-want +got):\n%s", diff)
	}
}

func TestZStack_Overlays(t *testing.T) {
	h := fibertest.Mount(ZStack{Alignment: Trailing, Content: []fiber.View{
		Text("long text"),
		Text("x"),
	}}, fibertest.WithLayout())
	zstack := h.Tree.Root.Children()[0]
	if got := zstack.Geometry().Size; got != (fiber.Size{Width: 9, Height: 1}) {
		t.Errorf("zstack size = %v", got)
	}
	if got := zstack.Children()[1].Geometry().Origin; got != (fiber.Point{X: 8, Y: 0}) {
		t.Errorf("x origin = %v", got)
	}
}

func TestPadding_WithoutContent(t *testing.T) {
	got := Padding{Amount: 2}.SizeThatFits(fiber.Unspecified, nil)
	if got != (fiber.Size{Width: 4, Height: 4}) {
		t.Errorf("size = %v", got)
	}
}
