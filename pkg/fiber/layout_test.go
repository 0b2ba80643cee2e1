package fiber_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.arbor.sh/pkg/elemtree"
	"src.arbor.sh/pkg/fiber"
	"src.arbor.sh/pkg/fiber/fibertest"
	"src.arbor.sh/pkg/view"
)

// Returns the geometry of every element under n keyed by its text, or by its
// tag if it has no text.
func geometries(n *elemtree.Node) map[string]fiber.Geometry {
	m := map[string]fiber.Geometry{}
	var collect func(*elemtree.Node)
	collect = func(n *elemtree.Node) {
		key := n.Tag()
		if s, ok := n.Attr("text"); ok {
			key = s
		}
		m[key] = n.Geometry()
		for _, c := range n.Children() {
			collect(c)
		}
	}
	for _, c := range n.Children() {
		collect(c)
	}
	return m
}

func geom(x, y, w, h float64) fiber.Geometry {
	return fiber.Geometry{Origin: fiber.Point{X: x, Y: y}, Size: fiber.Size{Width: w, Height: h}}
}

func TestLayout_Stack(t *testing.T) {
	var second fiber.State[string]
	h := fibertest.Mount(host{
		slots: []fiber.StateSlot{{Name: "second", Initial: "hi"}},
		body: func(v *fiber.Visitor) fiber.View {
			second = fiber.UseState[string](v, "second")
			return view.VStack{Content: []fiber.View{view.Text("hello"), view.Text(second.Get())}}
		},
	}, fibertest.WithLayout(), fibertest.WithSize(20, 5))

	want := map[string]fiber.Geometry{
		"vstack": geom(0, 0, 5, 2),
		"hello":  geom(0, 0, 5, 1),
		"hi":     geom(1, 1, 2, 1),
	}
	if diff := cmp.Diff(want, geometries(h.Tree.Root)); diff != "" {
		t.Errorf("geometries (-want +got):\n%s", diff)
	}
	if n := count[fiber.Layout](h.LastBatch()); n != 3 {
		t.Errorf("initial batch has %d layouts, want 3", n)
	}

	second.Set("hey!!")
	h.RunLoop()
	batch := h.LastBatch()
	wantBatch := []string{
		`update to text(text="hey!!")`,
		`layout text(text="hey!!") at (0,1 5x1)`,
	}
	if diff := cmp.Diff(wantBatch, describe(batch)); diff != "" {
		t.Errorf("batch (-want +got):\n%s", diff)
	}
}

// Describes a committed batch. Updates are described by their new content,
// since the element they refer to has been updated.
func describe(batch []fiber.Mutation) []string {
	s := make([]string, len(batch))
	for i, m := range batch {
		if u, ok := m.(fiber.Update); ok {
			s[i] = fmt.Sprintf("update to %v", u.Content)
		} else {
			s[i] = m.String()
		}
	}
	return s
}

func TestLayout_GrowingChildResizesAncestors(t *testing.T) {
	var label fiber.State[string]
	h := fibertest.Mount(view.HStack{Spacing: 1, Content: []fiber.View{
		view.Text("x"),
		view.Padding{Amount: 1, Content: view.Group{host{
			slots: []fiber.StateSlot{{Name: "label", Initial: "ab"}},
			body: func(v *fiber.Visitor) fiber.View {
				label = fiber.UseState[string](v, "label")
				return view.Text(label.Get())
			},
		}}},
	}}, fibertest.WithLayout(), fibertest.WithSize(40, 10))

	want := map[string]fiber.Geometry{
		"hstack":  geom(0, 0, 6, 3),
		"x":       geom(0, 1, 1, 1),
		"padding": geom(2, 0, 4, 3),
		"ab":      geom(1, 1, 2, 1),
	}
	if diff := cmp.Diff(want, geometries(h.Tree.Root)); diff != "" {
		t.Errorf("geometries (-want +got):\n%s", diff)
	}

	label.Set("abcd")
	h.RunLoop()
	want = map[string]fiber.Geometry{
		"hstack":  geom(0, 0, 8, 3),
		"x":       geom(0, 1, 1, 1),
		"padding": geom(2, 0, 6, 3),
		"abcd":    geom(1, 1, 4, 1),
	}
	if diff := cmp.Diff(want, geometries(h.Tree.Root)); diff != "" {
		t.Errorf("geometries after growing (-want +got):\n%s", diff)
	}
}

func TestLayout_CleanSiblingIsNotRemeasured(t *testing.T) {
	calls := 0
	var label fiber.State[string]
	h := fibertest.Mount(host{
		slots: []fiber.StateSlot{{Name: "label", Initial: "a"}},
		body: func(v *fiber.Visitor) fiber.View {
			label = fiber.UseState[string](v, "label")
			return view.ZStack{Content: []fiber.View{meter{&calls}, view.Text(label.Get())}}
		},
	}, fibertest.WithLayout(), fibertest.WithSize(20, 5))
	if calls == 0 {
		t.Fatalf("meter was never measured")
	}
	mounted := calls

	label.Set("bcd")
	h.RunLoop()
	if calls != mounted {
		t.Errorf("meter measured %d more times after an unrelated change, want 0", calls-mounted)
	}
	if g := geometries(h.Tree.Root)["bcd"]; g != geom(3, 1, 3, 1) {
		t.Errorf("changed text has geometry %v, want %v", g, geom(3, 1, 3, 1))
	}
}

func TestLayout_FrameAndButton(t *testing.T) {
	h := fibertest.Mount(view.VStack{Alignment: view.Leading, Content: []fiber.View{
		view.Frame{Width: 10, Height: 3, Alignment: view.Trailing, Content: view.Text("abc")},
		view.Button{Label: "ok"},
	}}, fibertest.WithLayout(), fibertest.WithSize(40, 10))
	want := map[string]fiber.Geometry{
		"vstack": geom(0, 0, 10, 4),
		"frame":  geom(0, 0, 10, 3),
		"abc":    geom(7, 1, 3, 1),
		"button": geom(0, 3, 4, 1),
		"ok":     geom(1, 0, 2, 1),
	}
	if diff := cmp.Diff(want, geometries(h.Tree.Root)); diff != "" {
		t.Errorf("geometries (-want +got):\n%s", diff)
	}
}

func TestLayout_TextWraps(t *testing.T) {
	h := fibertest.Mount(view.Text("abcdefghij"), fibertest.WithLayout(), fibertest.WithSize(4, 10))
	want := map[string]fiber.Geometry{"abcdefghij": geom(0, 0, 4, 3)}
	if diff := cmp.Diff(want, geometries(h.Tree.Root)); diff != "" {
		t.Errorf("geometries (-want +got):\n%s", diff)
	}
}

func TestLayout_NoLayoutMutationsWithoutDynamicLayout(t *testing.T) {
	h := fibertest.Mount(view.VStack{Content: []fiber.View{view.Text("a")}})
	if n := count[fiber.Layout](h.LastBatch()); n != 0 {
		t.Errorf("got %d layout mutations, want 0", n)
	}
	if _, ok := h.Reconciler.Current().Child().Geometry(); ok {
		t.Errorf("fiber has geometry without dynamic layout")
	}
}
