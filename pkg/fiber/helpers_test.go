package fiber_test

import (
	"fmt"
	"testing"

	"src.arbor.sh/pkg/elemtree"
	"src.arbor.sh/pkg/fiber"
	"src.arbor.sh/pkg/view"
)

// A stateful view whose body is computed by a function, used to drive state
// changes from tests.
type host struct {
	slots []fiber.StateSlot
	body  func(v *fiber.Visitor) fiber.View
}

func (h host) StateSlots() []fiber.StateSlot { return h.slots }

func (h host) VisitChildren(v *fiber.Visitor) { v.Visit(h.body(v)) }

// A button that counts presses.
type counter struct{ label string }

func (counter) StateSlots() []fiber.StateSlot {
	return []fiber.StateSlot{{Name: "count", Initial: 0}}
}

func (c counter) VisitChildren(v *fiber.Visitor) {
	count := fiber.UseState[int](v, "count")
	v.Visit(view.Button{
		Label:  fmt.Sprintf("%s:%d", c.label, count.Get()),
		Action: func() { count.Update(func(n int) int { return n + 1 }) },
	})
}

// Returns the text attributes of all elements under n, in tree order.
func texts(n *elemtree.Node) []string {
	var ts []string
	if s, ok := n.Attr("text"); ok {
		ts = append(ts, s)
	}
	for _, c := range n.Children() {
		ts = append(ts, texts(c)...)
	}
	return ts
}

func count[T fiber.Mutation](batch []fiber.Mutation) int {
	n := 0
	for _, m := range batch {
		if _, ok := m.(T); ok {
			n++
		}
	}
	return n
}

func mustPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("did not panic")
		}
	}()
	f()
}

// A fixed-size primitive that counts how many times it is measured.
type meter struct{ calls *int }

var _ fiber.Layouter = meter{}

func (meter) VisitChildren(*fiber.Visitor) {}

func (meter) Tag() string { return "meter" }

func (meter) Attrs() []view.Attr { return nil }

func (m meter) SizeThatFits(fiber.Proposal, fiber.Subviews) fiber.Size {
	*m.calls++
	return fiber.Size{Width: 10, Height: 3}
}

func (meter) PlaceSubviews(fiber.Rect, fiber.Proposal, fiber.Subviews) {}
