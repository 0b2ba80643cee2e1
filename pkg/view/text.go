package view

import (
	"math"

	"src.arbor.sh/pkg/fiber"
	"src.arbor.sh/pkg/wcwidth"
)

// Text is a run of text. Its width is measured in terminal cells; text wider
// than the proposed width wraps onto more lines.
type Text string

func (Text) VisitChildren(*fiber.Visitor) {}

func (Text) Tag() string { return "text" }

func (t Text) Attrs() []Attr { return []Attr{{"text", string(t)}} }

func (t Text) SizeThatFits(p fiber.Proposal, _ fiber.Subviews) fiber.Size {
	w := float64(wcwidth.Of(string(t)))
	if !p.HasWidth() || p.Width >= w {
		return fiber.Size{Width: w, Height: 1}
	}
	cols := math.Max(math.Floor(p.Width), 1)
	return fiber.Size{Width: cols, Height: math.Ceil(w / cols)}
}

func (Text) PlaceSubviews(fiber.Rect, fiber.Proposal, fiber.Subviews) {}

// Button is a label with an action.
type Button struct {
	Label  string
	Action func()
}

func (b Button) VisitChildren(v *fiber.Visitor) { v.Visit(Text(b.Label)) }

func (Button) Tag() string { return "button" }

func (Button) Attrs() []Attr { return nil }

// Press calls the action of the button.
func (b Button) Press() {
	if b.Action != nil {
		b.Action()
	}
}

// A button is drawn as its label between brackets.
func (Button) SizeThatFits(p fiber.Proposal, subviews fiber.Subviews) fiber.Size {
	inner := inset(p, 2, 0)
	var size fiber.Size
	for _, s := range subviews {
		size = union(size, s.SizeThatFits(inner))
	}
	size.Width += 2
	return size
}

func (Button) PlaceSubviews(bounds fiber.Rect, p fiber.Proposal, subviews fiber.Subviews) {
	inner := inset(fiber.ProposalOf(bounds.Size), 2, 0)
	at := fiber.Point{X: bounds.Origin.X + 1, Y: bounds.Origin.Y}
	for _, s := range subviews {
		s.Place(at, fiber.TopLeading, inner)
	}
}
