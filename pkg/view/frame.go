package view

import (
	"src.arbor.sh/pkg/fiber"
)

// Frame gives its content a fixed width, height or both. A zero dimension
// is left to the content. Content is aligned horizontally according to
// Alignment and centered vertically.
type Frame struct {
	Width     float64
	Height    float64
	Alignment Alignment
	Content   fiber.View
}

func (f Frame) VisitChildren(v *fiber.Visitor) { v.Visit(f.Content) }

func (Frame) Tag() string { return "frame" }

func (f Frame) Attrs() []Attr {
	return []Attr{
		{"width", formatFloat(f.Width)},
		{"height", formatFloat(f.Height)},
		{"alignment", f.Alignment.String()},
	}
}

func (f Frame) inner(p fiber.Proposal) fiber.Proposal {
	if f.Width > 0 {
		p.Width = f.Width
	}
	if f.Height > 0 {
		p.Height = f.Height
	}
	return p
}

func (f Frame) SizeThatFits(p fiber.Proposal, subviews fiber.Subviews) fiber.Size {
	inner := f.inner(p)
	size := inner.Replacing(fiber.Size{})
	if len(subviews) > 0 {
		var content fiber.Size
		for _, s := range subviews {
			content = union(content, s.SizeThatFits(inner))
		}
		if f.Width <= 0 {
			size.Width = content.Width
		}
		if f.Height <= 0 {
			size.Height = content.Height
		}
	}
	return size
}

func (f Frame) PlaceSubviews(bounds fiber.Rect, p fiber.Proposal, subviews fiber.Subviews) {
	inner := f.inner(fiber.ProposalOf(bounds.Size))
	for _, s := range subviews {
		size := s.SizeThatFits(inner)
		at := fiber.Point{
			X: bounds.Origin.X + align(f.Alignment, bounds.Size.Width, size.Width),
			Y: bounds.Origin.Y + align(Center, bounds.Size.Height, size.Height),
		}
		s.Place(at, fiber.TopLeading, inner)
	}
}

// Padding surrounds its content with Amount cells on every side.
type Padding struct {
	Amount  float64
	Content fiber.View
}

func (p Padding) VisitChildren(v *fiber.Visitor) { v.Visit(p.Content) }

func (Padding) Tag() string { return "padding" }

func (p Padding) Attrs() []Attr { return []Attr{{"amount", formatFloat(p.Amount)}} }

func (p Padding) SizeThatFits(prop fiber.Proposal, subviews fiber.Subviews) fiber.Size {
	inner := inset(prop, 2*p.Amount, 2*p.Amount)
	var size fiber.Size
	for _, s := range subviews {
		size = union(size, s.SizeThatFits(inner))
	}
	return fiber.Size{Width: size.Width + 2*p.Amount, Height: size.Height + 2*p.Amount}
}

func (p Padding) PlaceSubviews(bounds fiber.Rect, _ fiber.Proposal, subviews fiber.Subviews) {
	inner := inset(fiber.ProposalOf(bounds.Size), 2*p.Amount, 2*p.Amount)
	at := fiber.Point{X: bounds.Origin.X + p.Amount, Y: bounds.Origin.Y + p.Amount}
	for _, s := range subviews {
		s.Place(at, fiber.TopLeading, inner)
	}
}
