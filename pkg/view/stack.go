package view

import (
	"math"
	"sort"

	"src.arbor.sh/pkg/fiber"
)

// VStack arranges its content vertically.
type VStack struct {
	Spacing   float64
	Alignment Alignment
	Content   []fiber.View
}

// HStack arranges its content horizontally.
type HStack struct {
	Spacing   float64
	Alignment Alignment
	Content   []fiber.View
}

// ZStack overlays its content.
type ZStack struct {
	Alignment Alignment
	Content   []fiber.View
}

func (s VStack) VisitChildren(v *fiber.Visitor) { visitAll(v, s.Content) }
func (s HStack) VisitChildren(v *fiber.Visitor) { visitAll(v, s.Content) }
func (s ZStack) VisitChildren(v *fiber.Visitor) { visitAll(v, s.Content) }

func (VStack) Tag() string { return "vstack" }
func (HStack) Tag() string { return "hstack" }
func (ZStack) Tag() string { return "zstack" }

func (s VStack) Attrs() []Attr { return stackAttrs(s.Spacing, s.Alignment) }
func (s HStack) Attrs() []Attr { return stackAttrs(s.Spacing, s.Alignment) }
func (s ZStack) Attrs() []Attr { return []Attr{{"alignment", s.Alignment.String()}} }

func stackAttrs(spacing float64, a Alignment) []Attr {
	return []Attr{{"spacing", formatFloat(spacing)}, {"alignment", a.String()}}
}

func (s VStack) SizeThatFits(p fiber.Proposal, subviews fiber.Subviews) fiber.Size {
	return stackLayout{true, s.Spacing, s.Alignment}.sizeThatFits(p, subviews)
}

func (s VStack) PlaceSubviews(bounds fiber.Rect, p fiber.Proposal, subviews fiber.Subviews) {
	stackLayout{true, s.Spacing, s.Alignment}.placeSubviews(bounds, p, subviews)
}

func (s HStack) SizeThatFits(p fiber.Proposal, subviews fiber.Subviews) fiber.Size {
	return stackLayout{false, s.Spacing, s.Alignment}.sizeThatFits(p, subviews)
}

func (s HStack) PlaceSubviews(bounds fiber.Rect, p fiber.Proposal, subviews fiber.Subviews) {
	stackLayout{false, s.Spacing, s.Alignment}.placeSubviews(bounds, p, subviews)
}

func (s ZStack) SizeThatFits(p fiber.Proposal, subviews fiber.Subviews) fiber.Size {
	if len(subviews) == 0 {
		return fiber.Size{}
	}
	var size fiber.Size
	for _, sub := range subviews {
		size = union(size, sub.SizeThatFits(p))
	}
	return size
}

func (s ZStack) PlaceSubviews(bounds fiber.Rect, p fiber.Proposal, subviews fiber.Subviews) {
	for _, sub := range subviews {
		size := sub.SizeThatFits(p)
		at := fiber.Point{
			X: bounds.Origin.X + align(s.Alignment, bounds.Size.Width, size.Width),
			Y: bounds.Origin.Y + align(Center, bounds.Size.Height, size.Height),
		}
		sub.Place(at, fiber.TopLeading, p)
	}
}

// Layout shared by VStack and HStack. The main axis is the axis along which
// subviews are arranged.
type stackLayout struct {
	vertical  bool
	spacing   float64
	alignment Alignment
}

func (l stackLayout) main(s fiber.Size) float64 {
	if l.vertical {
		return s.Height
	}
	return s.Width
}

func (l stackLayout) cross(s fiber.Size) float64 {
	if l.vertical {
		return s.Width
	}
	return s.Height
}

func (l stackLayout) proposal(main, cross float64) fiber.Proposal {
	if l.vertical {
		return fiber.Proposal{Width: cross, Height: main}
	}
	return fiber.Proposal{Width: main, Height: cross}
}

// Returns the proposal for each subview and the resulting sizes. When the
// main axis is constrained, the available length is divided among the
// subviews, least flexible first, so that each subview can take what the
// less flexible ones left.
func (l stackLayout) measure(p fiber.Proposal, subviews fiber.Subviews) ([]fiber.Proposal, []fiber.Size) {
	pMain, pCross := p.Height, p.Width
	if !l.vertical {
		pMain, pCross = p.Width, p.Height
	}
	proposals := make([]fiber.Proposal, len(subviews))
	sizes := make([]fiber.Size, len(subviews))
	if pMain < 0 {
		for i, s := range subviews {
			proposals[i] = l.proposal(-1, pCross)
			sizes[i] = s.SizeThatFits(proposals[i])
		}
		return proposals, sizes
	}

	ideal := make([]float64, len(subviews))
	order := make([]int, len(subviews))
	for i, s := range subviews {
		ideal[i] = l.main(s.SizeThatFits(l.proposal(-1, pCross)))
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return ideal[order[a]] < ideal[order[b]] })

	available := pMain - l.spacing*float64(len(subviews)-1)
	for n, i := range order {
		share := math.Max(math.Floor(available/float64(len(subviews)-n)), 0)
		proposals[i] = l.proposal(share, pCross)
		sizes[i] = subviews[i].SizeThatFits(proposals[i])
		available -= l.main(sizes[i])
	}
	return proposals, sizes
}

func (l stackLayout) sizeThatFits(p fiber.Proposal, subviews fiber.Subviews) fiber.Size {
	if len(subviews) == 0 {
		return fiber.Size{}
	}
	_, sizes := l.measure(p, subviews)
	main := l.spacing * float64(len(subviews)-1)
	cross := 0.0
	for _, s := range sizes {
		main += l.main(s)
		cross = math.Max(cross, l.cross(s))
	}
	if l.vertical {
		return fiber.Size{Width: cross, Height: main}
	}
	return fiber.Size{Width: main, Height: cross}
}

func (l stackLayout) placeSubviews(bounds fiber.Rect, p fiber.Proposal, subviews fiber.Subviews) {
	proposals, sizes := l.measure(p, subviews)
	pos := 0.0
	for i, s := range subviews {
		offset := align(l.alignment, l.cross(bounds.Size), l.cross(sizes[i]))
		at := fiber.Point{X: bounds.Origin.X + offset, Y: bounds.Origin.Y + pos}
		if !l.vertical {
			at = fiber.Point{X: bounds.Origin.X + pos, Y: bounds.Origin.Y + offset}
		}
		s.Place(at, fiber.TopLeading, proposals[i])
		pos += l.main(sizes[i]) + l.spacing
	}
}

// Returns the offset of a size within an available length. Offsets are
// rounded down to whole cells.
func align(a Alignment, available, size float64) float64 {
	switch a {
	case Leading:
		return 0
	case Trailing:
		return available - size
	default:
		return math.Floor((available - size) / 2)
	}
}

func union(a, b fiber.Size) fiber.Size {
	return fiber.Size{Width: math.Max(a.Width, b.Width), Height: math.Max(a.Height, b.Height)}
}

// Shrinks the specified dimensions of p, never below zero.
func inset(p fiber.Proposal, dw, dh float64) fiber.Proposal {
	if p.HasWidth() {
		p.Width = math.Max(p.Width-dw, 0)
	}
	if p.HasHeight() {
		p.Height = math.Max(p.Height-dh, 0)
	}
	return p
}
