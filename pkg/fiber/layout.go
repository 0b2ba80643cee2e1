package fiber

import "math"

// Layouter is implemented by the views of element-bearing fibers that size
// and position their subviews. An element whose view does not implement
// Layouter is sized to fit all its subviews, which are stacked on top of each
// other and centered.
//
// Both methods must be pure functions of their arguments; sizes are memoized
// per proposal until the reconciler finds that the element or one of its
// descendants changed.
type Layouter interface {
	// SizeThatFits returns the size the view wants given a proposal.
	SizeThatFits(p Proposal, subviews Subviews) Size
	// PlaceSubviews places every subview in bounds, which are in the
	// coordinate space of the view itself.
	PlaceSubviews(bounds Rect, p Proposal, subviews Subviews)
}

// Subview is a proxy for an element-bearing descendant that a Layouter
// arranges.
type Subview struct {
	fiber  *Fiber
	caches *caches
}

// Subviews are the subviews of a Layouter, in declaration order.
type Subviews []Subview

// SizeThatFits asks the subview for its size given a proposal.
func (s Subview) SizeThatFits(p Proposal) Size { return s.caches.sizeThatFits(s.fiber, p) }

// Place sizes the subview with p and positions it so that the given anchor of
// the subview lies at the point at.
func (s Subview) Place(at Point, anchor UnitPoint, p Proposal) {
	size := s.SizeThatFits(p)
	s.fiber.geometry = &Geometry{
		Origin: Point{at.X - size.Width*anchor.X, at.Y - size.Height*anchor.Y},
		Size:   size,
	}
}

// Trait returns the value of a trait written on or above the subview.
func (s Subview) Trait(key any) (any, bool) {
	v, ok := s.fiber.traits[key]
	return v, ok
}

// Fiber returns the fiber of the subview.
func (s Subview) Fiber() *Fiber { return s.fiber }

func layoutOf(f *Fiber) Layouter {
	if l, ok := f.view.(Layouter); ok {
		return l
	}
	return defaultLayout{}
}

type defaultLayout struct{}

func (defaultLayout) SizeThatFits(p Proposal, subviews Subviews) Size {
	if len(subviews) == 0 {
		return p.Replacing(Size{})
	}
	var size Size
	for _, s := range subviews {
		sub := s.SizeThatFits(p)
		size.Width = math.Max(size.Width, sub.Width)
		size.Height = math.Max(size.Height, sub.Height)
	}
	return size
}

func (defaultLayout) PlaceSubviews(bounds Rect, p Proposal, subviews Subviews) {
	center := Point{
		bounds.Origin.X + bounds.Size.Width/2,
		bounds.Origin.Y + bounds.Size.Height/2,
	}
	for _, s := range subviews {
		s.Place(center, Center, ProposalOf(bounds.Size))
	}
}
