package fiber

import (
	"fmt"
	"math"
)

// Point is a position in the coordinate space of an element's parent.
type Point struct {
	X, Y float64
}

// Size is a width and height.
type Size struct {
	Width, Height float64
}

// Rect is an origin and a size.
type Rect struct {
	Origin Point
	Size   Size
}

// Geometry is the result of laying out an element: its origin relative to its
// element parent, and its size.
type Geometry struct {
	Origin Point
	Size   Size
}

func (g Geometry) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", g.Origin.X, g.Origin.Y, g.Size.Width, g.Size.Height)
}

// UnitPoint is a point in a unit square, used as an anchor when placing
// subviews.
type UnitPoint struct {
	X, Y float64
}

// Commonly used anchors.
var (
	TopLeading = UnitPoint{0, 0}
	Center     = UnitPoint{0.5, 0.5}
)

// Infinity can be used as a proposed dimension to ask for a view's maximum
// size along that dimension.
var Infinity = math.Inf(1)

// Proposal is the size offered to a view by its container. A negative
// dimension is unspecified, which asks the view for its ideal size along that
// dimension.
//
// Proposal is comparable and is used as a key in layout caches.
type Proposal struct {
	Width, Height float64
}

// Unspecified is a Proposal with both dimensions unspecified.
var Unspecified = Proposal{-1, -1}

// ProposalOf returns a Proposal that offers exactly s.
func ProposalOf(s Size) Proposal { return Proposal{s.Width, s.Height} }

// HasWidth reports whether the width is specified.
func (p Proposal) HasWidth() bool { return p.Width >= 0 }

// HasHeight reports whether the height is specified.
func (p Proposal) HasHeight() bool { return p.Height >= 0 }

// Replacing returns p as a Size, using the dimensions of def for unspecified
// dimensions.
func (p Proposal) Replacing(def Size) Size {
	s := Size{p.Width, p.Height}
	if !p.HasWidth() {
		s.Width = def.Width
	}
	if !p.HasHeight() {
		s.Height = def.Height
	}
	return s
}

func (p Proposal) String() string {
	dim := func(f float64) string {
		if f < 0 {
			return "nil"
		}
		return fmt.Sprint(f)
	}
	return "(" + dim(p.Width) + "x" + dim(p.Height) + ")"
}
