// Package view provides the basic views of arbor.
//
// Primitive views implement [Primitive] and are turned into elements by
// renderers; all other views are composites that only produce other views.
package view

import (
	"strconv"

	"src.arbor.sh/pkg/fiber"
)

// Primitive is implemented by views that renderers turn into elements. The
// tag and attributes make up the content of the element.
type Primitive interface {
	fiber.View
	Tag() string
	Attrs() []Attr
}

// Attr is a named attribute of a primitive view.
type Attr struct {
	Name  string
	Value string
}

// Alignment is the alignment of subviews along the cross axis of a stack, or
// horizontally in a frame.
type Alignment int

const (
	Center Alignment = iota
	Leading
	Trailing
)

func (a Alignment) String() string {
	switch a {
	case Center:
		return "center"
	case Leading:
		return "leading"
	case Trailing:
		return "trailing"
	default:
		return "Alignment(" + strconv.Itoa(int(a)) + ")"
	}
}

// ParseAlignment parses the string form of an Alignment.
func ParseAlignment(s string) (Alignment, bool) {
	switch s {
	case "center", "":
		return Center, true
	case "leading":
		return Leading, true
	case "trailing":
		return Trailing, true
	}
	return 0, false
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func visitAll(v *fiber.Visitor, views []fiber.View) {
	for _, view := range views {
		v.Visit(view)
	}
}
