package fiber

import (
	"fmt"
	"reflect"
	"strings"
)

// Fiber is the reconciler's record of one mounted view.
//
// The children of a fiber form a singly linked list through child and
// sibling. The parent, elementParent and alternate links are back references;
// the tree is owned top-down.
//
// Each logical node is represented by two fibers that take turns: the one
// reachable from the reconciler's root is current, and the other, reached via
// alternate, is the buffer that the next reconciliation builds into.
type Fiber struct {
	reconciler *Reconciler

	view View
	typ  reflect.Type
	id   Identity

	// Only set for element-bearing fibers.
	element Element
	content Content

	parent        *Fiber
	child         *Fiber
	sibling       *Fiber
	alternate     *Fiber
	elementParent *Fiber
	elementIndex  int

	state    map[string]*stateBox
	geometry *Geometry
	prefs    Preferences
	observed map[PreferenceKey]any
	traits   Traits

	// Set during a pass on a newly created fiber that takes the place of a
	// same-identity fiber of a different type.
	replaced *Fiber
}

// View returns the view value from the latest reconciliation.
func (f *Fiber) View() View { return f.view }

// Identity returns the identity of the fiber among its siblings.
func (f *Fiber) Identity() Identity { return f.id }

// IsElement reports whether the fiber bears an element, as opposed to being a
// pass-through container.
func (f *Fiber) IsElement() bool { return f.element != nil }

// Element returns the element of the fiber, or nil for pass-through fibers.
func (f *Fiber) Element() Element { return f.element }

// Content returns the content the element was last reconciled with.
func (f *Fiber) Content() Content { return f.content }

// Parent returns the parent fiber, or nil for the root.
func (f *Fiber) Parent() *Fiber { return f.parent }

// Child returns the first child.
func (f *Fiber) Child() *Fiber { return f.child }

// Sibling returns the next sibling.
func (f *Fiber) Sibling() *Fiber { return f.sibling }

// Alternate returns the counterpart of the fiber in the other buffer.
func (f *Fiber) Alternate() *Fiber { return f.alternate }

// ElementParent returns the nearest ancestor that bears an element.
func (f *Fiber) ElementParent() *Fiber { return f.elementParent }

// ElementIndex returns the position of the fiber's element among the elements
// of its element parent. It is only meaningful for element-bearing fibers.
func (f *Fiber) ElementIndex() int { return f.elementIndex }

// Geometry returns the result of the latest layout pass.
func (f *Fiber) Geometry() (Geometry, bool) {
	if f.geometry == nil {
		return Geometry{}, false
	}
	return *f.geometry, true
}

// Preferences returns the merged preference store of the fiber.
func (f *Fiber) Preferences() *Preferences { return &f.prefs }

// Traits returns the traits attached to the fiber.
func (f *Fiber) Traits() Traits { return f.traits }

// Children returns the children of the fiber as a slice.
func (f *Fiber) Children() []*Fiber {
	var children []*Fiber
	for c := f.child; c != nil; c = c.sibling {
		children = append(children, c)
	}
	return children
}

func (f *Fiber) hasChild(c *Fiber) bool {
	for n := f.child; n != nil; n = n.sibling {
		if n == c {
			return true
		}
	}
	return false
}

func (f *Fiber) depth() int {
	d := 0
	for n := f.parent; n != nil; n = n.parent {
		d++
	}
	return d
}

func (f *Fiber) String() string {
	if f == nil {
		return "<nil fiber>"
	}
	name := "<nil>"
	if f.typ != nil {
		name = f.typ.String()
		if i := strings.IndexByte(name, '['); i > 0 {
			name = name[:i]
		}
	}
	return name + " " + f.id.String()
}

// Dump returns a multi-line description of the fiber tree rooted at root, one
// fiber per line, indented by depth. Element-bearing fibers show their
// content.
func Dump(root *Fiber) string {
	var sb strings.Builder
	base := root.depth()
	Walk(root, func(f *Fiber) Action {
		sb.WriteString(strings.Repeat("  ", f.depth()-base))
		sb.WriteString(f.String())
		if f.IsElement() {
			fmt.Fprintf(&sb, " %v", f.content)
		}
		sb.WriteByte('\n')
		return Continue
	})
	return sb.String()
}
