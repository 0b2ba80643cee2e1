// Package elemtree implements a retained element tree that renderers keep in
// sync by applying the mutation batches of a [fiber.Reconciler].
package elemtree

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"src.arbor.sh/pkg/fiber"
	"src.arbor.sh/pkg/view"
)

// Content is the content of an element, made from a primitive view.
type Content struct {
	Tag   string
	Attrs []view.Attr
}

// ContentOf makes the content of a primitive view. It panics if v is not a
// [view.Primitive].
func ContentOf(v fiber.View) Content {
	p, ok := v.(view.Primitive)
	if !ok {
		panic(fmt.Sprintf("elemtree: %T is not a primitive view", v))
	}
	return Content{p.Tag(), p.Attrs()}
}

// IsPrimitive reports whether v is a [view.Primitive].
func IsPrimitive(v fiber.View) bool {
	_, ok := v.(view.Primitive)
	return ok
}

// Equal reports whether other is a Content with the same tag and attributes.
func (c Content) Equal(other fiber.Content) bool {
	o, ok := other.(Content)
	return ok && c.Tag == o.Tag && slices.Equal(c.Attrs, o.Attrs)
}

// Attr returns the value of the named attribute.
func (c Content) Attr(name string) (string, bool) {
	for _, a := range c.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (c Content) String() string {
	if len(c.Attrs) == 0 {
		return c.Tag
	}
	var sb strings.Builder
	sb.WriteString(c.Tag)
	sb.WriteByte('(')
	for i, a := range c.Attrs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.Name)
		sb.WriteByte('=')
		sb.WriteString(strconv.Quote(a.Value))
	}
	sb.WriteByte(')')
	return sb.String()
}

// Node is an element of a Tree.
type Node struct {
	content  Content
	parent   *Node
	children []*Node
	geometry fiber.Geometry
}

// NewNode creates a detached node.
func NewNode(c Content) *Node { return &Node{content: c} }

// Content returns the content of the node.
func (n *Node) Content() fiber.Content { return n.content }

// Tag returns the tag of the content.
func (n *Node) Tag() string { return n.content.Tag }

// Attr returns the value of the named attribute of the content.
func (n *Node) Attr(name string) (string, bool) { return n.content.Attr(name) }

// Parent returns the parent of the node, or nil if the node is the root or
// detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the children of the node. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Geometry returns the geometry from the latest Layout mutation.
func (n *Node) Geometry() fiber.Geometry { return n.geometry }

func (n *Node) indexOf(c *Node) int {
	for i, child := range n.children {
		if child == c {
			return i
		}
	}
	return -1
}

// Tree is an element tree anchored at Root.
type Tree struct {
	Root *Node
}

// New creates a Tree with an empty root.
func New() *Tree { return &Tree{Root: NewNode(Content{Tag: "root"})} }

// Apply applies a batch of mutations in order. It panics if a mutation refers
// to an element that is not where the mutation expects it to be.
func (t *Tree) Apply(batch []fiber.Mutation) {
	for _, m := range batch {
		t.apply(m)
	}
}

func (t *Tree) apply(m fiber.Mutation) {
	switch m := m.(type) {
	case fiber.Insert:
		parent, el := t.attached(m.Parent, "insert"), node(m.Element)
		if el.parent != nil || el == t.Root {
			panic("elemtree: insert called with an element that already has a parent")
		}
		if m.Index < 0 || m.Index > len(parent.children) {
			panic(fmt.Sprintf("elemtree: insert index %d out of range [0, %d]", m.Index, len(parent.children)))
		}
		parent.children = slices.Insert(parent.children, m.Index, el)
		el.parent = parent
	case fiber.Remove:
		parent, el := t.attached(m.Parent, "remove"), node(m.Element)
		i := parent.indexOf(el)
		if el.parent != parent || i < 0 {
			panic("elemtree: remove called with an element that doesn't belong to its parent")
		}
		parent.children = slices.Delete(parent.children, i, i+1)
		el.parent = nil
	case fiber.Replace:
		parent, prev, el := t.attached(m.Parent, "replace"), node(m.Previous), node(m.Replacement)
		i := parent.indexOf(prev)
		if prev.parent != parent || i < 0 {
			panic("elemtree: replace called with an element that doesn't belong to its parent")
		}
		if el.parent != nil || el == t.Root {
			panic("elemtree: replace called with a replacement that already has a parent")
		}
		parent.children[i] = el
		el.parent = parent
		prev.parent = nil
	case fiber.Update:
		el := t.attached(m.Previous, "update")
		c, ok := m.Content.(Content)
		if !ok {
			panic(fmt.Sprintf("elemtree: update called with foreign content %T", m.Content))
		}
		el.content = c
	case fiber.Layout:
		t.attached(m.Element, "layout").geometry = m.Geometry
	default:
		panic(fmt.Sprintf("elemtree: unknown mutation %T", m))
	}
}

func node(e fiber.Element) *Node {
	n, ok := e.(*Node)
	if !ok {
		panic(fmt.Sprintf("elemtree: foreign element %T", e))
	}
	return n
}

// Returns the node of e, asserting that it is reachable from the root.
func (t *Tree) attached(e fiber.Element, op string) *Node {
	n := node(e)
	for a := n; a != t.Root; a = a.parent {
		if a == nil {
			panic(fmt.Sprintf("elemtree: %s called with %v, which is not in the tree", op, n.content))
		}
	}
	return n
}

// Dump returns a description of the subtree of n, one element per line,
// indented by depth.
func Dump(n *Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n *Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.content.String())
	if n.geometry != (fiber.Geometry{}) {
		sb.WriteByte(' ')
		sb.WriteString(n.geometry.String())
	}
	sb.WriteByte('\n')
	for _, c := range n.children {
		dump(sb, c, depth+1)
	}
}

// Shape returns the tags of the subtree of n as nested slices: the tag of n
// followed by the shapes of its children. It is useful for comparing element
// trees in tests.
func Shape(n *Node) []any {
	shape := []any{n.Tag()}
	for _, c := range n.children {
		shape = append(shape, Shape(c))
	}
	return shape
}
