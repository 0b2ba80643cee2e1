package fiber

import "fmt"

// Mutation is one step of a batch committed to a [Renderer]. It is one of
// [Insert], [Remove], [Replace], [Update] and [Layout].
//
// Mutations in a batch must be applied in order; later mutations may refer to
// elements inserted by earlier ones.
type Mutation interface {
	fmt.Stringer
	isMutation()
}

// Insert adds Element as the child of Parent at Index. An element that is
// already attached elsewhere in the tree has been removed by an earlier
// mutation of the same batch.
type Insert struct {
	Element Element
	Parent  Element
	Index   int
}

// Remove detaches Element from Parent, together with all its descendants.
type Remove struct {
	Element Element
	Parent  Element
}

// Replace puts Replacement in the place of Previous under Parent.
type Replace struct {
	Parent      Element
	Previous    Element
	Replacement Element
}

// Update changes the content of an element. Geometry is the last known
// geometry of the element, zero if it has not been laid out.
type Update struct {
	Previous Element
	Content  Content
	Geometry Geometry
}

// Layout changes the geometry of an element. Only emitted when the renderer
// uses dynamic layout.
type Layout struct {
	Element  Element
	Geometry Geometry
}

func (Insert) isMutation()  {}
func (Remove) isMutation()  {}
func (Replace) isMutation() {}
func (Update) isMutation()  {}
func (Layout) isMutation()  {}

func (m Insert) String() string {
	return fmt.Sprintf("insert %v into %v at %d", m.Element.Content(), m.Parent.Content(), m.Index)
}

func (m Remove) String() string {
	return fmt.Sprintf("remove %v from %v", m.Element.Content(), m.Parent.Content())
}

func (m Replace) String() string {
	return fmt.Sprintf("replace %v with %v in %v",
		m.Previous.Content(), m.Replacement.Content(), m.Parent.Content())
}

func (m Update) String() string {
	return fmt.Sprintf("update %v to %v", m.Previous.Content(), m.Content)
}

func (m Layout) String() string {
	return fmt.Sprintf("layout %v at %v", m.Element.Content(), m.Geometry)
}
