package fiber

// Content is the renderer's description of a primitive view. The reconciler
// compares contents to decide whether an element needs an [Update].
type Content interface {
	Equal(other Content) bool
}

// Element is a renderer-owned handle to a node in its element tree. Elements
// are compared with ==, so implementations are normally pointers.
type Element interface {
	// Content returns the content the element currently displays.
	Content() Content
}

// Renderer is the backend a Reconciler drives.
type Renderer interface {
	// IsPrimitive reports whether the view is a leaf the renderer turns
	// directly into an element. Children of a primitive view are still
	// reconciled, and their elements become children of its element.
	IsPrimitive(v View) bool
	// MakeContent creates the content of a primitive view.
	MakeContent(v View) Content
	// MakeElement creates a detached element displaying c.
	MakeElement(c Content) Element
	// RootElement returns the element anchoring the tree.
	RootElement() Element
	// SceneSize returns the size proposed to the top of the tree.
	SceneSize() Size
	// DynamicLayout reports whether the reconciler should compute layout and
	// emit Layout mutations.
	DynamicLayout() bool
	// Commit applies a batch of mutations in order.
	Commit(batch []Mutation)
	// Schedule arranges for f to be called later from the goroutine that
	// drives the renderer. Calling f directly is a valid implementation.
	Schedule(f func())
}
