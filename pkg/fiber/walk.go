package fiber

// Action tells a Walker how to proceed after visiting a fiber.
type Action uint8

const (
	// Continue descends into the children of the visited fiber.
	Continue Action = iota
	// StepOver skips the children of the visited fiber and continues with
	// its next sibling.
	StepOver
	// Break stops the walk.
	Break
	// Pause stops the walk so that it can be resumed by calling Run again.
	// The resumed walk descends into the children of the paused fiber.
	Pause
)

// Walker performs a parent-first depth-first traversal of a fiber tree.
//
// The walk does not recurse; it keeps the next fiber to visit and moves
// through the child, sibling and parent links. Children are visited in list
// order. Taking this tree as an example:
//
//	VStack
//	├── HStack
//	│   ├── Text("A")
//	│   └── Text("B")
//	└── Text("C")
//
// the fibers are visited in the order VStack, HStack, A, B, C. After B, the
// walk returns to HStack, whose subtree is then finished, and continues with
// its sibling C. The walk finishes when it returns to the root.
//
// Children may be created by the visit function itself, which is how the
// reconciler builds the tree it walks.
type Walker struct {
	// Leave, if not nil, is called when the subtree of a fiber is finished,
	// which is after all its children have left, or right after the visit if
	// the fiber has no children or was stepped over. It is not called for
	// fibers whose subtree is cut short by Break.
	Leave func(*Fiber)

	root *Fiber
	next *Fiber
}

// NewWalker returns a Walker that starts at root.
func NewWalker(root *Fiber) *Walker { return &Walker{root: root, next: root} }

// Done reports whether the walk has finished or been broken.
func (w *Walker) Done() bool { return w.next == nil }

// Run visits fibers until one of them returns Break or Pause, or the walk
// finishes. It returns the fiber for which Break or Pause was returned, or nil
// if the walk finished.
func (w *Walker) Run(visit func(*Fiber) Action) *Fiber {
	for w.next != nil {
		f := w.next
		switch visit(f) {
		case Continue:
			w.advance(f, true)
		case StepOver:
			w.advance(f, false)
		case Break:
			w.next = nil
			return f
		case Pause:
			w.advance(f, true)
			return f
		}
	}
	return nil
}

func (w *Walker) advance(f *Fiber, descend bool) {
	if descend && f.child != nil {
		w.next = f.child
		return
	}
	for {
		if w.Leave != nil {
			w.Leave(f)
		}
		if f == w.root {
			w.next = nil
			return
		}
		if f.sibling != nil {
			w.next = f.sibling
			return
		}
		f = f.parent
		if f == nil {
			w.next = nil
			return
		}
	}
}

// Walk walks the tree rooted at root and returns the fiber at which visit
// returned Break or Pause, or nil.
func Walk(root *Fiber, visit func(*Fiber) Action) *Fiber {
	return NewWalker(root).Run(visit)
}

// Find returns the first fiber in parent-first order under root, including
// root, that satisfies pred.
func Find(root *Fiber, pred func(*Fiber) bool) *Fiber {
	return Walk(root, func(f *Fiber) Action {
		if pred(f) {
			return Break
		}
		return Continue
	})
}
