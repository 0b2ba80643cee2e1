package fiber

import (
	"reflect"
	"sync"

	"src.arbor.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[fiber] ")

// Reconciler owns a fiber tree and keeps a renderer's element tree in sync
// with it.
//
// Each update cycle runs a reconcile pass, a layout pass if the renderer uses
// dynamic layout, and commits the resulting batch of mutations. A pass that
// panics is aborted before anything is committed, and the current tree is left
// as it was.
//
// Passes are never run concurrently. State changes may be made from any
// goroutine; they are coalesced and flushed through [Renderer.Schedule].
type Reconciler struct {
	renderer Renderer
	onCommit func([]Mutation)

	root   *Fiber
	caches *caches

	mu        sync.Mutex
	pending   []*Fiber
	scheduled bool
	running   bool
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// OnCommit returns an Option that installs a function called with every batch
// after the renderer has committed it.
func OnCommit(f func([]Mutation)) Option {
	return func(r *Reconciler) { r.onCommit = f }
}

// The view of the root fiber. Its element is the renderer's root element.
type rootView struct{ content View }

func (v rootView) VisitChildren(vis *Visitor) { vis.Visit(v.content) }

func (rootView) SizeThatFits(p Proposal, _ Subviews) Size { return p.Replacing(Size{}) }

func (rootView) PlaceSubviews(bounds Rect, p Proposal, subviews Subviews) {
	for _, s := range subviews {
		s.Place(bounds.Origin, TopLeading, p)
	}
}

// New creates a Reconciler and mounts view, committing the initial batch
// before returning.
func New(renderer Renderer, view View, opts ...Option) *Reconciler {
	r := &Reconciler{renderer: renderer, caches: newCaches()}
	for _, opt := range opts {
		opt(r)
	}
	el := renderer.RootElement()
	if el == nil {
		panic("fiber: renderer has no root element")
	}
	root := rootView{view}
	r.root = &Fiber{
		reconciler: r,
		view:       root,
		typ:        reflect.TypeOf(root),
		id:         Structural(0),
		element:    el,
		content:    el.Content(),
	}
	r.Reconcile(r.root)
	return r
}

// Current returns the root fiber of the current tree. Its only child is the
// fiber of the mounted view.
func (r *Reconciler) Current() *Fiber { return r.root }

// Dump returns a description of the current tree, see [Dump].
func (r *Reconciler) Dump() string { return Dump(r.root) }

// Reconcile runs one update cycle that revisits only the subtree of from.
//
// If from has been superseded by its work-in-progress counterpart, the cycle
// runs from the counterpart. It panics if neither is part of the current tree.
func (r *Reconciler) Reconcile(from *Fiber) {
	target := r.resolve(from)
	if target == nil {
		panic("fiber: reconcile from " + from.String() + ", which is not mounted")
	}
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		panic("fiber: reconcile called during a pass")
	}
	r.running = true
	r.mu.Unlock()

	ok := false
	defer func() {
		r.mu.Lock()
		r.running = false
		again := ok && len(r.pending) > 0 && !r.scheduled
		if again {
			r.scheduled = true
		}
		r.mu.Unlock()
		if again {
			r.renderer.Schedule(r.Flush)
		}
	}()
	r.cycle(target)
	ok = true
}

func (r *Reconciler) cycle(from *Fiber) {
	r.caches.clear()
	wip := r.prepare(from)
	(&reconcilePass{r, r.caches, wip}).run()

	r.link(from, wip)
	committed := false
	defer func() {
		if !committed {
			r.link(wip, from)
		}
	}()

	for a := wip.parent; a != nil; a = a.parent {
		mergePreferences(a)
	}
	for f := wip.elementParent; f != nil && f.elementParent != nil && r.caches.dirty(f); f = f.elementParent {
		r.caches.invalidate(f.elementParent)
	}
	if r.renderer.DynamicLayout() {
		lp := &layoutPass{r.caches, r.root, r.renderer.SceneSize()}
		for _, m := range lp.run() {
			r.caches.append(m)
		}
	}

	batch := r.caches.batch()
	r.renderer.Commit(batch)
	committed = true
	logger.Printf("committed %d mutations from %v", len(batch), wip)

	if !wip.IsElement() && wip.elementParent != nil {
		renumber(wip.elementParent)
	}
	if r.onCommit != nil {
		r.onCommit(batch)
	}
}

// Sets up the work-in-progress counterpart of the root of a pass.
func (r *Reconciler) prepare(from *Fiber) *Fiber {
	w := from.alternate
	if w == nil {
		w = &Fiber{}
	}
	*w = *from
	w.alternate = from
	w.prefs = Preferences{}
	from.alternate = w
	if !w.IsElement() && w.elementParent != nil {
		ep := w.elementParent
		r.caches.elementIndices[ep] = elementOffset(ep, from)
	}
	return w
}

// Puts new in the place of old in the tree.
func (r *Reconciler) link(old, new *Fiber) {
	parent := old.parent
	if parent == nil {
		r.root = new
		return
	}
	if parent.child == old {
		parent.child = new
		return
	}
	for c := parent.child; c != nil; c = c.sibling {
		if c.sibling == old {
			c.sibling = new
			return
		}
	}
	panic("fiber: " + old.String() + " is not a child of its parent")
}

// Returns the number of elements under ep that precede target.
func elementOffset(ep, target *Fiber) int {
	n := 0
	Walk(ep, func(f *Fiber) Action {
		switch {
		case f == ep:
			return Continue
		case f == target:
			return Break
		case f.IsElement():
			n++
			return StepOver
		}
		return Continue
	})
	return n
}

func renumber(ep *Fiber) {
	i := 0
	Walk(ep, func(f *Fiber) Action {
		if f != ep && f.IsElement() {
			f.elementIndex = i
			i++
			return StepOver
		}
		return Continue
	})
}

func (r *Reconciler) schedule(f *Fiber) {
	r.mu.Lock()
	r.pending = append(r.pending, f)
	if r.scheduled || r.running {
		r.mu.Unlock()
		return
	}
	r.scheduled = true
	r.mu.Unlock()
	r.renderer.Schedule(r.Flush)
}

// Flush runs one update cycle covering all pending state changes, from the
// lowest common ancestor of the fibers that own the changed state. Changes
// whose fibers have since been unmounted are dropped.
//
// Flush is normally called through [Renderer.Schedule]. Calling it during a
// pass does nothing; the pending changes are flushed after the pass.
func (r *Reconciler) Flush() {
	r.mu.Lock()
	if r.running {
		r.scheduled = false
		r.mu.Unlock()
		return
	}
	pending := r.pending
	r.pending = nil
	r.scheduled = false
	r.mu.Unlock()

	var fibers []*Fiber
	for _, f := range pending {
		if f = r.resolve(f); f != nil {
			fibers = append(fibers, f)
		}
	}
	if len(fibers) == 0 {
		return
	}
	r.Reconcile(commonAncestor(fibers))
}

// Returns the fiber of the current tree that stands for f, or nil.
func (r *Reconciler) resolve(f *Fiber) *Fiber {
	if f == nil {
		return nil
	}
	if r.isCurrent(f) {
		return f
	}
	if f.alternate != nil && r.isCurrent(f.alternate) {
		return f.alternate
	}
	return nil
}

func (r *Reconciler) isCurrent(f *Fiber) bool {
	for f != r.root {
		parent := f.parent
		if parent == nil || !parent.hasChild(f) {
			return false
		}
		f = parent
	}
	return true
}

func commonAncestor(fibers []*Fiber) *Fiber {
	a := fibers[0]
	for _, b := range fibers[1:] {
		da, db := a.depth(), b.depth()
		for ; da > db; da-- {
			a = a.parent
		}
		for ; db > da; db-- {
			b = b.parent
		}
		for a != b {
			a, b = a.parent, b.parent
		}
	}
	return a
}
