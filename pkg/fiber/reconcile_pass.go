package fiber

import "reflect"

// A reconcilePass builds the work-in-progress subtree under root from the view
// values, diffing against the current fibers reached through alternate links.
// Mutations are accumulated in caches and only committed by the Reconciler.
//
// The root of the pass is a work-in-progress fiber whose view is already
// known; it is not itself inserted, updated or renumbered.
type reconcilePass struct {
	r      *Reconciler
	caches *caches
	root   *Fiber
}

func (p *reconcilePass) run() {
	w := NewWalker(p.root)
	w.Leave = p.leave
	w.Run(p.visit)
}

func (p *reconcilePass) visit(f *Fiber) Action {
	if f != p.root {
		p.enter(f)
	}
	writeTraits(f)
	bindState(f)
	p.reconcileChildren(f)
	return Continue
}

func (p *reconcilePass) enter(f *Fiber) {
	ep := f.elementParent
	if f.IsElement() {
		f.elementIndex = p.caches.nextElementIndex(ep)
	}
	old := f.alternate
	if old == nil {
		p.caches.invalidate(f)
		if a, ok := f.view.(Appearer); ok {
			a.Appear()
		}
		if !f.IsElement() {
			return
		}
		prev := f.replaced
		f.replaced = nil
		switch {
		case prev == nil:
			p.caches.append(Insert{f.element, ep.element, f.elementIndex})
		case p.caches.inOrder(ep, prev.elementIndex):
			p.caches.append(Replace{ep.element, prev.element, f.element})
		default:
			p.caches.prepend(Remove{prev.element, ep.element})
			p.caches.append(Insert{f.element, ep.element, f.elementIndex})
		}
		return
	}
	if !f.IsElement() {
		return
	}
	if !p.caches.inOrder(ep, old.elementIndex) {
		p.caches.invalidate(f)
		p.caches.prepend(Remove{f.element, ep.element})
		p.caches.append(Insert{f.element, ep.element, f.elementIndex})
	}
	if !f.content.Equal(f.element.Content()) {
		p.caches.invalidate(f)
		var g Geometry
		if f.geometry != nil {
			g = *f.geometry
		}
		p.caches.append(Update{f.element, f.content, g})
	}
}

func writeTraits(f *Fiber) {
	f.traits = nil
	if parent := f.parent; parent != nil && !parent.IsElement() {
		f.traits = parent.traits.clone()
	}
	if tw, ok := f.view.(TraitWriter); ok {
		if f.traits == nil {
			f.traits = make(Traits)
		}
		tw.WriteTraits(f.traits)
	}
}

func bindState(f *Fiber) {
	s, ok := f.view.(Stateful)
	if !ok {
		return
	}
	if f.state == nil {
		f.state = make(map[string]*stateBox)
	}
	for _, slot := range s.StateSlots() {
		box := f.state[slot.Name]
		if box == nil {
			box = &stateBox{value: slot.Initial}
			f.state[slot.Name] = box
		}
		box.bind(f)
	}
}

func (p *reconcilePass) reconcileChildren(f *Fiber) {
	v := &Visitor{fiber: f}
	f.view.VisitChildren(v)
	views := v.children

	old := f.alternate
	var prevs []*Fiber
	if old != nil {
		prevs = old.Children()
	}
	index := make(map[Identity]int, len(prevs))
	for j := len(prevs) - 1; j >= 0; j-- {
		index[prevs[j].id] = j
	}
	used := make([]bool, len(prevs))

	ep := f
	if !f.IsElement() {
		ep = f.elementParent
	}
	changed := len(views) != len(prevs)
	f.child = nil
	var last *Fiber
	for i, view := range views {
		id := identityOf(view, i)
		var c *Fiber
		if j, ok := index[id]; ok && !used[j] {
			used[j] = true
			prev := prevs[j]
			if p.matches(prev, view) {
				c = p.reuse(prev, view, f, ep)
				if j != i {
					changed = true
				}
			} else {
				changed = true
				c = p.mount(view, id, f, ep)
				if c.IsElement() && prev.IsElement() &&
					(prev.elementParent == ep || prev.elementParent == ep.alternate) {
					c.replaced = prev
					p.disappear(prev)
				} else {
					p.orphan(prev)
				}
			}
		} else {
			changed = true
			c = p.mount(view, id, f, ep)
		}
		if last == nil {
			f.child = c
		} else {
			last.sibling = c
		}
		last = c
	}
	for j, prev := range prevs {
		if !used[j] {
			changed = true
			p.orphan(prev)
		}
	}
	if changed && old != nil {
		p.caches.invalidate(f)
	}
}

func identityOf(v View, i int) Identity {
	if iv, ok := v.(Identified); ok {
		return Explicit(iv.ExplicitID())
	}
	return Structural(i)
}

func (p *reconcilePass) matches(prev *Fiber, v View) bool {
	return prev.typ == typeOf(v) && prev.IsElement() == p.r.renderer.IsPrimitive(v)
}

// Builds the work-in-progress counterpart of prev, recycling the fiber from
// the cycle before when there is one.
func (p *reconcilePass) reuse(prev *Fiber, v View, parent, ep *Fiber) *Fiber {
	w := prev.alternate
	if w == nil {
		w = &Fiber{}
	}
	*w = Fiber{
		reconciler:    p.r,
		view:          v,
		typ:           prev.typ,
		id:            prev.id,
		element:       prev.element,
		parent:        parent,
		alternate:     prev,
		elementParent: ep,
		elementIndex:  prev.elementIndex,
		state:         prev.state,
		geometry:      prev.geometry,
		observed:      prev.observed,
	}
	if w.element != nil {
		w.content = p.r.renderer.MakeContent(v)
	}
	prev.alternate = w
	return w
}

func (p *reconcilePass) mount(v View, id Identity, parent, ep *Fiber) *Fiber {
	f := &Fiber{
		reconciler:    p.r,
		view:          v,
		typ:           typeOf(v),
		id:            id,
		parent:        parent,
		elementParent: ep,
	}
	if p.r.renderer.IsPrimitive(v) {
		f.content = p.r.renderer.MakeContent(v)
		f.element = p.r.renderer.MakeElement(f.content)
		if f.element == nil {
			panic("fiber: renderer made a nil element for " + f.String())
		}
	}
	return f
}

// Fires disappear callbacks over the subtree of an unmounted fiber and drops
// its layout caches.
func (p *reconcilePass) disappear(root *Fiber) {
	Walk(root, func(f *Fiber) Action {
		if d, ok := f.view.(Disappearer); ok {
			d.Disappear()
		}
		p.caches.forget(f)
		return Continue
	})
}

// Unmounts the subtree of root. Only the topmost elements are removed; their
// descendants go with them.
func (p *reconcilePass) orphan(root *Fiber) {
	p.disappear(root)
	Walk(root, func(f *Fiber) Action {
		if f.IsElement() {
			p.caches.prepend(Remove{f.element, f.elementParent.element})
			return StepOver
		}
		return Continue
	})
}

func (p *reconcilePass) leave(f *Fiber) {
	mergePreferences(f)
	if p.caches.dirty(f) && f.elementParent != nil {
		p.caches.invalidate(f.elementParent)
	}
	if !f.IsElement() {
		p.caches.undirty(f)
	}
}

// Rebuilds the preference store of f from its children and its own writes,
// and notifies the view of f if it observes a value that changed.
func mergePreferences(f *Fiber) {
	f.prefs.reset()
	for c := f.child; c != nil; c = c.sibling {
		f.prefs.merge(&c.prefs)
	}
	if w, ok := f.view.(PreferenceWriter); ok {
		w.WritePreferences(&f.prefs)
	}
	o, ok := f.view.(PreferenceObserver)
	if !ok {
		return
	}
	keys := o.ObservedPreferences()
	changed := f.observed == nil
	for _, k := range keys {
		seen, ok := f.observed[k]
		if !ok || !reflect.DeepEqual(seen, f.prefs.Get(k)) {
			changed = true
			break
		}
	}
	if !changed {
		return
	}
	observed := make(map[PreferenceKey]any, len(keys))
	for _, k := range keys {
		observed[k] = f.prefs.Get(k)
	}
	f.observed = observed
	o.PreferencesChanged(&f.prefs)
}
