package fiber

// Memoized sizes of one element, shared by both fibers of a logical node.
type layoutCache struct {
	sizes map[Proposal]Size
	dirty bool
}

// Bookkeeping shared by the passes of one update cycle.
//
// Everything except layoutCaches is cleared at the start of each cycle. The
// layout caches persist across cycles; only their dirty flag forces sizes to
// be recomputed.
type caches struct {
	// Next element index, keyed by element parent.
	elementIndices map[*Fiber]int
	// One past the old element index of the last element kept in place, keyed
	// by element parent.
	kept map[*Fiber]int

	layoutCaches   map[*Fiber]*layoutCache
	layoutSubviews map[*Fiber]Subviews

	mutations []Mutation
	// Removals in discovery order. They are applied in reverse, before all
	// other mutations.
	removals []Mutation
}

func newCaches() *caches {
	return &caches{layoutCaches: make(map[*Fiber]*layoutCache)}
}

func (c *caches) clear() {
	c.elementIndices = make(map[*Fiber]int)
	c.kept = make(map[*Fiber]int)
	c.layoutSubviews = make(map[*Fiber]Subviews)
	c.mutations = nil
	c.removals = nil
}

func (c *caches) nextElementIndex(parent *Fiber) int {
	i := c.elementIndices[parent]
	c.elementIndices[parent] = i + 1
	return i
}

// Reports whether an element that was at oldIndex under parent can stay where
// it is, given the elements kept so far in this cycle. An element that cannot
// stay must be moved.
func (c *caches) inOrder(parent *Fiber, oldIndex int) bool {
	if oldIndex+1 > c.kept[parent] {
		c.kept[parent] = oldIndex + 1
		return true
	}
	return false
}

func (c *caches) layoutCache(f *Fiber) *layoutCache {
	if lc, ok := c.layoutCaches[f]; ok {
		return lc
	}
	if f.alternate != nil {
		if lc, ok := c.layoutCaches[f.alternate]; ok {
			c.layoutCaches[f] = lc
			return lc
		}
	}
	lc := &layoutCache{}
	c.layoutCaches[f] = lc
	return lc
}

func (c *caches) invalidate(f *Fiber) { c.layoutCache(f).dirty = true }

func (c *caches) dirty(f *Fiber) bool { return c.layoutCache(f).dirty }

func (c *caches) undirty(f *Fiber) {
	if lc := c.layoutCaches[f]; lc != nil {
		lc.dirty = false
	}
}

func (c *caches) forget(f *Fiber) {
	delete(c.layoutCaches, f)
	if f.alternate != nil {
		delete(c.layoutCaches, f.alternate)
	}
}

func (c *caches) append(m Mutation) { c.mutations = append(c.mutations, m) }

func (c *caches) prepend(m Mutation) { c.removals = append(c.removals, m) }

func (c *caches) batch() []Mutation {
	batch := make([]Mutation, 0, len(c.removals)+len(c.mutations))
	for i := len(c.removals) - 1; i >= 0; i-- {
		batch = append(batch, c.removals[i])
	}
	return append(batch, c.mutations...)
}

// Returns the element-bearing descendants of f that are not nested inside
// another element, in traversal order.
func (c *caches) subviews(f *Fiber) Subviews {
	if s, ok := c.layoutSubviews[f]; ok {
		return s
	}
	var s Subviews
	Walk(f, func(n *Fiber) Action {
		if n == f {
			return Continue
		}
		if n.IsElement() {
			s = append(s, Subview{n, c})
			return StepOver
		}
		return Continue
	})
	c.layoutSubviews[f] = s
	return s
}

func (c *caches) sizeThatFits(f *Fiber, p Proposal) Size {
	lc := c.layoutCache(f)
	if lc.dirty || lc.sizes == nil {
		lc.sizes = make(map[Proposal]Size)
		lc.dirty = false
	}
	if s, ok := lc.sizes[p]; ok {
		return s
	}
	s := layoutOf(f).SizeThatFits(p, c.subviews(f))
	lc.sizes[p] = s
	return s
}
