package fiber

// A layoutPass computes the geometry of every element-bearing fiber under
// root, which must be the root fiber of the tree, and returns Layout
// mutations for the elements whose geometry changed.
type layoutPass struct {
	caches *caches
	root   *Fiber
	scene  Size
}

type geometrySnapshot struct {
	g  Geometry
	ok bool
}

func (p *layoutPass) run() []Mutation {
	before := make(map[*Fiber]geometrySnapshot)
	Walk(p.root, func(f *Fiber) Action {
		if f.IsElement() {
			g, ok := f.Geometry()
			before[f] = geometrySnapshot{g, ok}
		}
		return Continue
	})

	// Size top-down against the element parent, then place on the way back
	// up.
	w := NewWalker(p.root)
	w.Leave = func(f *Fiber) {
		if f.IsElement() {
			p.place(f)
		}
	}
	w.Run(func(f *Fiber) Action {
		if !f.IsElement() {
			return Continue
		}
		if f == p.root {
			f.geometry = &Geometry{Size: p.scene}
			return Continue
		}
		proposal := ProposalOf(f.elementParent.geometry.Size)
		g := Geometry{Size: p.caches.sizeThatFits(f, proposal)}
		if f.geometry != nil {
			g.Origin = f.geometry.Origin
		}
		f.geometry = &g
		return Continue
	})

	// Places made on the way up used sizes computed before the ancestors were
	// placed; place again from the top with the final sizes.
	Walk(p.root, func(f *Fiber) Action {
		if f.IsElement() {
			p.place(f)
		}
		return Continue
	})

	var mutations []Mutation
	Walk(p.root, func(f *Fiber) Action {
		if !f.IsElement() || f == p.root {
			return Continue
		}
		g := *f.geometry
		if s := before[f]; !s.ok || s.g != g {
			mutations = append(mutations, Layout{f.element, g})
		}
		return Continue
	})
	return mutations
}

func (p *layoutPass) place(f *Fiber) {
	size := f.geometry.Size
	layoutOf(f).PlaceSubviews(Rect{Size: size}, ProposalOf(size), p.caches.subviews(f))
}
