// Package fibertest provides an in-memory renderer and helpers for testing
// views and the reconciler.
package fibertest

import (
	"sync"

	"src.arbor.sh/pkg/elemtree"
	"src.arbor.sh/pkg/fiber"
	"src.arbor.sh/pkg/view"
)

// Renderer is a [fiber.Renderer] that keeps an [elemtree.Tree] and records
// every committed batch. Scheduled flushes are queued until RunLoop is called,
// unless the renderer was created with Immediate.
type Renderer struct {
	Tree *elemtree.Tree

	size      fiber.Size
	dynamic   bool
	immediate bool

	mu      sync.Mutex
	queue   []func()
	batches [][]fiber.Mutation
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize sets the scene size. The default is 80x24.
func WithSize(w, h float64) Option {
	return func(r *Renderer) { r.size = fiber.Size{Width: w, Height: h} }
}

// WithLayout makes the renderer use dynamic layout.
func WithLayout() Option { return func(r *Renderer) { r.dynamic = true } }

// Immediate makes scheduled flushes run synchronously.
func Immediate() Option { return func(r *Renderer) { r.immediate = true } }

// NewRenderer creates a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{Tree: elemtree.New(), size: fiber.Size{Width: 80, Height: 24}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) IsPrimitive(v fiber.View) bool { return elemtree.IsPrimitive(v) }

func (r *Renderer) MakeContent(v fiber.View) fiber.Content { return elemtree.ContentOf(v) }

func (r *Renderer) MakeElement(c fiber.Content) fiber.Element {
	return elemtree.NewNode(c.(elemtree.Content))
}

func (r *Renderer) RootElement() fiber.Element { return r.Tree.Root }

func (r *Renderer) SceneSize() fiber.Size { return r.size }

func (r *Renderer) DynamicLayout() bool { return r.dynamic }

func (r *Renderer) Commit(batch []fiber.Mutation) {
	r.Tree.Apply(batch)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, batch)
}

func (r *Renderer) Schedule(f func()) {
	if r.immediate {
		f()
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, f)
}

// RunLoop runs scheduled functions until there are none left, and returns how
// many were run.
func (r *Renderer) RunLoop() int {
	n := 0
	for {
		r.mu.Lock()
		if len(r.queue) == 0 {
			r.mu.Unlock()
			return n
		}
		f := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		f()
		n++
	}
}

// Pending returns the number of scheduled functions that have not run.
func (r *Renderer) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

// Batches returns all committed batches.
func (r *Renderer) Batches() [][]fiber.Mutation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]fiber.Mutation(nil), r.batches...)
}

// LastBatch returns the latest committed batch, or nil.
func (r *Renderer) LastBatch() []fiber.Mutation {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.batches) == 0 {
		return nil
	}
	return r.batches[len(r.batches)-1]
}

// Harness is a view mounted on a test Renderer.
type Harness struct {
	*Renderer
	Reconciler *fiber.Reconciler
}

// Mount creates a Renderer with the given options and mounts v on it.
func Mount(v fiber.View, opts ...Option) *Harness {
	r := NewRenderer(opts...)
	return &Harness{r, fiber.New(r, v)}
}

// FindByID returns the fiber of the content of the [view.ID] with the given
// key, or nil.
func (h *Harness) FindByID(key any) *fiber.Fiber {
	id := fiber.Explicit(key)
	f := fiber.Find(h.Reconciler.Current(), func(f *fiber.Fiber) bool {
		return f.Identity() == id
	})
	if f == nil {
		return nil
	}
	return f.Child()
}

// ElementByID returns the nearest element at or below the content of the
// [view.ID] with the given key, or nil.
func (h *Harness) ElementByID(key any) *elemtree.Node {
	f := h.FindByID(key)
	if f == nil {
		return nil
	}
	el := fiber.Find(f, (*fiber.Fiber).IsElement)
	if el == nil {
		return nil
	}
	return el.Element().(*elemtree.Node)
}

// Tap presses the first [view.Button] under the [view.ID] with the given
// key, and runs the loop. It panics if there is no such button.
func (h *Harness) Tap(key any) {
	f := h.FindByID(key)
	if f == nil {
		panic("fibertest: no view with id " + fiber.Explicit(key).String())
	}
	b := fiber.Find(f, func(f *fiber.Fiber) bool {
		_, ok := f.View().(view.Button)
		return ok
	})
	if b == nil {
		panic("fibertest: no button under " + f.String())
	}
	b.View().(view.Button).Press()
	h.RunLoop()
}
