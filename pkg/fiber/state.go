package fiber

import (
	"fmt"
	"sync"
)

// StateSlot declares one persistent state property of a [Stateful] view.
type StateSlot struct {
	Name    string
	Initial any
}

// A box holding the value of one state slot. The box is shared by both fibers
// of a logical node, so the value survives reconciliation; owner is the fiber
// that last bound it and is the fiber scheduled for reconciliation on Set.
type stateBox struct {
	mu    sync.Mutex
	value any
	owner *Fiber
}

func (b *stateBox) get() any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

func (b *stateBox) set(v any) *Fiber {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = v
	return b.owner
}

func (b *stateBox) bind(f *Fiber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.owner = f
}

// State is a typed handle to a state slot.
type State[T any] struct {
	name string
	box  *stateBox
}

// UseState returns the state slot with the given name. It panics if the view
// being visited did not declare the slot.
func UseState[T any](v *Visitor, name string) State[T] {
	if v.fiber == nil {
		panic(fmt.Sprintf("fiber: state %q used outside of reconciliation", name))
	}
	box := v.fiber.state[name]
	if box == nil {
		panic(fmt.Sprintf("fiber: %v has no state slot %q", v.fiber, name))
	}
	return State[T]{name, box}
}

// Get returns the current value. A slot declared with a nil initial value
// reads as the zero value of T.
func (s State[T]) Get() T {
	v := s.box.get()
	if v == nil {
		var zero T
		return zero
	}
	t, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("fiber: state %q holds %T, not %T", s.name, v, t))
	}
	return t
}

// Set stores a new value and schedules the owning fiber for reconciliation.
// Multiple calls before the next flush are coalesced into one pass.
func (s State[T]) Set(v T) {
	if owner := s.box.set(v); owner != nil && owner.reconciler != nil {
		owner.reconciler.schedule(owner)
	}
}

// Update sets the value to f applied to the current value.
func (s State[T]) Update(f func(T) T) { s.Set(f(s.Get())) }
