package fiber

import "reflect"

// View describes a part of the UI. It is an immutable value; the reconciler
// keeps the mutable bookkeeping for each view in a Fiber.
//
// VisitChildren reports the direct children of the view by calling
// [Visitor.Visit] once per child, in declaration order. Composite views visit
// their body; primitive leaves visit nothing.
type View interface {
	VisitChildren(v *Visitor)
}

// Identified is implemented by views that carry an explicit identity.
type Identified interface {
	View
	ExplicitID() any
}

// Stateful is implemented by views that declare persistent state. The slots
// are bound to storage owned by the view's fiber before its children are
// visited, and are accessed with [UseState].
type Stateful interface {
	View
	StateSlots() []StateSlot
}

// Appearer is implemented by views that want to be notified when their fiber
// is mounted.
type Appearer interface {
	Appear()
}

// Disappearer is implemented by views that want to be notified when their
// fiber is unmounted.
type Disappearer interface {
	Disappear()
}

// TraitWriter is implemented by views that attach trait metadata to the
// nearest element-bearing fiber at or below them.
type TraitWriter interface {
	WriteTraits(t Traits)
}

// PreferenceWriter is implemented by views that contribute preference values
// to the store of their fiber. The writes are applied after the values of the
// fiber's children have been merged.
type PreferenceWriter interface {
	WritePreferences(p *Preferences)
}

// PreferenceObserver is implemented by views that observe merged preference
// values below them. PreferencesChanged is called in a reconciliation in which
// any of the observed values differs from the last delivery; the first
// reconciliation after mount always delivers.
type PreferenceObserver interface {
	ObservedPreferences() []PreferenceKey
	PreferencesChanged(p *Preferences)
}

// Visitor collects the children of a view. It also gives the view access to
// the state stored in its fiber.
type Visitor struct {
	fiber    *Fiber
	children []View
}

// Visit adds a child. A nil child is ignored, which is how conditionally
// absent content is expressed.
func (v *Visitor) Visit(child View) {
	if child == nil {
		return
	}
	v.children = append(v.children, child)
}

// Fiber returns the fiber whose children are being visited.
func (v *Visitor) Fiber() *Fiber { return v.fiber }

// Children visits the children of view without a fiber and returns them. It
// is useful for inspecting view trees outside of reconciliation; state slots
// are not available.
func Children(view View) []View {
	v := &Visitor{}
	view.VisitChildren(v)
	return v.children
}

func typeOf(v View) reflect.Type { return reflect.TypeOf(v) }
