package view

import (
	"src.arbor.sh/pkg/fiber"
)

// Group is a list of views without an element of its own. Its content is laid
// out by the nearest primitive ancestor as if it was declared there directly.
type Group []fiber.View

func (g Group) VisitChildren(v *fiber.Visitor) { visitAll(v, g) }

// ID gives its content an explicit identity. A change of key remounts the
// content, discarding its state.
type ID struct {
	Key     any
	Content fiber.View
}

func (id ID) VisitChildren(v *fiber.Visitor) { v.Visit(id.Content) }

func (id ID) ExplicitID() any { return id.Key }

// ForEach produces one row for each item of Data. Each row is keyed by the
// result of ID, or by the index of the item if ID is nil, so that rows keep
// their state when the items are reordered.
type ForEach[T any] struct {
	Data []T
	ID   func(T) any
	Row  func(T) fiber.View
}

func (f ForEach[T]) VisitChildren(v *fiber.Visitor) {
	for i, item := range f.Data {
		var key any = i
		if f.ID != nil {
			key = f.ID(item)
		}
		v.Visit(ID{key, f.Row(item)})
	}
}

// Optional wraps content that may be absent. Content that goes away is
// unmounted, and content that comes back is mounted afresh.
type Optional struct {
	Content fiber.View
}

func (o Optional) VisitChildren(v *fiber.Visitor) { v.Visit(o.Content) }

// If returns an Optional with content v if cond is true, or an empty one.
func If(cond bool, v fiber.View) Optional {
	if cond {
		return Optional{v}
	}
	return Optional{}
}

// Appearance runs callbacks when its content is mounted and unmounted.
type Appearance struct {
	Content     fiber.View
	OnAppear    func()
	OnDisappear func()
}

func (a Appearance) VisitChildren(v *fiber.Visitor) { v.Visit(a.Content) }

func (a Appearance) Appear() {
	if a.OnAppear != nil {
		a.OnAppear()
	}
}

func (a Appearance) Disappear() {
	if a.OnDisappear != nil {
		a.OnDisappear()
	}
}

// OnAppear returns content with a callback run when it is mounted.
func OnAppear(content fiber.View, f func()) Appearance {
	return Appearance{Content: content, OnAppear: f}
}

// OnDisappear returns content with a callback run when it is unmounted.
func OnDisappear(content fiber.View, f func()) Appearance {
	return Appearance{Content: content, OnDisappear: f}
}

// Preference writes a preference value, which is combined with the values
// written by its content.
type Preference[T any] struct {
	Key     *fiber.Key[T]
	Value   T
	Content fiber.View
}

func (p Preference[T]) VisitChildren(v *fiber.Visitor) { v.Visit(p.Content) }

func (p Preference[T]) WritePreferences(prefs *fiber.Preferences) { prefs.Set(p.Key, p.Value) }

// OnPreferenceChange calls Action with the combined value of a preference
// written below it, whenever the value changes.
type OnPreferenceChange[T any] struct {
	Key     *fiber.Key[T]
	Action  func(T)
	Content fiber.View
}

func (o OnPreferenceChange[T]) VisitChildren(v *fiber.Visitor) { v.Visit(o.Content) }

func (o OnPreferenceChange[T]) ObservedPreferences() []fiber.PreferenceKey {
	return []fiber.PreferenceKey{o.Key}
}

func (o OnPreferenceChange[T]) PreferencesChanged(prefs *fiber.Preferences) {
	if o.Action != nil {
		o.Action(fiber.Value(prefs, o.Key))
	}
}

// Trait attaches a trait to the nearest element at or below its content.
type Trait struct {
	Key     any
	Value   any
	Content fiber.View
}

func (t Trait) VisitChildren(v *fiber.Visitor) { v.Visit(t.Content) }

func (t Trait) WriteTraits(traits fiber.Traits) { traits[t.Key] = t.Value }
