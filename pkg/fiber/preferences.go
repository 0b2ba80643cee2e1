package fiber

import "fmt"

// PreferenceKey identifies a preference. Values flow from descendants to
// ancestors and are combined with Reduce.
type PreferenceKey interface {
	DefaultValue() any
	Reduce(value, next any) any
}

// Key is a typed PreferenceKey. Keys are compared by pointer, so each key
// should be created once, usually as a package-level variable.
type Key[T any] struct {
	name   string
	def    T
	reduce func(value, next T) T
}

// NewKey creates a preference key. If reduce is nil, later values replace
// earlier ones.
func NewKey[T any](name string, def T, reduce func(value, next T) T) *Key[T] {
	if reduce == nil {
		reduce = func(_, next T) T { return next }
	}
	return &Key[T]{name, def, reduce}
}

func (k *Key[T]) DefaultValue() any { return k.def }

func (k *Key[T]) Reduce(value, next any) any { return k.reduce(value.(T), next.(T)) }

func (k *Key[T]) String() string { return "preference " + k.name }

// Preferences is the preference store of a fiber.
type Preferences struct {
	values map[PreferenceKey]any
	// Keys in insertion order, so that merging is deterministic.
	keys []PreferenceKey
}

// Set combines v into the stored value for k. When k has no value yet, v is
// stored as is.
func (p *Preferences) Set(k PreferenceKey, v any) {
	if p.values == nil {
		p.values = make(map[PreferenceKey]any)
	}
	if old, ok := p.values[k]; ok {
		p.values[k] = k.Reduce(old, v)
		return
	}
	p.values[k] = v
	p.keys = append(p.keys, k)
}

// Get returns the value for k, or the default value of k.
func (p *Preferences) Get(k PreferenceKey) any {
	if p != nil {
		if v, ok := p.values[k]; ok {
			return v
		}
	}
	return k.DefaultValue()
}

// Has reports whether any value has been written for k.
func (p *Preferences) Has(k PreferenceKey) bool {
	if p == nil {
		return false
	}
	_, ok := p.values[k]
	return ok
}

// Len returns the number of keys with a value.
func (p *Preferences) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

func (p *Preferences) reset() {
	p.values = nil
	p.keys = nil
}

func (p *Preferences) merge(other *Preferences) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		p.Set(k, other.values[k])
	}
}

func (p *Preferences) String() string {
	if p.Len() == 0 {
		return "{}"
	}
	s := "{"
	for i, k := range p.keys {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%v: %v", k, p.values[k])
	}
	return s + "}"
}

// Value returns the typed value for k in p.
func Value[T any](p *Preferences, k *Key[T]) T { return p.Get(k).(T) }

// Traits is per-fiber metadata written by [TraitWriter] views. Traits written
// on pass-through fibers are passed down to the nearest element-bearing
// descendant, where layouts can read them through [Subview.Trait].
type Traits map[any]any

func (t Traits) clone() Traits {
	if len(t) == 0 {
		return nil
	}
	c := make(Traits, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}
