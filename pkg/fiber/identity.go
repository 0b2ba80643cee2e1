package fiber

import "fmt"

// Identity identifies a fiber among its siblings across reconciliations.
//
// An explicit identity carries a caller-supplied key, which must be a
// comparable value. A structural identity carries the fiber's index among its
// parent's children. Identity alone does not decide whether two fibers are
// the same logical node; their view types must also match.
type Identity struct {
	key      any
	index    int
	explicit bool
}

// Explicit returns an explicit identity with the given key.
func Explicit(key any) Identity { return Identity{key: key, explicit: true} }

// Structural returns a structural identity for the given child index.
func Structural(index int) Identity { return Identity{index: index} }

// IsExplicit reports whether id is an explicit identity.
func (id Identity) IsExplicit() bool { return id.explicit }

// Key returns the key of an explicit identity, or nil.
func (id Identity) Key() any { return id.key }

// Index returns the index of a structural identity, or -1.
func (id Identity) Index() int {
	if id.explicit {
		return -1
	}
	return id.index
}

func (id Identity) String() string {
	if id.explicit {
		return fmt.Sprintf("id(%v)", id.key)
	}
	return fmt.Sprintf("#%d", id.index)
}
