package fiber

import "testing"

var (
	sumKey  = NewKey("sum", 0, func(a, b int) int { return a + b })
	lastKey = NewKey[string]("last", "none", nil)
)

func TestPreferences(t *testing.T) {
	var p Preferences
	if got := Value(&p, sumKey); got != 0 {
		t.Errorf("default value = %d, want 0", got)
	}
	if p.Has(sumKey) {
		t.Errorf("Has returned true before any write")
	}
	p.Set(sumKey, 1)
	p.Set(sumKey, 2)
	p.Set(lastKey, "a")
	p.Set(lastKey, "b")
	if got := Value(&p, sumKey); got != 3 {
		t.Errorf("sum = %d, want 3", got)
	}
	if got := Value(&p, lastKey); got != "b" {
		t.Errorf("last = %q, want %q", got, "b")
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}

func TestPreferences_Merge(t *testing.T) {
	var a, b, merged Preferences
	a.Set(sumKey, 1)
	b.Set(sumKey, 2)
	b.Set(lastKey, "b")
	merged.merge(&a)
	merged.merge(&b)
	if got := Value(&merged, sumKey); got != 3 {
		t.Errorf("sum = %d, want 3", got)
	}
	if got := merged.String(); got != "{preference sum: 3, preference last: b}" {
		t.Errorf("String() = %q", got)
	}
	merged.reset()
	if merged.Len() != 0 {
		t.Errorf("Len() = %d after reset, want 0", merged.Len())
	}
}

func TestTraits_Clone(t *testing.T) {
	if Traits(nil).clone() != nil {
		t.Errorf("clone of nil traits is not nil")
	}
	orig := Traits{"a": 1}
	c := orig.clone()
	c["b"] = 2
	if _, ok := orig["b"]; ok {
		t.Errorf("writing to a clone changed the original")
	}
}
