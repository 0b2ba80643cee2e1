package fiber

import "testing"

func TestIdentity(t *testing.T) {
	tests := []struct {
		id       Identity
		explicit bool
		key      any
		index    int
		str      string
	}{
		{Explicit("a"), true, "a", -1, "id(a)"},
		{Explicit(0), true, 0, -1, "id(0)"},
		{Structural(0), false, nil, 0, "#0"},
		{Structural(3), false, nil, 3, "#3"},
	}
	for _, test := range tests {
		if got := test.id.IsExplicit(); got != test.explicit {
			t.Errorf("%v.IsExplicit() = %v, want %v", test.id, got, test.explicit)
		}
		if got := test.id.Key(); got != test.key {
			t.Errorf("%v.Key() = %v, want %v", test.id, got, test.key)
		}
		if got := test.id.Index(); got != test.index {
			t.Errorf("%v.Index() = %v, want %v", test.id, got, test.index)
		}
		if got := test.id.String(); got != test.str {
			t.Errorf("String() = %q, want %q", got, test.str)
		}
	}
}

func TestIdentity_Equality(t *testing.T) {
	if Explicit(0) == Structural(0) {
		t.Errorf("explicit key 0 equals structural index 0")
	}
	if Explicit("a") != Explicit("a") {
		t.Errorf("equal explicit keys are not equal identities")
	}
}
