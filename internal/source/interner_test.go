package source

import "testing"

func TestInternerDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.Intern("bar")
	b := in.InternBytes([]byte("bar"))
	if a != b {
		t.Fatalf("expected same id, got %d and %d", a, b)
	}
	if a == NoStringID {
		t.Fatal("non-empty string must not map to NoStringID")
	}
	if got := in.MustLookup(a); got != "bar" {
		t.Fatalf("MustLookup = %q", got)
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Fatal("expected unknown id lookup to fail")
	}
	if in.Intern("") != NoStringID {
		t.Fatal("empty string must map to NoStringID")
	}
}
