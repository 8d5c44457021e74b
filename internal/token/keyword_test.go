package token

import "testing"

func TestLookupKeywordCaseSensitive(t *testing.T) {
	if k, ok := LookupKeyword("fn"); !ok || k != KwFn {
		t.Fatalf("LookupKeyword(fn) = (%v, %v)", k, ok)
	}
	if _, ok := LookupKeyword("Fn"); ok {
		t.Fatal("keywords must be lowercase only")
	}
	for name, kind := range keywords {
		if kind.String() != name {
			t.Errorf("kind %d prints as %q, want %q", kind, kind.String(), name)
		}
		if !(Token{Kind: kind}).IsKeyword() {
			t.Errorf("%q not reported as keyword", name)
		}
	}
}
