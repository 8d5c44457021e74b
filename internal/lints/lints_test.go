package lints

import (
	"errors"
	"testing"

	"ferrite/internal/diag"
	"ferrite/internal/lint"
)

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	l, ok := reg.Lookup("redundant_field_names")
	if !ok {
		t.Fatalf("redundant_field_names is not registered")
	}
	if l.Category != lint.CategoryStyle || l.Default != lint.Warn || l.Code != diag.LintRedundantFieldNames {
		t.Fatalf("unexpected descriptor: %+v", l)
	}
	if l.Description != "checks for fields in struct literals where shorthands could be used" {
		t.Fatalf("description = %q", l.Description)
	}
}

func TestRegisterTwiceFails(t *testing.T) {
	reg := lint.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := Register(reg); !errors.Is(err, lint.ErrDuplicateLint) {
		t.Fatalf("expected ErrDuplicateLint, got %v", err)
	}
}
