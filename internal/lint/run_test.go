package lint

import (
	"testing"

	"ferrite/internal/diag"
	"ferrite/internal/source"
)

func TestRunDispatchesEveryNode(t *testing.T) {
	p := parse(t, "fn f() { let a = S { x: 1 }; let b = T { y: S { z: 2 } }; }")
	reg := NewRegistry()
	pass := newRecordingPass("rec")
	_ = reg.Register(pass)

	diags := Collect(reg, p.tree, p.file, p.src, Options{})
	if len(pass.seen) != int(p.tree.Exprs.Arena.Len()) {
		t.Fatalf("pass saw %d nodes, tree has %d", len(pass.seen), p.tree.Exprs.Arena.Len())
	}
	if len(diags) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(diags))
	}
	if diags[0].Severity != diag.SevWarning {
		t.Fatalf("default warn must map to warning severity")
	}
	fix := diags[0].Fixes[0]
	if fix.Applicability != diag.FixApplicabilityAlwaysSafe || fix.Edits[0].OldText != "S { x: 1 }" {
		t.Fatalf("unexpected fix: %+v", fix)
	}
}

func TestRunLevels(t *testing.T) {
	p := parse(t, "fn f() { S { x: 1 }; }")
	reg := NewRegistry()
	pass := newRecordingPass("rec")
	_ = reg.Register(pass)

	var deny Levels
	_ = deny.Set(reg, "rec", Deny)
	diags := Collect(reg, p.tree, p.file, p.src, Options{Levels: deny})
	if len(diags) != 1 || diags[0].Severity != diag.SevError {
		t.Fatalf("deny must produce an error: %+v", diags)
	}

	var allow Levels
	_ = allow.Set(reg, "rec", Allow)
	pass.seen = nil
	if diags := Collect(reg, p.tree, p.file, p.src, Options{Levels: allow}); len(diags) != 0 {
		t.Fatalf("allow must suppress, got %d", len(diags))
	}
	if len(pass.seen) != 0 {
		t.Fatalf("a fully allowed pass must not run")
	}
}

func TestRunSuppressedAndEarlyStop(t *testing.T) {
	p := parse(t, "fn f() { S { x: 1 }; S { x: 2 }; S { x: 3 }; }")
	reg := NewRegistry()
	_ = reg.Register(newRecordingPass("rec"))

	opts := Options{Suppressed: func(_ *Lint, sp source.Span) bool {
		text, _ := p.src.Slice(sp)
		return text == "S { x: 2 }"
	}}
	if diags := Collect(reg, p.tree, p.file, p.src, opts); len(diags) != 2 {
		t.Fatalf("expected 2 unsuppressed diagnostics, got %d", len(diags))
	}

	n := 0
	for range Run(reg, p.tree, p.file, p.src, Options{}) {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("expected early stop")
	}
}
