package redundantfieldnames

import (
	"strings"
	"testing"

	"ferrite/internal/ast"
	"ferrite/internal/diag"
	"ferrite/internal/fix"
	"ferrite/internal/lint"
	"ferrite/internal/testkit"
)

func newRegistry(t *testing.T) *lint.Registry {
	t.Helper()
	reg := lint.NewRegistry()
	if err := reg.Register(Pass{}); err != nil {
		t.Fatalf("register: %v", err)
	}
	reg.Freeze()
	return reg
}

func run(t *testing.T, p testkit.Parsed, opts lint.Options) []diag.Diagnostic {
	t.Helper()
	return lint.Collect(newRegistry(t), p.Tree, p.File, p.Source, opts)
}

// structLiterals returns every struct literal of the tree in allocation order.
func structLiterals(p testkit.Parsed) []ast.ExprID {
	var out []ast.ExprID
	for i := uint32(1); i <= p.Tree.Exprs.Arena.Len(); i++ {
		id := ast.ExprID(i)
		if kind, ok := p.Tree.Exprs.Kind(id); ok && kind == ast.ExprStruct {
			out = append(out, id)
		}
	}
	return out
}

// applyAll applies the preferred fix of every diagnostic to the source.
func applyAll(t *testing.T, p testkit.Parsed, diags []diag.Diagnostic) string {
	t.Helper()
	var edits []diag.TextEdit
	for _, d := range diags {
		if len(d.Fixes) == 0 {
			t.Fatalf("diagnostic without fix: %+v", d)
		}
		edits = append(edits, d.Fixes[0].Edits...)
	}
	out, err := fix.ApplyEdits(p.Source.Content, edits)
	if err != nil {
		t.Fatalf("apply edits: %v", err)
	}
	return string(out)
}

func TestFixtures(t *testing.T) {
	for _, fx := range testkit.LoadFixtures(t, "testdata") {
		t.Run(fx.Name, func(t *testing.T) {
			input, _ := fx.File("input.fe")
			p := testkit.Parse(t, "input.fe", input)
			diags := run(t, p, lint.Options{})

			got := strings.TrimRight(diag.FormatShortDiagnostics(diags, p.FileSet, false), "\n")
			if got != fx.Want() {
				t.Fatalf("%s\ndiagnostics mismatch:\n--- got ---\n%s\n--- want ---\n%s", fx.Comment, got, fx.Want())
			}

			want, ok := fx.File("fixed.fe")
			if !ok {
				want = input
			}
			fixed := applyAll(t, p, diags)
			if fixed != want {
				t.Fatalf("fixed source mismatch:\n--- got ---\n%s\n--- want ---\n%s", fixed, want)
			}

			// после исправления правило больше не срабатывает
			again := testkit.Parse(t, "input.fe", fixed)
			if rest := run(t, again, lint.Options{}); len(rest) != 0 {
				t.Fatalf("fix is not idempotent, still %d diagnostics:\n%s", len(rest),
					diag.FormatShortDiagnostics(rest, again.FileSet, false))
			}
		})
	}
}

func TestDiagnosticShape(t *testing.T) {
	p := testkit.Parse(t, "shape.fe", "fn f() { let x = Foo { a: a, b: 2, c: c }; }")
	diags := run(t, p, lint.Options{})
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}

	for i, name := range []string{"a", "c"} {
		d := diags[i]
		if d.Code != diag.LintRedundantFieldNames || d.Severity != diag.SevWarning {
			t.Fatalf("diag %d: code %s severity %s", i, d.Code.ID(), d.Severity)
		}
		if d.Message != "redundant field names in struct initialization" {
			t.Fatalf("diag %d: message %q", i, d.Message)
		}
		text, _ := p.Source.Slice(d.Primary)
		if text != name+": "+name {
			t.Fatalf("diag %d: span covers %q", i, text)
		}
		if len(d.Fixes) != 1 {
			t.Fatalf("diag %d: expected one fix, got %d", i, len(d.Fixes))
		}
		f := d.Fixes[0]
		if f.Title != "replace it with" || !f.IsPreferred || f.Applicability != diag.FixApplicabilityAlwaysSafe {
			t.Fatalf("diag %d: unexpected fix %+v", i, f)
		}
		if len(f.Edits) != 1 || f.Edits[0].Span != d.Primary || f.Edits[0].NewText != name {
			t.Fatalf("diag %d: unexpected edit %+v", i, f.Edits)
		}
		if f.Edits[0].OldText != text {
			t.Fatalf("diag %d: guard %q, want %q", i, f.Edits[0].OldText, text)
		}
	}
	if diags[0].Primary.Start >= diags[1].Primary.Start {
		t.Fatalf("diagnostics must follow field order")
	}
}

func TestLevels(t *testing.T) {
	p := testkit.Parse(t, "levels.fe", "fn f() { let x = Foo { a: a }; }")
	reg := newRegistry(t)

	var deny lint.Levels
	if err := deny.Set(reg, Lint.Name, lint.Deny); err != nil {
		t.Fatalf("set deny: %v", err)
	}
	diags := lint.Collect(reg, p.Tree, p.File, p.Source, lint.Options{Levels: deny})
	if len(diags) != 1 || diags[0].Severity != diag.SevError {
		t.Fatalf("deny must report an error, got %+v", diags)
	}

	var allow lint.Levels
	if err := allow.Set(reg, Lint.Name, lint.Allow); err != nil {
		t.Fatalf("set allow: %v", err)
	}
	if diags := lint.Collect(reg, p.Tree, p.File, p.Source, lint.Options{Levels: allow}); len(diags) != 0 {
		t.Fatalf("allow must silence the lint, got %d", len(diags))
	}
}

func TestMatchStructLiteral(t *testing.T) {
	p := testkit.Parse(t, "match.fe", "fn f() { let x = Foo { a: 1, b }; let y = a + b; }")

	lits := structLiterals(p)
	if len(lits) != 1 {
		t.Fatalf("expected one struct literal, got %d", len(lits))
	}
	fields, ok := matchStructLiteral(p.Tree.Exprs, lits[0])
	if !ok || len(fields) != 2 {
		t.Fatalf("struct literal must match with 2 fields, got %v %d", ok, len(fields))
	}
	if !fields[1].Shorthand || fields[0].Shorthand {
		t.Fatalf("shorthand flags wrong: %+v", fields)
	}

	for i := uint32(1); i <= p.Tree.Exprs.Arena.Len(); i++ {
		id := ast.ExprID(i)
		if id == lits[0] {
			continue
		}
		if _, ok := matchStructLiteral(p.Tree.Exprs, id); ok {
			kind, _ := p.Tree.Exprs.Kind(id)
			t.Fatalf("%s %q must not match", kind, p.Text(id))
		}
	}
	if _, ok := matchStructLiteral(p.Tree.Exprs, ast.NoExprID); ok {
		t.Fatalf("NoExprID must not match")
	}
	if _, ok := matchStructLiteral(p.Tree.Exprs, ast.ExprID(p.Tree.Exprs.Arena.Len()+10)); ok {
		t.Fatalf("unknown id must not match")
	}
}

func TestIsRedundantFieldName(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  bool
	}{
		{"same name", "bar: bar", true},
		{"shorthand", "bar", false},
		{"qualified", "bar: a::bar", false},
		{"global", "bar: ::bar", false},
		{"global same single segment", "bar: ::bar::bar", false},
		{"different name", "bar: baz", false},
		{"case differs", "bar: Bar", false},
		{"prefix", "bar: bar_", false},
		{"call", "bar: bar()", false},
		{"group", "bar: (bar)", false},
		{"member", "bar: bar.bar", false},
		{"literal", "bar: 1", false},
		{"reference", "bar: &bar", false},
		{"underscore names", "_bar_1: _bar_1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testkit.Parse(t, "field.fe", "fn f() { let x = Foo { "+tt.field+" }; }")
			lits := structLiterals(p)
			if len(lits) != 1 {
				t.Fatalf("expected one struct literal, got %d", len(lits))
			}
			fields, _ := matchStructLiteral(p.Tree.Exprs, lits[0])
			if len(fields) != 1 {
				t.Fatalf("expected one field, got %d", len(fields))
			}
			if got := isRedundantFieldName(p.Tree.Exprs, p.Tree.StringsInterner, fields[0]); got != tt.want {
				t.Fatalf("isRedundantFieldName(%q) = %v, want %v", tt.field, got, tt.want)
			}
		})
	}
}

func TestDeterministic(t *testing.T) {
	const src = "fn f() { let x = Outer { a: a, inner: Inner { b: b, c: c }, d: d }; }"
	var first string
	for i := 0; i < 5; i++ {
		p := testkit.Parse(t, "det.fe", src)
		got := diag.FormatShortDiagnostics(run(t, p, lint.Options{}), p.FileSet, true)
		if i == 0 {
			first = got
			continue
		}
		if got != first {
			t.Fatalf("run %d differs:\n%s\nvs\n%s", i, got, first)
		}
	}
	if strings.Count(first, "LNT5001") != 4 {
		t.Fatalf("expected 4 diagnostics:\n%s", first)
	}
}

func TestLintDescriptor(t *testing.T) {
	if Lint.Name != "redundant_field_names" || Lint.Category != lint.CategoryStyle || Lint.Default != lint.Warn {
		t.Fatalf("unexpected descriptor: %+v", Lint)
	}
	if Lint.Description != "checks for fields in struct literals where shorthands could be used" {
		t.Fatalf("description %q", Lint.Description)
	}
	if !strings.Contains(Lint.Doc, "Foo { bar }") {
		t.Fatalf("doc must show the shorthand form")
	}
}
