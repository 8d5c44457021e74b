package fix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ferrite/internal/diag"
	"ferrite/internal/source"
)

func TestGatherCandidatesSkipsDuplicateFixIDs(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.fe", []byte(""))
	span := source.Span{File: fileID, Start: 0, End: 0}

	diagnostics := []diag.Diagnostic{{
		Code:    diag.SynExpectSemicolon,
		Message: "missing semicolon",
		Primary: span,
		Fixes: []diag.Fix{
			InsertText("insert semicolon", span, ";", WithID("fix-duplicate")),
			InsertText("insert semicolon again", span, ";", WithID("fix-duplicate")),
		},
	}}

	candidates, skips := gatherCandidates(diagnostics)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if len(skips) != 1 || skips[0].ID != "fix-duplicate" || skips[0].Reason != "duplicate fix id" {
		t.Fatalf("unexpected skips: %+v", skips)
	}
}

func redundantDiag(file source.FileID, start, end uint32, old, repl string) diag.Diagnostic {
	sp := source.Span{File: file, Start: start, End: end}
	return diag.New(diag.SevWarning, diag.LintRedundantFieldNames, sp, "redundant field names in struct initialization").
		WithFixSuggestion(ReplaceSpan("replace it with", sp, repl, old))
}

func TestApplyAllDryRun(t *testing.T) {
	src := "let f = Foo { a: a, b: 2, c: c };"
	fs := source.NewFileSet()
	id := fs.AddVirtual("mem.fe", []byte(src))

	diags := []diag.Diagnostic{
		redundantDiag(id, 26, 30, "c: c", "c"),
		redundantDiag(id, 14, 18, "a: a", "a"),
	}
	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 2 || len(res.FileChanges) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got, want := string(res.FileChanges[0].Content), "let f = Foo { a, b: 2, c };"; got != want {
		t.Fatalf("content = %q, want %q", got, want)
	}
	if res.Applied[0].Code != diag.LintRedundantFieldNames {
		t.Fatalf("unexpected applied code")
	}
}

func TestApplyOnceAndByID(t *testing.T) {
	src := "Foo { a: a, c: c }"
	fs := source.NewFileSet()
	id := fs.AddVirtual("mem.fe", []byte(src))
	diags := []diag.Diagnostic{
		redundantDiag(id, 6, 10, "a: a", "a"),
		redundantDiag(id, 12, 16, "c: c", "c"),
	}
	diags[1].Fixes[0].ID = "second"

	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeOnce, DryRun: true})
	if err != nil {
		t.Fatalf("Apply once: %v", err)
	}
	if got := string(res.FileChanges[0].Content); got != "Foo { a, c: c }" {
		t.Fatalf("once content = %q", got)
	}

	res, err = Apply(fs, diags, ApplyOptions{Mode: ApplyModeID, TargetID: "second", DryRun: true})
	if err != nil {
		t.Fatalf("Apply id: %v", err)
	}
	if got := string(res.FileChanges[0].Content); got != "Foo { a: a, c }" {
		t.Fatalf("id content = %q", got)
	}

	if _, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeID, TargetID: "missing", DryRun: true}); !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
}

func TestApplySkipsConflictsAndGuards(t *testing.T) {
	src := "Foo { a: a }"
	fs := source.NewFileSet()
	id := fs.AddVirtual("mem.fe", []byte(src))
	diags := []diag.Diagnostic{
		redundantDiag(id, 6, 10, "a: a", "a"),
		redundantDiag(id, 6, 10, "a: a", "b"),
		redundantDiag(id, 0, 3, "Bar", "Baz"),
	}
	diags[1].Fixes[0].ID = "overlap"
	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || len(res.Skipped) != 2 {
		t.Fatalf("applied=%d skipped=%d: %+v", len(res.Applied), len(res.Skipped), res.Skipped)
	}
}

func TestApplyWritesFilesAndSkipsVirtual(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.fe")
	if err := os.WriteFile(path, []byte("Foo { a: a }"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Apply(fs, []diag.Diagnostic{redundantDiag(id, 6, 10, "a: a", "a")}, ApplyOptions{Mode: ApplyModeAll}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "Foo { a }" {
		t.Fatalf("file content = %q", got)
	}
	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode not preserved: %v", info.Mode())
	}

	vid := fs.AddVirtual("virtual.fe", []byte("Foo { a: a }"))
	res, err := Apply(fs, []diag.Diagnostic{redundantDiag(vid, 6, 10, "a: a", "a")}, ApplyOptions{Mode: ApplyModeAll})
	if !errors.Is(err, ErrNoFixes) || res.Skipped[0].Reason != "target file is virtual" {
		t.Fatalf("virtual file must be skipped: %v %+v", err, res.Skipped)
	}
}
