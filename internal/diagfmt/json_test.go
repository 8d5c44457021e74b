package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"ferrite/internal/diag"
	"ferrite/internal/fix"
	"ferrite/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("fn main() {\n\tlet x = \"unterminated\n}")
	fileID := fs.AddVirtual("test.fe", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 21, End: 33},
		"unterminated string literal",
	))

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
	})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\noutput: %s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got count=%d len=%d", output.Count, len(output.Diagnostics))
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "LEX1002" || d.Message != "unterminated string literal" {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
	if d.Location.File != "test.fe" || d.Location.StartByte != 21 || d.Location.EndByte != 33 {
		t.Fatalf("unexpected location: %+v", d.Location)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 10 {
		t.Fatalf("expected 2:10, got %d:%d", d.Location.StartLine, d.Location.StartCol)
	}
}

// TestJSONWithNotesAndFixes проверяет JSON с заметками и исправлениями
func TestJSONWithNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("let p = Foo { bar: bar };")
	fileID := fs.AddVirtual("test.fe", content)
	field := source.Span{File: fileID, Start: 14, End: 22}

	d := diag.New(diag.SevWarning, diag.LintRedundantFieldNames, field, "redundant field names in struct initialization").
		WithNote(field, "the field and the variable share a name").
		WithFixSuggestion(fix.ReplaceSpan("replace it with", field, "bar", "bar: bar", fix.Preferred(), fix.WithID("LNT5001-0-14-22"))).
		WithFix("drop the field", diag.TextEdit{Span: field})
	bag := diag.NewBag(10)
	bag.Add(d)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true, IncludeFixes: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}

	got := output.Diagnostics[0]
	if len(got.Notes) != 1 || got.Notes[0].Message != "the field and the variable share a name" {
		t.Fatalf("unexpected notes: %+v", got.Notes)
	}
	if len(got.Fixes) != 2 {
		t.Fatalf("expected 2 fixes, got %d", len(got.Fixes))
	}
	// предпочтительный fix идёт первым
	first := got.Fixes[0]
	if first.Title != "replace it with" || !first.IsPreferred || first.ID != "LNT5001-0-14-22" {
		t.Fatalf("unexpected first fix: %+v", first)
	}
	if first.Kind != "quickfix" || first.Applicability != "always-safe" {
		t.Fatalf("unexpected fix metadata: %+v", first)
	}
	if len(first.Edits) != 1 || first.Edits[0].NewText != "bar" || first.Edits[0].OldText != "bar: bar" {
		t.Fatalf("unexpected edits: %+v", first.Edits)
	}
	if first.Edits[0].Location.StartCol != 15 || first.Edits[0].Location.EndCol != 23 {
		t.Fatalf("unexpected edit location: %+v", first.Edits[0].Location)
	}
	if got.Fixes[1].IsPreferred {
		t.Fatalf("second fix must not be preferred")
	}
}

// TestJSONWithoutPositions проверяет JSON без позиций строк/колонок
func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.fe", []byte("let x = 42;"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevInfo, diag.LexUnknownChar, source.Span{File: fileID, Start: 4, End: 5}, "info message"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	loc := output.Diagnostics[0].Location
	if loc.StartLine != 0 || loc.StartByte != 4 {
		t.Fatalf("expected byte offsets only, got %+v", loc)
	}
	if bytes.Contains(buf.Bytes(), []byte("start_line")) {
		t.Fatalf("start_line must be omitted:\n%s", buf.String())
	}
}

// TestJSONMaxLimit проверяет ограничение количества диагностик
func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.fe", []byte("test content"))

	bag := diag.NewBag(10)
	for i := range uint32(5) {
		bag.Add(diag.New(diag.SevError, diag.LexUnknownChar, source.Span{File: fileID, Start: i, End: i + 1}, "error message"))
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename, Max: 3}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if output.Count != 3 || len(output.Diagnostics) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", output.Count)
	}
}

// TestJSONPathModes проверяет различные режимы путей
func TestJSONPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/src/main.fe", []byte("test"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "error"))

	tests := []struct {
		name     string
		pathMode PathMode
		expected string
	}{
		{"Absolute", PathModeAbsolute, "/home/user/project/src/main.fe"},
		{"Relative", PathModeRelative, "src/main.fe"},
		{"Basename", PathModeBasename, "main.fe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := JSON(&buf, bag, fs, JSONOpts{PathMode: tt.pathMode}); err != nil {
				t.Fatalf("JSON() error: %v", err)
			}
			var output DiagnosticsOutput
			if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
				t.Fatalf("invalid JSON output: %v", err)
			}
			if got := output.Diagnostics[0].Location.File; got != tt.expected {
				t.Fatalf("expected file=%s, got %s", tt.expected, got)
			}
		})
	}
}

func TestJSONFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("fn f() {\n    let p = Foo { bar: bar, baz: 1 };\n}\n")
	fileID := fs.AddVirtual("example.fe", content)
	field := source.Span{File: fileID, Start: 27, End: 35}

	bag := diag.NewBag(2)
	bag.Add(diag.New(diag.SevWarning, diag.LintRedundantFieldNames, field, "redundant field names in struct initialization").
		WithFixSuggestion(fix.ReplaceSpan("replace it with", field, "bar", "bar: bar", fix.Preferred())))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeFixes: true, IncludePreviews: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}

	edit := output.Diagnostics[0].Fixes[0].Edits[0]
	if len(edit.BeforeLines) != 1 || edit.BeforeLines[0] != "    let p = Foo { bar: bar, baz: 1 };" {
		t.Fatalf("unexpected before lines: %q", edit.BeforeLines)
	}
	if len(edit.AfterLines) != 1 || edit.AfterLines[0] != "    let p = Foo { bar, baz: 1 };" {
		t.Fatalf("unexpected after lines: %q", edit.AfterLines)
	}
}
