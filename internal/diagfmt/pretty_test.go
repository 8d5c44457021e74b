package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"ferrite/internal/diag"
	"ferrite/internal/fix"
	"ferrite/internal/lint"
	"ferrite/internal/lints"
	"ferrite/internal/source"
	"ferrite/internal/testkit"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("let x = \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.fe", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString, source.Span{File: fileID, Start: 8, End: 28}, "unterminated string literal"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.fe:1:9"},
		{"Relative path", PathModeRelative, "src/test.fe:1:9"},
		{"Basename only", PathModeBasename, "test.fe:1:9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Fatalf("expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR LEX1002: unterminated string literal") {
				t.Fatalf("expected header, got:\n%s", output)
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"Short path - as is", "test.fe", "test.fe:1:9"},
		{"Long absolute path - basename", "/very/long/absolute/path/to/some/nested/directory/file.fe", "file.fe:1:9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileID := fs.AddVirtual(tt.path, []byte("let x = 42;\n"))
			bag := diag.NewBag(10)
			bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: 8, End: 10}, "test warning"))

			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
			if output := buf.String(); !strings.HasPrefix(output, tt.expected) {
				t.Fatalf("expected output to start with %q, got:\n%s", tt.expected, output)
			}
		})
	}
}

func TestPrettySnippetAndHelp(t *testing.T) {
	reg, err := lints.NewRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	p := testkit.Parse(t, "main.fe", "fn main() {\n    let p = Foo { bar: bar };\n}\n")
	bag := diag.NewBag(10)
	for _, d := range lint.Collect(reg, p.Tree, p.File, p.Source, lint.Options{}) {
		bag.Add(d)
	}

	var buf bytes.Buffer
	Pretty(&buf, bag, p.FileSet, PrettyOpts{PathMode: PathModeBasename})
	want := "main.fe:2:19: WARNING LNT5001: redundant field names in struct initialization\n" +
		" 2 |     let p = Foo { bar: bar };\n" +
		"   |                   ^^^^^^^^\n" +
		"  help: replace it with: `bar`\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyContextAndWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("// 世界\nlet 名前 = Foo { 名前: 名前 };\n")
	fileID := fs.AddVirtual("wide.fe", content)
	start := uint32(strings.Index(string(content), "名前: 名前"))
	span := source.Span{File: fileID, Start: start, End: start + uint32(len("名前: 名前"))}

	bag := diag.NewBag(2)
	bag.Add(diag.New(diag.SevWarning, diag.LintRedundantFieldNames, span, "redundant field names in struct initialization"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 4 {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	if lines[1] != " 1 | // 世界" {
		t.Fatalf("expected context line, got %q", lines[1])
	}
	// "let 名前 = Foo { " занимает 17 колонок, "名前: 名前": 10
	if want := "   | " + strings.Repeat(" ", 17) + strings.Repeat("^", 10); lines[3] != want {
		t.Fatalf("caret line %q, want %q", lines[3], want)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("import core::util\n")
	fileID := fs.AddVirtual("test.fe", content)

	primary := source.Span{File: fileID, Start: 7, End: 11}
	d := diag.New(diag.SevError, diag.SynExpectSemicolon, primary, "expected ';' after import").
		WithNote(source.Span{File: fileID, Start: 11, End: 17}, "path ends here").
		WithFix("insert semicolon", diag.TextEdit{Span: source.Span{File: fileID, Start: 17, End: 17}, NewText: ";"}).
		WithFixSuggestion(fix.DeleteSpan("remove import", source.Span{File: fileID, Start: 0, End: 17}, "", fix.WithID("drop-import-001"), fix.WithApplicability(diag.FixApplicabilityManualReview)))
	bag := diag.NewBag(4)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true, ShowFixes: true})
	output := buf.String()

	for _, want := range []string{
		"note: test.fe:1:12: path ends here",
		"fix #1: insert semicolon [quickfix, always-safe]",
		"edit test.fe:1:18 apply=\";\"",
		"fix #2: remove import [quickfix, manual-review, id=drop-import-001]",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "help:") {
		t.Fatalf("non-preferred fixes must not produce help lines:\n%s", output)
	}
}

func TestPrettyFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("let a = 42 // missing semicolon")
	fileID := fs.AddVirtual("example.fe", content)

	insertSpan := source.Span{File: fileID, Start: 10, End: 10}
	bag := diag.NewBag(2)
	bag.Add(diag.New(diag.SevWarning, diag.SynExpectSemicolon, insertSpan, "missing semicolon").
		WithFix("insert semicolon", diag.TextEdit{Span: insertSpan, NewText: ";"}))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowFixes: true, ShowPreview: true})
	output := buf.String()
	for _, want := range []string{
		"preview:",
		"- let a = 42 // missing semicolon",
		"+ let a = 42; // missing semicolon",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.fe", []byte("x\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "boom"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	Pretty(&colored, bag, fs, PrettyOpts{PathMode: PathModeBasename, Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output must not contain escapes")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output must contain escapes")
	}
}

func TestShort(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/w")
	fileID := fs.AddVirtual("/w/a.fe", []byte("let p = Foo { a: a };\n"))
	bag := diag.NewBag(2)
	bag.Add(diag.New(diag.SevWarning, diag.LintRedundantFieldNames, source.Span{File: fileID, Start: 14, End: 18}, "redundant field names in struct initialization"))

	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, false); err != nil {
		t.Fatalf("Short: %v", err)
	}
	if got, want := buf.String(), "warning LNT5001 a.fe:1:15 redundant field names in struct initialization\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	buf.Reset()
	if err := Short(&buf, diag.NewBag(1), fs, false); err != nil || buf.Len() != 0 {
		t.Fatalf("empty bag must print nothing")
	}
}
