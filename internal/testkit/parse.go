// Package testkit holds helpers shared by package tests: parsing snippets,
// tree invariants and txtar fixtures.
package testkit

import (
	"testing"

	"ferrite/internal/ast"
	"ferrite/internal/diag"
	"ferrite/internal/lexer"
	"ferrite/internal/parser"
	"ferrite/internal/source"
)

// Parsed is a single parsed file with everything needed to lint it.
type Parsed struct {
	FileSet *source.FileSet
	Source  *source.File
	Tree    *ast.Builder
	File    ast.FileID
	Bag     *diag.Bag
}

// Parse parses input as a virtual file named name. It fails the test on
// syntax errors and on broken span invariants.
func Parse(t testing.TB, name, input string) Parsed {
	t.Helper()
	p := ParseLenient(name, input)
	if p.Bag.HasErrors() {
		t.Fatalf("unexpected syntax errors in %s:\n%s", name, diag.FormatShortDiagnostics(p.Bag.Items(), p.FileSet, false))
	}
	if err := CheckSpanInvariants(p.Tree, p.File, p.Source); err != nil {
		t.Fatalf("span invariants for %s: %v", name, err)
	}
	return p
}

// ParseLenient parses input and keeps syntax diagnostics in Bag.
func ParseLenient(name, input string) Parsed {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(input))
	src := fs.Get(id)
	bag := diag.NewBag(256)
	reporter := &diag.BagReporter{Bag: bag}
	tree := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(fs, lexer.New(src, lexer.Options{Reporter: reporter}), tree, parser.Options{Reporter: reporter})
	return Parsed{FileSet: fs, Source: src, Tree: tree, File: res.File, Bag: bag}
}

// Text returns the source text of an expression.
func (p Parsed) Text(id ast.ExprID) string {
	e := p.Tree.Exprs.Get(id)
	if e == nil {
		return ""
	}
	s, _ := p.Source.Slice(e.Span)
	return s
}
