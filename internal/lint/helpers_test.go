package lint

import (
	"testing"

	"ferrite/internal/ast"
	"ferrite/internal/diag"
	"ferrite/internal/lexer"
	"ferrite/internal/parser"
	"ferrite/internal/source"
)

type parsed struct {
	fs   *source.FileSet
	src  *source.File
	tree *ast.Builder
	file ast.FileID
}

func parse(t *testing.T, input string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.fe", []byte(input))
	src := fs.Get(id)
	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}
	tree := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(fs, lexer.New(src, lexer.Options{Reporter: reporter}), tree, parser.Options{Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %+v", bag.Items())
	}
	return parsed{fs: fs, src: src, tree: tree, file: res.File}
}

func (p parsed) text(id ast.ExprID) string {
	sp := p.tree.Exprs.Get(id).Span
	s, _ := p.src.Slice(sp)
	return s
}

// recordingPass remembers every expression it was shown and reports
// struct literals through SpanLint.
type recordingPass struct {
	lint *Lint
	seen []ast.ExprID
}

func (r *recordingPass) Lints() []*Lint { return []*Lint{r.lint} }

func (r *recordingPass) CheckExpr(cx *Context, id ast.ExprID) {
	r.seen = append(r.seen, id)
	if e := cx.Exprs().Get(id); e.Kind == ast.ExprStruct {
		cx.SpanLintAndSugg(r.lint, e.Span, "struct literal", "remove it", "x")
	}
}

func newRecordingPass(name string) *recordingPass {
	return &recordingPass{lint: &Lint{
		Name:     name,
		Category: CategoryPedantic,
		Default:  Warn,
		Code:     diag.LintRedundantFieldNames,
	}}
}
