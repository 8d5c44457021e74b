package parser

import (
	"fmt"
	"strings"
	"testing"

	"ferrite/internal/ast"
	"ferrite/internal/diag"
	"ferrite/internal/lexer"
	"ferrite/internal/source"
)

func parseSource(t *testing.T, input string) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.fe", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)

	result := ParseFile(fs, lx, builder, Options{MaxErrors: 100, Reporter: reporter})
	return builder, result.File, result.Bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// firstFnBody returns the statements of the first function in the file.
func firstFnBody(t *testing.T, b *ast.Builder, fileID ast.FileID) []ast.StmtID {
	t.Helper()
	for _, itemID := range b.Files.Get(fileID).Items {
		if fn, ok := b.Items.Fn(itemID); ok {
			block, ok := b.Stmts.Block(fn.Body)
			if !ok {
				t.Fatalf("fn body is not a block")
			}
			return block.Stmts
		}
	}
	t.Fatalf("no fn item in file")
	return nil
}

// letValue returns the initializer of the i-th let statement.
func letValue(t *testing.T, b *ast.Builder, stmts []ast.StmtID, i int) ast.ExprID {
	t.Helper()
	let, ok := b.Stmts.Let(stmts[i])
	if !ok {
		t.Fatalf("statement %d is not let", i)
	}
	return let.Value
}
