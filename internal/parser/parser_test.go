package parser

import (
	"testing"

	"ferrite/internal/ast"
	"ferrite/internal/diag"
)

func TestParseItems(t *testing.T) {
	input := `import std::io;

type Point = { x: int, y: int };

const ORIGIN: Point = Point { x: 0, y: 0 };
let mut counter = 0;

pub fn main(args: string[]) -> int {
    return 0;
}
`
	b, fileID, bag := parseSource(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	items := b.Files.Get(fileID).Items
	want := []ast.ItemKind{ast.ItemImport, ast.ItemType, ast.ItemConst, ast.ItemLet, ast.ItemFn}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i, id := range items {
		if got := b.Items.Get(id).Kind; got != want[i] {
			t.Fatalf("item %d kind = %d, want %d", i, got, want[i])
		}
	}

	imp, _ := b.Items.Import(items[0])
	if got := imp.Path.Text(b.StringsInterner); got != "std::io" {
		t.Fatalf("import path = %q", got)
	}
	typ, _ := b.Items.Type(items[1])
	if len(typ.Fields) != 2 {
		t.Fatalf("type fields = %d", len(typ.Fields))
	}
	let, _ := b.Items.Let(items[3])
	if !let.Mutable {
		t.Fatalf("expected mutable let")
	}
	fn, _ := b.Items.Fn(items[4])
	if !fn.Public || len(fn.Params) != 1 || !fn.Params[0].Type.Slice || !fn.Result.Present() {
		t.Fatalf("unexpected fn item: %+v", fn)
	}
}

func TestParseStatements(t *testing.T) {
	input := `fn f() {
    let a = 1;
    if a > 0 { a = a - 1; } else if a == 0 { g(); } else { }
    while a < 10 { a = a + 1; }
    { let inner = (a, 2); }
    return;
}`
	b, fileID, bag := parseSource(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	stmts := firstFnBody(t, b, fileID)
	want := []ast.StmtKind{ast.StmtLet, ast.StmtIf, ast.StmtWhile, ast.StmtBlock, ast.StmtReturn}
	if len(stmts) != len(want) {
		t.Fatalf("got %d statements, want %d", len(stmts), len(want))
	}
	for i, id := range stmts {
		if got := b.Stmts.Get(id).Kind; got != want[i] {
			t.Fatalf("stmt %d kind = %d, want %d", i, got, want[i])
		}
	}
	ifStmt, _ := b.Stmts.If(stmts[1])
	if b.Stmts.Get(ifStmt.Else).Kind != ast.StmtIf {
		t.Fatalf("expected else-if chain")
	}
}

func TestBinaryPrecedence(t *testing.T) {
	b, fileID, bag := parseSource(t, "fn f() { let x = 1 + 2 * 3 == 7 && !y; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	root := letValue(t, b, firstFnBody(t, b, fileID), 0)
	and, ok := b.Exprs.Binary(root)
	if !ok || and.Op != ast.ExprBinaryLogicalAnd {
		t.Fatalf("root must be &&")
	}
	eq, ok := b.Exprs.Binary(and.Left)
	if !ok || eq.Op != ast.ExprBinaryEq {
		t.Fatalf("left of && must be ==")
	}
	add, ok := b.Exprs.Binary(eq.Left)
	if !ok || add.Op != ast.ExprBinaryAdd {
		t.Fatalf("left of == must be +")
	}
	if mul, ok := b.Exprs.Binary(add.Right); !ok || mul.Op != ast.ExprBinaryMul {
		t.Fatalf("right of + must be *")
	}
	if not, ok := b.Exprs.Unary(and.Right); !ok || not.Op != ast.ExprUnaryNot {
		t.Fatalf("right of && must be !y")
	}
}

func TestPostfixChain(t *testing.T) {
	b, fileID, bag := parseSource(t, "fn f() { let v = a::b(1, 2).items[0]; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	root := letValue(t, b, firstFnBody(t, b, fileID), 0)
	idx, ok := b.Exprs.Index(root)
	if !ok {
		t.Fatalf("root must be index")
	}
	mem, ok := b.Exprs.Member(idx.Target)
	if !ok || b.Name(mem.Field) != "items" {
		t.Fatalf("expected .items member")
	}
	call, ok := b.Exprs.Call(mem.Target)
	if !ok || len(call.Args) != 2 {
		t.Fatalf("expected call with 2 args")
	}
	path, ok := b.Exprs.Path(call.Target)
	if !ok || path.Path.Text(b.StringsInterner) != "a::b" {
		t.Fatalf("expected a::b callee")
	}
}

func TestParseErrorsRecover(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
		items int
	}{
		{"garbage top level", "42; fn ok() {}", diag.SynUnexpectedTopLevel, 1},
		{"missing semicolon", "let a = 1 fn ok() {}", diag.SynExpectSemicolon, 1},
		{"pub without fn", "pub let a = 1; fn ok() {}", diag.SynUnexpectedToken, 2},
		{"bad expression", "fn f() { let a = ); let b = 2; }", diag.SynExpectExpression, 1},
		{"unclosed block", "fn f() { let a = 1;", diag.SynUnclosedBrace, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, fileID, bag := parseSource(t, tt.input)
			found := false
			for _, d := range bag.Items() {
				if d.Code == tt.code {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected %s, got %s", tt.code.ID(), diagnosticsSummary(bag))
			}
			if got := len(b.Files.Get(fileID).Items); got != tt.items {
				t.Fatalf("got %d items after recovery, want %d", got, tt.items)
			}
		})
	}
}

func TestLineCommentsAreRecorded(t *testing.T) {
	input := "// ferrite:allow-file(x)\nfn f() {\n    // inner\n    let a = 1; /* block */\n}\n// tail\n"
	b, fileID, bag := parseSource(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	comments := b.Files.Get(fileID).Comments
	want := []string{"// ferrite:allow-file(x)", "// inner", "// tail"}
	if len(comments) != len(want) {
		t.Fatalf("got %d comments, want %d: %+v", len(comments), len(want), comments)
	}
	for i := range want {
		if comments[i].Text != want[i] {
			t.Fatalf("comment %d = %q, want %q", i, comments[i].Text, want[i])
		}
	}
}
