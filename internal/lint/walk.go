package lint

import (
	"iter"

	"ferrite/internal/ast"
)

// Walk yields every expression reachable from the items of file in
// depth-first preorder: a node before its children, children left to right.
// Struct literal field values (shorthand ones included) come in field order,
// followed by the `..rest` expression.
//
// Walk only reads the tree, so ranging over it twice gives the same sequence.
func Walk(tree *ast.Builder, file ast.FileID) iter.Seq[ast.ExprID] {
	return func(yield func(ast.ExprID) bool) {
		f := tree.Files.Get(file)
		if f == nil {
			return
		}
		w := walker{tree: tree, yield: yield}
		for _, item := range f.Items {
			if !w.item(item) {
				return
			}
		}
	}
}

type walker struct {
	tree  *ast.Builder
	yield func(ast.ExprID) bool
}

func (w *walker) item(id ast.ItemID) bool {
	item := w.tree.Items.Get(id)
	if item == nil {
		return true
	}
	switch item.Kind {
	case ast.ItemFn:
		fn, _ := w.tree.Items.Fn(id)
		return w.stmt(fn.Body)
	case ast.ItemLet:
		let, _ := w.tree.Items.Let(id)
		return w.expr(let.Value)
	case ast.ItemConst:
		c, _ := w.tree.Items.Const(id)
		return w.expr(c.Value)
	}
	return true
}

func (w *walker) stmt(id ast.StmtID) bool {
	stmt := w.tree.Stmts.Get(id)
	if stmt == nil {
		return true
	}
	s := w.tree.Stmts
	switch stmt.Kind {
	case ast.StmtBlock:
		block, _ := s.Block(id)
		for _, child := range block.Stmts {
			if !w.stmt(child) {
				return false
			}
		}
	case ast.StmtLet:
		let, _ := s.Let(id)
		return w.expr(let.Value)
	case ast.StmtExpr:
		e, _ := s.Expr(id)
		return w.expr(e.Expr)
	case ast.StmtReturn:
		ret, _ := s.Return(id)
		return w.expr(ret.Expr)
	case ast.StmtIf:
		ifStmt, _ := s.If(id)
		return w.expr(ifStmt.Cond) && w.stmt(ifStmt.Then) && w.stmt(ifStmt.Else)
	case ast.StmtWhile:
		while, _ := s.While(id)
		return w.expr(while.Cond) && w.stmt(while.Body)
	}
	return true
}

func (w *walker) exprs(ids []ast.ExprID) bool {
	for _, id := range ids {
		if !w.expr(id) {
			return false
		}
	}
	return true
}

func (w *walker) expr(id ast.ExprID) bool {
	node := w.tree.Exprs.Get(id)
	if node == nil {
		return true
	}
	if !w.yield(id) {
		return false
	}
	e := w.tree.Exprs
	switch node.Kind {
	case ast.ExprPath, ast.ExprLit:
		return true
	case ast.ExprCall:
		call, _ := e.Call(id)
		return w.expr(call.Target) && w.exprs(call.Args)
	case ast.ExprBinary:
		bin, _ := e.Binary(id)
		return w.expr(bin.Left) && w.expr(bin.Right)
	case ast.ExprUnary:
		un, _ := e.Unary(id)
		return w.expr(un.Operand)
	case ast.ExprGroup:
		g, _ := e.Group(id)
		return w.expr(g.Inner)
	case ast.ExprTuple:
		tup, _ := e.Tuple(id)
		return w.exprs(tup.Elements)
	case ast.ExprArray:
		arr, _ := e.Array(id)
		return w.exprs(arr.Elements)
	case ast.ExprIndex:
		idx, _ := e.Index(id)
		return w.expr(idx.Target) && w.expr(idx.Index)
	case ast.ExprMember:
		mem, _ := e.Member(id)
		return w.expr(mem.Target)
	case ast.ExprStruct:
		lit, _ := e.Struct(id)
		for _, field := range lit.Fields {
			if !w.expr(field.Value) {
				return false
			}
		}
		return w.expr(lit.Rest)
	}
	return true
}
