package lint

import "ferrite/internal/ast"

// ExprPass inspects expressions one node at a time.
// CheckExpr is called once for every expression of a file in depth-first
// preorder and must not retain cx or mutate the tree.
type ExprPass interface {
	Lints() []*Lint
	CheckExpr(cx *Context, id ast.ExprID)
}
