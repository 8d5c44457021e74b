package lint

import (
	"iter"

	"ferrite/internal/ast"
	"ferrite/internal/diag"
	"ferrite/internal/source"
)

// Options configures one Run.
type Options struct {
	Levels Levels
	// Suppressed reports inline allows; nil means nothing is suppressed.
	Suppressed func(lint *Lint, span source.Span) bool
}

// Run dispatches every expression of file to every registered pass and
// yields the resulting diagnostics lazily, in walk order. Diagnostics from
// one node keep the order the passes emitted them. Stopping the range stops
// the walk.
func Run(reg *Registry, tree *ast.Builder, file ast.FileID, src *source.File, opts Options) iter.Seq[diag.Diagnostic] {
	return func(yield func(diag.Diagnostic) bool) {
		passes := enabledPasses(reg, opts.Levels)
		if len(passes) == 0 {
			return
		}
		cx := newContext(tree, src, opts)
		for id := range Walk(tree, file) {
			for _, pass := range passes {
				pass.CheckExpr(cx, id)
			}
			pending := cx.pending()
			cx.out = nil
			for _, d := range pending {
				if !yield(d) {
					return
				}
			}
		}
	}
}

// enabledPasses drops passes whose lints are all at level allow.
func enabledPasses(reg *Registry, levels Levels) []ExprPass {
	out := make([]ExprPass, 0, len(reg.Passes()))
	for _, pass := range reg.Passes() {
		for _, l := range pass.Lints() {
			if levels.For(l) != Allow {
				out = append(out, pass)
				break
			}
		}
	}
	return out
}

// Collect drains Run into a slice.
func Collect(reg *Registry, tree *ast.Builder, file ast.FileID, src *source.File, opts Options) []diag.Diagnostic {
	var out []diag.Diagnostic
	for d := range Run(reg, tree, file, src, opts) {
		out = append(out, d)
	}
	return out
}
