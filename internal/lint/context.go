package lint

import (
	"fmt"

	"ferrite/internal/ast"
	"ferrite/internal/diag"
	"ferrite/internal/fix"
	"ferrite/internal/source"
)

// Context is what a pass sees while checking one file: the read-only tree,
// its source text and an emitter that applies configured levels.
type Context struct {
	tree       *ast.Builder
	file       *source.File
	levels     Levels
	suppressed func(*Lint, source.Span) bool
	out        []diag.Diagnostic
}

func newContext(tree *ast.Builder, file *source.File, opts Options) *Context {
	return &Context{
		tree:       tree,
		file:       file,
		levels:     opts.Levels,
		suppressed: opts.Suppressed,
	}
}

func (cx *Context) Tree() *ast.Builder { return cx.tree }
func (cx *Context) Exprs() *ast.Exprs { return cx.tree.Exprs }
func (cx *Context) Strings() *source.Interner { return cx.tree.StringsInterner }
func (cx *Context) File() *source.File { return cx.file }
func (cx *Context) Level(lint *Lint) Level { return cx.levels.For(lint) }
func (cx *Context) Enabled(lint *Lint) bool { return cx.Level(lint) != Allow }
func (cx *Context) pending() []diag.Diagnostic { return cx.out }

// SpanLint reports lint at span without a suggestion.
func (cx *Context) SpanLint(lint *Lint, span source.Span, msg string) {
	level := cx.Level(lint)
	if level == Allow || cx.isSuppressed(lint, span) {
		return
	}
	cx.out = append(cx.out, diag.New(level.Severity(), lint.Code, span, msg))
}

// SpanLintAndSugg reports lint at span with one machine-applicable
// suggestion replacing the span with sugg. help becomes the fix title.
func (cx *Context) SpanLintAndSugg(lint *Lint, span source.Span, msg, help, sugg string) {
	level := cx.Level(lint)
	if level == Allow || cx.isSuppressed(lint, span) {
		return
	}
	old := ""
	if cx.file != nil {
		old, _ = cx.file.Slice(span)
	}
	suggestion := fix.ReplaceSpan(help, span, sugg, old,
		fix.WithID(fmt.Sprintf("%s-%d-%d-%d", lint.Code.ID(), span.File, span.Start, span.End)),
		fix.Preferred(),
	)
	cx.out = append(cx.out, diag.New(level.Severity(), lint.Code, span, msg).WithFixSuggestion(suggestion))
}

func (cx *Context) isSuppressed(lint *Lint, span source.Span) bool {
	return cx.suppressed != nil && cx.suppressed(lint, span)
}
