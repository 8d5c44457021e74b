// Package redundantfieldnames flags struct literal fields written as
// `name: name` where the field-init shorthand `name` says the same thing.
package redundantfieldnames

import (
	"ferrite/internal/ast"
	"ferrite/internal/diag"
	"ferrite/internal/lint"
	"ferrite/internal/source"
)

const (
	message = "redundant field names in struct initialization"
	help    = "replace it with"
)

// Lint is the registered descriptor.
var Lint = &lint.Lint{
	Name:        "redundant_field_names",
	Category:    lint.CategoryStyle,
	Description: "checks for fields in struct literals where shorthands could be used",
	Default:     lint.Warn,
	Code:        diag.LintRedundantFieldNames,
	Doc:         doc,
}

const doc = `# redundant_field_names

## What it does
Checks for fields in struct literals where shorthands could be used.

## Why is this bad?
If the field and variable names are the same, the field name is redundant.

## Known problems
The check is purely syntactic. Only a bare single-segment path counts as
the variable, so ` + "`a::bar`" + ` and ` + "`::bar`" + ` are left alone.

## Example
` + "```" + `
let bar: u8 = 123;

type Foo = { bar: u8 };

let foo = Foo { bar: bar };
` + "```" + `
the last line can be simplified to
` + "```" + `
let foo = Foo { bar };
` + "```" + `
`

// Pass is the expression pass implementing the lint. It is stateless.
type Pass struct{}

func (Pass) Lints() []*lint.Lint {
	return []*lint.Lint{Lint}
}

// CheckExpr reports every redundant field of a struct literal, in field order.
func (Pass) CheckExpr(cx *lint.Context, id ast.ExprID) {
	fields, ok := matchStructLiteral(cx.Exprs(), id)
	if !ok {
		return
	}
	for _, field := range fields {
		if !isRedundantFieldName(cx.Exprs(), cx.Strings(), field) {
			continue
		}
		cx.SpanLintAndSugg(Lint, field.Span, message, help, cx.Strings().MustLookup(field.Name))
	}
}

// matchStructLiteral returns the fields of id when it is a struct literal.
// Any other node, or an unknown id, yields false.
func matchStructLiteral(exprs *ast.Exprs, id ast.ExprID) ([]ast.ExprStructField, bool) {
	data, ok := exprs.Struct(id)
	if !ok || data == nil {
		return nil, false
	}
	return data.Fields, true
}

// isRedundantFieldName reports whether field is `name: name`: an explicit
// field whose value is an unqualified single-segment path with exactly the
// field's identifier text.
func isRedundantFieldName(exprs *ast.Exprs, strs *source.Interner, field ast.ExprStructField) bool {
	if field.Shorthand {
		return false
	}
	value, ok := exprs.Path(field.Value)
	if !ok {
		return false
	}
	seg, ok := value.Path.Single()
	if !ok {
		return false
	}
	// одинаковый текст: одинаковый StringID; сравниваем строки на случай чужого интернера
	if seg.Name == field.Name {
		return true
	}
	segText, _ := strs.Lookup(seg.Name)
	fieldText, _ := strs.Lookup(field.Name)
	return segText == fieldText
}
