package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"ferrite/internal/ast"
	"ferrite/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span is non-empty and within file content bounds
// 2) every item span is non-empty and fully contained in file.Span
// 3) every struct literal field span lies inside its literal and starts at the field name
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	// 1) file span sanity
	if f.Span.End <= f.Span.Start {
		return fmt.Errorf("file span is empty: %v", f.Span)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	// 2) item spans within file span
	for _, it := range f.Items {
		item := b.Items.Get(it)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", it)
		}
		sp := item.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty item span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("item span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if sp.Start < f.Span.Start || sp.End > f.Span.End {
			return fmt.Errorf("item span %v is outside file span %v", sp, f.Span)
		}
	}

	// 3) struct literal fields
	for i, lit := range b.Exprs.Arena.Slice() {
		if lit.Kind != ast.ExprStruct {
			continue
		}
		id, err := safecast.Conv[uint32](i + 1)
		if err != nil {
			return fmt.Errorf("expr id overflow: %w", err)
		}
		data, _ := b.Exprs.Struct(ast.ExprID(id))
		for _, field := range data.Fields {
			if !lit.Span.Contains(field.Span) {
				return fmt.Errorf("field span %v is outside struct literal %v", field.Span, lit.Span)
			}
			if field.Span.Start != field.NameSpan.Start {
				return fmt.Errorf("field span %v does not start at its name %v", field.Span, field.NameSpan)
			}
			if field.Shorthand && field.Span != field.NameSpan {
				return fmt.Errorf("shorthand field span %v differs from name %v", field.Span, field.NameSpan)
			}
		}
	}
	return nil
}
