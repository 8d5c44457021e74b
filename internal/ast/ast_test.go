package ast

import (
	"testing"

	"ferrite/internal/source"
)

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatalf("index 0 must be nil")
	}
	id := a.Allocate(42)
	if id != 1 {
		t.Fatalf("first id = %d, want 1", id)
	}
	if got := *a.Get(id); got != 42 {
		t.Fatalf("Get(1) = %d", got)
	}
	if a.Get(2) != nil {
		t.Fatalf("index past end must be nil")
	}
}

func TestExprAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	name := b.StringsInterner.Intern("bar")
	sp := source.Span{Start: 0, End: 3}
	pathID := b.Exprs.NewPath(sp, Path{Segments: []PathSegment{{Name: name, Span: sp}}, Span: sp})

	if _, ok := b.Exprs.Struct(pathID); ok {
		t.Fatalf("path expression must not read as struct")
	}
	data, ok := b.Exprs.Path(pathID)
	if !ok {
		t.Fatalf("expected path payload")
	}
	seg, ok := data.Path.Single()
	if !ok || seg.Name != name {
		t.Fatalf("unexpected single segment: %+v %v", seg, ok)
	}
	if _, ok := b.Exprs.Path(NoExprID); ok {
		t.Fatalf("NoExprID must not resolve")
	}
}

func TestPathSingle(t *testing.T) {
	in := source.NewInterner()
	a, bar := in.Intern("a"), in.Intern("bar")
	tests := []struct {
		name string
		path Path
		want bool
		text string
	}{
		{"plain", Path{Segments: []PathSegment{{Name: bar}}}, true, "bar"},
		{"qualified", Path{Segments: []PathSegment{{Name: a}, {Name: bar}}}, false, "a::bar"},
		{"global", Path{Global: true, Segments: []PathSegment{{Name: bar}}}, false, "::bar"},
		{"empty", Path{}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := tt.path.Single(); ok != tt.want {
				t.Fatalf("Single() ok = %v, want %v", ok, tt.want)
			}
			if got := tt.path.Text(in); got != tt.text {
				t.Fatalf("Text() = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestStructPayloadIsCopied(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	fields := []ExprStructField{{Name: b.StringsInterner.Intern("a")}}
	id := b.Exprs.NewStruct(source.Span{}, Path{}, fields, NoExprID)
	fields[0].Name = source.NoStringID
	data, ok := b.Exprs.Struct(id)
	if !ok || data.Fields[0].Name == source.NoStringID {
		t.Fatalf("struct fields must not alias caller slice")
	}
}
