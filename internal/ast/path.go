package ast

import (
	"strings"

	"ferrite/internal/source"
)

// PathSegment is one `::`-separated component of a path.
type PathSegment struct {
	Name source.StringID
	Span source.Span
}

// Path is `'::'? Ident ('::' Ident)*`. Global marks a leading `::`.
type Path struct {
	Global   bool
	Segments []PathSegment
	Span     source.Span
}

// Single returns the only segment of an unqualified, single-segment path.
// Global paths and paths with qualifiers report false.
func (p Path) Single() (PathSegment, bool) {
	if p.Global || len(p.Segments) != 1 {
		return PathSegment{}, false
	}
	return p.Segments[0], true
}

func (p Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// Text renders the path back to `a::b` form.
func (p Path) Text(strs *source.Interner) string {
	var b strings.Builder
	if p.Global {
		b.WriteString("::")
	}
	for i, seg := range p.Segments {
		if i > 0 {
			b.WriteString("::")
		}
		name, _ := strs.Lookup(seg.Name)
		b.WriteString(name)
	}
	return b.String()
}

// TypeRef is a type annotation: a path with an optional `[]` suffix.
type TypeRef struct {
	Path  Path
	Slice bool
	Span  source.Span
}

func (t TypeRef) Present() bool {
	return !t.Path.IsEmpty()
}
