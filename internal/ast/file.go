package ast

import (
	"ferrite/internal/source"
)

// Comment is a `//` line comment seen while parsing; Text includes the slashes.
type Comment struct {
	Text string
	Span source.Span
}

type File struct {
	Span     source.Span
	Items    []ItemID
	Comments []Comment
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{
		Arena: NewArena[File](capHint),
	}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{
		Span:  sp,
		Items: make([]ItemID, 0),
	}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
