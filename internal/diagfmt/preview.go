package diagfmt

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"ferrite/internal/diag"
	"ferrite/internal/fix"
	"ferrite/internal/source"
)

// fixPreview holds the touched lines before and after a fix.
type fixPreview struct {
	before []string
	after  []string
}

// buildFixPreview applies every edit of f to a copy of its file and returns
// the whole lines the edits touch. All edits must target one file.
func buildFixPreview(fs *source.FileSet, f diag.Fix) (fixPreview, error) {
	if fs == nil {
		return fixPreview{}, fmt.Errorf("nil FileSet")
	}
	if len(f.Edits) == 0 {
		return fixPreview{}, fmt.Errorf("fix %q has no edits", f.Title)
	}
	fileID := f.Edits[0].Span.File
	file := fs.Get(fileID)
	if file == nil {
		return fixPreview{}, fmt.Errorf("file %d not found in FileSet", fileID)
	}

	first, last := f.Edits[0].Span, f.Edits[0].Span
	growth := 0
	for _, e := range f.Edits {
		if e.Span.File != fileID {
			return fixPreview{}, fmt.Errorf("fix %q spans several files", f.Title)
		}
		if e.Span.Start < first.Start {
			first = e.Span
		}
		if e.Span.End > last.End {
			last = e.Span
		}
		growth += len(e.NewText) - int(e.Span.Len())
	}

	blockStart := lineStartOffset(file, file.Position(first.Start).Line)
	blockEnd := max(lineEndOffsetInclusive(file, file.Position(last.End).Line), blockStart)

	updated, err := fix.ApplyEdits(file.Content, f.Edits)
	if err != nil {
		return fixPreview{}, err
	}
	afterEnd := int(blockEnd) + growth
	if afterEnd < int(blockStart) || afterEnd > len(updated) {
		return fixPreview{}, fmt.Errorf("preview block out of range")
	}

	return fixPreview{
		before: splitPreviewLines(file.Content[blockStart:blockEnd]),
		after:  splitPreviewLines(updated[blockStart:afterEnd]),
	}, nil
}

// splitPreviewLines drops the final newline so "a\n" is one line, not two.
func splitPreviewLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

func contentLen(f *source.File) uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return n
}

func lineStartOffset(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	idx := line - 2
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return contentLen(f)
}

// lineEndOffsetInclusive is the offset just past line's '\n'.
func lineEndOffsetInclusive(f *source.File, line uint32) uint32 {
	if line == 0 {
		return 0
	}
	idx := line - 1
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return contentLen(f)
}
