package fix

import (
	"errors"
	"fmt"
	"sort"

	"ferrite/internal/diag"
)

var (
	// ErrOverlappingEdits is returned by ApplyEdits for edits sharing bytes.
	ErrOverlappingEdits = errors.New("overlapping edits")
	// ErrGuardMismatch is returned when an edit's OldText does not match.
	ErrGuardMismatch = errors.New("existing text does not match expected content")
)

// ApplyEdits returns content with edits applied. Spans refer to the original
// content; edit order does not matter. content is not modified.
func ApplyEdits(content []byte, edits []diag.TextEdit) ([]byte, error) {
	sorted := make([]diag.TextEdit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start == sorted[j].Span.Start {
			return sorted[i].Span.End < sorted[j].Span.End
		}
		return sorted[i].Span.Start < sorted[j].Span.Start
	})

	for i := 1; i < len(sorted); i++ {
		if spansConflict(sorted[i-1], sorted[i]) {
			return nil, fmt.Errorf("%w at %d..%d", ErrOverlappingEdits, sorted[i].Span.Start, sorted[i].Span.End)
		}
	}

	out := make([]byte, 0, len(content))
	prev := 0
	for _, edit := range sorted {
		start, end := int(edit.Span.Start), int(edit.Span.End)
		if start < prev || end < start || end > len(content) {
			return nil, fmt.Errorf("edit span %d..%d out of range", start, end)
		}
		if edit.OldText != "" && string(content[start:end]) != edit.OldText {
			return nil, fmt.Errorf("%w at %d..%d", ErrGuardMismatch, start, end)
		}
		out = append(out, content[prev:start]...)
		out = append(out, edit.NewText...)
		prev = end
	}
	return append(out, content[prev:]...), nil
}

// spansConflict reports whether two text edits' spans overlap.
// Spans are half-open [Start, End). Two zero-length edits conflict only at
// the same position. A zero-length edit conflicts with a non-zero span if
// its position is strictly inside that span.
func spansConflict(a, b diag.TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return aStart == bStart
	}
	if aStart == aEnd {
		return bStart < aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart < bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}
