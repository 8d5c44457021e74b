package diag

import (
	"testing"

	"ferrite/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := range 3 {
		ok := b.Add(NewError(SynUnexpectedToken, span(uint32(i), uint32(i+1)), "x"))
		if want := i < 2; ok != want {
			t.Fatalf("Add #%d: got %v, want %v", i, ok, want)
		}
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", b.Len())
	}
	if !b.HasErrors() {
		t.Fatalf("expected HasErrors")
	}
}

func TestBagSortIsStableForEqualKeys(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, LintRedundantFieldNames, span(10, 14), "c"))
	b.Add(New(SevWarning, LintRedundantFieldNames, span(1, 5), "a"))
	b.Add(New(SevError, SynUnexpectedToken, span(1, 5), "err"))
	b.Add(New(SevWarning, LintRedundantFieldNames, span(1, 5), "a2"))
	b.Sort()

	var got []string
	for _, d := range b.Items() {
		got = append(got, d.Message)
	}
	want := []string{"err", "a", "a2", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestBagDedupAndFilter(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, LintRedundantFieldNames, span(1, 5), "a"))
	b.Add(New(SevWarning, LintRedundantFieldNames, span(1, 5), "a"))
	b.Add(New(SevInfo, LexInfo, span(6, 7), "info"))
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("expected 2 after dedup, got %d", b.Len())
	}
	b.Filter(func(d Diagnostic) bool { return d.Severity >= SevWarning })
	if b.Len() != 1 || b.Items()[0].Code != LintRedundantFieldNames {
		t.Fatalf("unexpected items after filter: %+v", b.Items())
	}
	if b.HasErrors() || !b.HasWarnings() {
		t.Fatalf("unexpected severity summary")
	}
}

func TestBagMergeRaisesLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(SynUnexpectedToken, span(0, 1), "a"))
	b := NewBag(1)
	b.Add(NewError(SynUnexpectedToken, span(2, 3), "b"))
	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("expected merged len 2, got %d", a.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for range 3 {
		r.Report(LexUnknownChar, SevError, span(0, 1), "unknown character", nil, nil)
	}
	r.Report(LexUnknownChar, SevError, span(1, 2), "unknown character", nil, nil)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	var got []Diagnostic
	r := ReporterFunc(func(d Diagnostic) { got = append(got, d) })
	b := ReportWarning(r, LintRedundantFieldNames, span(0, 8), "redundant").
		WithNote(span(0, 3), "here").
		WithFixSuggestion(Fix{Title: "replace it with", Edits: []TextEdit{{Span: span(0, 8), NewText: "bar"}}})
	b.Emit()
	b.Emit()
	if len(got) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(got))
	}
	if len(got[0].Notes) != 1 || len(got[0].Fixes) != 1 || got[0].Fixes[0].Edits[0].NewText != "bar" {
		t.Fatalf("unexpected diagnostic: %+v", got[0])
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:          "LEX1001",
		SynExpectColon:          "SYN2204",
		IOLoadFileError:         "IO4001",
		LintRedundantFieldNames: "LNT5001",
		UnknownCode:             "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("%d.ID() = %q, want %q", code, got, want)
		}
	}
}
