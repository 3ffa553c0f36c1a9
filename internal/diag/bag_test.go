package diag

import (
	"testing"

	"pycheck/internal/source"
)

func diagAt(code Code, start uint32) Diagnostic {
	return NewError(code, source.Span{File: 1, Start: start, End: start + 1}, code.Title())
}

func TestBagKeepsInsertionOrderAndCap(t *testing.T) {
	bag := NewBag(2)
	bag.Add(diagAt(SemaBinaryOperator, 9))
	bag.Add(diagAt(SemaBinaryOperator, 1))
	if bag.Add(diagAt(SemaBinaryOperator, 5)) {
		t.Fatalf("third diagnostic must be rejected by the cap")
	}
	items := bag.Items()
	if len(items) != 2 || items[0].Primary.Start != 9 || items[1].Primary.Start != 1 {
		t.Fatalf("unexpected items %+v", items)
	}
	if bag.Dropped() != 1 {
		t.Fatalf("dropped = %d, want 1", bag.Dropped())
	}
	if !bag.HasErrors() {
		t.Fatalf("HasErrors must be true")
	}
}

func TestBagUnlimited(t *testing.T) {
	bag := NewBag(0)
	for i := range 100 {
		bag.Add(diagAt(SemaBinaryOperator, uint32(i)))
	}
	if bag.Len() != 100 {
		t.Fatalf("len = %d", bag.Len())
	}
}

func TestBagMergeAndSort(t *testing.T) {
	first := NewBag(1)
	first.Add(diagAt(SemaComparison, 4))
	first.Add(diagAt(SemaComparison, 8))
	second := NewBag(0)
	second.Add(diagAt(SemaBinaryOperator, 4))
	second.Add(diagAt(SemaBinaryOperator, 0))
	second.Add(diagAt(SemaBinaryOperator, 0))

	merged := NewBag(2)
	merged.Merge(first)
	merged.Merge(second)
	merged.Merge(nil)
	if merged.Len() != 4 || merged.Dropped() != 1 {
		t.Fatalf("merge must keep every item and carry drops: len=%d dropped=%d", merged.Len(), merged.Dropped())
	}
	merged.Sort()
	items := merged.Items()
	if items[0].Primary.Start != 0 || items[1].Primary.Start != 0 {
		t.Fatalf("equal diagnostics must both survive sorting: %+v", items)
	}
	if items[2].Code != SemaBinaryOperator || items[3].Code != SemaComparison {
		t.Fatalf("unexpected order %+v", items)
	}
}

func TestCodeIDs(t *testing.T) {
	if SemaBinaryOperator.ID() != "SEM3001" || SemaUnresolvedName.ID() != "SEM3010" {
		t.Fatalf("unexpected ids %s %s", SemaBinaryOperator.ID(), SemaUnresolvedName.ID())
	}
	if ProjInvalidSettings.ID() != "PRJ5001" {
		t.Fatalf("unexpected id %s", ProjInvalidSettings.ID())
	}
}

func TestBagRebase(t *testing.T) {
	b := NewBag(0)
	b.Add(NewError(SemaBinaryOperator, source.Span{File: 0, Start: 4, End: 9}, "m").
		WithNote(source.Span{File: 0, Start: 1, End: 2}, "n"))
	b.Rebase(3)
	d := b.Items()[0]
	if d.Primary.File != 3 || d.Notes[0].Span.File != 3 {
		t.Fatalf("spans not rebased: %+v", d)
	}
	if d.Primary.Start != 4 || d.Primary.End != 9 {
		t.Fatalf("offsets must not change: %+v", d.Primary)
	}
}
