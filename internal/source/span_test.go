package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	got := a.Cover(b)
	if got.Start != 2 || got.End != 8 {
		t.Fatalf("unexpected cover: %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if a.Cover(other) != a {
		t.Fatalf("spans from different files must not merge")
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{File: 0, Start: 0, End: 10}
	if !outer.Contains(Span{File: 0, Start: 3, End: 10}) {
		t.Fatalf("expected containment")
	}
	if outer.Contains(Span{File: 0, Start: 3, End: 11}) {
		t.Fatalf("span past the end must not be contained")
	}
}
