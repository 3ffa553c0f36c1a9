package source

import "testing"

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mod.py", []byte("a = 1\nb = \"x\" + 1\n"))

	tests := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{4, 1, 5},
		{5, 1, 6}, // the newline itself belongs to line 1
		{6, 2, 1},
		{10, 2, 5},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start.Line != tt.line || start.Col != tt.col {
			t.Errorf("offset %d: got %d:%d, want %d:%d", tt.off, start.Line, start.Col, tt.line, tt.col)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mod.py", []byte("first\nsecond\nthird"))
	f := fs.Get(id)
	if got := f.GetLine(2); got != "second" {
		t.Fatalf("line 2: got %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Fatalf("line 3: got %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Fatalf("line 4 must be empty, got %q", got)
	}
}

func TestAddKeepsLatestVersion(t *testing.T) {
	fs := NewFileSet()
	first := fs.Add("pkg/mod.py", []byte("x"), 0)
	second := fs.Add("pkg/./mod.py", []byte("y"), 0)
	if first == second {
		t.Fatalf("every Add must allocate a new id")
	}
	latest, ok := fs.GetLatest("pkg/mod.py")
	if !ok || latest != second {
		t.Fatalf("expected latest id %d, got %d (ok=%v)", second, latest, ok)
	}
	if string(fs.Get(first).Content) != "x" {
		t.Fatalf("older version must stay readable")
	}
}

func TestNormalizeCRLFAndBOM(t *testing.T) {
	content, had := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'a'})
	if !had || string(content) != "a" {
		t.Fatalf("BOM not stripped: %q", content)
	}
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed || string(out) != "a\nb\rc" {
		t.Fatalf("unexpected CRLF normalisation: %q", out)
	}
}
