package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"pycheck/internal/ast"
	"pycheck/internal/diag"
	"pycheck/internal/sema"
	"pycheck/internal/source"
	"pycheck/internal/symbols"
)

func sampleDiagnostics() ([]diag.Diagnostic, *source.FileSet) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("sample.py", []byte("total = 0\nx = \"a\" + 1\n"))
	d := diag.NewError(diag.SemaBinaryOperator, source.Span{File: id, Start: 14, End: 21},
		"Operator '+' not supported for types 'Str' and 'Int'").WithOperands("+", "Str", "Int")
	return []diag.Diagnostic{d}, fs
}

func TestPrettyPlain(t *testing.T) {
	diags, fs := sampleDiagnostics()
	var buf bytes.Buffer
	if err := Pretty(&buf, diags, fs, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "sample.py:2:5: error SEM3001: Operator '+' not supported for types 'Str' and 'Int'\n" +
		" 2 | x = \"a\" + 1\n" +
		"   |     ^~~~~~~\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyContextAndNotes(t *testing.T) {
	diags, fs := sampleDiagnostics()
	diags[0] = diags[0].WithNote(source.Span{File: diags[0].Primary.File, Start: 0, End: 5}, "declared here")
	var buf bytes.Buffer
	if err := Pretty(&buf, diags, fs, PrettyOpts{Context: 1, ShowNotes: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, " 1 | total = 0\n") {
		t.Fatalf("missing context line:\n%s", out)
	}
	if !strings.Contains(out, "  = note: sample.py:1:1: declared here\n") {
		t.Fatalf("missing note:\n%s", out)
	}
}

func TestPrettyColor(t *testing.T) {
	diags, fs := sampleDiagnostics()
	var buf bytes.Buffer
	if err := Pretty(&buf, diags, fs, PrettyOpts{Color: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes, got %q", buf.String())
	}
}

func TestCaretWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	text := "名前 = \"a\" + 1\n"
	id := fs.AddVirtual("wide.py", []byte(text))
	start := uint32(strings.Index(text, "\""))
	d := diag.NewError(diag.SemaBinaryOperator, source.Span{File: id, Start: start, End: uint32(len(text) - 1)}, "m")
	var buf bytes.Buffer
	if err := Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	// 名前 занимает четыре колонки.
	if lines[2] != "   |        ^~~~~~~" {
		t.Fatalf("caret misaligned: %q", lines[2])
	}
}

func TestPrettySkipsSnippetWithoutSource(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("gone.pyast", nil)
	d := diag.NewError(diag.IOLoadFileError, source.Span{File: id}, "failed to load snapshot: missing")
	var buf bytes.Buffer
	if err := Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if buf.String() != "gone.pyast:1:1: error IO4001: failed to load snapshot: missing\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestShort(t *testing.T) {
	diags, fs := sampleDiagnostics()
	var buf bytes.Buffer
	if err := Short(&buf, diags, fs, false); err != nil {
		t.Fatalf("Short: %v", err)
	}
	if buf.String() != "error SEM3001 sample.py:2:5 Operator '+' not supported for types 'Str' and 'Int'\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
	buf.Reset()
	if err := Short(&buf, nil, fs, false); err != nil || buf.Len() != 0 {
		t.Fatalf("empty input must write nothing, got %q (%v)", buf.String(), err)
	}
}

func TestJSON(t *testing.T) {
	diags, fs := sampleDiagnostics()
	diags = append(diags, diags[0])
	var buf bytes.Buffer
	err := JSON(&buf, diags, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, Max: 1, Dropped: 3})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || out.Dropped != 3 {
		t.Fatalf("count/dropped = %d/%d", out.Count, out.Dropped)
	}
	got := out.Diagnostics[0]
	if got.Severity != "error" || got.Code != "SEM3001" || got.Category != "binary-operator" {
		t.Fatalf("unexpected header %+v", got)
	}
	if got.Location.File != "sample.py" || got.Location.StartLine != 2 || got.Location.StartCol != 5 || got.Location.EndCol != 12 {
		t.Fatalf("unexpected location %+v", got.Location)
	}
	if got.Operands == nil || got.Operands.Op != "+" || got.Operands.Left != "Str" || got.Operands.Right != "Int" {
		t.Fatalf("unexpected operands %+v", got.Operands)
	}
}

func TestJSONSemantics(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	file := b.Files.New(source.Span{})
	b.PushStmt(file, b.Stmts.NewAssign(source.Span{Start: 0, End: 5},
		[]ast.ExprID{b.Name(source.Span{Start: 0, End: 1}, "x")}, b.Int(source.Span{Start: 4, End: 5}, "1")))
	bound := symbols.ResolveFile(b, file, symbols.ResolveOptions{})
	res := sema.Check(b, file, sema.Options{Symbols: bound.Table})

	out, err := BuildDiagnosticsOutput(nil, source.NewFileSet(), JSONOpts{Semantics: []*SemanticsInput{
		{Path: "a.py", Builder: b, FileID: file, Table: bound.Table, Types: res.ExprTypes},
		nil,
	}})
	if err != nil {
		t.Fatalf("BuildDiagnosticsOutput: %v", err)
	}
	if len(out.Semantics) != 1 {
		t.Fatalf("expected one semantics block, got %d", len(out.Semantics))
	}
	sem := out.Semantics[0]
	if len(sem.Scopes) != 1 || sem.Scopes[0].Kind != "module" || sem.Scopes[0].Owner.Kind != "file" {
		t.Fatalf("unexpected scopes %+v", sem.Scopes)
	}
	if len(sem.Symbols) != 1 || sem.Symbols[0].Name != "x" || sem.Symbols[0].Decls[0] != "variable" {
		t.Fatalf("unexpected symbols %+v", sem.Symbols)
	}
	if len(sem.ExprTypes) != 2 || sem.ExprTypes[1].Type != "Int" {
		t.Fatalf("unexpected expr types %+v", sem.ExprTypes)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatPretty, "JSON": FormatJSON, " short ": FormatShort} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("sarif"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
