package diag

import (
	"testing"

	"pycheck/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	file := fs.Add("/workspace/pkg/sample.py", []byte("a = 1\nb = \"x\" + 1\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     SemaBinaryOperator,
			Message:  "Operator '+' not supported for types 'Str' and 'Int'",
			Primary:  source.Span{File: file, Start: 10, End: 17},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 0, End: 1}, Msg: "first\nline"},
			},
		},
		{
			Severity: SevWarning,
			Code:     SemaUnresolvedName,
			Message:  "name 'a' is not defined",
			Primary:  source.Span{File: file, Start: 0, End: 1},
		},
	}

	expected := "error SEM3001 pkg/sample.py:2:5 Operator '+' not supported for types 'Str' and 'Int'\n" +
		"note SEM3001 pkg/sample.py:1:1 first line\n" +
		"warning SEM3010 pkg/sample.py:1:1 name 'a' is not defined"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatShortDiagnosticsEmpty(t *testing.T) {
	if got := FormatShortDiagnostics(nil, source.NewFileSet(), false); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
