package diagfmt

import (
	"encoding/json"
	"io"

	"pycheck/internal/diag"
	"pycheck/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// OperandsJSON is the structured payload of an operator mismatch.
type OperandsJSON struct {
	Op    string `json:"op"`
	Left  string `json:"left"`
	Right string `json:"right,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Category string        `json:"category,omitempty"`
	Message  string        `json:"message"`
	Location LocationJSON  `json:"location"`
	Operands *OperandsJSON `json:"operands,omitempty"`
	Notes    []NoteJSON    `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON   `json:"diagnostics"`
	Count       int                `json:"count"`
	Dropped     int                `json:"dropped,omitempty"`
	Semantics   []*SemanticsOutput `json:"semantics,omitempty"`
}

func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	loc := LocationJSON{
		File:      displayPath(fs, span.File, pathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if includePositions {
		startPos, endPos := fs.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(diags []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) (DiagnosticsOutput, error) {
	n := len(diags)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, n),
		Dropped:     opts.Dropped,
	}

	for i := range n {
		d := &diags[i]
		dj := DiagnosticJSON{
			Severity: diag.SeverityLabel(d.Severity),
			Code:     d.Code.ID(),
			Category: string(d.Code.Category()),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, opts.PathMode, opts.IncludePositions),
		}
		if d.Operands != nil {
			dj.Operands = &OperandsJSON{Op: d.Operands.Op, Left: d.Operands.Left, Right: d.Operands.Right}
		}
		if opts.IncludeNotes && len(d.Notes) > 0 {
			dj.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				dj.Notes[j] = NoteJSON{
					Message:  note.Msg,
					Location: makeLocation(note.Span, fs, opts.PathMode, opts.IncludePositions),
				}
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)

	for _, in := range opts.Semantics {
		sem, err := buildSemanticsOutput(in)
		if err != nil {
			return DiagnosticsOutput{}, err
		}
		if sem != nil {
			out.Semantics = append(out.Semantics, sem)
		}
	}
	return out, nil
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) error {
	output, err := BuildDiagnosticsOutput(diags, fs, opts)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
