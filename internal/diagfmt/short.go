package diagfmt

import (
	"io"

	"pycheck/internal/diag"
	"pycheck/internal/source"
)

// Short writes one line per diagnostic followed by a newline.
func Short(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, includeNotes bool) error {
	out := diag.FormatShortDiagnostics(diags, fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
