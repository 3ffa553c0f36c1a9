package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pycheck/internal/diag"
	"pycheck/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	loc, code       *color.Color
	caret, gutter   *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		loc:    mk(color.Bold),
		code:   mk(color.Faint),
		caret:  mk(color.FgRed),
		gutter: mk(color.FgBlue),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид, в переданном порядке:
//
//	<path>:<line>:<col>: <severity> <CODE>: <Message>
//	 3 | x = "a" + 1
//	   |     ^~~~~~~
//
// Подчёркивание выравнивается по ширине символов на экране.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	bw := bufio.NewWriter(w)
	for i := range diags {
		if i > 0 {
			bw.WriteByte('\n')
		}
		writePretty(bw, &diags[i], fs, opts, p)
	}
	return bw.Flush()
}

func writePretty(w *bufio.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	start, end := fs.Resolve(d.Primary)
	loc := fmt.Sprintf("%s:%d:%d", displayPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.loc.Sprint(loc),
		p.severity(d.Severity).Sprint(diag.SeverityLabel(d.Severity)),
		p.code.Sprint(d.Code.ID()),
		d.Message)

	if f := fs.Get(d.Primary.File); f != nil && len(f.Content) > 0 {
		writeSnippet(w, f, start, end, opts.Context, p)
	}

	if !opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		nstart, _ := fs.Resolve(note.Span)
		fmt.Fprintf(w, "  = note: %s:%d:%d: %s\n",
			displayPath(fs, note.Span.File, opts.PathMode), nstart.Line, nstart.Col, note.Msg)
	}
}

func writeSnippet(w *bufio.Writer, f *source.File, start, end source.LineCol, context int8, p palette) {
	first := start.Line
	if context > 0 {
		first = max(1, start.Line-uint32(context))
	}
	width := len(strconv.FormatUint(uint64(start.Line), 10))
	for n := first; n <= start.Line; n++ {
		fmt.Fprintf(w, " %s %s\n", p.gutter.Sprintf("%*d |", width, n), f.GetLine(n))
	}

	line := f.GetLine(start.Line)
	from := min(int(start.Col)-1, len(line))
	to := len(line)
	if end.Line == start.Line {
		to = min(int(end.Col)-1, len(line))
	}
	underline := 1
	if to > from {
		underline = max(1, runewidth.StringWidth(line[from:to]))
	}
	fmt.Fprintf(w, " %s %s%s\n",
		p.gutter.Sprintf("%*s |", width, ""),
		caretPad(line[:from]),
		p.caret.Sprint("^"+strings.Repeat("~", underline-1)))
}

// caretPad повторяет префикс строки пробелами той же ширины; табы остаются табами.
func caretPad(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}
