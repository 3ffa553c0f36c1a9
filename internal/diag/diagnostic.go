package diag

import (
	"pycheck/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Operands is the structured payload of an operator mismatch. Types are kept
// as their labels so diag stays independent of the type lattice.
type Operands struct {
	Op    string
	Left  string
	Right string // empty for unary operators
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Operands *Operands
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithOperands(op, left, right string) Diagnostic {
	d.Operands = &Operands{Op: op, Left: left, Right: right}
	return d
}

// String renders the bare message; presentation lives in diagfmt.
func (d Diagnostic) String() string {
	return d.Message
}
