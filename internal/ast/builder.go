package ast

import (
	"errors"

	"pycheck/internal/source"
)

type Hints struct{ Files, Stmts, Exprs, Patterns uint }

// Builder owns every arena of a parsed unit. Parsers fill it; the checker only reads it.
type Builder struct {
	Files           *Files
	Stmts           *Stmts
	Exprs           *Exprs
	Patterns        *Patterns
	StringsInterner *source.Interner
}

// NewBuilder allocates arenas sized by hints; a nil interner gets a fresh one.
func NewBuilder(hints Hints, stringsInterner *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Patterns == 0 {
		hints.Patterns = 1 << 4
	}
	if stringsInterner == nil {
		stringsInterner = source.NewInterner()
	}
	return &Builder{
		Files:           NewFiles(hints.Files),
		Stmts:           NewStmts(hints.Stmts),
		Exprs:           NewExprs(hints.Exprs),
		Patterns:        NewPatterns(hints.Patterns),
		StringsInterner: stringsInterner,
	}
}

// Validate reports a builder whose top-level containers are missing, as
// happens with a truncated or hand-made snapshot. Per-kind payload arenas may
// be absent: accessors treat them as empty.
func (b *Builder) Validate() error {
	switch {
	case b == nil:
		return errors.New("nil builder")
	case b.Files == nil || b.Files.Arena == nil:
		return errors.New("missing file arena")
	case b.Stmts == nil || b.Stmts.Arena == nil:
		return errors.New("missing statement arena")
	case b.Exprs == nil || b.Exprs.Arena == nil:
		return errors.New("missing expression arena")
	case b.Patterns == nil || b.Patterns.Arena == nil:
		return errors.New("missing pattern arena")
	case b.StringsInterner == nil:
		return errors.New("missing string interner")
	}
	return nil
}

// PushStmt appends a top-level statement to file.
func (b *Builder) PushStmt(file FileID, stmt StmtID) {
	f := b.Files.Get(file)
	if f == nil {
		return
	}
	f.Body = append(f.Body, stmt)
}

// Name is a shortcut for an identifier expression.
func (b *Builder) Name(span source.Span, name string) ExprID {
	return b.Exprs.NewName(span, b.StringsInterner.Intern(name))
}

// Int, Float, Str, Bool and None are literal shortcuts used by producers and tests.
func (b *Builder) Int(span source.Span, text string) ExprID {
	return b.Exprs.NewConstant(span, ConstInt, b.StringsInterner.Intern(text))
}

func (b *Builder) Float(span source.Span, text string) ExprID {
	return b.Exprs.NewConstant(span, ConstFloat, b.StringsInterner.Intern(text))
}

func (b *Builder) Str(span source.Span, text string) ExprID {
	return b.Exprs.NewConstant(span, ConstStr, b.StringsInterner.Intern(text))
}

func (b *Builder) Bool(span source.Span, value bool) ExprID {
	text := "False"
	if value {
		text = "True"
	}
	return b.Exprs.NewConstant(span, ConstBool, b.StringsInterner.Intern(text))
}

func (b *Builder) None(span source.Span) ExprID {
	return b.Exprs.NewConstant(span, ConstNone, b.StringsInterner.Intern("None"))
}

// Lookup returns the text of an interned string.
func (b *Builder) Lookup(id source.StringID) string {
	if b == nil || b.StringsInterner == nil {
		return ""
	}
	s, _ := b.StringsInterner.Lookup(id)
	return s
}
