package ast

import "pycheck/internal/source"

// Alias is one `name [as asname]` entry of an import.
type Alias struct {
	Name   source.StringID // dotted name as written
	AsName source.StringID
	Span   source.Span
}

// Keyword is `arg=value` in a call or class header; Arg is NoStringID for `**value`.
type Keyword struct {
	Arg   source.StringID
	Value ExprID
	Span  source.Span
}

// WithItem is one `expr [as target]` of a with statement.
type WithItem struct {
	ContextExpr  ExprID
	OptionalVars ExprID
}

// ExceptHandler is one `except [type [as name]]:` clause.
type ExceptHandler struct {
	Type ExprID
	Name source.StringID
	Body []StmtID
	Span source.Span
}

// Comprehension is one `for target in iter [if cond]*` clause.
type Comprehension struct {
	Target ExprID
	Iter   ExprID
	Ifs    []ExprID
	Async  bool
}

// ParamKind distinguishes the parameter slots of a signature.
type ParamKind uint8

const (
	ParamPositionalOnly ParamKind = iota
	ParamNormal
	ParamVarArgs
	ParamKeywordOnly
	ParamKwArgs
)

// Param is a function or lambda parameter.
type Param struct {
	Name       source.StringID
	Kind       ParamKind
	Annotation ExprID
	Default    ExprID
	Span       source.Span
}

// TypeParam is a PEP 695 type parameter (`def f[T: int]`).
type TypeParam struct {
	Name  source.StringID
	Bound ExprID
	Span  source.Span
}

// MatchCase is one `case pattern [if guard]:` arm.
type MatchCase struct {
	Pattern PatternID
	Guard   ExprID
	Body    []StmtID
	Span    source.Span
}
