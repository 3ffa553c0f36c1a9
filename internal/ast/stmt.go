package ast

import (
	"fmt"

	"pycheck/internal/source"
)

type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtImport
	StmtImportFrom
	StmtAssign
	StmtAnnAssign
	StmtAugAssign
	StmtAssert
	StmtPass
	StmtDelete
	StmtReturn
	StmtRaise
	StmtBreak
	StmtContinue
	StmtGlobal
	StmtNonlocal
	StmtIf
	StmtWhile
	StmtFor
	StmtWith
	StmtTry
	StmtTryStar
	StmtFunctionDef
	StmtClassDef
	StmtMatch

	stmtKindCount
)

// StmtKindCount is the number of statement kinds.
const StmtKindCount = int(stmtKindCount)

var stmtKindNames = [...]string{
	StmtExpr:        "Expr",
	StmtImport:      "Import",
	StmtImportFrom:  "ImportFrom",
	StmtAssign:      "Assign",
	StmtAnnAssign:   "AnnAssign",
	StmtAugAssign:   "AugAssign",
	StmtAssert:      "Assert",
	StmtPass:        "Pass",
	StmtDelete:      "Delete",
	StmtReturn:      "Return",
	StmtRaise:       "Raise",
	StmtBreak:       "Break",
	StmtContinue:    "Continue",
	StmtGlobal:      "Global",
	StmtNonlocal:    "Nonlocal",
	StmtIf:          "If",
	StmtWhile:       "While",
	StmtFor:         "For",
	StmtWith:        "With",
	StmtTry:         "Try",
	StmtTryStar:     "TryStar",
	StmtFunctionDef: "FunctionDef",
	StmtClassDef:    "ClassDef",
	StmtMatch:       "Match",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return fmt.Sprintf("StmtKind(%d)", uint8(k))
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type ExprStmt struct {
	Value ExprID
}

type ImportStmt struct {
	Names []Alias
}

type ImportFromStmt struct {
	Module source.StringID // NoStringID for `from . import x`
	Names  []Alias
	Level  uint8 // leading dots
}

type AssignStmt struct {
	Targets []ExprID
	Value   ExprID
}

type AnnAssignStmt struct {
	Target     ExprID
	Annotation ExprID
	Value      ExprID
	Simple     bool // target is a bare name, not parenthesised
}

type AugAssignStmt struct {
	Target ExprID
	Op     BinaryOp
	Value  ExprID
}

type AssertStmt struct {
	Test ExprID
	Msg  ExprID
}

type DeleteStmt struct {
	Targets []ExprID
}

type ReturnStmt struct {
	Value ExprID
}

type RaiseStmt struct {
	Exc   ExprID
	Cause ExprID
}

// NamesStmt backs both global and nonlocal.
type NamesStmt struct {
	Names []source.StringID
}

type IfStmt struct {
	Test   ExprID
	Body   []StmtID
	Orelse []StmtID
}

type WhileStmt struct {
	Test   ExprID
	Body   []StmtID
	Orelse []StmtID
}

type ForStmt struct {
	Target ExprID
	Iter   ExprID
	Body   []StmtID
	Orelse []StmtID
	Async  bool
}

type WithStmt struct {
	Items []WithItem
	Body  []StmtID
	Async bool
}

// TryStmt backs both try and try*.
type TryStmt struct {
	Body      []StmtID
	Handlers  []ExceptHandler
	Orelse    []StmtID
	Finalbody []StmtID
}

type FunctionDefStmt struct {
	Name       source.StringID
	TypeParams []TypeParam
	Params     []Param
	Returns    ExprID
	Decorators []ExprID
	Body       []StmtID
	Async      bool
}

type ClassDefStmt struct {
	Name       source.StringID
	TypeParams []TypeParam
	Bases      []ExprID
	Keywords   []Keyword
	Decorators []ExprID
	Body       []StmtID
}

type MatchStmt struct {
	Subject ExprID
	Cases   []MatchCase
}
