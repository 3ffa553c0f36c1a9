package symbols

import (
	"pycheck/internal/ast"
	"pycheck/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid       ScopeKind = iota
	ScopeModule                  // file-level names
	ScopeFunction                // def body
	ScopeClass                   // class body; invisible to nested functions
	ScopeLambda                  // lambda body
	ScopeComprehension           // generator / list / set / dict comprehension
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeClass:
		return "class"
	case ScopeLambda:
		return "lambda"
	case ScopeComprehension:
		return "comprehension"
	default:
		return "invalid"
	}
}

// ScopeOwnerKind distinguishes what AST element owns a scope.
type ScopeOwnerKind uint8

const (
	ScopeOwnerUnknown ScopeOwnerKind = iota
	ScopeOwnerFile
	ScopeOwnerStmt
	ScopeOwnerExpr
)

// ScopeOwner references an AST construct associated with the scope.
type ScopeOwner struct {
	Kind    ScopeOwnerKind
	ASTFile ast.FileID
	Stmt    ast.StmtID
	Expr    ast.ExprID
}

// StmtOwner and ExprOwner build owners for definitions and scoped expressions.
func StmtOwner(id ast.StmtID) ScopeOwner {
	return ScopeOwner{Kind: ScopeOwnerStmt, Stmt: id}
}

func ExprOwner(id ast.ExprID) ScopeOwner {
	return ScopeOwner{Kind: ScopeOwnerExpr, Expr: id}
}

// Scope models a lexical scope with a parent-child hierarchy.
// A name has at most one symbol per scope; Redirect holds global/nonlocal names.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Owner     ScopeOwner
	Span      source.Span
	NameIndex map[source.StringID]SymbolID
	Redirect  map[source.StringID]ScopeID
	Symbols   []SymbolID
	Children  []ScopeID
}
