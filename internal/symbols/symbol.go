package symbols

import (
	"pycheck/internal/ast"
	"pycheck/internal/source"
)

// DeclKind classifies what introduced a binding.
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	DeclVariable
	DeclParameter
	DeclFunction
	DeclClass
	DeclImport
	DeclTypeParameter
)

func (k DeclKind) String() string {
	switch k {
	case DeclVariable:
		return "variable"
	case DeclParameter:
		return "parameter"
	case DeclFunction:
		return "function"
	case DeclClass:
		return "class"
	case DeclImport:
		return "import"
	case DeclTypeParameter:
		return "type-parameter"
	default:
		return "invalid"
	}
}

// Declaration is one binding site. Annotation and Value are meaningful for
// variables and parameters and stay NoExprID otherwise.
type Declaration struct {
	Kind       DeclKind
	Name       source.StringID
	Span       source.Span
	File       ast.FileID
	Stmt       ast.StmtID // originating statement, NoStmtID for bindings inside expressions
	Target     ast.ExprID // the bound name expression when there is one
	Annotation ast.ExprID
	Value      ast.ExprID
}

// Symbol is a name in one scope with its declarations in syntactic order.
type Symbol struct {
	Name  source.StringID
	Scope ScopeID
	Decls []DeclID
}

// Last returns the most recent declaration id.
func (s *Symbol) Last() DeclID {
	if s == nil || len(s.Decls) == 0 {
		return NoDeclID
	}
	return s.Decls[len(s.Decls)-1]
}
