package sema

import (
	"pycheck/internal/ast"
	"pycheck/internal/source"
	"pycheck/internal/symbols"
	"pycheck/internal/types"
)

// NameTyper types a name occurrence seen from scope. Implementations must
// not report; anything they cannot decide is types.Unknown.
type NameTyper interface {
	TypeOfName(scope symbols.ScopeID, name source.StringID) types.Type
}

// lastDeclarationTyper is the flow-insensitive default: the binding in
// effect is the symbol's most recent declaration.
type lastDeclarationTyper struct {
	builder *ast.Builder
	table   *symbols.Table
}

func (lt lastDeclarationTyper) TypeOfName(scope symbols.ScopeID, name source.StringID) types.Type {
	sym, ok := lt.table.Lookup(scope, name)
	if !ok {
		return types.Unknown
	}
	decl, ok := lt.table.LastDeclaration(sym)
	if !ok {
		return types.Unknown
	}
	return declarationType(lt.builder, decl)
}

// declarationType reads the annotation of a variable declaration. Every
// other declaration kind is Unknown.
func declarationType(b *ast.Builder, decl *symbols.Declaration) types.Type {
	if decl == nil || decl.Kind != symbols.DeclVariable || !decl.Annotation.IsValid() {
		return types.Unknown
	}
	return annotationType(b, decl.Annotation)
}

// annotationType decodes the builtin annotations `int`, `float`, `str`,
// `bool` and `None`. Generics, unions, attributes and classes are Unknown.
func annotationType(b *ast.Builder, id ast.ExprID) types.Type {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return types.Unknown
	}
	switch expr.Kind {
	case ast.ExprName:
		if name, ok := b.Exprs.Name(id); ok {
			if t, known := types.FromName(b.Lookup(name.Name)); known {
				return t
			}
		}
	case ast.ExprConstant:
		if c, ok := b.Exprs.Constant(id); ok && c.Kind == ast.ConstNone {
			return types.NoneType
		}
	}
	return types.Unknown
}

// exprType infers the type of an already visited expression. It never
// reports; unmodelled shapes are Unknown.
func (tc *typeChecker) exprType(id ast.ExprID) types.Type {
	expr := tc.builder.Exprs.Get(id)
	if expr == nil {
		return types.Unknown
	}
	switch expr.Kind {
	case ast.ExprConstant:
		if c, ok := tc.builder.Exprs.Constant(id); ok {
			return types.OfConstant(c.Kind)
		}
	case ast.ExprName:
		if name, ok := tc.builder.Exprs.Name(id); ok {
			return tc.names.TypeOfName(tc.currentScope(), name.Name)
		}
	case ast.ExprBinOp:
		if t, ok := tc.binResults[id]; ok {
			return t
		}
	}
	return types.Unknown
}

// typeOf returns the recorded type of a visited child.
func (tc *typeChecker) typeOf(id ast.ExprID) types.Type {
	if t, ok := tc.result.ExprTypes[id]; ok {
		return t
	}
	return types.Unknown
}
