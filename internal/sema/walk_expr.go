package sema

import (
	"pycheck/internal/ast"
	"pycheck/internal/symbols"
	"pycheck/internal/types"
)

func (tc *typeChecker) walkExprs(ids []ast.ExprID) {
	for _, id := range ids {
		tc.walkExpr(id)
	}
}

// walkExpr visits sub-expressions in source order, applies the rule of the
// node (only binary operations have one by default) and records its type.
func (tc *typeChecker) walkExpr(id ast.ExprID) {
	expr := tc.builder.Exprs.Get(id)
	if expr == nil {
		return
	}
	if _, seen := tc.result.ExprTypes[id]; seen {
		// shared subtree or a cycle in a malformed tree
		return
	}
	tc.result.ExprTypes[id] = types.Unknown

	exprs := tc.builder.Exprs
	switch expr.Kind {
	case ast.ExprConstant:
	case ast.ExprName:
		if d, ok := exprs.Name(id); ok {
			tc.checkName(expr, d)
		}
	case ast.ExprList, ast.ExprTuple, ast.ExprSet:
		if d, ok := exprs.Sequence(id); ok {
			tc.walkExprs(d.Elts)
		}
	case ast.ExprDict:
		if d, ok := exprs.Dict(id); ok {
			for i, v := range d.Values {
				if i < len(d.Keys) {
					tc.walkExpr(d.Keys[i])
				}
				tc.walkExpr(v)
			}
		}
	case ast.ExprBoolOp:
		if d, ok := exprs.BoolOp(id); ok {
			tc.walkExprs(d.Values)
		}
	case ast.ExprUnaryOp:
		if d, ok := exprs.UnaryOp(id); ok {
			tc.walkExpr(d.Operand)
			tc.checkUnaryOp(expr, d)
		}
	case ast.ExprBinOp:
		if d, ok := exprs.BinOp(id); ok {
			tc.walkExpr(d.Left)
			tc.walkExpr(d.Right)
			tc.checkBinOp(id, expr, d)
		}
	case ast.ExprNamedExpr:
		if d, ok := exprs.NamedExpr(id); ok {
			tc.walkExpr(d.Target)
			tc.walkExpr(d.Value)
		}
	case ast.ExprYield, ast.ExprYieldFrom, ast.ExprStarred, ast.ExprAwait:
		if d, ok := exprs.Wrapped(id); ok {
			tc.walkExpr(d.Value)
		}
	case ast.ExprGenerator, ast.ExprListComp, ast.ExprSetComp, ast.ExprDictComp:
		if d, ok := exprs.Comprehension(id); ok {
			tc.walkComprehension(id, d)
		}
	case ast.ExprAttribute:
		if d, ok := exprs.Attribute(id); ok {
			tc.walkExpr(d.Value)
		}
	case ast.ExprSubscript:
		if d, ok := exprs.Subscript(id); ok {
			tc.walkExpr(d.Value)
			tc.walkExpr(d.Slice)
		}
	case ast.ExprSlice:
		if d, ok := exprs.Slice(id); ok {
			tc.walkExpr(d.Lower)
			tc.walkExpr(d.Upper)
			tc.walkExpr(d.Step)
		}
	case ast.ExprCall:
		if d, ok := exprs.Call(id); ok {
			tc.walkExpr(d.Func)
			tc.walkExprs(d.Args)
			for _, kw := range d.Keywords {
				tc.walkExpr(kw.Value)
			}
		}
	case ast.ExprCompare:
		if d, ok := exprs.Compare(id); ok {
			tc.walkExpr(d.Left)
			tc.walkExprs(d.Comparators)
			tc.checkCompare(d)
		}
	case ast.ExprLambda:
		if d, ok := exprs.Lambda(id); ok {
			tc.walkParams(d.Params)
			tc.withOwnedScope(symbols.ExprOwner(id), func() {
				tc.walkExpr(d.Body)
			})
		}
	case ast.ExprIfExp:
		if d, ok := exprs.IfExp(id); ok {
			tc.walkExpr(d.Body)
			tc.walkExpr(d.Test)
			tc.walkExpr(d.Orelse)
		}
	case ast.ExprJoinedStr:
		if d, ok := exprs.JoinedStr(id); ok {
			tc.walkExprs(d.Values)
		}
	case ast.ExprFormattedValue:
		if d, ok := exprs.FormattedValue(id); ok {
			tc.walkExpr(d.Value)
			tc.walkExpr(d.FormatSpec)
		}
	default:
		// unknown kinds type as Unknown
	}

	tc.result.ExprTypes[id] = tc.exprType(id)
}

// walkComprehension follows source order (element first) but evaluates the
// first iterable in the enclosing scope, as the language does.
func (tc *typeChecker) walkComprehension(id ast.ExprID, d *ast.ExprComprehensionData) {
	scope, scoped := tc.table.ScopeOf(symbols.ExprOwner(id))
	inside := func(fn func()) {
		if scoped {
			tc.pushScope(scope)
			defer tc.leaveScope()
		}
		fn()
	}
	inside(func() {
		tc.walkExpr(d.Key)
		tc.walkExpr(d.Elt)
	})
	for i, gen := range d.Generators {
		inside(func() { tc.walkExpr(gen.Target) })
		if i == 0 {
			tc.walkExpr(gen.Iter)
		} else {
			inside(func() { tc.walkExpr(gen.Iter) })
		}
		inside(func() { tc.walkExprs(gen.Ifs) })
	}
}
