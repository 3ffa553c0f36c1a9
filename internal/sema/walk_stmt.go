package sema

import (
	"pycheck/internal/ast"
	"pycheck/internal/symbols"
)

func (tc *typeChecker) walkBody(body []ast.StmtID) {
	for _, id := range body {
		tc.walkStmt(id)
	}
}

// walkStmt visits the statement and, left to right, every sub-statement and
// sub-expression. Compound statements recurse into each branch independently
// with the same scope view; nothing is merged across branches.
func (tc *typeChecker) walkStmt(id ast.StmtID) {
	stmt := tc.builder.Stmts.Get(id)
	if stmt == nil {
		return
	}
	if _, seen := tc.stmtSeen[id]; seen {
		return
	}
	tc.stmtSeen[id] = struct{}{}
	if span := tc.nodeSpan(stmt.Kind.String()); span != nil {
		defer span.End("")
	}

	stmts := tc.builder.Stmts
	switch stmt.Kind {
	case ast.StmtExpr:
		if s, ok := stmts.Expr(id); ok {
			tc.walkExpr(s.Value)
		}
	case ast.StmtImport, ast.StmtImportFrom:
		// aliases are names, not expressions
	case ast.StmtAssign:
		if s, ok := stmts.Assign(id); ok {
			tc.walkExprs(s.Targets)
			tc.walkExpr(s.Value)
		}
	case ast.StmtAnnAssign:
		if s, ok := stmts.AnnAssign(id); ok {
			tc.walkExpr(s.Target)
			tc.walkExpr(s.Annotation)
			tc.walkExpr(s.Value)
		}
	case ast.StmtAugAssign:
		if s, ok := stmts.AugAssign(id); ok {
			tc.walkExpr(s.Target)
			tc.walkExpr(s.Value)
		}
	case ast.StmtAssert:
		if s, ok := stmts.Assert(id); ok {
			tc.walkExpr(s.Test)
			tc.walkExpr(s.Msg)
		}
	case ast.StmtDelete:
		if s, ok := stmts.Delete(id); ok {
			tc.walkExprs(s.Targets)
		}
	case ast.StmtReturn:
		if s, ok := stmts.Return(id); ok {
			tc.walkExpr(s.Value)
		}
	case ast.StmtRaise:
		if s, ok := stmts.Raise(id); ok {
			tc.walkExpr(s.Exc)
			tc.walkExpr(s.Cause)
		}
	case ast.StmtPass, ast.StmtBreak, ast.StmtContinue, ast.StmtGlobal, ast.StmtNonlocal:
	case ast.StmtIf:
		if s, ok := stmts.If(id); ok {
			tc.walkExpr(s.Test)
			tc.walkBody(s.Body)
			tc.walkBody(s.Orelse)
		}
	case ast.StmtWhile:
		if s, ok := stmts.While(id); ok {
			tc.walkExpr(s.Test)
			tc.walkBody(s.Body)
			tc.walkBody(s.Orelse)
		}
	case ast.StmtFor:
		if s, ok := stmts.For(id); ok {
			tc.walkExpr(s.Target)
			tc.walkExpr(s.Iter)
			tc.walkBody(s.Body)
			tc.walkBody(s.Orelse)
		}
	case ast.StmtWith:
		if s, ok := stmts.With(id); ok {
			for _, item := range s.Items {
				tc.walkExpr(item.ContextExpr)
				tc.walkExpr(item.OptionalVars)
			}
			tc.walkBody(s.Body)
		}
	case ast.StmtTry, ast.StmtTryStar:
		if s, ok := stmts.Try(id); ok {
			tc.walkBody(s.Body)
			for _, h := range s.Handlers {
				tc.walkExpr(h.Type)
				tc.walkBody(h.Body)
			}
			tc.walkBody(s.Orelse)
			tc.walkBody(s.Finalbody)
		}
	case ast.StmtFunctionDef:
		if s, ok := stmts.FunctionDef(id); ok {
			tc.walkFunctionDef(id, s)
		}
	case ast.StmtClassDef:
		if s, ok := stmts.ClassDef(id); ok {
			tc.walkClassDef(id, s)
		}
	case ast.StmtMatch:
		if s, ok := stmts.Match(id); ok {
			tc.walkExpr(s.Subject)
			for _, c := range s.Cases {
				tc.walkPattern(c.Pattern)
				tc.walkExpr(c.Guard)
				tc.walkBody(c.Body)
			}
		}
	default:
		// unknown kinds from a newer producer are skipped
	}
}

// walkFunctionDef evaluates decorators, defaults and annotations in the
// enclosing scope and the body in the function's own scope.
func (tc *typeChecker) walkFunctionDef(id ast.StmtID, fn *ast.FunctionDefStmt) {
	tc.walkExprs(fn.Decorators)
	for _, tp := range fn.TypeParams {
		tc.walkExpr(tp.Bound)
	}
	tc.walkParams(fn.Params)
	tc.walkExpr(fn.Returns)
	tc.withOwnedScope(symbols.StmtOwner(id), func() {
		tc.walkBody(fn.Body)
	})
}

func (tc *typeChecker) walkClassDef(id ast.StmtID, class *ast.ClassDefStmt) {
	tc.walkExprs(class.Decorators)
	for _, tp := range class.TypeParams {
		tc.walkExpr(tp.Bound)
	}
	tc.walkExprs(class.Bases)
	for _, kw := range class.Keywords {
		tc.walkExpr(kw.Value)
	}
	tc.withOwnedScope(symbols.StmtOwner(id), func() {
		tc.walkBody(class.Body)
	})
}

func (tc *typeChecker) walkParams(params []ast.Param) {
	for _, p := range params {
		tc.walkExpr(p.Annotation)
		tc.walkExpr(p.Default)
	}
}

func (tc *typeChecker) walkPattern(id ast.PatternID) {
	pat := tc.builder.Patterns.Get(id)
	if pat == nil {
		return
	}
	switch pat.Kind {
	case ast.PatternMapping:
		for i, key := range pat.Keys {
			tc.walkExpr(key)
			if i < len(pat.Patterns) {
				tc.walkPattern(pat.Patterns[i])
			}
		}
		for _, sub := range pat.Patterns[min(len(pat.Keys), len(pat.Patterns)):] {
			tc.walkPattern(sub)
		}
	default:
		tc.walkExpr(pat.Value)
		for _, sub := range pat.Patterns {
			tc.walkPattern(sub)
		}
		for _, sub := range pat.KwdPatterns {
			tc.walkPattern(sub)
		}
	}
}
