package symbols

import (
	"pycheck/internal/ast"
	"pycheck/internal/source"
)

func (fr *fileResolver) walkBody(body []ast.StmtID) {
	for _, id := range body {
		fr.walkStmt(id)
	}
}

func (fr *fileResolver) walkStmt(id ast.StmtID) {
	stmt := fr.builder.Stmts.Get(id)
	if stmt == nil {
		return
	}
	prevStmt := fr.stmt
	fr.stmt = id
	defer func() { fr.stmt = prevStmt }()

	switch stmt.Kind {
	case ast.StmtExpr:
		if s, ok := fr.builder.Stmts.Expr(id); ok {
			fr.walkExpr(s.Value)
		}
	case ast.StmtImport:
		if s, ok := fr.builder.Stmts.Import(id); ok {
			for _, alias := range s.Names {
				fr.declare(fr.scope, Declaration{Kind: DeclImport, Name: fr.importedName(alias), Span: alias.Span})
			}
		}
	case ast.StmtImportFrom:
		if s, ok := fr.builder.Stmts.ImportFrom(id); ok {
			for _, alias := range s.Names {
				if fr.builder.Lookup(alias.Name) == "*" {
					continue
				}
				name := alias.Name
				if alias.AsName != source.NoStringID {
					name = alias.AsName
				}
				fr.declare(fr.scope, Declaration{Kind: DeclImport, Name: name, Span: alias.Span})
			}
		}
	case ast.StmtAssign:
		if s, ok := fr.builder.Stmts.Assign(id); ok {
			fr.walkExpr(s.Value)
			for _, target := range s.Targets {
				fr.bindTarget(target, s.Value)
			}
		}
	case ast.StmtAnnAssign:
		if s, ok := fr.builder.Stmts.AnnAssign(id); ok {
			fr.walkExpr(s.Annotation)
			fr.walkExpr(s.Value)
			if name, isName := fr.builder.Exprs.Name(s.Target); isName {
				fr.declare(fr.scope, Declaration{
					Kind:       DeclVariable,
					Name:       name.Name,
					Span:       fr.builder.Exprs.Get(s.Target).Span,
					Target:     s.Target,
					Annotation: s.Annotation,
					Value:      s.Value,
				})
			} else {
				fr.walkExpr(s.Target)
			}
		}
	case ast.StmtAugAssign:
		// x += v rebinds x but keeps its declared type; no new declaration.
		if s, ok := fr.builder.Stmts.AugAssign(id); ok {
			fr.walkExpr(s.Value)
			fr.walkExpr(s.Target)
		}
	case ast.StmtAssert:
		if s, ok := fr.builder.Stmts.Assert(id); ok {
			fr.walkExpr(s.Test)
			fr.walkExpr(s.Msg)
		}
	case ast.StmtDelete:
		if s, ok := fr.builder.Stmts.Delete(id); ok {
			fr.walkExprs(s.Targets)
		}
	case ast.StmtReturn:
		if s, ok := fr.builder.Stmts.Return(id); ok {
			fr.walkExpr(s.Value)
		}
	case ast.StmtRaise:
		if s, ok := fr.builder.Stmts.Raise(id); ok {
			fr.walkExpr(s.Exc)
			fr.walkExpr(s.Cause)
		}
	case ast.StmtGlobal:
		if s, ok := fr.builder.Stmts.NameList(id); ok {
			for _, name := range s.Names {
				fr.table.Redirect(fr.scope, name, fr.module)
			}
		}
	case ast.StmtNonlocal:
		if s, ok := fr.builder.Stmts.NameList(id); ok {
			target := fr.enclosingFunction()
			for _, name := range s.Names {
				fr.table.Redirect(fr.scope, name, target)
			}
		}
	case ast.StmtIf:
		if s, ok := fr.builder.Stmts.If(id); ok {
			fr.walkExpr(s.Test)
			fr.walkBody(s.Body)
			fr.walkBody(s.Orelse)
		}
	case ast.StmtWhile:
		if s, ok := fr.builder.Stmts.While(id); ok {
			fr.walkExpr(s.Test)
			fr.walkBody(s.Body)
			fr.walkBody(s.Orelse)
		}
	case ast.StmtFor:
		if s, ok := fr.builder.Stmts.For(id); ok {
			fr.walkExpr(s.Iter)
			fr.bindTarget(s.Target, ast.NoExprID)
			fr.walkBody(s.Body)
			fr.walkBody(s.Orelse)
		}
	case ast.StmtWith:
		if s, ok := fr.builder.Stmts.With(id); ok {
			for _, item := range s.Items {
				fr.walkExpr(item.ContextExpr)
				fr.bindTarget(item.OptionalVars, ast.NoExprID)
			}
			fr.walkBody(s.Body)
		}
	case ast.StmtTry, ast.StmtTryStar:
		if s, ok := fr.builder.Stmts.Try(id); ok {
			fr.walkBody(s.Body)
			for _, h := range s.Handlers {
				fr.walkExpr(h.Type)
				fr.declare(fr.scope, Declaration{Kind: DeclVariable, Name: h.Name, Span: h.Span})
				fr.walkBody(h.Body)
			}
			fr.walkBody(s.Orelse)
			fr.walkBody(s.Finalbody)
		}
	case ast.StmtFunctionDef:
		if s, ok := fr.builder.Stmts.FunctionDef(id); ok {
			fr.walkFunction(id, stmt, s)
		}
	case ast.StmtClassDef:
		if s, ok := fr.builder.Stmts.ClassDef(id); ok {
			fr.walkClass(id, stmt, s)
		}
	case ast.StmtMatch:
		if s, ok := fr.builder.Stmts.Match(id); ok {
			fr.walkExpr(s.Subject)
			for _, c := range s.Cases {
				fr.bindPattern(c.Pattern)
				fr.walkExpr(c.Guard)
				fr.walkBody(c.Body)
			}
		}
	case ast.StmtPass, ast.StmtBreak, ast.StmtContinue:
	}
}

func (fr *fileResolver) walkFunction(id ast.StmtID, stmt *ast.Stmt, fn *ast.FunctionDefStmt) {
	fr.walkExprs(fn.Decorators)
	for _, p := range fn.Params {
		fr.walkExpr(p.Default)
		fr.walkExpr(p.Annotation)
	}
	fr.walkExpr(fn.Returns)
	fr.declare(fr.scope, Declaration{Kind: DeclFunction, Name: fn.Name, Span: stmt.Span})

	scope := fr.table.NewScope(ScopeFunction, fr.scope, StmtOwner(id), stmt.Span)
	fr.enter(scope, func() {
		fr.declareTypeParams(fn.TypeParams)
		fr.declareParams(fn.Params)
		fr.walkBody(fn.Body)
	})
}

func (fr *fileResolver) walkClass(id ast.StmtID, stmt *ast.Stmt, class *ast.ClassDefStmt) {
	fr.walkExprs(class.Decorators)
	fr.walkExprs(class.Bases)
	for _, kw := range class.Keywords {
		fr.walkExpr(kw.Value)
	}
	fr.declare(fr.scope, Declaration{Kind: DeclClass, Name: class.Name, Span: stmt.Span})

	scope := fr.table.NewScope(ScopeClass, fr.scope, StmtOwner(id), stmt.Span)
	fr.enter(scope, func() {
		fr.declareTypeParams(class.TypeParams)
		fr.walkBody(class.Body)
	})
}

func (fr *fileResolver) declareParams(params []ast.Param) {
	for _, p := range params {
		fr.declare(fr.scope, Declaration{
			Kind:       DeclParameter,
			Name:       p.Name,
			Span:       p.Span,
			Annotation: p.Annotation,
			Value:      p.Default,
		})
	}
}

func (fr *fileResolver) declareTypeParams(params []ast.TypeParam) {
	for _, tp := range params {
		fr.walkExpr(tp.Bound)
		fr.declare(fr.scope, Declaration{Kind: DeclTypeParameter, Name: tp.Name, Span: tp.Span})
	}
}

// bindTarget declares every name an assignment target binds. Only a bare
// name keeps the assigned value; unpacked elements get none.
func (fr *fileResolver) bindTarget(target, value ast.ExprID) {
	expr := fr.builder.Exprs.Get(target)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprName:
		if name, ok := fr.builder.Exprs.Name(target); ok {
			fr.declare(fr.scope, Declaration{
				Kind:   DeclVariable,
				Name:   name.Name,
				Span:   expr.Span,
				Target: target,
				Value:  value,
			})
		}
	case ast.ExprTuple, ast.ExprList:
		if seq, ok := fr.builder.Exprs.Sequence(target); ok {
			for _, elt := range seq.Elts {
				fr.bindTarget(elt, ast.NoExprID)
			}
		}
	case ast.ExprStarred:
		if w, ok := fr.builder.Exprs.Wrapped(target); ok {
			fr.bindTarget(w.Value, ast.NoExprID)
		}
	default:
		fr.walkExpr(target)
	}
}

func (fr *fileResolver) bindPattern(id ast.PatternID) {
	pat := fr.builder.Patterns.Get(id)
	if pat == nil {
		return
	}
	fr.walkExpr(pat.Value)
	fr.walkExprs(pat.Keys)
	for _, sub := range pat.Patterns {
		fr.bindPattern(sub)
	}
	for _, sub := range pat.KwdPatterns {
		fr.bindPattern(sub)
	}
	switch pat.Kind {
	case ast.PatternAs, ast.PatternStar, ast.PatternMapping:
		fr.declare(fr.scope, Declaration{Kind: DeclVariable, Name: pat.Name, Span: pat.Span})
	}
}

func (fr *fileResolver) walkExprs(ids []ast.ExprID) {
	for _, id := range ids {
		fr.walkExpr(id)
	}
}

// walkExpr only looks for constructs that open scopes or bind names.
func (fr *fileResolver) walkExpr(id ast.ExprID) {
	expr := fr.builder.Exprs.Get(id)
	if expr == nil {
		return
	}
	exprs := fr.builder.Exprs
	switch expr.Kind {
	case ast.ExprConstant, ast.ExprName:
	case ast.ExprList, ast.ExprTuple, ast.ExprSet:
		if d, ok := exprs.Sequence(id); ok {
			fr.walkExprs(d.Elts)
		}
	case ast.ExprDict:
		if d, ok := exprs.Dict(id); ok {
			for i, v := range d.Values {
				if i < len(d.Keys) {
					fr.walkExpr(d.Keys[i])
				}
				fr.walkExpr(v)
			}
		}
	case ast.ExprBoolOp:
		if d, ok := exprs.BoolOp(id); ok {
			fr.walkExprs(d.Values)
		}
	case ast.ExprUnaryOp:
		if d, ok := exprs.UnaryOp(id); ok {
			fr.walkExpr(d.Operand)
		}
	case ast.ExprBinOp:
		if d, ok := exprs.BinOp(id); ok {
			fr.walkExpr(d.Left)
			fr.walkExpr(d.Right)
		}
	case ast.ExprNamedExpr:
		if d, ok := exprs.NamedExpr(id); ok {
			fr.walkExpr(d.Value)
			if name, isName := exprs.Name(d.Target); isName {
				fr.declare(fr.bindingScope(), Declaration{
					Kind:   DeclVariable,
					Name:   name.Name,
					Span:   exprs.Get(d.Target).Span,
					Target: d.Target,
					Value:  d.Value,
				})
			}
		}
	case ast.ExprYield, ast.ExprYieldFrom, ast.ExprStarred, ast.ExprAwait:
		if d, ok := exprs.Wrapped(id); ok {
			fr.walkExpr(d.Value)
		}
	case ast.ExprGenerator, ast.ExprListComp, ast.ExprSetComp, ast.ExprDictComp:
		if d, ok := exprs.Comprehension(id); ok {
			fr.walkComprehension(id, expr, d)
		}
	case ast.ExprAttribute:
		if d, ok := exprs.Attribute(id); ok {
			fr.walkExpr(d.Value)
		}
	case ast.ExprSubscript:
		if d, ok := exprs.Subscript(id); ok {
			fr.walkExpr(d.Value)
			fr.walkExpr(d.Slice)
		}
	case ast.ExprSlice:
		if d, ok := exprs.Slice(id); ok {
			fr.walkExpr(d.Lower)
			fr.walkExpr(d.Upper)
			fr.walkExpr(d.Step)
		}
	case ast.ExprCall:
		if d, ok := exprs.Call(id); ok {
			fr.walkExpr(d.Func)
			fr.walkExprs(d.Args)
			for _, kw := range d.Keywords {
				fr.walkExpr(kw.Value)
			}
		}
	case ast.ExprCompare:
		if d, ok := exprs.Compare(id); ok {
			fr.walkExpr(d.Left)
			fr.walkExprs(d.Comparators)
		}
	case ast.ExprLambda:
		if d, ok := exprs.Lambda(id); ok {
			for _, p := range d.Params {
				fr.walkExpr(p.Default)
			}
			scope := fr.table.NewScope(ScopeLambda, fr.scope, ExprOwner(id), expr.Span)
			fr.enter(scope, func() {
				fr.declareParams(d.Params)
				fr.walkExpr(d.Body)
			})
		}
	case ast.ExprIfExp:
		if d, ok := exprs.IfExp(id); ok {
			fr.walkExpr(d.Test)
			fr.walkExpr(d.Body)
			fr.walkExpr(d.Orelse)
		}
	case ast.ExprJoinedStr:
		if d, ok := exprs.JoinedStr(id); ok {
			fr.walkExprs(d.Values)
		}
	case ast.ExprFormattedValue:
		if d, ok := exprs.FormattedValue(id); ok {
			fr.walkExpr(d.Value)
			fr.walkExpr(d.FormatSpec)
		}
	}
}

// walkComprehension evaluates the first iterable outside the new scope, the rest inside.
func (fr *fileResolver) walkComprehension(id ast.ExprID, expr *ast.Expr, d *ast.ExprComprehensionData) {
	if len(d.Generators) > 0 {
		fr.walkExpr(d.Generators[0].Iter)
	}
	scope := fr.table.NewScope(ScopeComprehension, fr.scope, ExprOwner(id), expr.Span)
	fr.enter(scope, func() {
		for i, gen := range d.Generators {
			if i > 0 {
				fr.walkExpr(gen.Iter)
			}
			fr.bindTarget(gen.Target, ast.NoExprID)
			fr.walkExprs(gen.Ifs)
		}
		fr.walkExpr(d.Key)
		fr.walkExpr(d.Elt)
	})
}
