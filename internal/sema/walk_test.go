package sema

import (
	"testing"

	"pycheck/internal/ast"
	"pycheck/internal/source"
)

// TestWalkReachesEveryKind hides a `"x" + 1` in every child slot of every
// statement and expression kind and expects each to be reported exactly once.
func TestWalkReachesEveryKind(t *testing.T) {
	f := newFixture()
	e, s, p := f.b.Exprs, f.b.Stmts, f.b.Patterns
	sp := f.sp
	hidden := 0
	bad := func() ast.ExprID {
		hidden++
		return f.bin(f.str("x"), ast.BinaryAdd, f.int("1"))
	}
	one := func() []ast.StmtID { return []ast.StmtID{f.exprStmt(bad())} }
	names := func(n ...string) []source.StringID {
		out := make([]source.StringID, 0, len(n))
		for _, name := range n {
			out = append(out, f.intern(name))
		}
		return out
	}

	exprs := []ast.ExprID{
		e.NewList(sp(), []ast.ExprID{bad()}),
		e.NewTuple(sp(), []ast.ExprID{bad(), f.b.None(sp()), f.b.Bool(sp(), true)}),
		e.NewSet(sp(), []ast.ExprID{bad()}),
		e.NewDict(sp(), []ast.ExprID{bad(), ast.NoExprID}, []ast.ExprID{bad(), f.name("extra")}),
		e.NewBoolOp(sp(), ast.BoolAnd, []ast.ExprID{bad(), f.name("flag")}),
		e.NewUnaryOp(sp(), ast.UnaryNot, bad()),
		e.NewNamedExpr(sp(), f.name("walrus"), bad()),
		e.NewYield(sp(), bad()),
		e.NewYieldFrom(sp(), bad()),
		e.NewStarred(sp(), bad()),
		e.NewAwait(sp(), bad()),
		e.NewComprehension(ast.ExprGenerator, sp(), ast.NoExprID, bad(),
			[]ast.Comprehension{{Target: f.name("g"), Iter: bad(), Ifs: []ast.ExprID{bad()}}}),
		e.NewComprehension(ast.ExprListComp, sp(), ast.NoExprID, bad(),
			[]ast.Comprehension{
				{Target: f.name("l"), Iter: f.name("items")},
				{Target: f.name("m"), Iter: bad(), Async: true},
			}),
		e.NewComprehension(ast.ExprSetComp, sp(), ast.NoExprID, bad(),
			[]ast.Comprehension{{Target: f.name("q"), Iter: f.name("items")}}),
		e.NewComprehension(ast.ExprDictComp, sp(), bad(), bad(),
			[]ast.Comprehension{{Target: f.name("k"), Iter: f.name("items")}}),
		e.NewAttribute(sp(), bad(), f.intern("attr")),
		e.NewSubscript(sp(), bad(), e.NewSlice(sp(), bad(), bad(), bad())),
		e.NewCall(sp(), f.name("print"), []ast.ExprID{bad()},
			[]ast.Keyword{{Arg: f.intern("sep"), Value: bad()}, {Value: bad()}}),
		e.NewCompare(sp(), bad(), []ast.CmpOp{ast.CmpLt, ast.CmpIn}, []ast.ExprID{bad(), f.name("box")}),
		e.NewLambda(sp(), []ast.Param{{Name: f.intern("lp"), Default: bad()}}, bad()),
		e.NewIfExp(sp(), bad(), bad(), bad()),
		e.NewJoinedStr(sp(), []ast.ExprID{f.str("v="), e.NewFormattedValue(sp(), bad(), 'r', bad())}),
	}
	for _, x := range exprs {
		f.push(f.exprStmt(x))
	}

	inner := s.NewFunctionDef(sp(), ast.FunctionDefStmt{
		Name: f.intern("inner"),
		Body: []ast.StmtID{
			s.NewNonlocal(sp(), names("v")),
			s.NewReturn(sp(), bad()),
		},
	})
	outer := s.NewFunctionDef(sp(), ast.FunctionDefStmt{
		Name:       f.intern("outer"),
		TypeParams: []ast.TypeParam{{Name: f.intern("T"), Bound: bad()}},
		Params:     []ast.Param{{Name: f.intern("v"), Annotation: f.name("int"), Default: bad()}},
		Returns:    f.name("int"),
		Decorators: []ast.ExprID{bad()},
		Body:       []ast.StmtID{inner},
		Async:      true,
	})
	class := s.NewClassDef(sp(), ast.ClassDefStmt{
		Name:       f.intern("C"),
		Bases:      []ast.ExprID{bad()},
		Keywords:   []ast.Keyword{{Arg: f.intern("metaclass"), Value: bad()}},
		Decorators: []ast.ExprID{bad()},
		Body:       one(),
	})
	pattern := p.New(ast.Pattern{Kind: ast.PatternOr, Span: sp(), Patterns: []ast.PatternID{
		p.New(ast.Pattern{Kind: ast.PatternValue, Span: sp(), Value: bad()}),
		p.New(ast.Pattern{Kind: ast.PatternSingleton, Span: sp(), Value: f.b.None(sp())}),
		p.New(ast.Pattern{Kind: ast.PatternSequence, Span: sp(), Patterns: []ast.PatternID{
			p.New(ast.Pattern{Kind: ast.PatternStar, Span: sp(), Name: f.intern("rest")}),
		}}),
		p.New(ast.Pattern{
			Kind: ast.PatternMapping, Span: sp(), Keys: []ast.ExprID{bad()},
			Patterns: []ast.PatternID{p.New(ast.Pattern{Kind: ast.PatternAs, Span: sp(), Name: f.intern("cap")})},
			Name:     f.intern("others"),
		}),
		p.New(ast.Pattern{
			Kind: ast.PatternClass, Span: sp(), Value: f.name("C"),
			KwdAttrs:    names("field"),
			KwdPatterns: []ast.PatternID{p.New(ast.Pattern{Kind: ast.PatternValue, Span: sp(), Value: bad()})},
		}),
	}})

	f.push(
		s.NewImport(sp(), []ast.Alias{{Name: f.intern("os.path"), AsName: f.intern("osp")}}),
		s.NewImportFrom(sp(), f.intern("m"), []ast.Alias{{Name: f.intern("x")}}, 1),
		f.assign("a", bad()),
		s.NewAnnAssign(sp(), f.name("b"), f.name("int"), bad(), true),
		s.NewAugAssign(sp(), f.name("b"), ast.BinaryAdd, bad()),
		s.NewAssert(sp(), bad(), bad()),
		s.NewPass(sp()),
		s.NewDelete(sp(), []ast.ExprID{f.name("a")}),
		s.NewRaise(sp(), bad(), bad()),
		s.NewGlobal(sp(), names("gl")),
		s.NewIf(sp(), bad(), one(), one()),
		s.NewWhile(sp(), bad(), []ast.StmtID{s.NewBreak(sp()), s.NewContinue(sp())}, one()),
		s.NewFor(sp(), f.name("i"), bad(), one(), one(), false),
		s.NewWith(sp(), []ast.WithItem{{ContextExpr: bad(), OptionalVars: f.name("fh")}}, one(), false),
		s.NewTry(sp(), one(), []ast.ExceptHandler{{Type: bad(), Name: f.intern("err"), Body: one()}}, one(), one(), false),
		s.NewTry(sp(), one(), []ast.ExceptHandler{{Type: bad(), Body: one()}}, nil, nil, true),
		outer,
		class,
		s.NewMatch(sp(), bad(), []ast.MatchCase{{Pattern: pattern, Guard: bad(), Body: one()}}),
	)

	stmtKinds := make(map[ast.StmtKind]bool)
	for _, st := range s.Arena.Slice() {
		stmtKinds[st.Kind] = true
	}
	if len(stmtKinds) != ast.StmtKindCount {
		t.Fatalf("fixture covers %d of %d statement kinds", len(stmtKinds), ast.StmtKindCount)
	}
	exprKinds := make(map[ast.ExprKind]bool)
	for _, ex := range e.Arena.Slice() {
		exprKinds[ex.Kind] = true
	}
	if len(exprKinds) != ast.ExprKindCount {
		t.Fatalf("fixture covers %d of %d expression kinds", len(exprKinds), ast.ExprKindCount)
	}

	res := f.check(t, Options{})
	if res.Bag.Len() != hidden {
		t.Fatalf("expected %d diagnostics, got %d: %v", hidden, res.Bag.Len(), messages(res))
	}
	for i := uint32(1); i <= e.Arena.Len(); i++ {
		if _, ok := res.ExprTypes[ast.ExprID(i)]; !ok {
			t.Fatalf("expression %d (%s) was never typed", i, e.Get(ast.ExprID(i)).Kind)
		}
	}
}
