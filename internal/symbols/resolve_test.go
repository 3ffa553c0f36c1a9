package symbols

import (
	"testing"

	"pycheck/internal/ast"
	"pycheck/internal/source"
)

func lastDeclOf(t *testing.T, table *Table, scope ScopeID, name string) *Declaration {
	t.Helper()
	sym, ok := table.LookupString(scope, name)
	if !ok {
		t.Fatalf("%q not resolved", name)
	}
	decl, ok := table.LastDeclaration(sym)
	if !ok {
		t.Fatalf("%q has no declaration", name)
	}
	return decl
}

func TestResolveFileDeclarations(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	sp := source.Span{}
	file := b.Files.New(sp)

	// x: int = 1
	xInt := b.Stmts.NewAnnAssign(sp, b.Name(sp, "x"), b.Name(sp, "int"), b.Int(sp, "1"), true)
	b.PushStmt(file, xInt)
	// x = "s"
	b.PushStmt(file, b.Stmts.NewAssign(sp, []ast.ExprID{b.Name(sp, "x")}, b.Str(sp, `"s"`)))
	// import os.path
	b.PushStmt(file, b.Stmts.NewImport(sp, []ast.Alias{{Name: b.StringsInterner.Intern("os.path")}}))

	// def f(a: str): y = a
	param := ast.Param{Name: b.StringsInterner.Intern("a"), Kind: ast.ParamNormal, Annotation: b.Name(sp, "str")}
	inner := b.Stmts.NewAssign(sp, []ast.ExprID{b.Name(sp, "y")}, b.Name(sp, "a"))
	fn := b.Stmts.NewFunctionDef(sp, ast.FunctionDefStmt{
		Name:   b.StringsInterner.Intern("f"),
		Params: []ast.Param{param},
		Body:   []ast.StmtID{inner},
	})
	b.PushStmt(file, fn)

	// class C: z = 2
	classBody := b.Stmts.NewAssign(sp, []ast.ExprID{b.Name(sp, "z")}, b.Int(sp, "2"))
	class := b.Stmts.NewClassDef(sp, ast.ClassDefStmt{Name: b.StringsInterner.Intern("C"), Body: []ast.StmtID{classBody}})
	b.PushStmt(file, class)

	res := ResolveFile(b, file, ResolveOptions{})
	table := res.Table

	x := table.Symbol(mustLookup(t, table, res.FileScope, "x"))
	if len(x.Decls) != 2 {
		t.Fatalf("x: expected 2 declarations, got %d", len(x.Decls))
	}
	if d := table.Declaration(x.Decls[0]); d.Kind != DeclVariable || !d.Annotation.IsValid() || d.Stmt != xInt {
		t.Fatalf("first x declaration wrong: %+v", d)
	}
	if d := lastDeclOf(t, table, res.FileScope, "x"); d.Annotation.IsValid() {
		t.Fatalf("last x declaration must be unannotated")
	}
	if d := lastDeclOf(t, table, res.FileScope, "os"); d.Kind != DeclImport {
		t.Fatalf("os: kind %s", d.Kind)
	}
	if d := lastDeclOf(t, table, res.FileScope, "f"); d.Kind != DeclFunction {
		t.Fatalf("f: kind %s", d.Kind)
	}

	fnScope, ok := table.ScopeOf(StmtOwner(fn))
	if !ok {
		t.Fatalf("function scope not recorded")
	}
	if d := lastDeclOf(t, table, fnScope, "a"); d.Kind != DeclParameter || !d.Annotation.IsValid() {
		t.Fatalf("a: %+v", d)
	}
	if _, ok := table.LookupString(res.FileScope, "y"); ok {
		t.Fatalf("function local leaked into module scope")
	}
	classScope, ok := table.ScopeOf(StmtOwner(class))
	if !ok {
		t.Fatalf("class scope not recorded")
	}
	if d := lastDeclOf(t, table, classScope, "z"); d.Kind != DeclVariable {
		t.Fatalf("z: %+v", d)
	}
}

func TestResolveComprehensionAndWalrus(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	sp := source.Span{}
	file := b.Files.New(sp)

	// [(n := i) for i in xs]
	named := b.Exprs.NewNamedExpr(sp, b.Name(sp, "n"), b.Name(sp, "i"))
	comp := b.Exprs.NewComprehension(ast.ExprListComp, sp, ast.NoExprID, named, []ast.Comprehension{{
		Target: b.Name(sp, "i"),
		Iter:   b.Name(sp, "xs"),
	}})
	b.PushStmt(file, b.Stmts.NewExpr(sp, comp))

	res := ResolveFile(b, file, ResolveOptions{})
	table := res.Table
	compScope, ok := table.ScopeOf(ExprOwner(comp))
	if !ok {
		t.Fatalf("comprehension scope not recorded")
	}
	if _, ok := table.LookupString(compScope, "i"); !ok {
		t.Fatalf("loop target must be bound in the comprehension")
	}
	if _, ok := table.LookupString(res.FileScope, "i"); ok {
		t.Fatalf("loop target leaked")
	}
	if _, ok := table.LookupString(res.FileScope, "n"); !ok {
		t.Fatalf(":= must bind in the enclosing scope")
	}
}

func mustLookup(t *testing.T, table *Table, scope ScopeID, name string) SymbolID {
	t.Helper()
	sym, ok := table.LookupString(scope, name)
	if !ok {
		t.Fatalf("%q not resolved", name)
	}
	return sym
}
