package symbols

import (
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"pycheck/internal/ast"
	"pycheck/internal/source"
)

func newTestTable(t *testing.T) (*Table, ScopeID) {
	t.Helper()
	table := NewTable(Hints{}, nil)
	root := table.NewFileRoot(1, source.Span{})
	return table, root
}

func TestDeclareAppendsInOrder(t *testing.T) {
	table, root := newTestTable(t)
	x := table.Strings.Intern("x")
	first, _ := table.Declare(root, Declaration{Kind: DeclVariable, Name: x, Annotation: 7})
	second, lastID := table.Declare(root, Declaration{Kind: DeclVariable, Name: x, Annotation: 9})
	if first != second {
		t.Fatalf("same name must share a symbol: %d vs %d", first, second)
	}
	sym := table.Symbol(first)
	if len(sym.Decls) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(sym.Decls))
	}
	decl, ok := table.LastDeclaration(first)
	if !ok || decl.Annotation != 9 || sym.Last() != lastID {
		t.Fatalf("last declaration mismatch: %+v", decl)
	}
}

func TestLookupWalksParentsAndSkipsClassBodies(t *testing.T) {
	table, root := newTestTable(t)
	x := table.Strings.Intern("x")
	z := table.Strings.Intern("z")
	table.Declare(root, Declaration{Kind: DeclVariable, Name: x})
	class := table.NewScope(ScopeClass, root, StmtOwner(1), source.Span{})
	table.Declare(class, Declaration{Kind: DeclVariable, Name: z})
	method := table.NewScope(ScopeFunction, class, StmtOwner(2), source.Span{})

	if _, ok := table.Lookup(method, x); !ok {
		t.Fatalf("module name must be visible from a method")
	}
	if _, ok := table.Lookup(class, z); !ok {
		t.Fatalf("class attribute must be visible in the class body")
	}
	if _, ok := table.Lookup(method, z); ok {
		t.Fatalf("class attribute must not be visible from a method")
	}
	if _, ok := table.Lookup(method, table.Strings.Intern("missing")); ok {
		t.Fatalf("unknown name resolved")
	}
}

func TestRedirectFollowsGlobal(t *testing.T) {
	table, root := newTestTable(t)
	x := table.Strings.Intern("x")
	outer := table.NewScope(ScopeFunction, root, StmtOwner(1), source.Span{})
	inner := table.NewScope(ScopeFunction, outer, StmtOwner(2), source.Span{})
	moduleSym, _ := table.Declare(root, Declaration{Kind: DeclVariable, Name: x})
	table.Declare(outer, Declaration{Kind: DeclVariable, Name: x})
	table.Redirect(inner, x, root)

	got, ok := table.Lookup(inner, x)
	if !ok || got != moduleSym {
		t.Fatalf("global x must resolve to the module symbol, got %d", got)
	}
}

func TestLookupNormalizesIdentifiers(t *testing.T) {
	table, root := newTestTable(t)
	ligature := table.Strings.Intern("ﬁle") // ﬁle
	sym, _ := table.Declare(root, Declaration{Kind: DeclVariable, Name: ligature})
	got, ok := table.LookupString(root, "file")
	if !ok || got != sym {
		t.Fatalf("NFKC-equivalent name did not resolve")
	}
	got, ok = table.Lookup(root, ligature)
	if !ok || got != sym {
		t.Fatalf("original spelling did not resolve")
	}
}

func TestScopeOf(t *testing.T) {
	table, root := newTestTable(t)
	fn := table.NewScope(ScopeFunction, root, StmtOwner(4), source.Span{})
	lambda := table.NewScope(ScopeLambda, fn, ExprOwner(11), source.Span{})
	if got, ok := table.ScopeOf(StmtOwner(4)); !ok || got != fn {
		t.Fatalf("ScopeOf(stmt) = %d, %v", got, ok)
	}
	if got, ok := table.ScopeOf(ExprOwner(11)); !ok || got != lambda {
		t.Fatalf("ScopeOf(expr) = %d, %v", got, ok)
	}
	if _, ok := table.ScopeOf(ExprOwner(12)); ok {
		t.Fatalf("unowned expression must have no scope")
	}
	if got, ok := table.FileRoot(1); !ok || got != root {
		t.Fatalf("FileRoot = %d, %v", got, ok)
	}
}

func TestTableMsgpackRoundTrip(t *testing.T) {
	table, root := newTestTable(t)
	x := table.Strings.Intern("x")
	table.Declare(root, Declaration{Kind: DeclVariable, Name: x, Annotation: 3})
	fn := table.NewScope(ScopeFunction, root, StmtOwner(5), source.Span{})

	raw, err := msgpack.Marshal(table)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var restored Table
	if err := msgpack.Unmarshal(raw, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	restored.Strings = table.Strings

	sym, ok := restored.Lookup(fn, x)
	if !ok {
		t.Fatalf("symbol lost in round trip")
	}
	decl, ok := restored.LastDeclaration(sym)
	if !ok || decl.Annotation != ast.ExprID(3) {
		t.Fatalf("declaration lost: %+v", decl)
	}
	if got, ok := restored.ScopeOf(StmtOwner(5)); !ok || got != fn {
		t.Fatalf("owner index not rebuilt")
	}
	if got, ok := restored.FileRoot(1); !ok || got != root {
		t.Fatalf("file root not rebuilt")
	}
}
