package sema

import (
	"testing"

	"pycheck/internal/ast"
	"pycheck/internal/diag"
	"pycheck/internal/source"
	"pycheck/internal/symbols"
)

// fixture builds a single-file tree with unique monotonically increasing spans.
type fixture struct {
	b    *ast.Builder
	file ast.FileID
	off  uint32
}

func newFixture() *fixture {
	b := ast.NewBuilder(ast.Hints{}, nil)
	return &fixture{b: b, file: b.Files.New(source.Span{})}
}

func (f *fixture) sp() source.Span {
	f.off += 2
	return source.Span{Start: f.off, End: f.off + 1}
}

func (f *fixture) intern(s string) source.StringID { return f.b.StringsInterner.Intern(s) }

func (f *fixture) name(s string) ast.ExprID { return f.b.Name(f.sp(), s) }
func (f *fixture) int(v string) ast.ExprID  { return f.b.Int(f.sp(), v) }
func (f *fixture) float(v string) ast.ExprID {
	return f.b.Float(f.sp(), v)
}
func (f *fixture) str(v string) ast.ExprID { return f.b.Str(f.sp(), v) }

func (f *fixture) bin(l ast.ExprID, op ast.BinaryOp, r ast.ExprID) ast.ExprID {
	return f.b.Exprs.NewBinOp(f.sp(), l, op, r)
}

func (f *fixture) exprStmt(e ast.ExprID) ast.StmtID { return f.b.Stmts.NewExpr(f.sp(), e) }

func (f *fixture) assign(target string, value ast.ExprID) ast.StmtID {
	return f.b.Stmts.NewAssign(f.sp(), []ast.ExprID{f.name(target)}, value)
}

func (f *fixture) annotated(target, annotation string, value ast.ExprID) ast.StmtID {
	return f.b.Stmts.NewAnnAssign(f.sp(), f.name(target), f.name(annotation), value, true)
}

func (f *fixture) push(stmts ...ast.StmtID) {
	for _, s := range stmts {
		f.b.PushStmt(f.file, s)
	}
}

// check binds the tree with the reference binder and runs the pass.
func (f *fixture) check(t *testing.T, opts Options) Result {
	t.Helper()
	res := symbols.ResolveFile(f.b, f.file, symbols.ResolveOptions{})
	opts.Symbols = res.Table
	return Check(f.b, f.file, opts)
}

func messages(res Result) []string {
	out := make([]string, 0, res.Bag.Len())
	for _, d := range res.Diagnostics() {
		out = append(out, d.Message)
	}
	return out
}

func codes(res Result) []diag.Code {
	out := make([]diag.Code, 0, res.Bag.Len())
	for _, d := range res.Diagnostics() {
		out = append(out, d.Code)
	}
	return out
}
