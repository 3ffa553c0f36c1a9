package fuzztests

import (
	"bytes"
	"testing"

	"pycheck/internal/ast"
	"pycheck/internal/driver"
	"pycheck/internal/source"
	"pycheck/internal/symbols"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func addSnapshotSeeds(f *testing.F) {
	f.Add([]byte{})
	for _, withTable := range []bool{false, true} {
		var buf bytes.Buffer
		if err := driver.EncodeSnapshot(&buf, seedSnapshot(withTable)); err != nil {
			f.Fatalf("encode seed: %v", err)
		}
		f.Add(buf.Bytes())
		// усечённая копия
		f.Add(buf.Bytes()[:buf.Len()/2])
	}
}

// seedSnapshot covers a function scope, a branch and a bad operator.
func seedSnapshot(withTable bool) *driver.Snapshot {
	text := "def f(n):\n    if n:\n        return \"a\" + 1\n    return n * 2.0\n"
	sp := func(start, end uint32) source.Span { return source.Span{Start: start, End: end} }
	b := ast.NewBuilder(ast.Hints{}, nil)
	file := b.Files.New(sp(0, uint32(len(text))))
	bad := b.Exprs.NewBinOp(sp(35, 42), b.Str(sp(35, 38), "a"), ast.BinaryAdd, b.Int(sp(41, 42), "1"))
	scaled := b.Exprs.NewBinOp(sp(54, 61), b.Name(sp(54, 55), "n"), ast.BinaryMult, b.Float(sp(58, 61), "2.0"))
	body := []ast.StmtID{
		b.Stmts.NewIf(sp(14, 42), b.Name(sp(17, 18), "n"), []ast.StmtID{b.Stmts.NewReturn(sp(28, 42), bad)}, nil),
		b.Stmts.NewReturn(sp(47, 61), scaled),
	}
	b.PushStmt(file, b.Stmts.NewFunctionDef(sp(0, 61), ast.FunctionDefStmt{
		Name:   b.StringsInterner.Intern("f"),
		Params: []ast.Param{{Name: b.StringsInterner.Intern("n")}},
		Body:   body,
	}))
	var table *symbols.Table
	if withTable {
		table = symbols.ResolveFile(b, file, symbols.ResolveOptions{}).Table
	}
	return driver.NewSnapshot("seed.py", []byte(text), b, file, table)
}
