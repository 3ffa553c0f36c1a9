package sema

import (
	"pycheck/internal/ast"
	"pycheck/internal/diag"
	"pycheck/internal/symbols"
	"pycheck/internal/trace"
	"pycheck/internal/types"
)

// Options configure a semantic pass over a file.
type Options struct {
	// Reporter additionally receives every diagnostic that passes Policy.
	Reporter diag.Reporter
	Symbols  *symbols.Table
	// NameTyper overrides how name occurrences are typed. Nil selects the
	// last declaration visible in the lexical scope chain.
	NameTyper      NameTyper
	Rules          types.Rules
	Policy         diag.Policy
	MaxDiagnostics int // 0 means unlimited
	Tracer         trace.Tracer
}

// Result stores semantic artefacts produced by the checker.
type Result struct {
	Bag       *diag.Bag
	ExprTypes map[ast.ExprID]types.Type
}

// Diagnostics returns the reported diagnostics in traversal order.
func (r Result) Diagnostics() []diag.Diagnostic {
	if r.Bag == nil {
		return nil
	}
	return r.Bag.Items()
}

// Unit bundles the read-only inputs of one pass.
type Unit struct {
	Builder *ast.Builder
	File    ast.FileID
	Symbols *symbols.Table
}

// CheckUnit runs Check with the unit's table.
func CheckUnit(u Unit, opts Options) Result {
	opts.Symbols = u.Symbols
	return Check(u.Builder, u.File, opts)
}

// Check walks every statement and expression of fileID once, infers operand
// types and reports operator mismatches. The tree and table are only read.
// Type errors never abort the walk.
func Check(builder *ast.Builder, fileID ast.FileID, opts Options) Result {
	res := Result{
		Bag:       diag.NewBag(opts.MaxDiagnostics),
		ExprTypes: make(map[ast.ExprID]types.Type),
	}
	if builder == nil || fileID == ast.NoFileID {
		return res
	}

	checker := typeChecker{
		builder: builder,
		fileID:  fileID,
		table:   opts.Symbols,
		rules:   opts.Rules,
		policy:  opts.Policy,
		tracer:  opts.Tracer,
		result:  &res,
		reporter: diag.FilterReporter{
			Next:   diag.MultiReporter{diag.BagReporter{Bag: res.Bag}, opts.Reporter},
			Policy: opts.Policy,
		},
	}
	checker.names = opts.NameTyper
	if checker.names == nil {
		checker.names = lastDeclarationTyper{builder: builder, table: opts.Symbols}
	}
	checker.run()
	return res
}
