package sema

import (
	"fmt"
	"strconv"

	"pycheck/internal/ast"
	"pycheck/internal/diag"
	"pycheck/internal/source"
	"pycheck/internal/symbols"
	"pycheck/internal/trace"
	"pycheck/internal/types"
)

type typeChecker struct {
	builder  *ast.Builder
	fileID   ast.FileID
	table    *symbols.Table
	names    NameTyper
	rules    types.Rules
	policy   diag.Policy
	reporter diag.Reporter
	result   *Result

	tracer   trace.Tracer // nil disables node spans
	rootSpan *trace.Span

	scopeStack []symbols.ScopeID
	// rule result per BinOp: the type when accepted, Unknown when rejected
	binResults map[ast.ExprID]types.Type
	stmtSeen   map[ast.StmtID]struct{}
}

func (tc *typeChecker) run() {
	if tc.builder == nil || tc.result == nil {
		return
	}
	file := tc.builder.Files.Get(tc.fileID)
	if file == nil {
		return
	}

	if tc.tracer != nil && tc.tracer.Enabled() {
		tc.rootSpan = trace.Begin(tc.tracer, trace.ScopePass, "sema_check", 0)
		defer func() {
			tc.rootSpan.
				WithExtra("exprs", strconv.Itoa(len(tc.result.ExprTypes))).
				WithExtra("diagnostics", strconv.Itoa(tc.result.Bag.Len())).
				End("")
		}()
	}

	tc.binResults = make(map[ast.ExprID]types.Type)
	tc.stmtSeen = make(map[ast.StmtID]struct{})
	tc.scopeStack = tc.scopeStack[:0]
	if root, ok := tc.table.FileRoot(tc.fileID); ok {
		tc.pushScope(root)
		defer tc.leaveScope()
	}
	tc.walkBody(file.Body)
}

func (tc *typeChecker) pushScope(scope symbols.ScopeID) {
	tc.scopeStack = append(tc.scopeStack, scope)
}

func (tc *typeChecker) leaveScope() {
	if len(tc.scopeStack) == 0 {
		return
	}
	tc.scopeStack = tc.scopeStack[:len(tc.scopeStack)-1]
}

func (tc *typeChecker) currentScope() symbols.ScopeID {
	if len(tc.scopeStack) == 0 {
		return symbols.NoScopeID
	}
	return tc.scopeStack[len(tc.scopeStack)-1]
}

// enterOwned switches to the scope the table records for owner and reports
// whether it did; without one the ambient scope stays in effect.
func (tc *typeChecker) enterOwned(owner symbols.ScopeOwner) bool {
	scope, ok := tc.table.ScopeOf(owner)
	if !ok {
		return false
	}
	tc.pushScope(scope)
	return true
}

func (tc *typeChecker) withOwnedScope(owner symbols.ScopeOwner, fn func()) {
	if tc.enterOwned(owner) {
		defer tc.leaveScope()
	}
	fn()
}

func (tc *typeChecker) report(code diag.Code, span source.Span, format string, args ...interface{}) *diag.ReportBuilder {
	if tc.reporter == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return diag.ReportError(tc.reporter, code, span, msg)
}

func (tc *typeChecker) nodeSpan(kind string) *trace.Span {
	if tc.tracer == nil || !tc.tracer.Level().ShouldEmit(trace.ScopeNode) {
		return nil
	}
	return trace.Begin(tc.tracer, trace.ScopeNode, kind, tc.rootSpan.ID())
}

func (tc *typeChecker) spanOf(id ast.ExprID) source.Span {
	if expr := tc.builder.Exprs.Get(id); expr != nil {
		return expr.Span
	}
	return source.Span{}
}
