package sema

import (
	"pycheck/internal/ast"
	"pycheck/internal/diag"
	"pycheck/internal/types"
)

// checkBinOp applies the binary rule to already visited operands and records
// the result for inference. A rejected operation types as Unknown so the
// mismatch does not cascade into enclosing operations.
func (tc *typeChecker) checkBinOp(id ast.ExprID, expr *ast.Expr, data *ast.ExprBinOpData) {
	left, right := tc.typeOf(data.Left), tc.typeOf(data.Right)
	result, ok := tc.rules.Binary(data.Op, left, right)
	tc.binResults[id] = result
	if ok {
		return
	}
	tc.report(diag.SemaBinaryOperator, expr.Span,
		"Operator '%s' not supported for types '%s' and '%s'",
		data.Op, types.Label(left), types.Label(right)).
		WithOperands(data.Op.String(), types.Label(left), types.Label(right)).
		Emit()
}

func (tc *typeChecker) checkUnaryOp(expr *ast.Expr, data *ast.ExprUnaryOpData) {
	if !tc.policy.Enabled(diag.CategoryUnaryOperator) {
		return
	}
	operand := tc.typeOf(data.Operand)
	if _, ok := tc.rules.Unary(data.Op, operand); ok {
		return
	}
	tc.report(diag.SemaUnaryOperator, expr.Span,
		"Operator '%s' not supported for type '%s'", data.Op, types.Label(operand)).
		WithOperands(data.Op.String(), types.Label(operand), "").
		Emit()
}

// checkCompare checks each link of a chain `a < b <= c` independently.
func (tc *typeChecker) checkCompare(data *ast.ExprCompareData) {
	if !tc.policy.Enabled(diag.CategoryComparison) {
		return
	}
	leftID := data.Left
	for i, op := range data.Ops {
		if i >= len(data.Comparators) {
			return
		}
		rightID := data.Comparators[i]
		left, right := tc.typeOf(leftID), tc.typeOf(rightID)
		if _, ok := tc.rules.Compare(op, left, right); !ok {
			span := tc.spanOf(leftID).Cover(tc.spanOf(rightID))
			tc.report(diag.SemaComparison, span,
				"Operator '%s' not supported for types '%s' and '%s'",
				op, types.Label(left), types.Label(right)).
				WithOperands(op.String(), types.Label(left), types.Label(right)).
				Emit()
		}
		leftID = rightID
	}
}

// checkName reports names that resolve nowhere, builtins excluded.
func (tc *typeChecker) checkName(expr *ast.Expr, data *ast.ExprNameData) {
	if tc.table == nil || !tc.policy.Enabled(diag.CategoryUnresolvedName) {
		return
	}
	if _, ok := tc.table.Lookup(tc.currentScope(), data.Name); ok {
		return
	}
	text := tc.builder.Lookup(data.Name)
	if isBuiltinName(text) {
		return
	}
	tc.report(diag.SemaUnresolvedName, expr.Span, "Name '%s' is not defined", text).Emit()
}
