package ast

import (
	"pycheck/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena           *Arena[Expr]
	Constants       *Arena[ExprConstantData]
	Sequences       *Arena[ExprSequenceData]
	Dicts           *Arena[ExprDictData]
	Names           *Arena[ExprNameData]
	BoolOps         *Arena[ExprBoolOpData]
	UnaryOps        *Arena[ExprUnaryOpData]
	BinOps          *Arena[ExprBinOpData]
	NamedExprs      *Arena[ExprNamedData]
	Wraps           *Arena[ExprWrapData]
	Comprehensions  *Arena[ExprComprehensionData]
	Attributes      *Arena[ExprAttributeData]
	Subscripts      *Arena[ExprSubscriptData]
	Slices          *Arena[ExprSliceData]
	Calls           *Arena[ExprCallData]
	Compares        *Arena[ExprCompareData]
	Lambdas         *Arena[ExprLambdaData]
	IfExps          *Arena[ExprIfExpData]
	JoinedStrs      *Arena[ExprJoinedStrData]
	FormattedValues *Arena[ExprFormattedValueData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint as the initial capacity.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/8 + 1
	return &Exprs{
		Arena:           NewArena[Expr](capHint),
		Constants:       NewArena[ExprConstantData](capHint),
		Sequences:       NewArena[ExprSequenceData](small),
		Dicts:           NewArena[ExprDictData](small),
		Names:           NewArena[ExprNameData](capHint),
		BoolOps:         NewArena[ExprBoolOpData](small),
		UnaryOps:        NewArena[ExprUnaryOpData](small),
		BinOps:          NewArena[ExprBinOpData](capHint),
		NamedExprs:      NewArena[ExprNamedData](small),
		Wraps:           NewArena[ExprWrapData](small),
		Comprehensions:  NewArena[ExprComprehensionData](small),
		Attributes:      NewArena[ExprAttributeData](small),
		Subscripts:      NewArena[ExprSubscriptData](small),
		Slices:          NewArena[ExprSliceData](small),
		Calls:           NewArena[ExprCallData](capHint),
		Compares:        NewArena[ExprCompareData](small),
		Lambdas:         NewArena[ExprLambdaData](small),
		IfExps:          NewArena[ExprIfExpData](small),
		JoinedStrs:      NewArena[ExprJoinedStrData](small),
		FormattedValues: NewArena[ExprFormattedValueData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kinds ...ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil {
		return 0, false
	}
	for _, k := range kinds {
		if expr.Kind == k {
			return uint32(expr.Payload), true
		}
	}
	return 0, false
}

// NewConstant creates a literal; value holds the literal text.
func (e *Exprs) NewConstant(span source.Span, kind ConstKind, value source.StringID) ExprID {
	payload := e.Constants.Allocate(ExprConstantData{Kind: kind, Value: value})
	return e.new(ExprConstant, span, PayloadID(payload))
}

// Constant returns the literal data for the given expression ID.
func (e *Exprs) Constant(id ExprID) (*ExprConstantData, bool) {
	p, ok := e.payload(id, ExprConstant)
	if !ok {
		return nil, false
	}
	return lookup(e.Constants, p)
}

func (e *Exprs) newSequence(kind ExprKind, span source.Span, elts []ExprID) ExprID {
	payload := e.Sequences.Allocate(ExprSequenceData{Elts: append([]ExprID(nil), elts...)})
	return e.new(kind, span, PayloadID(payload))
}

func (e *Exprs) NewList(span source.Span, elts []ExprID) ExprID {
	return e.newSequence(ExprList, span, elts)
}

func (e *Exprs) NewTuple(span source.Span, elts []ExprID) ExprID {
	return e.newSequence(ExprTuple, span, elts)
}

func (e *Exprs) NewSet(span source.Span, elts []ExprID) ExprID {
	return e.newSequence(ExprSet, span, elts)
}

// Sequence returns the elements of a list, tuple or set display.
func (e *Exprs) Sequence(id ExprID) (*ExprSequenceData, bool) {
	p, ok := e.payload(id, ExprList, ExprTuple, ExprSet)
	if !ok {
		return nil, false
	}
	return lookup(e.Sequences, p)
}

func (e *Exprs) NewDict(span source.Span, keys, values []ExprID) ExprID {
	payload := e.Dicts.Allocate(ExprDictData{
		Keys:   append([]ExprID(nil), keys...),
		Values: append([]ExprID(nil), values...),
	})
	return e.new(ExprDict, span, PayloadID(payload))
}

func (e *Exprs) Dict(id ExprID) (*ExprDictData, bool) {
	p, ok := e.payload(id, ExprDict)
	if !ok {
		return nil, false
	}
	return lookup(e.Dicts, p)
}

// NewName creates a new identifier expression.
func (e *Exprs) NewName(span source.Span, name source.StringID) ExprID {
	payload := e.Names.Allocate(ExprNameData{Name: name})
	return e.new(ExprName, span, PayloadID(payload))
}

// Name returns the identifier data for the given expression ID.
func (e *Exprs) Name(id ExprID) (*ExprNameData, bool) {
	p, ok := e.payload(id, ExprName)
	if !ok {
		return nil, false
	}
	return lookup(e.Names, p)
}

func (e *Exprs) NewBoolOp(span source.Span, op BoolOp, values []ExprID) ExprID {
	payload := e.BoolOps.Allocate(ExprBoolOpData{Op: op, Values: append([]ExprID(nil), values...)})
	return e.new(ExprBoolOp, span, PayloadID(payload))
}

func (e *Exprs) BoolOp(id ExprID) (*ExprBoolOpData, bool) {
	p, ok := e.payload(id, ExprBoolOp)
	if !ok {
		return nil, false
	}
	return lookup(e.BoolOps, p)
}

func (e *Exprs) NewUnaryOp(span source.Span, op UnaryOp, operand ExprID) ExprID {
	payload := e.UnaryOps.Allocate(ExprUnaryOpData{Op: op, Operand: operand})
	return e.new(ExprUnaryOp, span, PayloadID(payload))
}

func (e *Exprs) UnaryOp(id ExprID) (*ExprUnaryOpData, bool) {
	p, ok := e.payload(id, ExprUnaryOp)
	if !ok {
		return nil, false
	}
	return lookup(e.UnaryOps, p)
}

// NewBinOp creates a new binary expression.
func (e *Exprs) NewBinOp(span source.Span, left ExprID, op BinaryOp, right ExprID) ExprID {
	payload := e.BinOps.Allocate(ExprBinOpData{Left: left, Op: op, Right: right})
	return e.new(ExprBinOp, span, PayloadID(payload))
}

// BinOp returns the binary data for the given expression ID.
func (e *Exprs) BinOp(id ExprID) (*ExprBinOpData, bool) {
	p, ok := e.payload(id, ExprBinOp)
	if !ok {
		return nil, false
	}
	return lookup(e.BinOps, p)
}

// NewNamedExpr creates `target := value`.
func (e *Exprs) NewNamedExpr(span source.Span, target, value ExprID) ExprID {
	payload := e.NamedExprs.Allocate(ExprNamedData{Target: target, Value: value})
	return e.new(ExprNamedExpr, span, PayloadID(payload))
}

func (e *Exprs) NamedExpr(id ExprID) (*ExprNamedData, bool) {
	p, ok := e.payload(id, ExprNamedExpr)
	if !ok {
		return nil, false
	}
	return lookup(e.NamedExprs, p)
}

func (e *Exprs) newWrap(kind ExprKind, span source.Span, value ExprID) ExprID {
	payload := e.Wraps.Allocate(ExprWrapData{Value: value})
	return e.new(kind, span, PayloadID(payload))
}

func (e *Exprs) NewYield(span source.Span, value ExprID) ExprID {
	return e.newWrap(ExprYield, span, value)
}

func (e *Exprs) NewYieldFrom(span source.Span, value ExprID) ExprID {
	return e.newWrap(ExprYieldFrom, span, value)
}

func (e *Exprs) NewStarred(span source.Span, value ExprID) ExprID {
	return e.newWrap(ExprStarred, span, value)
}

func (e *Exprs) NewAwait(span source.Span, value ExprID) ExprID {
	return e.newWrap(ExprAwait, span, value)
}

// Wrapped returns the operand of yield, yield from, starred or await.
func (e *Exprs) Wrapped(id ExprID) (*ExprWrapData, bool) {
	p, ok := e.payload(id, ExprYield, ExprYieldFrom, ExprStarred, ExprAwait)
	if !ok {
		return nil, false
	}
	return lookup(e.Wraps, p)
}

// NewComprehension creates one of the four comprehension kinds; key is used only by ExprDictComp.
func (e *Exprs) NewComprehension(kind ExprKind, span source.Span, key, elt ExprID, generators []Comprehension) ExprID {
	if !kind.IsComprehension() {
		kind = ExprGenerator
	}
	payload := e.Comprehensions.Allocate(ExprComprehensionData{
		Key:        key,
		Elt:        elt,
		Generators: append([]Comprehension(nil), generators...),
	})
	return e.new(kind, span, PayloadID(payload))
}

func (e *Exprs) Comprehension(id ExprID) (*ExprComprehensionData, bool) {
	p, ok := e.payload(id, ExprGenerator, ExprListComp, ExprSetComp, ExprDictComp)
	if !ok {
		return nil, false
	}
	return lookup(e.Comprehensions, p)
}

func (e *Exprs) NewAttribute(span source.Span, value ExprID, attr source.StringID) ExprID {
	payload := e.Attributes.Allocate(ExprAttributeData{Value: value, Attr: attr})
	return e.new(ExprAttribute, span, PayloadID(payload))
}

func (e *Exprs) Attribute(id ExprID) (*ExprAttributeData, bool) {
	p, ok := e.payload(id, ExprAttribute)
	if !ok {
		return nil, false
	}
	return lookup(e.Attributes, p)
}

func (e *Exprs) NewSubscript(span source.Span, value, slice ExprID) ExprID {
	payload := e.Subscripts.Allocate(ExprSubscriptData{Value: value, Slice: slice})
	return e.new(ExprSubscript, span, PayloadID(payload))
}

func (e *Exprs) Subscript(id ExprID) (*ExprSubscriptData, bool) {
	p, ok := e.payload(id, ExprSubscript)
	if !ok {
		return nil, false
	}
	return lookup(e.Subscripts, p)
}

func (e *Exprs) NewSlice(span source.Span, lower, upper, step ExprID) ExprID {
	payload := e.Slices.Allocate(ExprSliceData{Lower: lower, Upper: upper, Step: step})
	return e.new(ExprSlice, span, PayloadID(payload))
}

func (e *Exprs) Slice(id ExprID) (*ExprSliceData, bool) {
	p, ok := e.payload(id, ExprSlice)
	if !ok {
		return nil, false
	}
	return lookup(e.Slices, p)
}

// NewCall creates a new function call expression.
func (e *Exprs) NewCall(span source.Span, fn ExprID, args []ExprID, keywords []Keyword) ExprID {
	payload := e.Calls.Allocate(ExprCallData{
		Func:     fn,
		Args:     append([]ExprID(nil), args...),
		Keywords: append([]Keyword(nil), keywords...),
	})
	return e.new(ExprCall, span, PayloadID(payload))
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return lookup(e.Calls, p)
}

// NewCompare creates a comparison chain `left op0 c0 op1 c1 ...`.
func (e *Exprs) NewCompare(span source.Span, left ExprID, ops []CmpOp, comparators []ExprID) ExprID {
	payload := e.Compares.Allocate(ExprCompareData{
		Left:        left,
		Ops:         append([]CmpOp(nil), ops...),
		Comparators: append([]ExprID(nil), comparators...),
	})
	return e.new(ExprCompare, span, PayloadID(payload))
}

func (e *Exprs) Compare(id ExprID) (*ExprCompareData, bool) {
	p, ok := e.payload(id, ExprCompare)
	if !ok {
		return nil, false
	}
	return lookup(e.Compares, p)
}

func (e *Exprs) NewLambda(span source.Span, params []Param, body ExprID) ExprID {
	payload := e.Lambdas.Allocate(ExprLambdaData{Params: append([]Param(nil), params...), Body: body})
	return e.new(ExprLambda, span, PayloadID(payload))
}

func (e *Exprs) Lambda(id ExprID) (*ExprLambdaData, bool) {
	p, ok := e.payload(id, ExprLambda)
	if !ok {
		return nil, false
	}
	return lookup(e.Lambdas, p)
}

// NewIfExp creates `body if test else orelse`.
func (e *Exprs) NewIfExp(span source.Span, test, body, orelse ExprID) ExprID {
	payload := e.IfExps.Allocate(ExprIfExpData{Test: test, Body: body, Orelse: orelse})
	return e.new(ExprIfExp, span, PayloadID(payload))
}

func (e *Exprs) IfExp(id ExprID) (*ExprIfExpData, bool) {
	p, ok := e.payload(id, ExprIfExp)
	if !ok {
		return nil, false
	}
	return lookup(e.IfExps, p)
}

func (e *Exprs) NewJoinedStr(span source.Span, values []ExprID) ExprID {
	payload := e.JoinedStrs.Allocate(ExprJoinedStrData{Values: append([]ExprID(nil), values...)})
	return e.new(ExprJoinedStr, span, PayloadID(payload))
}

func (e *Exprs) JoinedStr(id ExprID) (*ExprJoinedStrData, bool) {
	p, ok := e.payload(id, ExprJoinedStr)
	if !ok {
		return nil, false
	}
	return lookup(e.JoinedStrs, p)
}

func (e *Exprs) NewFormattedValue(span source.Span, value ExprID, conversion int8, formatSpec ExprID) ExprID {
	payload := e.FormattedValues.Allocate(ExprFormattedValueData{
		Value:      value,
		Conversion: conversion,
		FormatSpec: formatSpec,
	})
	return e.new(ExprFormattedValue, span, PayloadID(payload))
}

func (e *Exprs) FormattedValue(id ExprID) (*ExprFormattedValueData, bool) {
	p, ok := e.payload(id, ExprFormattedValue)
	if !ok {
		return nil, false
	}
	return lookup(e.FormattedValues, p)
}
