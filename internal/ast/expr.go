package ast

import (
	"fmt"

	"pycheck/internal/source"
)

type ExprKind uint8

const (
	ExprConstant ExprKind = iota
	ExprList
	ExprTuple
	ExprDict
	ExprSet
	ExprName
	ExprBoolOp
	ExprUnaryOp
	ExprBinOp
	ExprNamedExpr
	ExprYield
	ExprYieldFrom
	ExprStarred
	ExprGenerator
	ExprListComp
	ExprSetComp
	ExprDictComp
	ExprAttribute
	ExprSubscript
	ExprSlice
	ExprCall
	ExprAwait
	ExprCompare
	ExprLambda
	ExprIfExp
	ExprJoinedStr
	ExprFormattedValue

	exprKindCount
)

// ExprKindCount is the number of expression kinds.
const ExprKindCount = int(exprKindCount)

var exprKindNames = [...]string{
	ExprConstant:       "Constant",
	ExprList:           "List",
	ExprTuple:          "Tuple",
	ExprDict:           "Dict",
	ExprSet:            "Set",
	ExprName:           "Name",
	ExprBoolOp:         "BoolOp",
	ExprUnaryOp:        "UnaryOp",
	ExprBinOp:          "BinOp",
	ExprNamedExpr:      "NamedExpr",
	ExprYield:          "Yield",
	ExprYieldFrom:      "YieldFrom",
	ExprStarred:        "Starred",
	ExprGenerator:      "Generator",
	ExprListComp:       "ListComp",
	ExprSetComp:        "SetComp",
	ExprDictComp:       "DictComp",
	ExprAttribute:      "Attribute",
	ExprSubscript:      "Subscript",
	ExprSlice:          "Slice",
	ExprCall:           "Call",
	ExprAwait:          "Await",
	ExprCompare:        "Compare",
	ExprLambda:         "Lambda",
	ExprIfExp:          "IfExp",
	ExprJoinedStr:      "JoinedStr",
	ExprFormattedValue: "FormattedValue",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return fmt.Sprintf("ExprKind(%d)", uint8(k))
}

// IsComprehension reports kinds that open their own scope for loop targets.
func (k ExprKind) IsComprehension() bool {
	switch k {
	case ExprGenerator, ExprListComp, ExprSetComp, ExprDictComp:
		return true
	default:
		return false
	}
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprConstantData struct {
	Kind  ConstKind
	Value source.StringID // literal text as written
}

// ExprSequenceData backs list, tuple and set displays.
type ExprSequenceData struct {
	Elts []ExprID
}

// ExprDictData keeps keys and values parallel; a NoExprID key marks `**value`.
type ExprDictData struct {
	Keys   []ExprID
	Values []ExprID
}

type ExprNameData struct {
	Name source.StringID
}

type ExprBoolOpData struct {
	Op     BoolOp
	Values []ExprID
}

type ExprUnaryOpData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprBinOpData struct {
	Left  ExprID
	Op    BinaryOp
	Right ExprID
}

type ExprNamedData struct {
	Target ExprID
	Value  ExprID
}

// ExprWrapData backs yield, yield from, starred and await; Value may be NoExprID for a bare yield.
type ExprWrapData struct {
	Value ExprID
}

// ExprComprehensionData backs generator, list, set and dict comprehensions.
// Key is set only for dict comprehensions.
type ExprComprehensionData struct {
	Key        ExprID
	Elt        ExprID
	Generators []Comprehension
}

type ExprAttributeData struct {
	Value ExprID
	Attr  source.StringID
}

type ExprSubscriptData struct {
	Value ExprID
	Slice ExprID
}

type ExprSliceData struct {
	Lower ExprID
	Upper ExprID
	Step  ExprID
}

type ExprCallData struct {
	Func     ExprID
	Args     []ExprID
	Keywords []Keyword
}

type ExprCompareData struct {
	Left        ExprID
	Ops         []CmpOp
	Comparators []ExprID
}

type ExprLambdaData struct {
	Params []Param
	Body   ExprID
}

type ExprIfExpData struct {
	Test   ExprID
	Body   ExprID
	Orelse ExprID
}

type ExprJoinedStrData struct {
	Values []ExprID
}

type ExprFormattedValueData struct {
	Value      ExprID
	Conversion int8 // -1 none, otherwise 's', 'r' or 'a'
	FormatSpec ExprID
}
