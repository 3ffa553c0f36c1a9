package types

import "pycheck/internal/ast"

// FamilyMask describes broad categories of types an operator accepts.
type FamilyMask uint32

const (
	FamilyNone FamilyMask = 0
	FamilyInt  FamilyMask = 1 << iota
	FamilyFloat
	FamilyStr
	FamilyBool
	FamilyNoneType
)

const (
	FamilyNumeric = FamilyInt | FamilyFloat
	FamilyAny     = FamilyInt | FamilyFloat | FamilyStr | FamilyBool | FamilyNoneType
)

// Family returns the mask bit of a concrete type; FamilyNone for Unknown.
func Family(t Type) FamilyMask {
	switch t.Kind {
	case KindInt:
		return FamilyInt
	case KindFloat:
		return FamilyFloat
	case KindStr:
		return FamilyStr
	case KindBool:
		return FamilyBool
	case KindNone:
		return FamilyNoneType
	default:
		return FamilyNone
	}
}

// BinaryResult describes how to derive the result type for an operator.
type BinaryResult uint8

const (
	BinaryResultUnknown BinaryResult = iota
	BinaryResultLeft
	BinaryResultBool
	BinaryResultNumeric // Float if either side is Float, Int otherwise
	BinaryResultFloat
)

// BinaryFlags annotate special handling for binary operators.
type BinaryFlags uint16

const (
	BinaryFlagNone        BinaryFlags = 0
	BinaryFlagCommutative BinaryFlags = 1 << iota
	BinaryFlagSameFamily
	BinaryFlagTrueDivision // result is Numeric under legacy (pre-3) division
)

// BinarySpec lists operand families and expected result for an operation.
type BinarySpec struct {
	Left   FamilyMask
	Right  FamilyMask
	Result BinaryResult
	Flags  BinaryFlags
}

// UnaryResult indicates how to derive the resulting type.
type UnaryResult uint8

const (
	UnaryResultUnknown UnaryResult = iota
	UnaryResultSame
	UnaryResultBool
)

// UnarySpec describes operand expectations for unary operators.
type UnarySpec struct {
	Operand FamilyMask
	Result  UnaryResult
}

var numericRule = BinarySpec{Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultNumeric}

var intRule = BinarySpec{Left: FamilyInt, Right: FamilyInt, Result: BinaryResultLeft, Flags: BinaryFlagSameFamily}

var binarySpecTable = map[ast.BinaryOp][]BinarySpec{
	ast.BinaryAdd: {
		{Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultNumeric, Flags: BinaryFlagCommutative},
		{Left: FamilyStr, Right: FamilyStr, Result: BinaryResultLeft, Flags: BinaryFlagCommutative | BinaryFlagSameFamily},
	},
	ast.BinarySub:      {numericRule},
	ast.BinaryMult:     {numericRule},
	ast.BinaryFloorDiv: {numericRule},
	ast.BinaryMod:      {numericRule},
	ast.BinaryPow:      {numericRule},
	ast.BinaryDiv: {
		{Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultFloat, Flags: BinaryFlagTrueDivision},
	},
	ast.BinaryLShift: {intRule},
	ast.BinaryRShift: {intRule},
	ast.BinaryBitAnd: {intRule},
	ast.BinaryBitOr:  {intRule},
	ast.BinaryBitXor: {intRule},
	// @ has no builtin operand type.
	ast.BinaryMatMult: nil,
}

var compareSpecTable = map[ast.CmpOp][]BinarySpec{
	ast.CmpEq:    {{Left: FamilyAny, Right: FamilyAny, Result: BinaryResultBool, Flags: BinaryFlagCommutative}},
	ast.CmpNotEq: {{Left: FamilyAny, Right: FamilyAny, Result: BinaryResultBool, Flags: BinaryFlagCommutative}},
	ast.CmpIs:    {{Left: FamilyAny, Right: FamilyAny, Result: BinaryResultBool, Flags: BinaryFlagCommutative}},
	ast.CmpIsNot: {{Left: FamilyAny, Right: FamilyAny, Result: BinaryResultBool, Flags: BinaryFlagCommutative}},
	ast.CmpLt:    orderingRules,
	ast.CmpLtE:   orderingRules,
	ast.CmpGt:    orderingRules,
	ast.CmpGtE:   orderingRules,
	ast.CmpIn:    membershipRules,
	ast.CmpNotIn: membershipRules,
}

var orderingRules = []BinarySpec{
	{Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultBool},
	{Left: FamilyStr, Right: FamilyStr, Result: BinaryResultBool, Flags: BinaryFlagSameFamily},
}

// str is the only modelled container.
var membershipRules = []BinarySpec{
	{Left: FamilyStr, Right: FamilyStr, Result: BinaryResultBool, Flags: BinaryFlagSameFamily},
}

var unarySpecTable = map[ast.UnaryOp]UnarySpec{
	ast.UnaryPlus:   {Operand: FamilyNumeric, Result: UnaryResultSame},
	ast.UnaryMinus:  {Operand: FamilyNumeric, Result: UnaryResultSame},
	ast.UnaryInvert: {Operand: FamilyInt, Result: UnaryResultSame},
	ast.UnaryNot:    {Operand: FamilyAny, Result: UnaryResultBool},
}

// BinarySpecs returns operand rules for the given operator.
func BinarySpecs(op ast.BinaryOp) []BinarySpec {
	return binarySpecTable[op]
}

// CompareSpecs returns operand rules for one link of a comparison chain.
func CompareSpecs(op ast.CmpOp) []BinarySpec {
	return compareSpecTable[op]
}

// UnarySpecFor returns operand/result hints for unary operators.
func UnarySpecFor(op ast.UnaryOp) (UnarySpec, bool) {
	spec, ok := unarySpecTable[op]
	return spec, ok
}

// Rules evaluates the operator tables against concrete operand types.
type Rules struct {
	// LegacyDivision makes Int / Int yield Int (targets before 3.0).
	LegacyDivision bool
}

// Binary returns the result type and whether the operation is accepted.
// Any Unknown operand is accepted with an Unknown result.
func (r Rules) Binary(op ast.BinaryOp, left, right Type) (Type, bool) {
	if IsUnknown(left) || IsUnknown(right) {
		return Unknown, true
	}
	spec, ok := match(BinarySpecs(op), left, right)
	if !ok {
		return Unknown, false
	}
	if spec.Flags&BinaryFlagTrueDivision != 0 && r.LegacyDivision {
		return resolveResult(BinaryResultNumeric, left, right), true
	}
	return resolveResult(spec.Result, left, right), true
}

// Compare checks one link `left op right` of a comparison chain.
func (r Rules) Compare(op ast.CmpOp, left, right Type) (Type, bool) {
	if IsUnknown(left) || IsUnknown(right) {
		return Unknown, true
	}
	spec, ok := match(CompareSpecs(op), left, right)
	if !ok {
		return Unknown, false
	}
	return resolveResult(spec.Result, left, right), true
}

// Unary returns the result type and whether the operand is accepted.
func (r Rules) Unary(op ast.UnaryOp, operand Type) (Type, bool) {
	if IsUnknown(operand) {
		return Unknown, true
	}
	spec, ok := UnarySpecFor(op)
	if !ok || spec.Operand&Family(operand) == 0 {
		return Unknown, false
	}
	switch spec.Result {
	case UnaryResultSame:
		return operand, true
	case UnaryResultBool:
		return Bool, true
	default:
		return Unknown, true
	}
}

func match(specs []BinarySpec, left, right Type) (BinarySpec, bool) {
	lf, rf := Family(left), Family(right)
	for _, spec := range specs {
		if spec.Left&lf == 0 || spec.Right&rf == 0 {
			continue
		}
		if spec.Flags&BinaryFlagSameFamily != 0 && lf != rf {
			continue
		}
		return spec, true
	}
	return BinarySpec{}, false
}

func resolveResult(result BinaryResult, left, right Type) Type {
	switch result {
	case BinaryResultLeft:
		return left
	case BinaryResultBool:
		return Bool
	case BinaryResultFloat:
		return Float
	case BinaryResultNumeric:
		if left.Kind == KindFloat || right.Kind == KindFloat {
			return Float
		}
		return Int
	default:
		return Unknown
	}
}
