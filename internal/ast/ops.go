package ast

import "fmt"

// BinaryOp enumerates arithmetic and bitwise operators.
type BinaryOp uint8

const (
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMult
	BinaryMatMult
	BinaryDiv
	BinaryMod
	BinaryPow
	BinaryLShift
	BinaryRShift
	BinaryBitOr
	BinaryBitXor
	BinaryBitAnd
	BinaryFloorDiv
)

func (op BinaryOp) String() string {
	switch op {
	case BinaryAdd:
		return "+"
	case BinarySub:
		return "-"
	case BinaryMult:
		return "*"
	case BinaryMatMult:
		return "@"
	case BinaryDiv:
		return "/"
	case BinaryMod:
		return "%"
	case BinaryPow:
		return "**"
	case BinaryLShift:
		return "<<"
	case BinaryRShift:
		return ">>"
	case BinaryBitOr:
		return "|"
	case BinaryBitXor:
		return "^"
	case BinaryBitAnd:
		return "&"
	case BinaryFloorDiv:
		return "//"
	default:
		return fmt.Sprintf("BinaryOp(%d)", uint8(op))
	}
}

// UnaryOp enumerates prefix operators.
type UnaryOp uint8

const (
	UnaryInvert UnaryOp = iota // ~
	UnaryNot                   // not
	UnaryPlus                  // +
	UnaryMinus                 // -
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryInvert:
		return "~"
	case UnaryNot:
		return "not"
	case UnaryPlus:
		return "+"
	case UnaryMinus:
		return "-"
	default:
		return fmt.Sprintf("UnaryOp(%d)", uint8(op))
	}
}

// BoolOp enumerates the short-circuit operators.
type BoolOp uint8

const (
	BoolAnd BoolOp = iota
	BoolOr
)

func (op BoolOp) String() string {
	if op == BoolOr {
		return "or"
	}
	return "and"
}

// CmpOp enumerates comparison, membership and identity operators.
type CmpOp uint8

const (
	CmpEq CmpOp = iota
	CmpNotEq
	CmpLt
	CmpLtE
	CmpGt
	CmpGtE
	CmpIs
	CmpIsNot
	CmpIn
	CmpNotIn
)

func (op CmpOp) String() string {
	switch op {
	case CmpEq:
		return "=="
	case CmpNotEq:
		return "!="
	case CmpLt:
		return "<"
	case CmpLtE:
		return "<="
	case CmpGt:
		return ">"
	case CmpGtE:
		return ">="
	case CmpIs:
		return "is"
	case CmpIsNot:
		return "is not"
	case CmpIn:
		return "in"
	case CmpNotIn:
		return "not in"
	default:
		return fmt.Sprintf("CmpOp(%d)", uint8(op))
	}
}
