package ast

// ConstKind tags a literal.
type ConstKind uint8

const (
	ConstNone ConstKind = iota
	ConstBool
	ConstInt
	ConstFloat
	ConstComplex
	ConstStr
	ConstBytes
	ConstEllipsis
)

func (k ConstKind) String() string {
	switch k {
	case ConstNone:
		return "none"
	case ConstBool:
		return "bool"
	case ConstInt:
		return "int"
	case ConstFloat:
		return "float"
	case ConstComplex:
		return "complex"
	case ConstStr:
		return "str"
	case ConstBytes:
		return "bytes"
	case ConstEllipsis:
		return "ellipsis"
	default:
		return "invalid"
	}
}
