package types

import "pycheck/internal/ast"

// OfConstant maps a literal tag to its type. Bytes, complex and ellipsis are not modelled.
func OfConstant(kind ast.ConstKind) Type {
	switch kind {
	case ast.ConstInt:
		return Int
	case ast.ConstFloat:
		return Float
	case ast.ConstStr:
		return Str
	case ast.ConstBool:
		return Bool
	case ast.ConstNone:
		return NoneType
	case ast.ConstBytes, ast.ConstComplex, ast.ConstEllipsis:
		return Unknown
	default:
		return Unknown
	}
}

// Equal is strict structural identity: Unknown equals only Unknown.
func Equal(a, b Type) bool {
	return a == b
}

func IsUnknown(t Type) bool {
	return t.Kind == KindUnknown
}

// Compatible is the permissive relation used for operands: Unknown is compatible with everything.
func Compatible(a, b Type) bool {
	return IsUnknown(a) || IsUnknown(b) || Equal(a, b)
}

// FromName decodes the builtin annotation names.
func FromName(name string) (Type, bool) {
	switch name {
	case "int":
		return Int, true
	case "float":
		return Float, true
	case "str":
		return Str, true
	case "bool":
		return Bool, true
	case "None":
		return NoneType, true
	default:
		return Unknown, false
	}
}
