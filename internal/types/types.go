package types

import "fmt"

// Kind enumerates the modelled value types. KindUnknown is the top of the lattice.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInt
	KindFloat
	KindStr
	KindBool
	KindNone
)

func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "Unknown"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindStr:
		return "Str"
	case KindBool:
		return "Bool"
	case KindNone:
		return "None"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Type is a comparable value; new variants only add Kind constants (and, later, fields).
type Type struct {
	Kind Kind
}

var (
	Unknown  = Type{Kind: KindUnknown}
	Int      = Type{Kind: KindInt}
	Float    = Type{Kind: KindFloat}
	Str      = Type{Kind: KindStr}
	Bool     = Type{Kind: KindBool}
	NoneType = Type{Kind: KindNone}
)

func (t Type) String() string {
	return Label(t)
}
