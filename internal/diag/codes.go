package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Семантические
	SemaBinaryOperator Code = 3001
	SemaUnaryOperator  Code = 3002
	SemaComparison     Code = 3003
	SemaUnresolvedName Code = 3010

	// I/O
	IOLoadFileError Code = 4001
	IODecodeError   Code = 4002

	// Проект / настройки
	ProjInvalidSettings Code = 5001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:         "Unknown error",
		SemaBinaryOperator:  "operator not supported for operand types",
		SemaUnaryOperator:   "unary operator not supported for operand type",
		SemaComparison:      "comparison not supported for operand types",
		SemaUnresolvedName:  "name is not defined",
		IOLoadFileError:     "I/O load file error",
		IODecodeError:       "unit snapshot decode error",
		ProjInvalidSettings: "Invalid settings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
