package ast

import (
	"fmt"

	"pycheck/internal/source"
)

type PatternKind uint8

const (
	PatternValue     PatternKind = iota // case 1 | case Color.RED
	PatternSingleton                    // case None | True | False
	PatternSequence                     // case [a, *rest]
	PatternMapping                      // case {"k": v, **rest}
	PatternClass                        // case Point(x, y=0)
	PatternStar                         // *rest inside a sequence
	PatternAs                           // case p as name, case name, case _
	PatternOr                           // case a | b
)

func (k PatternKind) String() string {
	switch k {
	case PatternValue:
		return "MatchValue"
	case PatternSingleton:
		return "MatchSingleton"
	case PatternSequence:
		return "MatchSequence"
	case PatternMapping:
		return "MatchMapping"
	case PatternClass:
		return "MatchClass"
	case PatternStar:
		return "MatchStar"
	case PatternAs:
		return "MatchAs"
	case PatternOr:
		return "MatchOr"
	default:
		return fmt.Sprintf("PatternKind(%d)", uint8(k))
	}
}

// Pattern is a flat record; which fields are meaningful depends on Kind:
//   - Value: the value expression (Value), the singleton constant (Singleton), the class (Class)
//   - Keys: mapping keys, parallel to Patterns
//   - Patterns: sub-patterns of Sequence, Mapping, Class (positional), Or, and the inner pattern of As
//   - KwdAttrs/KwdPatterns: keyword sub-patterns of Class
//   - Name: capture of As and Star, `**rest` of Mapping; NoStringID for the wildcard
type Pattern struct {
	Kind        PatternKind
	Span        source.Span
	Value       ExprID
	Keys        []ExprID
	Patterns    []PatternID
	KwdAttrs    []source.StringID
	KwdPatterns []PatternID
	Name        source.StringID
}

type Patterns struct {
	Arena *Arena[Pattern]
}

func NewPatterns(capHint uint) *Patterns {
	return &Patterns{
		Arena: NewArena[Pattern](capHint),
	}
}

// New copies slices so callers may reuse their buffers.
func (p *Patterns) New(pat Pattern) PatternID {
	pat.Keys = append([]ExprID(nil), pat.Keys...)
	pat.Patterns = append([]PatternID(nil), pat.Patterns...)
	pat.KwdAttrs = append([]source.StringID(nil), pat.KwdAttrs...)
	pat.KwdPatterns = append([]PatternID(nil), pat.KwdPatterns...)
	return PatternID(p.Arena.Allocate(pat))
}

func (p *Patterns) Get(id PatternID) *Pattern {
	return p.Arena.Get(uint32(id))
}
