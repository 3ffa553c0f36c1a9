package ast

import (
	"pycheck/internal/source"
)

// Stmts manages allocation of statements and their per-kind payloads.
type Stmts struct {
	Arena        *Arena[Stmt]
	Exprs        *Arena[ExprStmt]
	Imports      *Arena[ImportStmt]
	ImportFroms  *Arena[ImportFromStmt]
	Assigns      *Arena[AssignStmt]
	AnnAssigns   *Arena[AnnAssignStmt]
	AugAssigns   *Arena[AugAssignStmt]
	Asserts      *Arena[AssertStmt]
	Deletes      *Arena[DeleteStmt]
	Returns      *Arena[ReturnStmt]
	Raises       *Arena[RaiseStmt]
	Names        *Arena[NamesStmt]
	Ifs          *Arena[IfStmt]
	Whiles       *Arena[WhileStmt]
	Fors         *Arena[ForStmt]
	Withs        *Arena[WithStmt]
	Tries        *Arena[TryStmt]
	FunctionDefs *Arena[FunctionDefStmt]
	ClassDefs    *Arena[ClassDefStmt]
	Matches      *Arena[MatchStmt]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/8 + 1
	return &Stmts{
		Arena:        NewArena[Stmt](capHint),
		Exprs:        NewArena[ExprStmt](capHint),
		Imports:      NewArena[ImportStmt](small),
		ImportFroms:  NewArena[ImportFromStmt](small),
		Assigns:      NewArena[AssignStmt](capHint),
		AnnAssigns:   NewArena[AnnAssignStmt](small),
		AugAssigns:   NewArena[AugAssignStmt](small),
		Asserts:      NewArena[AssertStmt](small),
		Deletes:      NewArena[DeleteStmt](small),
		Returns:      NewArena[ReturnStmt](small),
		Raises:       NewArena[RaiseStmt](small),
		Names:        NewArena[NamesStmt](small),
		Ifs:          NewArena[IfStmt](small),
		Whiles:       NewArena[WhileStmt](small),
		Fors:         NewArena[ForStmt](small),
		Withs:        NewArena[WithStmt](small),
		Tries:        NewArena[TryStmt](small),
		FunctionDefs: NewArena[FunctionDefStmt](small),
		ClassDefs:    NewArena[ClassDefStmt](small),
		Matches:      NewArena[MatchStmt](small),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kinds ...StmtKind) (uint32, bool) {
	stmt := s.Get(id)
	if stmt == nil {
		return 0, false
	}
	for _, k := range kinds {
		if stmt.Kind == k {
			return uint32(stmt.Payload), true
		}
	}
	return 0, false
}

func (s *Stmts) NewExpr(span source.Span, value ExprID) StmtID {
	payload := s.Exprs.Allocate(ExprStmt{Value: value})
	return s.new(StmtExpr, span, PayloadID(payload))
}

func (s *Stmts) Expr(id StmtID) (*ExprStmt, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return lookup(s.Exprs, p)
}

func (s *Stmts) NewImport(span source.Span, names []Alias) StmtID {
	payload := s.Imports.Allocate(ImportStmt{Names: append([]Alias(nil), names...)})
	return s.new(StmtImport, span, PayloadID(payload))
}

func (s *Stmts) Import(id StmtID) (*ImportStmt, bool) {
	p, ok := s.payload(id, StmtImport)
	if !ok {
		return nil, false
	}
	return lookup(s.Imports, p)
}

func (s *Stmts) NewImportFrom(span source.Span, module source.StringID, names []Alias, level uint8) StmtID {
	payload := s.ImportFroms.Allocate(ImportFromStmt{
		Module: module,
		Names:  append([]Alias(nil), names...),
		Level:  level,
	})
	return s.new(StmtImportFrom, span, PayloadID(payload))
}

func (s *Stmts) ImportFrom(id StmtID) (*ImportFromStmt, bool) {
	p, ok := s.payload(id, StmtImportFrom)
	if !ok {
		return nil, false
	}
	return lookup(s.ImportFroms, p)
}

// NewAssign creates `t1 = t2 = ... = value`.
func (s *Stmts) NewAssign(span source.Span, targets []ExprID, value ExprID) StmtID {
	payload := s.Assigns.Allocate(AssignStmt{Targets: append([]ExprID(nil), targets...), Value: value})
	return s.new(StmtAssign, span, PayloadID(payload))
}

func (s *Stmts) Assign(id StmtID) (*AssignStmt, bool) {
	p, ok := s.payload(id, StmtAssign)
	if !ok {
		return nil, false
	}
	return lookup(s.Assigns, p)
}

// NewAnnAssign creates `target: annotation [= value]`; value may be NoExprID.
func (s *Stmts) NewAnnAssign(span source.Span, target, annotation, value ExprID, simple bool) StmtID {
	payload := s.AnnAssigns.Allocate(AnnAssignStmt{
		Target:     target,
		Annotation: annotation,
		Value:      value,
		Simple:     simple,
	})
	return s.new(StmtAnnAssign, span, PayloadID(payload))
}

func (s *Stmts) AnnAssign(id StmtID) (*AnnAssignStmt, bool) {
	p, ok := s.payload(id, StmtAnnAssign)
	if !ok {
		return nil, false
	}
	return lookup(s.AnnAssigns, p)
}

func (s *Stmts) NewAugAssign(span source.Span, target ExprID, op BinaryOp, value ExprID) StmtID {
	payload := s.AugAssigns.Allocate(AugAssignStmt{Target: target, Op: op, Value: value})
	return s.new(StmtAugAssign, span, PayloadID(payload))
}

func (s *Stmts) AugAssign(id StmtID) (*AugAssignStmt, bool) {
	p, ok := s.payload(id, StmtAugAssign)
	if !ok {
		return nil, false
	}
	return lookup(s.AugAssigns, p)
}

func (s *Stmts) NewAssert(span source.Span, test, msg ExprID) StmtID {
	payload := s.Asserts.Allocate(AssertStmt{Test: test, Msg: msg})
	return s.new(StmtAssert, span, PayloadID(payload))
}

func (s *Stmts) Assert(id StmtID) (*AssertStmt, bool) {
	p, ok := s.payload(id, StmtAssert)
	if !ok {
		return nil, false
	}
	return lookup(s.Asserts, p)
}

func (s *Stmts) NewPass(span source.Span) StmtID {
	return s.new(StmtPass, span, NoPayloadID)
}

func (s *Stmts) NewBreak(span source.Span) StmtID {
	return s.new(StmtBreak, span, NoPayloadID)
}

func (s *Stmts) NewContinue(span source.Span) StmtID {
	return s.new(StmtContinue, span, NoPayloadID)
}

func (s *Stmts) NewDelete(span source.Span, targets []ExprID) StmtID {
	payload := s.Deletes.Allocate(DeleteStmt{Targets: append([]ExprID(nil), targets...)})
	return s.new(StmtDelete, span, PayloadID(payload))
}

func (s *Stmts) Delete(id StmtID) (*DeleteStmt, bool) {
	p, ok := s.payload(id, StmtDelete)
	if !ok {
		return nil, false
	}
	return lookup(s.Deletes, p)
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	payload := s.Returns.Allocate(ReturnStmt{Value: value})
	return s.new(StmtReturn, span, PayloadID(payload))
}

func (s *Stmts) Return(id StmtID) (*ReturnStmt, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return lookup(s.Returns, p)
}

func (s *Stmts) NewRaise(span source.Span, exc, cause ExprID) StmtID {
	payload := s.Raises.Allocate(RaiseStmt{Exc: exc, Cause: cause})
	return s.new(StmtRaise, span, PayloadID(payload))
}

func (s *Stmts) Raise(id StmtID) (*RaiseStmt, bool) {
	p, ok := s.payload(id, StmtRaise)
	if !ok {
		return nil, false
	}
	return lookup(s.Raises, p)
}

func (s *Stmts) NewGlobal(span source.Span, names []source.StringID) StmtID {
	payload := s.Names.Allocate(NamesStmt{Names: append([]source.StringID(nil), names...)})
	return s.new(StmtGlobal, span, PayloadID(payload))
}

func (s *Stmts) NewNonlocal(span source.Span, names []source.StringID) StmtID {
	payload := s.Names.Allocate(NamesStmt{Names: append([]source.StringID(nil), names...)})
	return s.new(StmtNonlocal, span, PayloadID(payload))
}

// NameList returns the names of a global or nonlocal statement.
func (s *Stmts) NameList(id StmtID) (*NamesStmt, bool) {
	p, ok := s.payload(id, StmtGlobal, StmtNonlocal)
	if !ok {
		return nil, false
	}
	return lookup(s.Names, p)
}

func (s *Stmts) NewIf(span source.Span, test ExprID, body, orelse []StmtID) StmtID {
	payload := s.Ifs.Allocate(IfStmt{
		Test:   test,
		Body:   append([]StmtID(nil), body...),
		Orelse: append([]StmtID(nil), orelse...),
	})
	return s.new(StmtIf, span, PayloadID(payload))
}

func (s *Stmts) If(id StmtID) (*IfStmt, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return lookup(s.Ifs, p)
}

func (s *Stmts) NewWhile(span source.Span, test ExprID, body, orelse []StmtID) StmtID {
	payload := s.Whiles.Allocate(WhileStmt{
		Test:   test,
		Body:   append([]StmtID(nil), body...),
		Orelse: append([]StmtID(nil), orelse...),
	})
	return s.new(StmtWhile, span, PayloadID(payload))
}

func (s *Stmts) While(id StmtID) (*WhileStmt, bool) {
	p, ok := s.payload(id, StmtWhile)
	if !ok {
		return nil, false
	}
	return lookup(s.Whiles, p)
}

func (s *Stmts) NewFor(span source.Span, target, iter ExprID, body, orelse []StmtID, async bool) StmtID {
	payload := s.Fors.Allocate(ForStmt{
		Target: target,
		Iter:   iter,
		Body:   append([]StmtID(nil), body...),
		Orelse: append([]StmtID(nil), orelse...),
		Async:  async,
	})
	return s.new(StmtFor, span, PayloadID(payload))
}

func (s *Stmts) For(id StmtID) (*ForStmt, bool) {
	p, ok := s.payload(id, StmtFor)
	if !ok {
		return nil, false
	}
	return lookup(s.Fors, p)
}

func (s *Stmts) NewWith(span source.Span, items []WithItem, body []StmtID, async bool) StmtID {
	payload := s.Withs.Allocate(WithStmt{
		Items: append([]WithItem(nil), items...),
		Body:  append([]StmtID(nil), body...),
		Async: async,
	})
	return s.new(StmtWith, span, PayloadID(payload))
}

func (s *Stmts) With(id StmtID) (*WithStmt, bool) {
	p, ok := s.payload(id, StmtWith)
	if !ok {
		return nil, false
	}
	return lookup(s.Withs, p)
}

// NewTry creates try (star=false) or try* (star=true).
func (s *Stmts) NewTry(span source.Span, body []StmtID, handlers []ExceptHandler, orelse, finalbody []StmtID, star bool) StmtID {
	payload := s.Tries.Allocate(TryStmt{
		Body:      append([]StmtID(nil), body...),
		Handlers:  append([]ExceptHandler(nil), handlers...),
		Orelse:    append([]StmtID(nil), orelse...),
		Finalbody: append([]StmtID(nil), finalbody...),
	})
	kind := StmtTry
	if star {
		kind = StmtTryStar
	}
	return s.new(kind, span, PayloadID(payload))
}

func (s *Stmts) Try(id StmtID) (*TryStmt, bool) {
	p, ok := s.payload(id, StmtTry, StmtTryStar)
	if !ok {
		return nil, false
	}
	return lookup(s.Tries, p)
}

func (s *Stmts) NewFunctionDef(span source.Span, def FunctionDefStmt) StmtID {
	def.TypeParams = append([]TypeParam(nil), def.TypeParams...)
	def.Params = append([]Param(nil), def.Params...)
	def.Decorators = append([]ExprID(nil), def.Decorators...)
	def.Body = append([]StmtID(nil), def.Body...)
	payload := s.FunctionDefs.Allocate(def)
	return s.new(StmtFunctionDef, span, PayloadID(payload))
}

func (s *Stmts) FunctionDef(id StmtID) (*FunctionDefStmt, bool) {
	p, ok := s.payload(id, StmtFunctionDef)
	if !ok {
		return nil, false
	}
	return lookup(s.FunctionDefs, p)
}

func (s *Stmts) NewClassDef(span source.Span, def ClassDefStmt) StmtID {
	def.TypeParams = append([]TypeParam(nil), def.TypeParams...)
	def.Bases = append([]ExprID(nil), def.Bases...)
	def.Keywords = append([]Keyword(nil), def.Keywords...)
	def.Decorators = append([]ExprID(nil), def.Decorators...)
	def.Body = append([]StmtID(nil), def.Body...)
	payload := s.ClassDefs.Allocate(def)
	return s.new(StmtClassDef, span, PayloadID(payload))
}

func (s *Stmts) ClassDef(id StmtID) (*ClassDefStmt, bool) {
	p, ok := s.payload(id, StmtClassDef)
	if !ok {
		return nil, false
	}
	return lookup(s.ClassDefs, p)
}

func (s *Stmts) NewMatch(span source.Span, subject ExprID, cases []MatchCase) StmtID {
	payload := s.Matches.Allocate(MatchStmt{Subject: subject, Cases: append([]MatchCase(nil), cases...)})
	return s.new(StmtMatch, span, PayloadID(payload))
}

func (s *Stmts) Match(id StmtID) (*MatchStmt, bool) {
	p, ok := s.payload(id, StmtMatch)
	if !ok {
		return nil, false
	}
	return lookup(s.Matches, p)
}
