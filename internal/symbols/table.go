package symbols

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"pycheck/internal/ast"
	"pycheck/internal/source"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols, Decls uint }

// Table aggregates scopes, symbols and declarations of one unit. It is
// filled by a binder and read-only afterwards.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Decls   *Decls
	Strings *source.Interner

	fileRoot   map[ast.FileID]ScopeID
	stmtScopes map[ast.StmtID]ScopeID
	exprScopes map[ast.ExprID]ScopeID
}

// NewTable builds a fresh table with optional capacity hints.
// If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	declCap, err := safecast.Conv[uint32](h.Decls)
	if err != nil {
		panic(fmt.Errorf("declaration capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		Scopes:     NewScopes(scopeCap),
		Symbols:    NewSymbols(symCap),
		Decls:      NewDecls(declCap),
		Strings:    strings,
		fileRoot:   make(map[ast.FileID]ScopeID),
		stmtScopes: make(map[ast.StmtID]ScopeID),
		exprScopes: make(map[ast.ExprID]ScopeID),
	}
}

// NewFileRoot returns (and creates if needed) the module scope of file.
func (t *Table) NewFileRoot(file ast.FileID, span source.Span) ScopeID {
	if scope, ok := t.fileRoot[file]; ok {
		return scope
	}
	scope := t.Scopes.New(ScopeModule, NoScopeID, ScopeOwner{
		Kind:    ScopeOwnerFile,
		ASTFile: file,
	}, span)
	t.fileRoot[file] = scope
	return scope
}

// FileRoot returns the module scope recorded for file.
func (t *Table) FileRoot(file ast.FileID) (ScopeID, bool) {
	if t == nil {
		return NoScopeID, false
	}
	scope, ok := t.fileRoot[file]
	return scope, ok
}

// NewScope allocates a nested scope and indexes it by owner.
func (t *Table) NewScope(kind ScopeKind, parent ScopeID, owner ScopeOwner, span source.Span) ScopeID {
	id := t.Scopes.New(kind, parent, owner, span)
	t.indexOwner(id, owner)
	return id
}

func (t *Table) indexOwner(id ScopeID, owner ScopeOwner) {
	switch owner.Kind {
	case ScopeOwnerFile:
		t.fileRoot[owner.ASTFile] = id
	case ScopeOwnerStmt:
		t.stmtScopes[owner.Stmt] = id
	case ScopeOwnerExpr:
		t.exprScopes[owner.Expr] = id
	}
}

// ScopeOf returns the scope opened by owner (a def/class statement, a lambda
// or comprehension expression, or a file).
func (t *Table) ScopeOf(owner ScopeOwner) (ScopeID, bool) {
	if t == nil {
		return NoScopeID, false
	}
	var (
		id ScopeID
		ok bool
	)
	switch owner.Kind {
	case ScopeOwnerFile:
		id, ok = t.fileRoot[owner.ASTFile]
	case ScopeOwnerStmt:
		id, ok = t.stmtScopes[owner.Stmt]
	case ScopeOwnerExpr:
		id, ok = t.exprScopes[owner.Expr]
	}
	return id, ok
}

// Declare appends decl to the symbol called name in scope, creating the symbol on first use.
func (t *Table) Declare(scope ScopeID, decl Declaration) (SymbolID, DeclID) {
	sc := t.Scopes.Get(scope)
	if sc == nil {
		return NoSymbolID, NoDeclID
	}
	decl.Name = t.internName(decl.Name)
	declID := t.Decls.New(decl)
	if symID, ok := sc.NameIndex[decl.Name]; ok {
		sym := t.Symbols.Get(symID)
		sym.Decls = append(sym.Decls, declID)
		return symID, declID
	}
	symID := t.Symbols.New(&Symbol{
		Name:  decl.Name,
		Scope: scope,
		Decls: []DeclID{declID},
	})
	sc.NameIndex[decl.Name] = symID
	sc.Symbols = append(sc.Symbols, symID)
	return symID, declID
}

// Redirect makes lookups of name from scope continue at target (global / nonlocal).
func (t *Table) Redirect(scope ScopeID, name source.StringID, target ScopeID) {
	sc := t.Scopes.Get(scope)
	if sc == nil || !target.IsValid() {
		return
	}
	if sc.Redirect == nil {
		sc.Redirect = make(map[source.StringID]ScopeID)
	}
	sc.Redirect[t.internName(name)] = target
}

// Lookup resolves name starting at scope and walking enclosing scopes.
// Class bodies are consulted only when the search starts in them.
func (t *Table) Lookup(scope ScopeID, name source.StringID) (SymbolID, bool) {
	if t == nil {
		return NoSymbolID, false
	}
	name = t.canonical(name)
	start := scope
	for hops := 0; scope.IsValid(); hops++ {
		if hops > t.Scopes.Len() {
			return NoSymbolID, false // parent cycle in a malformed table
		}
		sc := t.Scopes.Get(scope)
		if sc == nil {
			return NoSymbolID, false
		}
		if target, ok := sc.Redirect[name]; ok {
			scope = target
			continue
		}
		if sc.Kind != ScopeClass || scope == start {
			if id, ok := sc.NameIndex[name]; ok {
				return id, true
			}
		}
		scope = sc.Parent
	}
	return NoSymbolID, false
}

// LookupString is Lookup for callers holding text rather than an interned id.
func (t *Table) LookupString(scope ScopeID, name string) (SymbolID, bool) {
	if t == nil || t.Strings == nil {
		return NoSymbolID, false
	}
	id, ok := t.Strings.Find(NormalizeName(name))
	if !ok {
		return NoSymbolID, false
	}
	return t.Lookup(scope, id)
}

// Symbol returns the symbol or nil.
func (t *Table) Symbol(id SymbolID) *Symbol {
	if t == nil {
		return nil
	}
	return t.Symbols.Get(id)
}

// Declaration returns the declaration or nil.
func (t *Table) Declaration(id DeclID) *Declaration {
	if t == nil {
		return nil
	}
	return t.Decls.Get(id)
}

// LastDeclaration returns the binding most recently appended to sym.
func (t *Table) LastDeclaration(sym SymbolID) (*Declaration, bool) {
	s := t.Symbol(sym)
	if s == nil {
		return nil, false
	}
	decl := t.Declaration(s.Last())
	return decl, decl != nil
}

type tableWire struct {
	Scopes  *Scopes
	Symbols *Symbols
	Decls   *Decls
}

// EncodeMsgpack writes the arenas; Strings is shared with the tree and travels separately.
func (t *Table) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(&tableWire{Scopes: t.Scopes, Symbols: t.Symbols, Decls: t.Decls})
}

// DecodeMsgpack restores arenas and rebuilds owner indices; callers attach Strings.
func (t *Table) DecodeMsgpack(dec *msgpack.Decoder) error {
	var wire tableWire
	if err := dec.Decode(&wire); err != nil {
		return err
	}
	if wire.Scopes == nil || wire.Symbols == nil || wire.Decls == nil {
		return fmt.Errorf("symbol table snapshot is incomplete")
	}
	t.Scopes, t.Symbols, t.Decls = wire.Scopes, wire.Symbols, wire.Decls
	t.fileRoot = make(map[ast.FileID]ScopeID)
	t.stmtScopes = make(map[ast.StmtID]ScopeID)
	t.exprScopes = make(map[ast.ExprID]ScopeID)
	for i := 1; i <= t.Scopes.Len(); i++ {
		id := ScopeID(nextIndex(i, "scopes"))
		t.indexOwner(id, t.Scopes.Get(id).Owner)
	}
	return nil
}
