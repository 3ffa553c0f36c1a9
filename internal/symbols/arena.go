package symbols

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"pycheck/internal/source"
)

// Scopes stores all allocated scopes in a compact slice-based arena.
type Scopes struct {
	data []Scope
}

// NewScopes creates an arena with optional capacity hint.
func NewScopes(capacity uint32) *Scopes {
	if capacity == 0 {
		capacity = 32
	}
	return &Scopes{
		data: make([]Scope, 1, capacity+1), // index 0 reserved for NoScopeID
	}
}

// New allocates a new scope and links it to parent.
func (s *Scopes) New(kind ScopeKind, parent ScopeID, owner ScopeOwner, span source.Span) ScopeID {
	id := ScopeID(nextIndex(len(s.data), "scopes"))
	s.data = append(s.data, Scope{
		Kind:      kind,
		Parent:    parent,
		Owner:     owner,
		Span:      span,
		NameIndex: make(map[source.StringID]SymbolID),
	})
	if parent.IsValid() {
		if parentScope := s.Get(parent); parentScope != nil {
			parentScope.Children = append(parentScope.Children, id)
		}
	}
	return id
}

// Get returns the scope pointer or nil if ID is invalid.
func (s *Scopes) Get(id ScopeID) *Scope {
	if s == nil || !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

// Len reports total number of scopes excluding the sentinel.
func (s *Scopes) Len() int { return len(s.data) - 1 }

func (s *Scopes) EncodeMsgpack(enc *msgpack.Encoder) error {
	if len(s.data) <= 1 {
		return enc.EncodeArrayLen(0)
	}
	return enc.Encode(s.data[1:])
}

func (s *Scopes) DecodeMsgpack(dec *msgpack.Decoder) error {
	var data []Scope
	if err := dec.Decode(&data); err != nil {
		return err
	}
	s.data = append(make([]Scope, 1, len(data)+1), data...)
	for i := range s.data[1:] {
		sc := &s.data[i+1]
		if sc.NameIndex == nil {
			sc.NameIndex = make(map[source.StringID]SymbolID)
		}
	}
	return nil
}

// Symbols stores declared symbols in a compact arena.
type Symbols struct {
	data []Symbol
}

// NewSymbols creates a symbol arena with optional capacity hint.
func NewSymbols(capacity uint32) *Symbols {
	if capacity == 0 {
		capacity = 64
	}
	return &Symbols{
		data: make([]Symbol, 1, capacity+1), // index 0 reserved for NoSymbolID
	}
}

// New allocates a symbol in the arena and returns its ID.
func (s *Symbols) New(sym *Symbol) SymbolID {
	if sym == nil {
		panic("symbols.New: nil symbol")
	}
	id := SymbolID(nextIndex(len(s.data), "symbols"))
	s.data = append(s.data, *sym)
	return id
}

// Get returns a symbol pointer or nil for invalid ID.
func (s *Symbols) Get(id SymbolID) *Symbol {
	if s == nil || !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

// Len reports number of stored symbols excluding sentinel.
func (s *Symbols) Len() int { return len(s.data) - 1 }

func (s *Symbols) EncodeMsgpack(enc *msgpack.Encoder) error {
	if len(s.data) <= 1 {
		return enc.EncodeArrayLen(0)
	}
	return enc.Encode(s.data[1:])
}

func (s *Symbols) DecodeMsgpack(dec *msgpack.Decoder) error {
	var data []Symbol
	if err := dec.Decode(&data); err != nil {
		return err
	}
	s.data = append(make([]Symbol, 1, len(data)+1), data...)
	return nil
}

// Decls stores declarations; once recorded they are never modified.
type Decls struct {
	data []Declaration
}

func NewDecls(capacity uint32) *Decls {
	if capacity == 0 {
		capacity = 64
	}
	return &Decls{
		data: make([]Declaration, 1, capacity+1),
	}
}

func (d *Decls) New(decl Declaration) DeclID {
	id := DeclID(nextIndex(len(d.data), "declarations"))
	d.data = append(d.data, decl)
	return id
}

// Get returns a declaration pointer or nil for invalid ID.
func (d *Decls) Get(id DeclID) *Declaration {
	if d == nil || !id.IsValid() || int(id) >= len(d.data) {
		return nil
	}
	return &d.data[id]
}

func (d *Decls) Len() int { return len(d.data) - 1 }

func (d *Decls) EncodeMsgpack(enc *msgpack.Encoder) error {
	if len(d.data) <= 1 {
		return enc.EncodeArrayLen(0)
	}
	return enc.Encode(d.data[1:])
}

func (d *Decls) DecodeMsgpack(dec *msgpack.Decoder) error {
	var data []Declaration
	if err := dec.Decode(&data); err != nil {
		return err
	}
	d.data = append(make([]Declaration, 1, len(data)+1), data...)
	return nil
}

func nextIndex(n int, what string) uint32 {
	value, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("%s arena overflow: %w", what, err))
	}
	return value
}
