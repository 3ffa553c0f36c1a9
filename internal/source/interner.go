package source

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// StringID references an interned string. NoStringID maps to "".
type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates identifier and literal text shared by the tree and the symbol table.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the ID for s, allocating one on first sight.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(i.byID))
	if err != nil {
		panic(fmt.Errorf("string interner overflow: %w", err))
	}
	// собственная копия, чтобы не держать чужой буфер
	cpy := string([]byte(s))
	id := StringID(n)
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Lookup returns the string for id; false when the id was never allocated.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup panics on an unknown id.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("source: invalid string ID")
	}
	return s
}

func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Find returns the ID of s without interning it.
func (i *Interner) Find(s string) (StringID, bool) {
	id, ok := i.index[s]
	return id, ok
}

// Len counts stored strings including the empty sentinel.
func (i *Interner) Len() int {
	return len(i.byID)
}

func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}

// EncodeMsgpack writes the ordered string table; IDs are positions in it.
func (i *Interner) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(i.byID)
}

// DecodeMsgpack restores the table and rebuilds the reverse index.
func (i *Interner) DecodeMsgpack(dec *msgpack.Decoder) error {
	var byID []string
	if err := dec.Decode(&byID); err != nil {
		return err
	}
	if len(byID) == 0 || byID[0] != "" {
		return fmt.Errorf("string table must start with the empty sentinel")
	}
	i.byID = byID
	i.index = make(map[string]StringID, len(byID))
	for idx, s := range byID {
		if _, dup := i.index[s]; dup {
			continue
		}
		i.index[s] = StringID(idx) // #nosec G115 -- bounded by the encoder
	}
	return nil
}
