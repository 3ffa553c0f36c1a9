package driver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"pycheck/internal/ast"
	"pycheck/internal/symbols"
)

// SnapshotSchema is bumped whenever the encoded layout of the tree or the
// table changes.
const SnapshotSchema uint16 = 1

// SnapshotExt is the file extension of unit snapshots.
const SnapshotExt = ".pyast"

// ErrSchemaMismatch is returned for snapshots written by another schema.
var ErrSchemaMismatch = errors.New("snapshot schema mismatch")

// Snapshot is one parsed translation unit as handed over by the external
// parser: the tree arenas, optionally the bound symbol table, and the source
// text spans point into.
type Snapshot struct {
	Schema  uint16
	Path    string // source path as the producer saw it
	Source  []byte
	File    ast.FileID
	Tree    *ast.Builder
	Symbols *symbols.Table `msgpack:",omitempty"`
}

// NewSnapshot stamps the current schema.
func NewSnapshot(path string, src []byte, tree *ast.Builder, file ast.FileID, table *symbols.Table) *Snapshot {
	return &Snapshot{
		Schema:  SnapshotSchema,
		Path:    path,
		Source:  src,
		File:    file,
		Tree:    tree,
		Symbols: table,
	}
}

// EncodeSnapshot writes snap as msgpack.
func EncodeSnapshot(w io.Writer, snap *Snapshot) error {
	if snap == nil || snap.Tree == nil {
		return errors.New("encode snapshot: missing tree")
	}
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads and validates a snapshot. The symbol table, when
// present, is re-attached to the tree's interner.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Schema != SnapshotSchema {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchemaMismatch, snap.Schema, SnapshotSchema)
	}
	if snap.Tree == nil {
		return nil, errors.New("decode snapshot: missing tree")
	}
	if err := snap.Tree.Validate(); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Tree.Files.Get(snap.File) == nil {
		return nil, fmt.Errorf("decode snapshot: file %d not in tree", snap.File)
	}
	if snap.Symbols != nil {
		snap.Symbols.Strings = snap.Tree.StringsInterner
	}
	return &snap, nil
}

// WriteSnapshotFile encodes snap into path.
func WriteSnapshotFile(path string, snap *Snapshot) (err error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	if err := EncodeSnapshot(w, snap); err != nil {
		return err
	}
	return w.Flush()
}

// ReadSnapshotFile decodes the snapshot stored at path.
func ReadSnapshotFile(path string) (*Snapshot, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeSnapshot(bufio.NewReader(f))
}
