package ast

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// Arena stores nodes of one type; indices handed out are 1-based so that 0 stays "absent".
type Arena[T any] struct {
	data []T
}

// NewArena creates an arena whose storage is preallocated to capHint (zero is allowed).
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate appends value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return n
}

// Get returns nil for index 0 and for indices never allocated.
func (a *Arena[T]) Get(index uint32) *T {
	if a == nil || index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

// READONLY
func (a *Arena[T]) Slice() []T {
	return a.data
}

func (a *Arena[T]) Len() uint32 {
	if a == nil {
		return 0
	}
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return n
}

func (a *Arena[T]) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(a.data)
}

func (a *Arena[T]) DecodeMsgpack(dec *msgpack.Decoder) error {
	var data []T
	if err := dec.Decode(&data); err != nil {
		return err
	}
	a.data = data
	return nil
}

// lookup reports false for payloads that were never allocated (malformed input).
func lookup[T any](a *Arena[T], index uint32) (*T, bool) {
	v := a.Get(index)
	return v, v != nil
}
