package automaton

import (
	"cmp"
	"hash/maphash"
)

// Hasher decides equality of values and produces hashes consistent with it.
// Every automaton carries one for its states and sparse automata carry one
// for their symbols.
type Hasher[T any] interface {
	Equal(a, b T) bool
	Hash(v T) uint64
}

// Comparer totally orders values. Dense automata need one for their symbols.
type Comparer[T any] interface {
	Compare(a, b T) int
}

// CompareFunc adapts a plain function to Comparer.
type CompareFunc[T any] func(a, b T) int

func (f CompareFunc[T]) Compare(a, b T) int {
	return f(a, b)
}

// HasherFuncs adapts a pair of functions to Hasher.
type HasherFuncs[T any] struct {
	EqualFunc func(a, b T) bool
	HashFunc  func(v T) uint64
}

func (h HasherFuncs[T]) Equal(a, b T) bool {
	return h.EqualFunc(a, b)
}

func (h HasherFuncs[T]) Hash(v T) uint64 {
	return h.HashFunc(v)
}

var defaultSeed = maphash.MakeSeed()

type comparableHasher[T comparable] struct{}

func (comparableHasher[T]) Equal(a, b T) bool {
	return a == b
}

func (comparableHasher[T]) Hash(v T) uint64 {
	return maphash.Comparable(defaultSeed, v)
}

// DefaultHasher uses == and the runtime hash of T.
func DefaultHasher[T comparable]() Hasher[T] {
	return comparableHasher[T]{}
}

// OrderedComparer orders values with cmp.Compare.
func OrderedComparer[T cmp.Ordered]() Comparer[T] {
	return CompareFunc[T](cmp.Compare[T])
}
