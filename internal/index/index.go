// Package index provides ordered in-memory indexes used by the catalog to look up
// users and books by key and to enumerate them in key order.
package index

import (
	"cmp"
	"iter"
)

// Index is a single-value ordered map. Inserting an existing key replaces its value.
type Index[K cmp.Ordered, V any] interface {
	Insert(key K, value V)
	Search(key K) (V, bool)
	InOrder() []V
	All() iter.Seq2[K, V]
	Len() int
}

// Kind selects an Index implementation.
type Kind string

const (
	KindBST   Kind = "bst"
	KindBTree Kind = "btree"
)

// New returns an empty index of the given kind. Unknown kinds fall back to the
// binary search tree.
func New[K cmp.Ordered, V any](kind Kind) Index[K, V] {
	if kind == KindBTree {
		return NewBTree[K, V](defaultDegree)
	}
	return NewTree[K, V]()
}
