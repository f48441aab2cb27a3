package index

import (
	"cmp"
	"iter"

	"github.com/google/btree"
)

const defaultDegree = 32

type entry[K cmp.Ordered, V any] struct {
	key   K
	value V
}

// BTree is a balanced alternative to Tree with the same overwrite semantics.
type BTree[K cmp.Ordered, V any] struct {
	tree *btree.BTreeG[entry[K, V]]
}

func NewBTree[K cmp.Ordered, V any](degree int) *BTree[K, V] {
	return &BTree[K, V]{
		tree: btree.NewG(degree, func(a, b entry[K, V]) bool {
			return cmp.Less(a.key, b.key)
		}),
	}
}

func (b *BTree[K, V]) Insert(key K, value V) {
	b.tree.ReplaceOrInsert(entry[K, V]{key: key, value: value})
}

func (b *BTree[K, V]) Search(key K) (V, bool) {
	e, ok := b.tree.Get(entry[K, V]{key: key})
	return e.value, ok
}

func (b *BTree[K, V]) InOrder() []V {
	out := make([]V, 0, b.tree.Len())
	b.tree.Ascend(func(e entry[K, V]) bool {
		out = append(out, e.value)
		return true
	})
	return out
}

func (b *BTree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		b.tree.Ascend(func(e entry[K, V]) bool {
			return yield(e.key, e.value)
		})
	}
}

func (b *BTree[K, V]) Len() int {
	return b.tree.Len()
}
