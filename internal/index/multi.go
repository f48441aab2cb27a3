package index

import (
	"cmp"
	"iter"
)

// MultiTree is a binary search tree that groups values sharing a key. Inserting
// an existing key appends to that key's values in insertion order.
type MultiTree[K cmp.Ordered, V any] struct {
	tree  Tree[K, []V]
	count int
}

func NewMultiTree[K cmp.Ordered, V any]() *MultiTree[K, V] {
	return &MultiTree[K, V]{}
}

func (m *MultiTree[K, V]) Insert(key K, value V) {
	m.tree.upsert(key, func(slot *[]V, _ bool) { *slot = append(*slot, value) })
	m.count++
}

// Search returns a copy of the values stored under key, or nil.
func (m *MultiTree[K, V]) Search(key K) []V {
	vs, ok := m.tree.Search(key)
	if !ok {
		return nil
	}
	out := make([]V, len(vs))
	copy(out, vs)
	return out
}

// InOrder returns every value, grouped by ascending key and in insertion order
// within a key.
func (m *MultiTree[K, V]) InOrder() []V {
	out := make([]V, 0, m.count)
	for _, vs := range m.tree.All() {
		out = append(out, vs...)
	}
	return out
}

// Groups yields each key with its values in ascending key order.
func (m *MultiTree[K, V]) Groups() iter.Seq2[K, []V] {
	return m.tree.All()
}

// Keys returns the distinct keys in ascending order.
func (m *MultiTree[K, V]) Keys() []K {
	return m.tree.Keys()
}

// Len is the number of distinct keys.
func (m *MultiTree[K, V]) Len() int {
	return m.tree.Len()
}

// Count is the number of stored values.
func (m *MultiTree[K, V]) Count() int {
	return m.count
}
