package index

import (
	"cmp"
	"iter"
)

type node[K cmp.Ordered, V any] struct {
	key   K
	value V
	left  *node[K, V]
	right *node[K, V]
}

// Tree is an unbalanced binary search tree. Its shape depends only on insertion
// order, so sorted input produces a chain and O(n) operations.
//
// A Tree is not safe for concurrent use.
type Tree[K cmp.Ordered, V any] struct {
	root *node[K, V]
	size int
}

func NewTree[K cmp.Ordered, V any]() *Tree[K, V] {
	return &Tree[K, V]{}
}

// link descends from the root and returns the child pointer holding key, or the
// nil pointer where key would be attached.
func (t *Tree[K, V]) link(key K) **node[K, V] {
	l := &t.root
	for *l != nil {
		switch c := cmp.Compare(key, (*l).key); {
		case c < 0:
			l = &(*l).left
		case c > 0:
			l = &(*l).right
		default:
			return l
		}
	}
	return l
}

// upsert calls update with the value slot for key, creating the node first when
// the key is new.
func (t *Tree[K, V]) upsert(key K, update func(slot *V, created bool)) {
	l := t.link(key)
	created := false
	if *l == nil {
		*l = &node[K, V]{key: key}
		t.size++
		created = true
	}
	update(&(*l).value, created)
}

// Insert stores value under key, replacing any previous value.
func (t *Tree[K, V]) Insert(key K, value V) {
	t.upsert(key, func(slot *V, _ bool) { *slot = value })
}

// Search returns the value stored under key.
func (t *Tree[K, V]) Search(key K) (V, bool) {
	n := *t.link(key)
	if n == nil {
		var zero V
		return zero, false
	}
	return n.value, true
}

// InOrder returns all values in ascending key order.
func (t *Tree[K, V]) InOrder() []V {
	out := make([]V, 0, t.size)
	for _, v := range t.All() {
		out = append(out, v)
	}
	return out
}

// Keys returns all keys in ascending order.
func (t *Tree[K, V]) Keys() []K {
	out := make([]K, 0, t.size)
	for k := range t.All() {
		out = append(out, k)
	}
	return out
}

// All yields key/value pairs in ascending key order.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		walk(t.root, yield)
	}
}

func walk[K cmp.Ordered, V any](n *node[K, V], yield func(K, V) bool) bool {
	if n == nil {
		return true
	}
	return walk(n.left, yield) && yield(n.key, n.value) && walk(n.right, yield)
}

func (t *Tree[K, V]) Len() int {
	return t.size
}

// Height is the number of nodes on the longest root-to-leaf path.
func (t *Tree[K, V]) Height() int {
	return height(t.root)
}

func height[K cmp.Ordered, V any](n *node[K, V]) int {
	if n == nil {
		return 0
	}
	return 1 + max(height(n.left), height(n.right))
}
