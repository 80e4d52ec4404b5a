// Package tree implements a red-black tree keyed by exact decimal price.
// It backs both sides of the live order book's price levels and the trace
// drain's virtual book aggregation, so lookups of the best (or top-K) price
// stay O(log levels) instead of a linear scan, and empty levels are pruned
// as part of the same Remove call that empties them.
package tree

import (
	"github.com/exchangecore/matchcore/internal/pool"
	"github.com/geseq/udecimal"
)

type color bool

const (
	black, red color = true, false
)

// Node is a single element of the tree, exported so callers can walk from a
// GetMin/GetMax/LargestLessThan/SmallestGreaterThan result without an extra
// lookup.
type Node[V any] struct {
	Key    udecimal.Decimal
	Value  V
	color  color
	Left   *Node[V]
	Right  *Node[V]
	Parent *Node[V]
}

// Comparator orders two decimals. Ascending price order is udecimal.Decimal.Cmp
// itself; Descending is the same comparison with the operands reversed. Both
// sides of the order book and of the trace drain's virtual book use
// Ascending and pick the best end of the tree themselves.
type Comparator func(a, b udecimal.Decimal) int

// Ascending compares two prices lowest-first.
func Ascending(a, b udecimal.Decimal) int { return a.Cmp(b) }

// Descending compares two prices highest-first.
func Descending(a, b udecimal.Decimal) int { return b.Cmp(a) }

// Tree holds a red-black tree of price -> V.
type Tree[V any] struct {
	root       *Node[V]
	size       int
	comparator Comparator
	min        *Node[V]
	max        *Node[V]
	pool       *pool.Pool[Node[V]]
}

// New creates an empty tree with the given price ordering. maxSize sizes the
// node free-list; it need only approximate the expected number of distinct
// price levels live at once, not the number of orders.
func New[V any](comparator Comparator, maxSize uint64) *Tree[V] {
	return &Tree[V]{comparator: comparator, pool: pool.New[Node[V]](maxSize)}
}

func newNode[V any](key udecimal.Decimal, value V, c color, p *pool.Pool[Node[V]]) *Node[V] {
	n := p.Get()
	n.Key = key
	n.Value = value
	n.color = c
	n.Left, n.Right, n.Parent = nil, nil, nil
	return n
}

func (n *Node[V]) release(p *pool.Pool[Node[V]]) {
	p.Put(n)
}

// Put inserts or overwrites the value at key.
func (t *Tree[V]) Put(key udecimal.Decimal, value V) {
	var inserted *Node[V]
	if t.root == nil {
		t.root = newNode(key, value, red, t.pool)
		inserted = t.root
		t.min, t.max = t.root, t.root
	} else {
		node := t.root
		for {
			cmp := t.comparator(key, node.Key)
			switch {
			case cmp == 0:
				node.Key = key
				node.Value = value
				return
			case cmp < 0:
				if node.Left == nil {
					node.Left = newNode(key, value, red, t.pool)
					inserted = node.Left
				} else {
					node = node.Left
					continue
				}
			default:
				if node.Right == nil {
					node.Right = newNode(key, value, red, t.pool)
					inserted = node.Right
				} else {
					node = node.Right
					continue
				}
			}
			inserted.Parent = node
			break
		}
	}
	t.insertFixup(inserted)

	if t.comparator(inserted.Key, t.min.Key) < 0 {
		t.min = inserted
	}
	if t.comparator(inserted.Key, t.max.Key) > 0 {
		t.max = inserted
	}
	t.size++
}

// Get returns the value at key, if present.
func (t *Tree[V]) Get(key udecimal.Decimal) (value V, found bool) {
	node := t.lookup(key)
	if node != nil {
		return node.Value, true
	}
	var zero V
	return zero, false
}

// Remove deletes key from the tree, if present.
func (t *Tree[V]) Remove(key udecimal.Decimal) {
	var child *Node[V]
	node := t.lookup(key)
	if node == nil {
		return
	}
	if node.Left != nil && node.Right != nil {
		pred := node.Left.max()
		node.Key, node.Value = pred.Key, pred.Value
		node = pred
	}
	if node.Left == nil || node.Right == nil {
		if node.Right == nil {
			child = node.Left
		} else {
			child = node.Right
		}
		if node.color == black {
			node.color = colorOf(child)
			t.deleteFixup(node)
		}
		t.replaceNode(node, child)
		if node.Parent == nil && child != nil {
			child.color = black
		}
	}
	if node == t.max {
		if node.Parent != nil {
			t.max, _ = maxFrom(node.Parent)
		} else {
			t.max, _ = maxFrom(t.root)
		}
	}
	if node == t.min {
		if node.Parent != nil {
			t.min, _ = minFrom(node.Parent)
		} else {
			t.min, _ = minFrom(t.root)
		}
	}

	node.release(t.pool)
	t.size--
}

// Empty reports whether the tree has no nodes.
func (t *Tree[V]) Empty() bool { return t.size == 0 }

// Size returns the number of nodes.
func (t *Tree[V]) Size() int { return t.size }

// GetMin returns the minimum node by the tree's ordering.
func (t *Tree[V]) GetMin() (*Node[V], bool) { return t.min, t.min != nil }

// GetMax returns the maximum node by the tree's ordering.
func (t *Tree[V]) GetMax() (*Node[V], bool) { return t.max, t.max != nil }

// LargestLessThan returns the node with the largest key strictly less than key
// under the tree's own ordering (i.e. the next-worse level on that side).
func (t *Tree[V]) LargestLessThan(key udecimal.Decimal) (*Node[V], bool) {
	var floor *Node[V]
	found := false
	node := t.root
	for node != nil {
		if t.comparator(key, node.Key) > 0 {
			floor, found = node, true
			node = node.Right
		} else {
			node = node.Left
		}
	}
	return floor, found
}

// SmallestGreaterThan returns the node with the smallest key strictly greater
// than key under the tree's own ordering.
func (t *Tree[V]) SmallestGreaterThan(key udecimal.Decimal) (*Node[V], bool) {
	var ceil *Node[V]
	found := false
	node := t.root
	for node != nil {
		if t.comparator(key, node.Key) < 0 {
			ceil, found = node, true
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return ceil, found
}

func minFrom[V any](node *Node[V]) (*Node[V], bool) {
	if node == nil {
		return nil, false
	}
	for node.Left != nil {
		node = node.Left
	}
	return node, true
}

func maxFrom[V any](node *Node[V]) (*Node[V], bool) {
	if node == nil {
		return nil, false
	}
	for node.Right != nil {
		node = node.Right
	}
	return node, true
}

func (t *Tree[V]) lookup(key udecimal.Decimal) *Node[V] {
	node := t.root
	for node != nil {
		cmp := t.comparator(key, node.Key)
		switch {
		case cmp == 0:
			return node
		case cmp < 0:
			node = node.Left
		default:
			node = node.Right
		}
	}
	return nil
}

// Iterator walks the tree in the tree's own key order (not necessarily
// numeric ascending — a Descending tree iterates highest price first).
type Iterator[V any] struct {
	tree *Tree[V]
	node *Node[V]
	done bool
	init bool
}

// Iterator returns a stateful, forward-only iterator positioned before the
// first element.
func (t *Tree[V]) Iterator() *Iterator[V] {
	return &Iterator[V]{tree: t}
}

// Next advances the iterator and reports whether an element is available.
func (it *Iterator[V]) Next() bool {
	if it.done {
		return false
	}
	if !it.init {
		it.init = true
		left, ok := leftmost(it.tree.root)
		if !ok {
			it.done = true
			return false
		}
		it.node = left
		return true
	}
	if it.node.Right != nil {
		it.node, _ = minFrom(it.node.Right)
		return true
	}
	node := it.node
	for it.node.Parent != nil {
		it.node = it.node.Parent
		if it.tree.comparator(node.Key, it.node.Key) <= 0 {
			return true
		}
	}
	it.done = true
	return false
}

func leftmost[V any](node *Node[V]) (*Node[V], bool) {
	if node == nil {
		return nil, false
	}
	for node.Left != nil {
		node = node.Left
	}
	return node, true
}

// Key returns the current element's key.
func (it *Iterator[V]) Key() udecimal.Decimal { return it.node.Key }

// Value returns the current element's value.
func (it *Iterator[V]) Value() V { return it.node.Value }

func (n *Node[V]) grandparent() *Node[V] {
	if n != nil && n.Parent != nil {
		return n.Parent.Parent
	}
	return nil
}

func (n *Node[V]) uncle() *Node[V] {
	if n == nil || n.Parent == nil || n.Parent.Parent == nil {
		return nil
	}
	return n.Parent.sibling()
}

func (n *Node[V]) sibling() *Node[V] {
	if n == nil || n.Parent == nil {
		return nil
	}
	if n == n.Parent.Left {
		return n.Parent.Right
	}
	return n.Parent.Left
}

func (n *Node[V]) max() *Node[V] {
	if n == nil {
		return nil
	}
	for n.Right != nil {
		n = n.Right
	}
	return n
}

func (t *Tree[V]) rotateLeft(node *Node[V]) {
	right := node.Right
	t.replaceNode(node, right)
	node.Right = right.Left
	if right.Left != nil {
		right.Left.Parent = node
	}
	right.Left = node
	node.Parent = right
}

func (t *Tree[V]) rotateRight(node *Node[V]) {
	left := node.Left
	t.replaceNode(node, left)
	node.Left = left.Right
	if left.Right != nil {
		left.Right.Parent = node
	}
	left.Right = node
	node.Parent = left
}

func (t *Tree[V]) replaceNode(old, next *Node[V]) {
	if old.Parent == nil {
		t.root = next
	} else if old == old.Parent.Left {
		old.Parent.Left = next
	} else {
		old.Parent.Right = next
	}
	if next != nil {
		next.Parent = old.Parent
	}
}

// insertFixup restores the red-black properties after Put has linked node in
// as a red leaf. It walks up toward the root, at each step either recoloring
// and continuing from the grandparent (the uncle-is-red case) or performing
// the terminal rotate-and-recolor that resolves the violation outright.
func (t *Tree[V]) insertFixup(node *Node[V]) {
	for {
		if node.Parent == nil {
			node.color = black
			return
		}
		if colorOf(node.Parent) == black {
			return
		}

		uncle := node.uncle()
		if colorOf(uncle) == red {
			node.Parent.color = black
			uncle.color = black
			grandparent := node.grandparent()
			grandparent.color = red
			node = grandparent
			continue
		}

		grandparent := node.grandparent()
		if node == node.Parent.Right && node.Parent == grandparent.Left {
			t.rotateLeft(node.Parent)
			node = node.Left
		} else if node == node.Parent.Left && node.Parent == grandparent.Right {
			t.rotateRight(node.Parent)
			node = node.Right
		}

		node.Parent.color = black
		grandparent = node.grandparent()
		grandparent.color = red
		if node == node.Parent.Left && node.Parent == grandparent.Left {
			t.rotateRight(grandparent)
		} else if node == node.Parent.Right && node.Parent == grandparent.Right {
			t.rotateLeft(grandparent)
		}
		return
	}
}

// deleteFixup restores the red-black properties after Remove has spliced
// node's position out of the tree (node itself is still linked at the point
// this runs, standing in for its own removal; Remove unlinks it afterwards).
// It walks toward the root fixing a "double black" at node, one level at a
// time, terminating as soon as a recolor alone resolves it or a rotation
// makes the fixup unnecessary further up.
func (t *Tree[V]) deleteFixup(node *Node[V]) {
	for node.Parent != nil {
		sibling := node.sibling()
		if colorOf(sibling) == red {
			node.Parent.color = red
			sibling.color = black
			if node == node.Parent.Left {
				t.rotateLeft(node.Parent)
			} else {
				t.rotateRight(node.Parent)
			}
			sibling = node.sibling()
		}

		if colorOf(node.Parent) == black && colorOf(sibling) == black &&
			colorOf(sibling.Left) == black && colorOf(sibling.Right) == black {
			sibling.color = red
			node = node.Parent
			continue
		}

		if colorOf(node.Parent) == red && colorOf(sibling) == black &&
			colorOf(sibling.Left) == black && colorOf(sibling.Right) == black {
			sibling.color = red
			node.Parent.color = black
			return
		}

		if node == node.Parent.Left && colorOf(sibling) == black &&
			colorOf(sibling.Left) == red && colorOf(sibling.Right) == black {
			sibling.color = red
			sibling.Left.color = black
			t.rotateRight(sibling)
			sibling = node.sibling()
		} else if node == node.Parent.Right && colorOf(sibling) == black &&
			colorOf(sibling.Right) == red && colorOf(sibling.Left) == black {
			sibling.color = red
			sibling.Right.color = black
			t.rotateLeft(sibling)
			sibling = node.sibling()
		}

		sibling.color = colorOf(node.Parent)
		node.Parent.color = black
		if node == node.Parent.Left && colorOf(sibling.Right) == red {
			sibling.Right.color = black
			t.rotateLeft(node.Parent)
		} else if colorOf(sibling.Left) == red {
			sibling.Left.color = black
			t.rotateRight(node.Parent)
		}
		return
	}
}

func colorOf[V any](node *Node[V]) color {
	if node == nil {
		return black
	}
	return node.color
}
