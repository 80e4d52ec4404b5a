// Package pool provides a small generic free-list used to avoid per-node
// allocation in the order book's price-level tree. Nodes are recycled
// through a fixed-capacity ring rather than returned to the garbage
// collector, which matters on the matching engine's hot path where a busy
// instrument inserts and removes price-level nodes on every submission.
package pool

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Pool is a generic fixed-capacity free-list.
type Pool[T any] struct {
	ring *ring[T]
}

// New creates a pool pre-populated to its capacity: maxSize rounded up to a
// power of two (at least 2), minus one item.
func New[T any](maxSize uint64) *Pool[T] {
	r := newRing[T](maxSize)
	for !r.isFull() {
		r.put(new(T))
	}
	return &Pool[T]{ring: r}
}

// Get retrieves an item from the pool, allocating a fresh one if empty.
func (p *Pool[T]) Get() *T {
	if p.ring.isEmpty() {
		return new(T)
	}
	return p.ring.read()
}

// Put returns an item to the pool. If the pool is full the item is left for
// the garbage collector.
func (p *Pool[T]) Put(item *T) {
	if item == nil {
		return
	}
	if p.ring.isFull() {
		return
	}
	p.ring.put(item)
}

// ring is a bounded MPMC-safe circular buffer of pointers, used only as the
// pool's backing store. The engine is single-threaded end to end, so the
// atomics here never actually contend; they are kept because the pool type
// is shared verbatim with anything that might pool across goroutines later
// and the cost of the CAS loop is negligible next to a node allocation.
type ring[T any] struct {
	_                  cpu.CacheLinePad
	indexMask          uint64
	_                  cpu.CacheLinePad
	lastCommittedIndex uint64
	_                  cpu.CacheLinePad
	nextFreeIndex      uint64
	_                  cpu.CacheLinePad
	readerIndex        uint64
	_                  cpu.CacheLinePad
	contents           []*T
}

func newRing[T any](size uint64) *ring[T] {
	size = roundUpPow2(size)
	return &ring[T]{
		indexMask: size - 1,
		contents:  make([]*T, size),
	}
}

func (r *ring[T]) put(value *T) {
	for atomic.LoadUint64(&r.nextFreeIndex)+1 > atomic.LoadUint64(&r.readerIndex)+r.indexMask {
	}
	idx := atomic.AddUint64(&r.nextFreeIndex, 1)
	r.contents[idx&r.indexMask] = value
	for !atomic.CompareAndSwapUint64(&r.lastCommittedIndex, idx-1, idx) {
	}
}

func (r *ring[T]) read() *T {
	for atomic.LoadUint64(&r.readerIndex)+1 > atomic.LoadUint64(&r.lastCommittedIndex) {
	}
	idx := atomic.AddUint64(&r.readerIndex, 1)
	return r.contents[idx&r.indexMask]
}

func (r *ring[T]) isEmpty() bool {
	return atomic.LoadUint64(&r.readerIndex) >= atomic.LoadUint64(&r.lastCommittedIndex)
}

func (r *ring[T]) isFull() bool {
	return atomic.LoadUint64(&r.nextFreeIndex) >= atomic.LoadUint64(&r.readerIndex)+r.indexMask
}

func roundUpPow2(v uint64) uint64 {
	if v < 2 {
		return 2
	}
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	v++
	return v
}
