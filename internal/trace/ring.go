package trace

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// ring is the lossy SPSC buffer between the engine thread (sole producer)
// and the drain goroutine (sole consumer). Unlike pool.ring, which never
// actually contends because the engine is single-threaded end to end, this
// ring is genuinely shared across two live goroutines, so the cache-line
// separation between the producer's and the consumer's cursor groups is
// load-bearing, not decorative: without it, the producer's claim() and the
// consumer's release() would fight over the same cache line on every call.
//
// claim() never blocks. A full ring means claim() returns false and the
// event is dropped; this is the expected backpressure signal, not an error.
type ring struct {
	mask uint64
	slots []TraceEvent

	// producer-owned: writeCursor advances on every successful claim();
	// cachedHead avoids an atomic load of head on the common path.
	_           cpu.CacheLinePad
	writeCursor uint64
	cachedHead  uint64
	tail        atomic.Uint64
	_           cpu.CacheLinePad

	// consumer-owned: readCursor advances on every release(); cachedTail
	// avoids an atomic load of tail on the common path.
	readCursor uint64
	cachedTail uint64
	head       atomic.Uint64
	_          cpu.CacheLinePad
}

func newRing(capacity uint64) *ring {
	capacity = roundUpPow2(capacity)
	return &ring{
		mask:  capacity - 1,
		slots: make([]TraceEvent, capacity),
	}
}

func (r *ring) capacity() uint64 { return r.mask + 1 }

// claim returns an exclusive writable slot, or (nil, false) if the ring is
// full. Producer-only.
func (r *ring) claim() (*TraceEvent, bool) {
	if r.writeCursor-r.cachedHead >= r.capacity() {
		r.cachedHead = r.head.Load()
		if r.writeCursor-r.cachedHead >= r.capacity() {
			return nil, false
		}
	}
	slot := &r.slots[r.writeCursor&r.mask]
	r.writeCursor++
	return slot, true
}

// claimN claims exactly n consecutive slots for a batched publish, or claims
// none at all if the ring cannot currently hold all n. All-or-nothing
// matters here: claiming some of a batch and then giving up partway through
// would advance writeCursor past slots that are never published, which
// permanently shrinks the ring's usable capacity since the consumer can
// never see (and therefore never release) an unpublished slot.
func (r *ring) claimN(n uint64) ([]*TraceEvent, bool) {
	if r.writeCursor-r.cachedHead+n > r.capacity() {
		r.cachedHead = r.head.Load()
		if r.writeCursor-r.cachedHead+n > r.capacity() {
			return nil, false
		}
	}
	slots := make([]*TraceEvent, n)
	for i := uint64(0); i < n; i++ {
		slots[i] = &r.slots[r.writeCursor&r.mask]
		r.writeCursor++
	}
	return slots, true
}

// publish makes every slot claimed since the last publish visible, in
// order, to the consumer. Producer-only.
func (r *ring) publish() {
	r.tail.Store(r.writeCursor)
}

// poll returns the next unread slot, or (nil, false) if the ring is
// currently empty. Consumer-only.
func (r *ring) poll() (*TraceEvent, bool) {
	if r.readCursor == r.cachedTail {
		r.cachedTail = r.tail.Load()
		if r.readCursor == r.cachedTail {
			return nil, false
		}
	}
	return &r.slots[r.readCursor&r.mask], true
}

// release marks the slot most recently returned by poll as free for the
// producer to reuse. Consumer-only.
func (r *ring) release() {
	r.slots[r.readCursor&r.mask].reset()
	r.readCursor++
	r.head.Store(r.readCursor)
}

// isEmpty reports whether the consumer has nothing left to poll, using a
// fresh acquire of both cursors rather than the cached copies.
func (r *ring) isEmpty() bool {
	return r.head.Load() == r.tail.Load()
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
