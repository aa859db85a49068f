// Package spscring implements the bounded, wait-free single-producer/
// single-consumer ring queue that carries messages between every pair of
// adjacent roles in the dispatch fabric (producer -> processor, processor
// -> strategy). It is grounded on the reference codebase's hand-rolled SPSC
// ring (cache-line-separated head/tail, acquire/release index hand-off,
// never blocks, never allocates) adapted to the index-wraparound algorithm
// the specification mandates: two indices into a fixed-size slice, one slot
// permanently reserved to disambiguate full from empty, rather than the
// reference's per-slot sequence stamp. The two algorithms are equivalent in
// the guarantees they provide; this one matches the original C++ harness
// this system reimplements, which the spec was distilled from.
package spscring

import "sync/atomic"

// Ring is a fixed-capacity circular buffer dedicated to one producer
// goroutine and one consumer goroutine. head is written only by the
// producer; tail is written only by the consumer. Each is padded onto its
// own cache line so producer and consumer writes never false-share.
type Ring[T any] struct {
	head atomic.Uint64
	_    [56]byte

	tail atomic.Uint64
	_    [56]byte

	mask uint64
	cap  uint64
	buf  []T
}

// New allocates a ring of the given capacity, which must be a power of two
// (one slot of it is reserved, so the ring holds at most capacity-1 live
// items). New panics on a non-power-of-two or non-positive capacity since
// that is always a construction-time programming error, never a runtime
// condition a caller can recover from.
func New[T any](capacity int) *Ring[T] {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		panic("spscring: capacity must be a positive power of two")
	}
	return &Ring[T]{
		mask: uint64(capacity - 1),
		cap:  uint64(capacity),
		buf:  make([]T, capacity),
	}
}

// TryPush enqueues item and reports whether it was accepted. It must only
// ever be called by the single producer goroutine for this ring.
func (r *Ring[T]) TryPush(item T) bool {
	head := r.head.Load()
	tail := r.tail.Load()
	next := (head + 1) & r.mask
	if next == tail {
		return false // full: one slot away from colliding with tail
	}
	r.buf[head] = item
	r.head.Store(next)
	return true
}

// TryPop dequeues one item and reports whether one was available. It must
// only ever be called by the single consumer goroutine for this ring.
func (r *Ring[T]) TryPop() (T, bool) {
	tail := r.tail.Load()
	head := r.head.Load()
	if tail == head {
		var zero T
		return zero, false // empty
	}
	item := r.buf[tail]
	r.tail.Store((tail + 1) & r.mask)
	return item, true
}

// ApproxLen returns the approximate number of live items in the ring. It is
// safe to call from any goroutine but the value may be stale the instant it
// is read; it exists for telemetry only, never for control flow.
func (r *Ring[T]) ApproxLen() int {
	head := r.head.Load()
	tail := r.tail.Load()
	return int((head + r.cap - tail) % r.cap)
}

// Capacity returns the ring's total slot count (including the one reserved
// slot), i.e. the value passed to New.
func (r *Ring[T]) Capacity() int {
	return int(r.cap)
}

// Producer returns the write-only endpoint of the ring. Handing out a
// Producer rather than the Ring itself makes "only one writer" a type-level
// fact at the call site instead of a convention callers must remember.
func (r *Ring[T]) Producer() Producer[T] {
	return Producer[T]{r: r}
}

// Consumer returns the read-only endpoint of the ring.
func (r *Ring[T]) Consumer() Consumer[T] {
	return Consumer[T]{r: r}
}

// Producer is the write-only capability over a Ring.
type Producer[T any] struct {
	r *Ring[T]
}

// TryPush enqueues item through the owning ring.
func (p Producer[T]) TryPush(item T) bool {
	return p.r.TryPush(item)
}

// Consumer is the read-only capability over a Ring.
type Consumer[T any] struct {
	r *Ring[T]
}

// TryPop dequeues one item through the owning ring.
func (c Consumer[T]) TryPop() (T, bool) {
	return c.r.TryPop()
}

// ApproxLen reports the owning ring's approximate live size.
func (c Consumer[T]) ApproxLen() int {
	return c.r.ApproxLen()
}
