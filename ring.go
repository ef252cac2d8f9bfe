// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
)

// Ring is a bounded single-producer single-consumer FIFO queue.
//
// Based on Lamport's ring buffer: two cursors walk a fixed block of slots,
// and one slot is always kept vacant so that cursor equality means empty and
// cursor adjacency means full, with no shared counter. Both cursors stay
// within [0, slots) and wrap in place, so any slot count >= 2 is valid —
// capacity is exact, not rounded.
//
// head is advanced only by the consumer, tail only by the producer; each is
// read by both sides. The cursors sit on separate cache lines to keep
// producer and consumer cores from invalidating each other's lines.
//
// Memory: the slot block is allocated once at construction. Operations never
// allocate (DequeueAll allocates only its result slice).
type Ring[T any] struct {
	_      cpu.CacheLinePad
	head   atomix.Uint64 // Next slot to read; consumer-owned
	_      cpu.CacheLinePad
	tail   atomix.Uint64 // Next slot to write; producer-owned
	_      cpu.CacheLinePad
	buffer []T
	slots  uint64
}

// New creates a ring with the given number of storage slots.
// One slot stays vacant to distinguish full from empty, so the usable
// capacity is slots-1. Panics if slots < 2.
func New[T any](slots int) *Ring[T] {
	if slots < 2 {
		panic("ringq: slots must be >= 2")
	}
	return &Ring[T]{
		buffer: make([]T, slots),
		slots:  uint64(slots),
	}
}

// Enqueue adds an element to the ring (producer only).
// The element is copied into the ring's internal buffer; the pointer only
// spares a large struct copy at the call boundary.
// Returns ErrWouldBlock without modifying the ring if it is full.
func (q *Ring[T]) Enqueue(elem *T) error {
	tail := q.tail.LoadRelaxed()
	next := tail + 1
	if next == q.slots {
		next = 0
	}
	// Acquire pairs with the consumer's release of head: the slot ahead is
	// observed fully reclaimed before it is written over.
	if next == q.head.LoadAcquire() {
		return ErrWouldBlock
	}
	q.buffer[tail] = *elem
	// Release publishes the element: a consumer that acquire-loads the new
	// tail sees the slot fully written.
	q.tail.StoreRelease(next)
	return nil
}

// EnqueueAll adds elems in order until the ring fills, and reports how many
// were added (producer only). A short count means the remainder was rejected.
// The batch is not atomic: it is equivalent to repeated Enqueue calls, but
// advances tail once per call.
func (q *Ring[T]) EnqueueAll(elems []T) int {
	tail := q.tail.LoadRelaxed()
	head := q.head.LoadAcquire()

	var free uint64
	if head > tail {
		free = head - tail - 1
	} else {
		free = q.slots - tail + head - 1
	}
	n := min(uint64(len(elems)), free)
	if n == 0 {
		return 0
	}

	first := min(n, q.slots-tail)
	copy(q.buffer[tail:], elems[:first])
	copy(q.buffer, elems[first:n])

	next := tail + n
	if next >= q.slots {
		next -= q.slots
	}
	q.tail.StoreRelease(next)
	return int(n)
}

// Dequeue removes and returns the oldest element (consumer only).
// The vacated slot is cleared so the collector does not retain the element's
// referents. Returns (zero-value, ErrWouldBlock) if the ring is empty.
func (q *Ring[T]) Dequeue() (T, error) {
	head := q.head.LoadRelaxed()
	// Acquire pairs with the producer's release of tail: an element observed
	// here is fully written.
	if head == q.tail.LoadAcquire() {
		var zero T
		return zero, ErrWouldBlock
	}
	elem := q.buffer[head]
	var zero T
	q.buffer[head] = zero
	next := head + 1
	if next == q.slots {
		next = 0
	}
	// Release publishes the reclamation: the producer acquire-loads head and
	// only then reuses the slot.
	q.head.StoreRelease(next)
	return elem, nil
}

// DequeueAll removes every element visible at the time of the call and
// returns them in FIFO order (consumer only). Returns nil when the ring is
// empty. Elements published by the producer during the drain are left for
// the next call; the batch is not atomic.
func (q *Ring[T]) DequeueAll() []T {
	head := q.head.LoadRelaxed()
	tail := q.tail.LoadAcquire()
	if head == tail {
		return nil
	}

	var n uint64
	if tail > head {
		n = tail - head
	} else {
		n = q.slots - head + tail
	}
	out := make([]T, n)

	first := min(n, q.slots-head)
	copy(out, q.buffer[head:head+first])
	copy(out[first:], q.buffer[:n-first])
	clear(q.buffer[head : head+first])
	clear(q.buffer[:n-first])

	q.head.StoreRelease(tail)
	return out
}

// Peek returns a pointer to the oldest element without removing it
// (consumer only). The pointer aliases the ring's storage: it is valid only
// until the next Dequeue, DequeueAll, PopFront, Reset, or Close, and the
// caller may mutate the element through it in place.
// Returns (nil, ErrWouldBlock) if the ring is empty.
func (q *Ring[T]) Peek() (*T, error) {
	head := q.head.LoadRelaxed()
	if head == q.tail.LoadAcquire() {
		return nil, ErrWouldBlock
	}
	return &q.buffer[head], nil
}

// PopFront discards the oldest element (consumer only). Companion to Peek
// for inspect-then-discard without copying the element out.
// The ring must not be empty: popping an empty ring is a contract violation
// and panics.
func (q *Ring[T]) PopFront() {
	head := q.head.LoadRelaxed()
	if head == q.tail.LoadAcquire() {
		panic("ringq: pop on empty ring")
	}
	var zero T
	q.buffer[head] = zero
	next := head + 1
	if next == q.slots {
		next = 0
	}
	q.head.StoreRelease(next)
}

// IsEmpty reports whether the ring held no elements at the moment of the
// call. Safe from either side, but the answer is a snapshot: it may be stale
// by the time the caller acts on it. Use it for heuristics, never for
// correctness — Enqueue and Dequeue already report full and empty.
func (q *Ring[T]) IsEmpty() bool {
	return q.head.LoadAcquire() == q.tail.LoadAcquire()
}

// IsFull reports whether the ring was full at the moment of the call.
// Snapshot semantics; see IsEmpty.
func (q *Ring[T]) IsFull() bool {
	next := q.tail.LoadAcquire() + 1
	if next == q.slots {
		next = 0
	}
	return next == q.head.LoadAcquire()
}

// Len returns the number of elements held at the moment of the call: the
// circular distance from head to tail. Snapshot semantics; see IsEmpty.
func (q *Ring[T]) Len() int {
	head := q.head.LoadAcquire()
	tail := q.tail.LoadAcquire()
	if tail >= head {
		return int(tail - head)
	}
	return int(q.slots - head + tail)
}

// Cap returns the usable capacity: slots-1, the maximum number of elements
// the ring can hold at once.
func (q *Ring[T]) Cap() int {
	return int(q.slots - 1)
}

// Reset discards every element and rewinds both cursors, leaving an empty,
// reusable ring. Live slots are cleared so the collector does not retain
// their referents.
//
// Reset writes both cursors and must only be called after the producer and
// consumer goroutines have stopped using the ring.
func (q *Ring[T]) Reset() {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail >= head {
		clear(q.buffer[head:tail])
	} else {
		clear(q.buffer[head:])
		clear(q.buffer[:tail])
	}
	q.head.Store(0)
	q.tail.Store(0)
}

// Close discards every element and releases the slot block.
// The ring must not be used after Close.
//
// Like Reset, Close must only be called after the producer and consumer
// goroutines have stopped using the ring.
func (q *Ring[T]) Close() {
	q.head.Store(0)
	q.tail.Store(0)
	q.buffer = nil
}
