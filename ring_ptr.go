// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"unsafe"

	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
)

// RingPtr is a bounded SPSC ring for unsafe.Pointer values.
//
// It passes pointers without copying the pointed-to objects: the producer
// enqueues a pointer and thereby hands the object to the consumer. Vacated
// slots are cleared so the ring never keeps a handed-off object alive.
// Same cursor protocol as Ring.
type RingPtr struct {
	_      cpu.CacheLinePad
	head   atomix.Uint64 // Next slot to read; consumer-owned
	_      cpu.CacheLinePad
	tail   atomix.Uint64 // Next slot to write; producer-owned
	_      cpu.CacheLinePad
	buffer []unsafe.Pointer
	slots  uint64
}

// NewPtr creates a ring for unsafe.Pointer values with the given number of
// storage slots. Usable capacity is slots-1. Panics if slots < 2.
func NewPtr(slots int) *RingPtr {
	if slots < 2 {
		panic("ringq: slots must be >= 2")
	}
	return &RingPtr{
		buffer: make([]unsafe.Pointer, slots),
		slots:  uint64(slots),
	}
}

// Enqueue adds an element (producer only).
// Returns ErrWouldBlock if the ring is full.
func (q *RingPtr) Enqueue(elem unsafe.Pointer) error {
	tail := q.tail.LoadRelaxed()
	next := tail + 1
	if next == q.slots {
		next = 0
	}
	if next == q.head.LoadAcquire() {
		return ErrWouldBlock
	}
	// Pointer arithmetic avoids slice bounds checking in hot path.
	// Equivalent to q.buffer[tail] = elem
	*(*unsafe.Pointer)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(q.buffer)), int(tail)*ptrSize)) = elem
	q.tail.StoreRelease(next)
	return nil
}

// EnqueueAll adds elems in order until the ring fills, and reports how many
// were added (producer only). Pointers beyond the returned count were not
// handed off and remain owned by the producer.
func (q *RingPtr) EnqueueAll(elems []unsafe.Pointer) int {
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

// Dequeue removes and returns an element (consumer only).
// The vacated slot is cleared so the ring does not keep the object alive.
// Returns (nil, ErrWouldBlock) if the ring is empty.
func (q *RingPtr) Dequeue() (unsafe.Pointer, error) {
	head := q.head.LoadRelaxed()
	if head == q.tail.LoadAcquire() {
		return nil, ErrWouldBlock
	}
	// Pointer arithmetic avoids slice bounds checking in hot path.
	// Equivalent to elem := q.buffer[head]
	slot := (*unsafe.Pointer)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(q.buffer)), int(head)*ptrSize))
	elem := *slot
	*slot = nil
	next := head + 1
	if next == q.slots {
		next = 0
	}
	q.head.StoreRelease(next)
	return elem, nil
}

// DequeueAll removes every element visible at the time of the call and
// returns them in FIFO order (consumer only). Returns nil when empty.
// Drained slots are cleared.
func (q *RingPtr) DequeueAll() []unsafe.Pointer {
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
	out := make([]unsafe.Pointer, n)

	first := min(n, q.slots-head)
	copy(out, q.buffer[head:head+first])
	copy(out[first:], q.buffer[:n-first])
	clear(q.buffer[head : head+first])
	clear(q.buffer[:n-first])

	q.head.StoreRelease(tail)
	return out
}

// Peek returns the oldest element without removing it (consumer only).
// Values are plain words, so Peek returns the pointer itself.
// Returns (nil, ErrWouldBlock) if the ring is empty.
func (q *RingPtr) Peek() (unsafe.Pointer, error) {
	head := q.head.LoadRelaxed()
	if head == q.tail.LoadAcquire() {
		return nil, ErrWouldBlock
	}
	return q.buffer[head], nil
}

// PopFront discards the oldest element (consumer only). The slot is cleared.
// Panics if the ring is empty.
func (q *RingPtr) PopFront() {
	head := q.head.LoadRelaxed()
	if head == q.tail.LoadAcquire() {
		panic("ringq: pop on empty ring")
	}
	q.buffer[head] = nil
	next := head + 1
	if next == q.slots {
		next = 0
	}
	q.head.StoreRelease(next)
}

// IsEmpty reports whether the ring held no elements at the moment of the
// call. Snapshot semantics; see Ring.IsEmpty.
func (q *RingPtr) IsEmpty() bool {
	return q.head.LoadAcquire() == q.tail.LoadAcquire()
}

// IsFull reports whether the ring was full at the moment of the call.
// Snapshot semantics; see Ring.IsEmpty.
func (q *RingPtr) IsFull() bool {
	next := q.tail.LoadAcquire() + 1
	if next == q.slots {
		next = 0
	}
	return next == q.head.LoadAcquire()
}

// Len returns the number of elements held at the moment of the call.
// Snapshot semantics; see Ring.IsEmpty.
func (q *RingPtr) Len() int {
	head := q.head.LoadAcquire()
	tail := q.tail.LoadAcquire()
	if tail >= head {
		return int(tail - head)
	}
	return int(q.slots - head + tail)
}

// Cap returns the usable capacity: slots-1.
func (q *RingPtr) Cap() int {
	return int(q.slots - 1)
}

// Reset discards every element and rewinds both cursors. Live slots are
// cleared so the ring does not keep discarded objects alive.
// Must only be called after the producer and consumer have stopped.
func (q *RingPtr) Reset() {
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
// Must only be called after the producer and consumer have stopped.
func (q *RingPtr) Close() {
	q.head.Store(0)
	q.tail.Store(0)
	q.buffer = nil
}
