// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"unsafe"

	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
)

// ptrSize is the size of a pointer in bytes.
const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// RingIndirect is a bounded SPSC ring for uintptr values.
//
// It carries indices or handles instead of full objects, which suits buffer
// pools, object pools, and free lists. Same cursor protocol as Ring; the
// single-slot paths use pointer arithmetic instead of slice indexing.
type RingIndirect struct {
	_      cpu.CacheLinePad
	head   atomix.Uint64 // Next slot to read; consumer-owned
	_      cpu.CacheLinePad
	tail   atomix.Uint64 // Next slot to write; producer-owned
	_      cpu.CacheLinePad
	buffer []uintptr
	slots  uint64
}

// NewIndirect creates a ring for uintptr values with the given number of
// storage slots. Usable capacity is slots-1. Panics if slots < 2.
func NewIndirect(slots int) *RingIndirect {
	if slots < 2 {
		panic("ringq: slots must be >= 2")
	}
	return &RingIndirect{
		buffer: make([]uintptr, slots),
		slots:  uint64(slots),
	}
}

// Enqueue adds an element (producer only).
// Returns ErrWouldBlock if the ring is full.
func (q *RingIndirect) Enqueue(elem uintptr) error {
	tail := q.tail.LoadRelaxed()
	next := tail + 1
	if next == q.slots {
		next = 0
	}
	if next == q.head.LoadAcquire() {
		return ErrWouldBlock
	}
	// Bounds check eliminated: tail is always < len(buffer)
	// because both cursors wrap before reaching slots
	*(*uintptr)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(q.buffer)), int(tail)*ptrSize)) = elem
	q.tail.StoreRelease(next)
	return nil
}

// EnqueueAll adds elems in order until the ring fills, and reports how many
// were added (producer only).
func (q *RingIndirect) EnqueueAll(elems []uintptr) int {
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
// Returns (0, ErrWouldBlock) if the ring is empty.
func (q *RingIndirect) Dequeue() (uintptr, error) {
	head := q.head.LoadRelaxed()
	if head == q.tail.LoadAcquire() {
		return 0, ErrWouldBlock
	}
	// Bounds check eliminated: head is always < len(buffer)
	elem := *(*uintptr)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(q.buffer)), int(head)*ptrSize))
	next := head + 1
	if next == q.slots {
		next = 0
	}
	q.head.StoreRelease(next)
	return elem, nil
}

// DequeueAll removes every element visible at the time of the call and
// returns them in FIFO order (consumer only). Returns nil when empty.
func (q *RingIndirect) DequeueAll() []uintptr {
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
	out := make([]uintptr, n)

	first := min(n, q.slots-head)
	copy(out, q.buffer[head:head+first])
	copy(out[first:], q.buffer[:n-first])

	q.head.StoreRelease(tail)
	return out
}

// Peek returns the oldest element without removing it (consumer only).
// Values are plain words, so Peek returns the value itself rather than a
// pointer into storage. Returns (0, ErrWouldBlock) if the ring is empty.
func (q *RingIndirect) Peek() (uintptr, error) {
	head := q.head.LoadRelaxed()
	if head == q.tail.LoadAcquire() {
		return 0, ErrWouldBlock
	}
	return q.buffer[head], nil
}

// PopFront discards the oldest element (consumer only).
// Panics if the ring is empty.
func (q *RingIndirect) PopFront() {
	head := q.head.LoadRelaxed()
	if head == q.tail.LoadAcquire() {
		panic("ringq: pop on empty ring")
	}
	next := head + 1
	if next == q.slots {
		next = 0
	}
	q.head.StoreRelease(next)
}

// IsEmpty reports whether the ring held no elements at the moment of the
// call. Snapshot semantics; see Ring.IsEmpty.
func (q *RingIndirect) IsEmpty() bool {
	return q.head.LoadAcquire() == q.tail.LoadAcquire()
}

// IsFull reports whether the ring was full at the moment of the call.
// Snapshot semantics; see Ring.IsEmpty.
func (q *RingIndirect) IsFull() bool {
	next := q.tail.LoadAcquire() + 1
	if next == q.slots {
		next = 0
	}
	return next == q.head.LoadAcquire()
}

// Len returns the number of elements held at the moment of the call.
// Snapshot semantics; see Ring.IsEmpty.
func (q *RingIndirect) Len() int {
	head := q.head.LoadAcquire()
	tail := q.tail.LoadAcquire()
	if tail >= head {
		return int(tail - head)
	}
	return int(q.slots - head + tail)
}

// Cap returns the usable capacity: slots-1.
func (q *RingIndirect) Cap() int {
	return int(q.slots - 1)
}

// Reset discards every element and rewinds both cursors. Stale words left in
// vacated slots carry no references and are overwritten on reuse.
// Must only be called after the producer and consumer have stopped.
func (q *RingIndirect) Reset() {
	q.head.Store(0)
	q.tail.Store(0)
}

// Close discards every element and releases the slot block.
// The ring must not be used after Close.
// Must only be called after the producer and consumer have stopped.
func (q *RingIndirect) Close() {
	q.head.Store(0)
	q.tail.Store(0)
	q.buffer = nil
}
