// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "unsafe"

// Queue is the combined producer-consumer interface for an SPSC ring.
//
// Queue provides non-blocking operations on both sides plus diagnostics.
// Enqueue and Dequeue return ErrWouldBlock when they cannot proceed (ring
// full or empty).
//
// The diagnostics (IsEmpty, IsFull, Len) are point-in-time snapshots: the
// other side may move its cursor immediately after. Called from the producer,
// Len never under-counts; called from the consumer, it never over-counts.
// Use them for heuristics, not correctness — Enqueue and Dequeue already
// report full and empty exactly.
//
// Prefer handing each goroutine only its half of the interface: the producer
// goroutine a Producer, the consumer goroutine a Consumer. The split keeps a
// side from calling the other side's operations by accident.
//
// Example:
//
//	q := ringq.New[int](1024)
//
//	// Producer goroutine
//	val := 42
//	if err := q.Enqueue(&val); err != nil {
//	    // Handle full ring
//	}
//
//	// Consumer goroutine
//	elem, err := q.Dequeue()
//	if err == nil {
//	    fmt.Println(elem)
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]

	// IsEmpty reports whether the ring held no elements at the moment of
	// the call. Snapshot semantics.
	IsEmpty() bool
	// IsFull reports whether the ring was full at the moment of the call.
	// Snapshot semantics.
	IsFull() bool
	// Len returns the number of elements held at the moment of the call.
	// Snapshot semantics.
	Len() int
	// Cap returns the usable capacity: one less than the slot count.
	Cap() int
}

// Producer is the write half of a ring.
//
// At most one goroutine may use the Producer side at a time. The element is
// passed by pointer to avoid copying large structs at the call boundary; the
// ring stores a copy of the pointed-to value, so the original can be
// modified after Enqueue returns.
type Producer[T any] interface {
	// Enqueue adds an element to the ring (non-blocking).
	// The element is copied into the ring's internal buffer.
	// Returns nil on success, ErrWouldBlock if the ring is full.
	Enqueue(elem *T) error

	// EnqueueAll adds elems in order until the ring fills and reports how
	// many were added. A short count means the remainder was rejected.
	EnqueueAll(elems []T) int
}

// Consumer is the read half of a ring.
//
// At most one goroutine may use the Consumer side at a time. Dequeued
// elements are returned by value (copied from the ring's internal buffer);
// the vacated slot is cleared to allow garbage collection of referenced
// objects.
//
// For large types (>512 bytes), consider Peek plus PopFront to inspect in
// place, or QueuePtr or QueueIndirect to avoid copy overhead entirely.
type Consumer[T any] interface {
	// Dequeue removes and returns the oldest element (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the ring is empty.
	Dequeue() (T, error)

	// DequeueAll removes every element visible at the time of the call and
	// returns them in FIFO order. Returns nil when the ring is empty.
	DequeueAll() []T

	// Peek returns a pointer to the oldest element without removing it.
	// The pointer aliases ring storage and is valid only until the element
	// is removed. Returns (nil, ErrWouldBlock) if the ring is empty.
	Peek() (*T, error)

	// PopFront discards the oldest element.
	// Panics if the ring is empty; pair it with a successful Peek.
	PopFront()
}

// QueueIndirect is the combined interface for indirect (uintptr) rings.
//
// QueueIndirect passes indices or handles instead of full objects. This is
// useful for buffer pools, object pools, or any index-based data structure.
//
// Example (buffer pool):
//
//	pool := make([][]byte, 1024)
//	freeList := ringq.NewIndirect(len(pool) + 1) // n slots hold n-1 indices
//
//	// Initialize pool
//	for i := range pool {
//	    pool[i] = make([]byte, 4096)
//	    freeList.Enqueue(uintptr(i))
//	}
//
//	// Allocate
//	idx, _ := freeList.Dequeue()
//	buf := pool[idx]
//
//	// Free
//	freeList.Enqueue(idx)
type QueueIndirect interface {
	ProducerIndirect
	ConsumerIndirect

	// IsEmpty reports whether the ring held no elements at the moment of
	// the call. Snapshot semantics.
	IsEmpty() bool
	// IsFull reports whether the ring was full at the moment of the call.
	// Snapshot semantics.
	IsFull() bool
	// Len returns the number of elements held at the moment of the call.
	// Snapshot semantics.
	Len() int
	// Cap returns the usable capacity: one less than the slot count.
	Cap() int
}

// ProducerIndirect is the write half of an indirect ring.
// At most one goroutine may use it at a time.
type ProducerIndirect interface {
	// Enqueue adds an element to the ring.
	// Returns ErrWouldBlock immediately if the ring is full.
	Enqueue(elem uintptr) error

	// EnqueueAll adds elems in order until the ring fills and reports how
	// many were added.
	EnqueueAll(elems []uintptr) int
}

// ConsumerIndirect is the read half of an indirect ring.
// At most one goroutine may use it at a time.
type ConsumerIndirect interface {
	// Dequeue removes and returns the oldest element.
	// Returns (0, ErrWouldBlock) immediately if the ring is empty.
	Dequeue() (uintptr, error)

	// DequeueAll removes every element visible at the time of the call and
	// returns them in FIFO order. Returns nil when the ring is empty.
	DequeueAll() []uintptr

	// Peek returns the oldest element without removing it.
	// Returns (0, ErrWouldBlock) if the ring is empty.
	Peek() (uintptr, error)

	// PopFront discards the oldest element.
	// Panics if the ring is empty; pair it with a successful Peek.
	PopFront()
}

// QueuePtr is the combined interface for unsafe.Pointer rings.
//
// QueuePtr passes pointers directly without copying. This enables zero-copy
// transfer of objects between goroutines. The producer creates an object,
// enqueues its pointer, and the consumer receives the same pointer.
//
// Ownership semantics: the producer transfers ownership to the consumer.
// After enqueueing, the producer should not access the object.
//
// Example:
//
//	type Message struct {
//	    Data []byte
//	}
//
//	q := ringq.NewPtr(1024)
//
//	// Producer
//	msg := &Message{Data: largePayload}
//	q.Enqueue(unsafe.Pointer(msg))
//	// msg ownership transferred - do not use msg after this
//
//	// Consumer
//	ptr, _ := q.Dequeue()
//	msg := (*Message)(ptr)
//	// msg is now owned by consumer
type QueuePtr interface {
	ProducerPtr
	ConsumerPtr

	// IsEmpty reports whether the ring held no elements at the moment of
	// the call. Snapshot semantics.
	IsEmpty() bool
	// IsFull reports whether the ring was full at the moment of the call.
	// Snapshot semantics.
	IsFull() bool
	// Len returns the number of elements held at the moment of the call.
	// Snapshot semantics.
	Len() int
	// Cap returns the usable capacity: one less than the slot count.
	Cap() int
}

// ProducerPtr is the write half of a pointer ring.
// At most one goroutine may use it at a time.
type ProducerPtr interface {
	// Enqueue adds an element to the ring.
	// Returns ErrWouldBlock immediately if the ring is full.
	Enqueue(elem unsafe.Pointer) error

	// EnqueueAll adds elems in order until the ring fills and reports how
	// many were added. Pointers beyond the returned count remain owned by
	// the producer.
	EnqueueAll(elems []unsafe.Pointer) int
}

// ConsumerPtr is the read half of a pointer ring.
// At most one goroutine may use it at a time.
type ConsumerPtr interface {
	// Dequeue removes and returns an element.
	// Returns (nil, ErrWouldBlock) immediately if the ring is empty.
	Dequeue() (unsafe.Pointer, error)

	// DequeueAll removes every element visible at the time of the call and
	// returns them in FIFO order. Returns nil when the ring is empty.
	DequeueAll() []unsafe.Pointer

	// Peek returns the oldest element without removing it.
	// Returns (nil, ErrWouldBlock) if the ring is empty.
	Peek() (unsafe.Pointer, error)

	// PopFront discards the oldest element.
	// Panics if the ring is empty; pair it with a successful Peek.
	PopFront()
}
