// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ringq provides a bounded single-producer single-consumer ring buffer.
//
// The ring is a fixed block of slots with two cursors: the producer writes at
// tail, the consumer reads at head, and both wrap in place. One slot is kept
// vacant so cursor equality means empty and cursor adjacency means full — no
// shared counter, no locks, no allocation after construction. Capacity is
// exact: any slot count >= 2 works, with no rounding to a power of 2.
//
// # Quick Start
//
//	q := ringq.New[Event](1024)      // 1024 slots, holds up to 1023 events
//
//	// Producer goroutine
//	ev := Event{ID: 7}
//	err := q.Enqueue(&ev)
//	if ringq.IsWouldBlock(err) {
//	    // Ring is full - handle backpressure
//	}
//
//	// Consumer goroutine
//	ev, err := q.Dequeue()
//	if ringq.IsWouldBlock(err) {
//	    // Ring is empty - try again later
//	}
//
// # The One-Producer One-Consumer Contract
//
// Correctness rests on a single rule: at most one goroutine uses the
// producer side (Enqueue, EnqueueAll) and at most one goroutine uses the
// consumer side (Dequeue, DequeueAll, Peek, PopFront) at any moment. The
// two sides may run concurrently with each other; two goroutines on the
// same side may not. The goroutines can differ over time as long as a
// handoff synchronizes the switch.
//
// Violating the rule causes undefined behavior including data corruption.
// The package cannot detect violations at runtime; instead, hand each
// goroutine only its half of the interface so the compiler keeps the sides
// apart:
//
//	func startProducer(p ringq.Producer[Event]) { ... }
//	func startConsumer(c ringq.Consumer[Event]) { ... }
//
//	q := ringq.New[Event](1024)
//	go startProducer(q)
//	go startConsumer(q)
//
// # Common Patterns
//
// Pipeline Stage:
//
//	// Stage 1 → Ring → Stage 2
//	q := ringq.New[Data](1024)
//
//	go func() { // Producer (Stage 1)
//	    backoff := iox.Backoff{}
//	    for data := range input {
//	        for q.Enqueue(&data) != nil {
//	            backoff.Wait()
//	        }
//	        backoff.Reset()
//	    }
//	}()
//
//	go func() { // Consumer (Stage 2)
//	    backoff := iox.Backoff{}
//	    for {
//	        data, err := q.Dequeue()
//	        if err != nil {
//	            backoff.Wait()
//	            continue
//	        }
//	        backoff.Reset()
//	        process(data)
//	    }
//	}()
//
// Batch Transfer:
//
//	// Amortize cursor traffic over whole batches
//	pending := collect()                  // Producer side
//	for len(pending) > 0 {
//	    n := q.EnqueueAll(pending)
//	    pending = pending[n:]
//	}
//
//	for batch := q.DequeueAll(); batch != nil; batch = q.DequeueAll() {
//	    for i := range batch {            // Consumer side
//	        process(batch[i])
//	    }
//	}
//
// Inspect In Place:
//
//	// Examine or mutate the front element without copying it out
//	front, err := q.Peek()
//	if err == nil {
//	    if front.Expired() {
//	        q.PopFront()                  // Discard without a copy
//	    } else {
//	        front.Touch()                 // Mutate in place
//	    }
//	}
//
// # Ring Flavors
//
// Three flavors cover different payload shapes:
//
//	New[T]        - Generic type-safe ring for any type
//	NewIndirect() - Ring for uintptr values (pool indices, handles)
//	NewPtr()      - Ring for unsafe.Pointer (zero-copy pointer passing)
//
// When to use Indirect:
//
//	// Buffer pool with index-based access
//	pool := make([][]byte, 1024)
//	freeList := ringq.NewIndirect(len(pool) + 1) // n slots hold n-1 indices
//
//	// Initialize free list with buffer indices
//	for i := range pool {
//	    pool[i] = make([]byte, 4096)
//	    freeList.Enqueue(uintptr(i))
//	}
//
//	// Allocate: get index from free list
//	idx, err := freeList.Dequeue()
//	buf := pool[idx]
//
//	// Free: return index to free list
//	freeList.Enqueue(idx)
//
// When to use Ptr:
//
//	// Zero-copy object passing between goroutines
//	q := ringq.NewPtr(1024)
//
//	// Producer creates object once
//	msg := &Message{Data: largePayload}
//	q.Enqueue(unsafe.Pointer(msg))
//
//	// Consumer receives same pointer - no copy
//	ptr, _ := q.Dequeue()
//	msg := (*Message)(ptr)
//
// # Error Handling
//
// Rings return [ErrWouldBlock] when operations cannot proceed. This error
// is sourced from [code.hybscloud.com/iox] for ecosystem consistency.
//
//	// Retry loop with backoff
//	backoff := iox.Backoff{}
//	for {
//	    err := q.Enqueue(&item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if !ringq.IsWouldBlock(err) {
//	        return err // Unexpected error
//	    }
//	    backoff.Wait()
//	}
//
// For semantic error classification (delegates to iox):
//
//	ringq.IsWouldBlock(err)  // true if ring full/empty
//	ringq.IsSemantic(err)    // true if control flow signal
//	ringq.IsNonFailure(err)  // true if nil or ErrWouldBlock
//
// # Capacity and Length
//
// Capacity is exact. One slot stays vacant to tell full from empty, so a
// ring built with n slots holds up to n-1 elements:
//
//	q := ringq.New[int](2)     // Capacity: 1
//	q := ringq.New[int](1000)  // Capacity: 999
//	q := ringq.New[int](1024)  // Capacity: 1023
//
// Minimum slot count is 2. Panic if slots < 2.
//
// Len, IsEmpty, and IsFull are point-in-time snapshots. Each side sees its
// own operations exactly; the other side's cursor may move right after the
// load. Called from the producer, Len never under-counts (the consumer can
// only shrink the ring after the load); called from the consumer, it never
// over-counts. Use the diagnostics for heuristics and monitoring — Enqueue
// and Dequeue already report full and empty exactly.
//
// # Memory Layout
//
// The two cursors live on separate cache lines, with the slot block kept
// apart from both. The producer therefore never invalidates the line the
// consumer spins on and vice versa. Each side reads its own cursor with a
// relaxed load, reads the peer cursor with an acquire load, and publishes
// with a release store; no read-modify-write instructions appear anywhere
// on the hot path.
//
// Dequeued slots are cleared so the ring never keeps dead elements' referents
// alive; the release store that advances head publishes the clearing to the
// producer before the slot can be rewritten.
//
// # Lifecycle
//
// Reset empties a ring for reuse; Close also releases the slot block. Both
// write to both cursors and therefore require external quiescence: call them
// only after the producer and consumer goroutines have stopped using the
// ring, synchronized through the usual means (WaitGroup, channel close).
//
// # Race Detection
//
// Go's race detector is not designed for lock-free algorithm verification.
// The race detector tracks explicit synchronization primitives (mutex,
// channels, WaitGroup) but cannot observe happens-before relationships
// established through atomic memory orderings (acquire-release semantics).
//
// This ring protects non-atomic slot accesses with acquire-release cursor
// operations. The algorithm is correct, but the race detector may report
// false positives because it cannot track synchronization provided by
// atomic operations on separate variables.
//
// Tests incompatible with race detection are excluded via //go:build !race.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit memory
// ordering, and [golang.org/x/sys/cpu] for cache line padding. Benchmarks
// use [code.hybscloud.com/spin] for CPU pause instructions.
package ringq
