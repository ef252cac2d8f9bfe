// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq_test

import (
	"errors"
	"testing"
	"unsafe"

	"code.hybscloud.com/ringq"
)

// =============================================================================
// Ptr Ring - Basic Operations
// =============================================================================

// TestPtrBasic verifies FIFO order and pointer identity.
func TestPtrBasic(t *testing.T) {
	q := ringq.NewPtr(5)

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	// Empty dequeue
	if _, err := q.Dequeue(); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("empty dequeue: got %v, want ErrWouldBlock", err)
	}

	vals := []int{100, 200, 300, 400}
	for i := range vals {
		if err := q.Enqueue(unsafe.Pointer(&vals[i])); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	extra := 999
	if err := q.Enqueue(unsafe.Pointer(&extra)); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
	}

	// Verify FIFO order and pointer identity
	for i := range vals {
		ptr, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if ptr != unsafe.Pointer(&vals[i]) {
			t.Fatalf("Dequeue(%d): pointer mismatch", i)
		}
	}
}

// TestPtrNil tests that nil is a valid pointer value.
func TestPtrNil(t *testing.T) {
	q := ringq.NewPtr(4)

	if err := q.Enqueue(nil); err != nil {
		t.Fatalf("enqueue nil: %v", err)
	}

	ptr, err := q.Dequeue()
	if err != nil {
		t.Fatalf("dequeue: %v", err)
	}
	if ptr != nil {
		t.Fatalf("got %v, want nil", ptr)
	}
}

// TestPtrWraparound tests pointer transfer across the wrap seam.
func TestPtrWraparound(t *testing.T) {
	q := ringq.NewPtr(5)
	vals := make([]int, 40)

	next := 0
	for cycle := range 10 {
		for i := range 4 {
			vals[next] = next
			if err := q.Enqueue(unsafe.Pointer(&vals[next])); err != nil {
				t.Fatalf("cycle %d: Enqueue(%d): %v", cycle, i, err)
			}
			next++
		}

		for i := range 4 {
			ptr, err := q.Dequeue()
			if err != nil {
				t.Fatalf("cycle %d: Dequeue(%d): %v", cycle, i, err)
			}
			got := *(*int)(ptr)
			expected := cycle*4 + i
			if got != expected {
				t.Fatalf("cycle %d: got %d, want %d", cycle, got, expected)
			}
		}
	}
}

// =============================================================================
// Ptr Ring - Batch Operations
// =============================================================================

// TestPtrBatch tests batch transfer with pointer identity preserved.
func TestPtrBatch(t *testing.T) {
	q := ringq.NewPtr(8)

	vals := make([]int, 6)
	elems := make([]unsafe.Pointer, 6)
	for i := range vals {
		vals[i] = i + 100
		elems[i] = unsafe.Pointer(&vals[i])
	}

	if n := q.EnqueueAll(elems); n != 6 {
		t.Fatalf("EnqueueAll: got %d, want 6", n)
	}

	got := q.DequeueAll()
	if len(got) != 6 {
		t.Fatalf("DequeueAll: got %d elements, want 6", len(got))
	}
	for i, p := range got {
		if p != elems[i] {
			t.Fatalf("DequeueAll[%d]: pointer mismatch", i)
		}
	}
}

// =============================================================================
// Ptr Ring - Peek / PopFront
// =============================================================================

// TestPtrPeekPopFront verifies inspect-then-discard on pointer payloads.
func TestPtrPeekPopFront(t *testing.T) {
	q := ringq.NewPtr(4)

	if _, err := q.Peek(); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("Peek on empty: got %v, want ErrWouldBlock", err)
	}

	vals := []int{1, 2, 3}
	for i := range vals {
		if err := q.Enqueue(unsafe.Pointer(&vals[i])); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	for i := range vals {
		p, err := q.Peek()
		if err != nil {
			t.Fatalf("Peek(%d): %v", i, err)
		}
		if p != unsafe.Pointer(&vals[i]) {
			t.Fatalf("Peek(%d): pointer mismatch", i)
		}
		if q.Len() != len(vals)-i {
			t.Fatalf("Len after Peek(%d): got %d, want %d", i, q.Len(), len(vals)-i)
		}
		q.PopFront()
	}

	if !q.IsEmpty() {
		t.Fatal("ring should be empty after PopFront cycle")
	}
}
