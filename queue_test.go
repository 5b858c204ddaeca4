// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/ringq"
)

// =============================================================================
// Capacity Normalization
// =============================================================================

// TestCapacityNormalization verifies power-of-two rounding at construction.
func TestCapacityNormalization(t *testing.T) {
	tests := []struct {
		requested int
		want      int
	}{
		{1, 1},
		{2, 2},
		{3, 4},
		{5, 8},
		{8, 8},
		{1000, 1024},
		{1024, 1024},
	}

	for _, tt := range tests {
		q := ringq.NewMPMC[int](tt.requested)
		if q.Cap() != tt.want {
			t.Errorf("NewMPMC(%d).Cap(): got %d, want %d", tt.requested, q.Cap(), tt.want)
		}
		f := ringq.NewIndirect(tt.requested)
		if f.Cap() != tt.want {
			t.Errorf("NewIndirect(%d).Cap(): got %d, want %d", tt.requested, f.Cap(), tt.want)
		}
	}
}

// TestInvalidCapacityPanics verifies the construction-time misuse check.
func TestInvalidCapacityPanics(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewMPMC(%d): expected panic", capacity)
				}
			}()
			ringq.NewMPMC[int](capacity)
		}()
	}
}

// =============================================================================
// Basic Operations (Try variants)
// =============================================================================

// TestMPMCTryBasic tests non-blocking operations on a single goroutine.
func TestMPMCTryBasic(t *testing.T) {
	q := ringq.NewMPMC[int](3)

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	// Enqueue to capacity
	for i := range 4 {
		v := i + 100
		if err := q.TryEnqueue(&v); err != nil {
			t.Fatalf("TryEnqueue(%d): %v", i, err)
		}
	}

	// Full queue returns ErrWouldBlock
	v := 999
	if err := q.TryEnqueue(&v); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("TryEnqueue on full: got %v, want ErrWouldBlock", err)
	}

	// Dequeue in FIFO order
	for i := range 4 {
		val, err := q.TryDequeue()
		if err != nil {
			t.Fatalf("TryDequeue(%d): %v", i, err)
		}
		if val != i+100 {
			t.Fatalf("TryDequeue(%d): got %d, want %d", i, val, i+100)
		}
	}

	// Empty queue returns ErrWouldBlock
	if _, err := q.TryDequeue(); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("TryDequeue on empty: got %v, want ErrWouldBlock", err)
	}
}

// TestMPMCBlockingSequential exercises the blocking path on a single
// goroutine where no wait can occur (never more than Cap in flight).
func TestMPMCBlockingSequential(t *testing.T) {
	q := ringq.NewMPMC[string](4)

	for range 3 { // Cross lap boundaries
		in := []string{"a", "b", "c", "d"}
		for i := range in {
			q.Enqueue(&in[i])
		}
		for i := range in {
			if got := q.Dequeue(); got != in[i] {
				t.Fatalf("Dequeue: got %q, want %q", got, in[i])
			}
		}
	}
}

// TestMPMCSingleSlot verifies the degenerate capacity-1 queue across laps.
func TestMPMCSingleSlot(t *testing.T) {
	q := ringq.NewMPMC[int](1)

	if q.Cap() != 1 {
		t.Fatalf("Cap: got %d, want 1", q.Cap())
	}

	for i := range 10 {
		if err := q.TryEnqueue(&i); err != nil {
			t.Fatalf("TryEnqueue lap %d: %v", i, err)
		}
		v := 777
		if err := q.TryEnqueue(&v); !errors.Is(err, ringq.ErrWouldBlock) {
			t.Fatalf("TryEnqueue on full single slot: got %v, want ErrWouldBlock", err)
		}
		got, err := q.TryDequeue()
		if err != nil {
			t.Fatalf("TryDequeue lap %d: %v", i, err)
		}
		if got != i {
			t.Fatalf("TryDequeue lap %d: got %d, want %d", i, got, i)
		}
	}
}

// TestMPMCZeroesSlotOnDequeue verifies dequeued slots drop references.
func TestMPMCZeroesSlotOnDequeue(t *testing.T) {
	type payload struct{ p *int }

	q := ringq.NewMPMC[payload](2)
	x := 42
	v := payload{p: &x}
	q.Enqueue(&v)

	got := q.Dequeue()
	if got.p != &x {
		t.Fatal("Dequeue returned wrong payload")
	}

	// Refill the slot and read it back: the previous reference must be
	// gone from the buffer, not merely shadowed.
	empty := payload{}
	q.Enqueue(&empty)
	if got = q.Dequeue(); got.p != nil {
		t.Fatal("slot retained stale reference after dequeue")
	}
}

// TestMPMCApproximateLen verifies the diagnostic cursor difference.
func TestMPMCApproximateLen(t *testing.T) {
	q := ringq.NewMPMC[int](8)

	if got := q.ApproximateLen(); got != 0 {
		t.Fatalf("ApproximateLen on empty: got %d, want 0", got)
	}

	for i := range 5 {
		q.Enqueue(&i)
	}
	if got := q.ApproximateLen(); got != 5 {
		t.Fatalf("ApproximateLen after 5 enqueues: got %d, want 5", got)
	}

	for range 5 {
		q.Dequeue()
	}
	if got := q.ApproximateLen(); got != 0 {
		t.Fatalf("ApproximateLen after drain: got %d, want 0", got)
	}
}

// =============================================================================
// Builder API
// =============================================================================

// TestBuilderAPI tests the builder entry points.
func TestBuilderAPI(t *testing.T) {
	q := ringq.Build[int](ringq.New(7))
	if q.Cap() != 8 {
		t.Fatalf("Build cap: got %d, want 8", q.Cap())
	}
	v := 42
	if err := q.TryEnqueue(&v); err != nil {
		t.Fatalf("TryEnqueue: %v", err)
	}
	got, err := q.TryDequeue()
	if err != nil || got != 42 {
		t.Fatalf("TryDequeue: got (%d, %v), want (42, nil)", got, err)
	}

	f := ringq.New(7).BuildIndirect()
	if f.Cap() != 8 {
		t.Fatalf("BuildIndirect cap: got %d, want 8", f.Cap())
	}
	if err := f.TryEnqueue(uintptr(9)); err != nil {
		t.Fatalf("indirect TryEnqueue: %v", err)
	}
	h, err := f.TryDequeue()
	if err != nil || h != 9 {
		t.Fatalf("indirect TryDequeue: got (%d, %v), want (9, nil)", h, err)
	}
}

// TestBuilderInvalidCapacity verifies New rejects capacity < 1.
func TestBuilderInvalidCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(0): expected panic")
		}
	}()
	ringq.New(0)
}

// =============================================================================
// Interface Conformance
// =============================================================================

var (
	_ ringq.Queue[int]       = (*ringq.MPMC[int])(nil)
	_ ringq.QueueIndirect    = (*ringq.Indirect)(nil)
	_ ringq.Producer[int]    = (*ringq.MPMC[int])(nil)
	_ ringq.Consumer[int]    = (*ringq.MPMC[int])(nil)
	_ ringq.ProducerIndirect = (*ringq.Indirect)(nil)
	_ ringq.ConsumerIndirect = (*ringq.Indirect)(nil)
)
