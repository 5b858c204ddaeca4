// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ringq provides a fixed-capacity, lock-free bounded MPMC
// queue built on atomic read-modify-write operations and explicit
// memory orderings.
//
// Any number of producer and consumer goroutines exchange values of a
// single element type through a shared power-of-two ring. There are no
// locks and no OS wait primitives: throughput and latency are
// dominated by cache-line traffic, and waiting is done by spinning
// with adaptive backoff.
//
// # Quick Start
//
//	q := ringq.NewMPMC[Event](1024)
//
//	// Blocking (waits while full/empty)
//	ev := Event{...}
//	q.Enqueue(&ev)
//	out := q.Dequeue()
//
//	// Non-blocking
//	if err := q.TryEnqueue(&ev); ringq.IsWouldBlock(err) {
//	    // Queue full - handle backpressure
//	}
//	out, err := q.TryDequeue()
//	if ringq.IsWouldBlock(err) {
//	    // Queue empty - try again later
//	}
//
// Builder form:
//
//	q := ringq.Build[Event](ringq.New(1024))
//	f := ringq.New(4096).BuildIndirect() // uintptr handle queue
//
// # Protocol
//
// Each operation claims a unique, strictly increasing ticket from a
// [Cursor] (CAS-retry), maps the ticket to a slot with ticket&mask,
// then completes a handshake on the slot's turn counter:
//
//	turn == t      producer holding ticket t may write
//	turn == t+1    consumer holding ticket t may read
//	turn == t+n    slot released for the next lap
//
// The cursor CAS only reserves a position; the turn handshake is what
// makes concurrent claims safe and what enforces the capacity bound. A
// producer that laps the ring waits for the previous lap's consumer to
// release the slot, so a fast producer can never overwrite unread
// data.
//
// # Ordering Guarantees
//
//   - Global delivery order equals ticket order, one total order
//     shared by all producers and consumers.
//   - Values enqueued by a single goroutine are dequeued in that
//     goroutine's enqueue order.
//   - A value is never visible to a consumer before the producer's
//     write completes (release/acquire pairing on the turn counter).
//
// # Common Patterns
//
// Worker pool (blocking):
//
//	q := ringq.NewMPMC[Job](4096)
//
//	for range numWorkers {
//	    go func() {
//	        for {
//	            job := q.Dequeue()
//	            job.Run()
//	        }
//	    }()
//	}
//
//	// Submit from anywhere; blocks only when all 4096 slots are busy
//	q.Enqueue(&job)
//
// Backpressure-aware producer (non-blocking):
//
//	backoff := iox.Backoff{}
//	for q.TryEnqueue(&item) != nil {
//	    backoff.Wait()
//	}
//	backoff.Reset()
//
// Handle passing through an [Indirect] queue:
//
//	pool := make([][]byte, 1024)
//	freeList := ringq.NewIndirect(1024)
//	for i := range pool {
//	    pool[i] = make([]byte, 4096)
//	    freeList.Enqueue(uintptr(i))
//	}
//
//	idx := freeList.Dequeue() // Allocate
//	buf := pool[idx]
//	freeList.Enqueue(idx)     // Free
//
// # Capacity
//
// Capacity rounds up to the next power of 2 at construction and is
// fixed thereafter:
//
//	ringq.NewMPMC[int](5)    // Actual capacity: 8
//	ringq.NewMPMC[int](8)    // Actual capacity: 8
//	ringq.NewMPMC[int](1)    // Actual capacity: 1 (degenerate, valid)
//
// Minimum capacity is 1. Panic if capacity < 1. No allocation occurs
// after construction.
//
// ApproximateLen reports the racy cursor difference for diagnostics.
// It counts claimed-but-unfinished tickets, so it may transiently
// exceed Cap while producers wait on a full queue. Never use it for
// correctness decisions; track counts in application logic when
// needed.
//
// # Blocking and Liveness
//
// Enqueue blocks for an unbounded duration while the queue is full,
// Dequeue while it is empty. There is no cancellation or timeout in
// the core protocol; callers needing timeouts should poll the Try
// variants. Deadlock is possible only when the matching role never
// arrives (a permanently full or permanently empty queue) — that
// liveness obligation belongs to the caller.
//
// # Race Detection
//
// Go's race detector cannot observe happens-before relationships
// established through atomic orderings on separate variables. The
// per-slot turn counters protect the non-atomic data fields with
// acquire-release semantics; this is correct, but the detector may
// report false positives. Tests incompatible with race detection are
// excluded via //go:build !race and RaceEnabled skips. For algorithm
// verification, use stress testing without the detector and memory
// model analysis.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives
// with explicit memory ordering, [code.hybscloud.com/iox] for
// semantic errors and adaptive backoff, and [code.hybscloud.com/spin]
// for CPU pause instructions inside CAS retry loops.
package ringq
