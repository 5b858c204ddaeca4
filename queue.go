// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// MPMC is a lock-free multi-producer multi-consumer bounded queue.
//
// Every operation first claims a unique ticket from the relevant
// cursor, then completes a per-slot turn handshake on slot
// ticket&mask. The handshake is what makes concurrent claims safe: a
// cursor CAS only reserves a position, and the producer cannot touch
// the slot until the previous lap's consumer has released it. This is
// also what enforces the capacity bound — a producer that laps the
// ring waits on the slot, it never overwrites unread data.
//
// Delivery order equals ticket order: a single total order shared by
// all producers and consumers. Values enqueued by one goroutine are
// dequeued in that goroutine's order.
//
// Enqueue and Dequeue block (spinning with adaptive backoff) while the
// queue is full or empty. TryEnqueue and TryDequeue never block and
// return ErrWouldBlock instead.
//
// Memory: n slots (16+ bytes per slot), fixed at construction.
// No allocation occurs after NewMPMC returns.
type MPMC[T any] struct {
	_        pad
	producer Cursor // Orders enqueues
	_        pad
	consumer Cursor // Orders dequeues
	_        pad
	ring     ring[T]
}

// NewMPMC creates a new MPMC queue.
// Capacity rounds up to the next power of 2; the minimum is 1
// (a single-slot queue serializes all access but stays correct).
// Panics if capacity < 1.
func NewMPMC[T any](capacity int) *MPMC[T] {
	if capacity < 1 {
		panic("ringq: capacity must be >= 1")
	}
	return &MPMC[T]{ring: newRing[T](capacity)}
}

// Enqueue adds an element to the queue, blocking while the queue is
// full. The claimed ticket fixes the element's position in the global
// delivery order before the slot is written.
func (q *MPMC[T]) Enqueue(elem *T) {
	ticket := q.producer.Claim()
	slot := q.ring.at(ticket)

	backoff := iox.Backoff{}
	for slot.turn.LoadAcquire() != ticket {
		backoff.Wait()
	}

	slot.data = *elem
	slot.turn.StoreRelease(ticket + 1)
}

// Dequeue removes and returns an element, blocking while the queue is
// empty. The slot is zeroed before release so the queue does not pin
// referenced objects past their dequeue.
func (q *MPMC[T]) Dequeue() T {
	ticket := q.consumer.Claim()
	slot := q.ring.at(ticket)

	backoff := iox.Backoff{}
	for slot.turn.LoadAcquire() != ticket+1 {
		backoff.Wait()
	}

	elem := slot.data
	var zero T
	slot.data = zero
	slot.turn.StoreRelease(ticket + q.ring.capacity)
	return elem
}

// TryEnqueue adds an element to the queue (non-blocking).
// Returns ErrWouldBlock if the queue is full.
//
// Unlike Enqueue, the cursor is only advanced after the slot's turn
// shows it writable, so a failed attempt leaves no claimed ticket
// behind.
func (q *MPMC[T]) TryEnqueue(elem *T) error {
	sw := spin.Wait{}
	for {
		ticket := q.producer.seq.LoadAcquire()
		slot := q.ring.at(ticket)
		turn := slot.turn.LoadAcquire()
		diff := int64(turn) - int64(ticket)

		if diff == 0 {
			if q.producer.seq.CompareAndSwap(ticket, ticket+1) {
				slot.data = *elem
				slot.turn.StoreRelease(ticket + 1)
				return nil
			}
		} else if diff < 0 {
			return ErrWouldBlock // Slot still owned by the previous lap
		}
		sw.Once()
	}
}

// TryDequeue removes and returns an element (non-blocking).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *MPMC[T]) TryDequeue() (T, error) {
	sw := spin.Wait{}
	for {
		ticket := q.consumer.seq.LoadAcquire()
		slot := q.ring.at(ticket)
		turn := slot.turn.LoadAcquire()
		diff := int64(turn) - int64(ticket+1)

		if diff == 0 {
			if q.consumer.seq.CompareAndSwap(ticket, ticket+1) {
				elem := slot.data
				var zero T
				slot.data = zero
				slot.turn.StoreRelease(ticket + q.ring.capacity)
				return elem, nil
			}
		} else if diff < 0 {
			var zero T
			return zero, ErrWouldBlock
		}
		sw.Once()
	}
}

// Cap returns the queue capacity.
func (q *MPMC[T]) Cap() int {
	return int(q.ring.capacity)
}

// ApproximateLen returns the racy difference between the producer and
// consumer cursors, loaded relaxed. Claimed-but-unfinished tickets are
// counted, so the result may transiently exceed Cap while producers
// wait on full slots. Diagnostics only; never valid for correctness
// decisions.
func (q *MPMC[T]) ApproximateLen() int {
	p := q.producer.Peek()
	c := q.consumer.Peek()
	if p <= c {
		return 0
	}
	return int(p - c)
}
