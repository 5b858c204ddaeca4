// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// emptyFlag marks a slot as empty. The remaining 63 bits store the lap number.
const emptyFlag = 1 << 63

// Indirect is a compact MPMC queue for uintptr handles (pool indices,
// buffer offsets, type-erased references). It exists for element types
// that cannot or should not travel through a generic slot: the caller
// stores the payload elsewhere and passes a 63-bit handle.
//
// Uses lap-based empty detection: an empty slot stores
// (emptyFlag | lap), a filled slot stores the handle directly. This
// achieves 8 bytes per slot while allowing any 63-bit value, including
// zero, to be enqueued.
//
// Memory: 8 bytes per slot
type Indirect struct {
	_        pad
	producer Cursor
	_        pad
	consumer Cursor
	_        pad
	buffer   []atomix.Uintptr
	mask     uint64
	capacity uint64
	shift    uint64 // log2(capacity), lap(ticket) = ticket >> shift
}

// NewIndirect creates a new compact indirect queue.
// Capacity rounds up to the next power of 2; the minimum is 1.
// Values are limited to 63 bits (high bit reserved for the empty flag).
// Panics if capacity < 1.
func NewIndirect(capacity int) *Indirect {
	if capacity < 1 {
		panic("ringq: capacity must be >= 1")
	}

	n := uint64(roundToPow2(capacity))
	shift := uint64(0)
	for (1 << shift) < n {
		shift++
	}

	q := &Indirect{
		buffer:   make([]atomix.Uintptr, n),
		mask:     n - 1,
		capacity: n,
		shift:    shift,
	}

	for i := range q.buffer {
		q.buffer[i].StoreRelaxed(emptyFlag | 0)
	}

	return q
}

// Enqueue adds a handle to the queue, blocking while the queue is full.
// Values must fit in 63 bits (high bit must be 0).
func (q *Indirect) Enqueue(elem uintptr) {
	backoff := iox.Backoff{}
	for q.TryEnqueue(elem) != nil {
		backoff.Wait()
	}
}

// Dequeue removes and returns a handle, blocking while the queue is empty.
func (q *Indirect) Dequeue() uintptr {
	backoff := iox.Backoff{}
	for {
		elem, err := q.TryDequeue()
		if err == nil {
			return elem
		}
		backoff.Wait()
	}
}

// TryEnqueue adds a handle to the queue (non-blocking).
// Returns ErrWouldBlock if the queue is full.
// Values must fit in 63 bits (high bit must be 0).
func (q *Indirect) TryEnqueue(elem uintptr) error {
	if elem&emptyFlag != 0 {
		panic("ringq: value exceeds 63 bits")
	}

	sw := spin.Wait{}
	for {
		tail := q.producer.seq.LoadAcquire()
		head := q.consumer.seq.LoadAcquire()
		if tail != q.producer.seq.LoadAcquire() {
			continue
		}
		if tail >= head+q.capacity {
			return ErrWouldBlock
		}

		idx := tail & q.mask
		lap := (tail >> q.shift) & (emptyFlag - 1)
		expected := emptyFlag | uintptr(lap)

		if q.buffer[idx].CompareAndSwapAcqRel(expected, elem) {
			q.producer.seq.CompareAndSwap(tail, tail+1)
			return nil
		}
		q.producer.seq.CompareAndSwap(tail, tail+1)
		sw.Once()
	}
}

// TryDequeue removes and returns a handle (non-blocking).
// Returns (0, ErrWouldBlock) if the queue is empty.
func (q *Indirect) TryDequeue() (uintptr, error) {
	sw := spin.Wait{}
	for {
		head := q.consumer.seq.LoadAcquire()
		tail := q.producer.seq.LoadAcquire()

		idx := head & q.mask
		elem := q.buffer[idx].LoadAcquire()
		if head != q.consumer.seq.LoadAcquire() {
			continue
		}
		if head >= tail {
			return 0, ErrWouldBlock
		}
		nextLap := ((head >> q.shift) + 1) & (emptyFlag - 1)
		nextEmpty := emptyFlag | uintptr(nextLap)
		if elem == nextEmpty {
			q.consumer.seq.CompareAndSwap(head, head+1)
			continue
		}
		if elem&emptyFlag != 0 {
			sw.Once()
			continue
		}
		if q.buffer[idx].CompareAndSwapAcqRel(elem, nextEmpty) {
			q.consumer.seq.CompareAndSwap(head, head+1)
			return elem, nil
		}

		q.consumer.seq.CompareAndSwap(head, head+1)
		sw.Once()
	}
}

// Cap returns the queue capacity.
func (q *Indirect) Cap() int {
	return int(q.capacity)
}

// ApproximateLen returns the racy difference between the producer and
// consumer cursors. Diagnostics only.
func (q *Indirect) ApproximateLen() int {
	p := q.producer.Peek()
	c := q.consumer.Peek()
	if p <= c {
		return 0
	}
	return int(p - c)
}
