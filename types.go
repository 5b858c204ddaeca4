// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

// Queue is the combined producer-consumer interface for a bounded
// MPMC queue.
//
// Blocking operations (Enqueue, Dequeue) spin with adaptive backoff
// until they complete. Non-blocking operations (TryEnqueue,
// TryDequeue) return ErrWouldBlock when they cannot proceed.
//
// ApproximateLen is a racy diagnostic, never a correctness signal;
// see the method documentation on MPMC.
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
	Cap() int
	ApproximateLen() int
}

// Producer is the interface for enqueueing elements.
//
// The element is passed by pointer to avoid copying large structs.
// The queue stores a copy of the pointed-to value, so the original
// can be modified after the call returns.
//
// Any number of goroutines may produce concurrently.
type Producer[T any] interface {
	// Enqueue adds an element to the queue, blocking while full.
	Enqueue(elem *T)

	// TryEnqueue adds an element to the queue (non-blocking).
	// Returns nil on success, ErrWouldBlock if the queue is full.
	TryEnqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// The element is returned by value (copied out of the queue's
// buffer). The slot is cleared on dequeue to allow garbage collection
// of referenced objects. For large payloads, pass handles through an
// Indirect queue instead.
//
// Any number of goroutines may consume concurrently.
type Consumer[T any] interface {
	// Dequeue removes and returns an element, blocking while empty.
	Dequeue() T

	// TryDequeue removes and returns an element (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	TryDequeue() (T, error)
}

// QueueIndirect is the combined interface for indirect (uintptr)
// queues. Indirect queues pass 63-bit handles instead of full
// objects: pool indices, buffer offsets, type-erased references.
//
// Example (buffer pool free list):
//
//	pool := make([][]byte, 1024)
//	freeList := ringq.NewIndirect(1024)
//
//	for i := range pool {
//	    pool[i] = make([]byte, 4096)
//	    freeList.Enqueue(uintptr(i))
//	}
//
//	idx := freeList.Dequeue() // Allocate
//	buf := pool[idx]
//	freeList.Enqueue(idx)     // Free
type QueueIndirect interface {
	ProducerIndirect
	ConsumerIndirect
	Cap() int
	ApproximateLen() int
}

// ProducerIndirect enqueues uintptr handles.
type ProducerIndirect interface {
	// Enqueue adds a handle to the queue, blocking while full.
	Enqueue(elem uintptr)

	// TryEnqueue adds a handle to the queue (non-blocking).
	// Returns ErrWouldBlock if the queue is full.
	TryEnqueue(elem uintptr) error
}

// ConsumerIndirect dequeues uintptr handles.
type ConsumerIndirect interface {
	// Dequeue removes and returns a handle, blocking while empty.
	Dequeue() uintptr

	// TryDequeue removes and returns a handle (non-blocking).
	// Returns (0, ErrWouldBlock) if the queue is empty.
	TryDequeue() (uintptr, error)
}
