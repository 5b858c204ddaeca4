// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

// slot is one ring cell: the in-flight value plus the turn counter
// recording which ticket currently owns the cell.
//
// Turn encoding for slot index i with capacity n (tickets mapping to
// the slot are i, i+n, i+2n, ...):
//
//	turn == t      producer holding ticket t may write
//	turn == t+1    consumer holding ticket t may read
//	turn == t+n    slot released for the next lap's producer
//
// The data field is a plain (non-atomic) field. Exclusive access for
// each read and write is proven by the turn check before the access,
// and the release store afterwards publishes it to the other side.
type slot[T any] struct {
	turn Sequence
	data T
	_    padShort // Pad to cache line
}

// ring is the fixed slot array shared by all producers and consumers.
// Capacity is normalized to a power of two once at construction so the
// ticket-to-slot mapping is a single mask instead of a division.
type ring[T any] struct {
	slots    []slot[T]
	mask     uint64
	capacity uint64
}

func newRing[T any](capacity int) ring[T] {
	n := uint64(roundToPow2(capacity))
	r := ring[T]{
		slots:    make([]slot[T], n),
		mask:     n - 1,
		capacity: n,
	}

	// Slot i starts writable for ticket i (lap 0).
	for i := uint64(0); i < n; i++ {
		r.slots[i].turn.StoreRelaxed(i)
	}

	return r
}

// at maps a ticket to its slot.
func (r *ring[T]) at(ticket uint64) *slot[T] {
	return &r.slots[ticket&r.mask]
}
