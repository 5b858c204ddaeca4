// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "code.hybscloud.com/atomix"

// Sequence is a 64-bit atomic cell observed and mutated only through
// explicit-ordering operations. It is the building block for both
// cursors and per-slot turn counters.
//
// Each ordering is a separate method rather than a parameter so that
// call sites read as the memory-model statement they make:
//
//	turn := slot.turn.LoadAcquire()   // synchronizes with StoreRelease
//	slot.turn.StoreRelease(ticket+1)  // publishes the preceding write
//
// Sequence never blocks and never allocates. CompareAndSwap performs a
// single attempt; the caller owns the retry policy.
type Sequence struct {
	v atomix.Uint64
}

// LoadRelaxed returns the current value with no ordering guarantee.
func (s *Sequence) LoadRelaxed() uint64 { return s.v.LoadRelaxed() }

// LoadAcquire returns the current value. All writes made before a
// matching StoreRelease are visible after this load observes it.
func (s *Sequence) LoadAcquire() uint64 { return s.v.LoadAcquire() }

// StoreRelaxed writes the value with no ordering guarantee.
// Only valid before the owning structure is shared.
func (s *Sequence) StoreRelaxed(x uint64) { s.v.StoreRelaxed(x) }

// StoreRelease writes the value, publishing all preceding writes in
// this goroutine to any LoadAcquire that observes it.
func (s *Sequence) StoreRelease(x uint64) { s.v.StoreRelease(x) }

// CompareAndSwap replaces the stored value with desired iff it
// currently equals expected, with acquire-release ordering.
// Reports whether the swap occurred.
func (s *Sequence) CompareAndSwap(expected, desired uint64) bool {
	return s.v.CompareAndSwapAcqRel(expected, desired)
}
