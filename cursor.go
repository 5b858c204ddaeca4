// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "code.hybscloud.com/spin"

// Cursor hands out unique, strictly increasing tickets to competing
// goroutines. A queue owns two: one orders producers, one orders
// consumers. The ticket determines both the global delivery position
// and the target slot (ticket & mask).
//
// The value is monotonically non-decreasing for the life of the queue.
// 64 bits are treated as unbounded; at one billion claims per second
// the counter wraps after five centuries.
type Cursor struct {
	seq Sequence
}

// Claim returns the next ticket. Lock-free: a failed CAS means another
// goroutine won that ticket, so the loop re-reads and retries. The CAS
// carries release ordering so the advance is visible to acquire loads
// in conditional-claim paths.
func (c *Cursor) Claim() uint64 {
	sw := spin.Wait{}
	for {
		ticket := c.seq.LoadRelaxed()
		if c.seq.CompareAndSwap(ticket, ticket+1) {
			return ticket
		}
		sw.Once()
	}
}

// Peek returns the next unclaimed ticket with a relaxed load.
// Diagnostics only; never valid as a claiming decision.
func (c *Cursor) Peek() uint64 {
	return c.seq.LoadRelaxed()
}
