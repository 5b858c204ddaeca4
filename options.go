// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

// Options configures queue creation.
type Options struct {
	// Capacity (rounds up to next power of 2)
	capacity int
}

// Builder creates queues with fluent configuration.
//
// Example:
//
//	q := ringq.Build[Event](ringq.New(1024))
//	f := ringq.New(4096).BuildIndirect()
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity.
//
// Capacity rounds up to the next power of 2. For example, capacity=5
// results in actual capacity=8, capacity=1000 in actual capacity=1024.
//
// Panics if capacity < 1.
func New(capacity int) *Builder {
	if capacity < 1 {
		panic("ringq: capacity must be >= 1")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// Build creates a Queue[T] for elements of type T.
func Build[T any](b *Builder) Queue[T] {
	return NewMPMC[T](b.opts.capacity)
}

// BuildIndirect creates a QueueIndirect for uintptr handles.
func (b *Builder) BuildIndirect() QueueIndirect {
	return NewIndirect(b.opts.capacity)
}

// roundToPow2 rounds n up to the next power of 2. Minimum result is 1.
func roundToPow2(n int) int {
	if n < 2 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padShort is padding to fill cache line after 8-byte field.
type padShort [64 - 8]byte
