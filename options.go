// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq

// Options configures queue creation and variant selection.
type Options struct {
	// Producer/Consumer constraints (determines queue type)
	singleProducer bool
	singleConsumer bool

	// Capacity: >= 2 and an exact power of two
	capacity int
}

// Builder creates queues with fluent configuration.
//
// The builder selects the queue variant from the declared producer/consumer
// constraints:
//
//	q := bq.BuildSPSC[Event](bq.New(1024).SingleProducer().SingleConsumer())
//	q := bq.BuildMPMC[Request](bq.New(4096))
//	q := bq.New(8192).BuildIndirect()
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity.
//
// Capacity must be at least 2 and an exact power of two; any other value is
// a programming error and New panics. Capacity is validated once here, so
// every Build variant below constructs without re-checking.
func New(capacity int) *Builder {
	checkCapacity(capacity)
	return &Builder{opts: Options{capacity: capacity}}
}

// SingleProducer declares that only one goroutine will enqueue.
// Enables the SPSC or SPMC variants, which write without a cursor CAS.
func (b *Builder) SingleProducer() *Builder {
	b.opts.singleProducer = true
	return b
}

// SingleConsumer declares that only one goroutine will dequeue.
// Enables the SPSC or MPSC variants, which read without a cursor CAS.
func (b *Builder) SingleConsumer() *Builder {
	b.opts.singleConsumer = true
	return b
}

// Build creates a Queue[T] with automatic variant selection:
//
//	SingleProducer + SingleConsumer → SPSC (Lamport ring buffer)
//	SingleConsumer only             → MPSC
//	SingleProducer only             → SPMC
//	Neither                         → MPMC
func Build[T any](b *Builder) Queue[T] {
	switch {
	case b.opts.singleProducer && b.opts.singleConsumer:
		return NewSPSC[T](b.opts.capacity)
	case b.opts.singleConsumer:
		return NewMPSC[T](b.opts.capacity)
	case b.opts.singleProducer:
		return NewSPMC[T](b.opts.capacity)
	default:
		return NewMPMC[T](b.opts.capacity)
	}
}

// BuildSPSC creates an SPSC queue with compile-time type safety.
// Panics if builder is not configured with SingleProducer().SingleConsumer().
func BuildSPSC[T any](b *Builder) *SPSC[T] {
	if !b.opts.singleProducer || !b.opts.singleConsumer {
		panic("bq: BuildSPSC requires SingleProducer().SingleConsumer()")
	}
	return NewSPSC[T](b.opts.capacity)
}

// BuildMPSC creates an MPSC queue with compile-time type safety.
// Panics if builder is not configured with SingleConsumer() only.
func BuildMPSC[T any](b *Builder) *MPSC[T] {
	if b.opts.singleProducer || !b.opts.singleConsumer {
		panic("bq: BuildMPSC requires SingleConsumer() without SingleProducer()")
	}
	return NewMPSC[T](b.opts.capacity)
}

// BuildSPMC creates an SPMC queue with compile-time type safety.
// Panics if builder is not configured with SingleProducer() only.
func BuildSPMC[T any](b *Builder) *SPMC[T] {
	if !b.opts.singleProducer || b.opts.singleConsumer {
		panic("bq: BuildSPMC requires SingleProducer() without SingleConsumer()")
	}
	return NewSPMC[T](b.opts.capacity)
}

// BuildMPMC creates an MPMC queue with compile-time type safety.
// Panics if builder has any constraints set.
func BuildMPMC[T any](b *Builder) *MPMC[T] {
	if b.opts.singleProducer || b.opts.singleConsumer {
		panic("bq: BuildMPMC requires no constraints")
	}
	return NewMPMC[T](b.opts.capacity)
}

// BuildIndirect creates a QueueIndirect for uintptr values.
// The MPMC variant is returned regardless of constraints; it is safe under
// every access pattern.
func (b *Builder) BuildIndirect() QueueIndirect {
	return NewMPMCIndirect(b.opts.capacity)
}

// BuildPtr creates a QueuePtr for unsafe.Pointer values.
// The MPMC variant is returned regardless of constraints; it is safe under
// every access pattern.
func (b *Builder) BuildPtr() QueuePtr {
	return NewMPMCPtr(b.opts.capacity)
}

// checkCapacity validates the capacity contract and returns it as the cursor
// width. The requirement is a precondition, not a runtime condition: a bad
// capacity reflects programmer misuse, so the failure is a panic rather than
// an error value. Capacity is never rounded.
func checkCapacity(capacity int) uint64 {
	if capacity < 2 || capacity&(capacity-1) != 0 {
		panic("bq: capacity must be a power of two and >= 2")
	}
	return uint64(capacity)
}

// padShort is padding to fill a cache line after an 8-byte sequence field.
type padShort [64 - 8]byte
