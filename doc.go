// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bq provides bounded lock-free hand-off queues.
//
// The queues are fixed-capacity rings intended as intra-process hand-off
// channels between worker goroutines, e.g. dispatching I/O requests or
// background-task items inside a storage engine without kernel-level locking.
// All operations are non-blocking: they succeed, or report full/empty
// immediately, or spin briefly on a contended compare-and-swap. No operation
// ever sleeps or takes a mutex.
//
// The core type is [MPMC], an implementation of Vyukov's bounded MPMC
// algorithm: every slot carries a sequence number that, compared against the
// producer or consumer cursor, tells whether the slot is writable or readable
// for the cursor's current generation. Restricted-pattern variants ([MPSC],
// [SPMC], [SPSC]) shed atomics where one side is known to be a single
// goroutine, and [MPMCIndirect]/[MPMCPtr] carry uintptr and unsafe.Pointer
// payloads for pool-index and zero-copy hand-off.
//
// # Quick Start
//
// Direct constructors:
//
//	q := bq.NewMPMC[Task](1024)
//	q := bq.NewSPSC[Event](256)
//
// Builder API auto-selects the variant from declared constraints:
//
//	q := bq.Build[Task](bq.New(1024))                                    // → MPMC
//	q := bq.Build[Task](bq.New(1024).SingleConsumer())                   // → MPSC
//	q := bq.Build[Task](bq.New(1024).SingleProducer())                   // → SPMC
//	q := bq.Build[Task](bq.New(1024).SingleProducer().SingleConsumer())  // → SPSC
//
// # Capacity Contract
//
// Capacity must be at least 2 and an exact power of two. Anything else is a
// programming error, not a runtime condition, and constructors panic. The
// power-of-two requirement lets a cursor select its physical slot with a
// single AND against capacity-1, and lets the cursor double as a per-slot
// ticket. Capacity is never rounded; the caller gets exactly what it asked
// for, and Cap reports that value for the lifetime of the queue.
//
// # Basic Usage
//
//	q := bq.NewMPMC[int](1024)
//
//	// Enqueue (non-blocking). The pointed-to value is copied into the
//	// queue; the caller keeps its own copy.
//	value := 42
//	err := q.Enqueue(&value)
//	if bq.IsWouldBlock(err) {
//	    // Queue is full - handle backpressure
//	}
//
//	// Dequeue (non-blocking)
//	elem, err := q.Dequeue()
//	if bq.IsWouldBlock(err) {
//	    // Queue is empty - try again later
//	}
//
// # Error Handling
//
// Full and empty are ordinary operational signals, not failures. They are
// reported as [ErrWouldBlock], sourced from [code.hybscloud.com/iox] for
// ecosystem consistency. Retry policy (spin, park, drop) belongs entirely to
// the caller:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := q.Enqueue(&item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if !bq.IsWouldBlock(err) {
//	        return err // Unexpected error
//	    }
//	    backoff.Wait()
//	}
//
// There are no other runtime error paths: copying the payload is assumed not
// to fail, and nothing is logged.
//
// # Ordering Guarantees
//
// Publishing a slot is a release store of its sequence number; claim checks
// are acquire loads. A consumer that observes a published item therefore also
// observes every write the producer made before publishing, and a producer
// that observes a recycled slot observes the consumer's reads as complete.
// Across racing producers the only order is atomic slot-claim order, which
// may differ from wall-clock call order under contention.
//
// # Emptiness
//
// Empty is a best-effort snapshot. Under concurrent producers and consumers
// the answer can be stale before the method returns; no linearizable "is
// empty" exists for a queue under concurrent writers. Use it for heuristics
// (idle detection, metrics sampling), never for synchronization.
//
// Length is intentionally not provided because accurate counts in lock-free
// algorithms require expensive cross-core synchronization. Track counts in
// application logic when needed.
//
// # Thread Safety
//
// All queue operations are safe within their access pattern constraints:
//
//   - SPSC: one producer goroutine, one consumer goroutine
//   - MPSC: multiple producers, one consumer
//   - SPMC: one producer, multiple consumers
//   - MPMC, MPMCIndirect, MPMCPtr: unrestricted
//
// Violating these constraints (e.g. two producers on an SPSC) corrupts the
// queue. A queue must not be torn down while operations may still be in
// flight; quiescence is the caller's responsibility.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives but cannot
// observe happens-before edges established through atomix memory orderings
// on separate variables. The per-slot sequence protocol is exactly such an
// edge, so the detector reports false positives on the data fields it
// guards. Tests incompatible with race detection are excluded via
// //go:build !race.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives with
// explicit memory ordering, [code.hybscloud.com/spin] for CPU pause
// instructions in retry loops, [code.hybscloud.com/iox] for semantic errors,
// and golang.org/x/sys/cpu for cache-line padding between hot fields.
package bq
