// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq

import (
	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
)

// SPSC is a bounded single-producer single-consumer queue.
//
// Based on Lamport's ring buffer with cached index optimization: the
// producer caches the consumer's cursor and vice versa, so the opposite
// cache line is only touched when the cached view says the ring might be
// full or empty. No per-slot sequence numbers are needed; the two cursors
// alone encode slot state.
//
// Memory: n slots with no per-slot overhead
type SPSC[T any] struct {
	_          cpu.CacheLinePad
	head       atomix.Uint64 // Consumer reads from here
	_          cpu.CacheLinePad
	cachedTail uint64 // Consumer's cached view of tail
	_          cpu.CacheLinePad
	tail       atomix.Uint64 // Producer writes here
	_          cpu.CacheLinePad
	cachedHead uint64 // Producer's cached view of head
	_          cpu.CacheLinePad
	buffer     []T
	mask       uint64
}

// NewSPSC creates a bounded SPSC queue.
// Capacity must be >= 2 and an exact power of two; violation panics.
func NewSPSC[T any](capacity int) *SPSC[T] {
	n := checkCapacity(capacity)
	return &SPSC[T]{
		buffer: make([]T, n),
		mask:   n - 1,
	}
}

// Enqueue adds an element to the queue (producer only).
// Returns ErrWouldBlock if the queue is full.
func (q *SPSC[T]) Enqueue(elem *T) error {
	tail := q.tail.LoadRelaxed()
	if tail-q.cachedHead > q.mask {
		q.cachedHead = q.head.LoadAcquire()
		if tail-q.cachedHead > q.mask {
			return ErrWouldBlock
		}
	}

	q.buffer[tail&q.mask] = *elem
	q.tail.StoreRelease(tail + 1)
	return nil
}

// Dequeue removes and returns an element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *SPSC[T]) Dequeue() (T, error) {
	head := q.head.LoadRelaxed()
	if head >= q.cachedTail {
		q.cachedTail = q.tail.LoadAcquire()
		if head >= q.cachedTail {
			var zero T
			return zero, ErrWouldBlock
		}
	}

	elem := q.buffer[head&q.mask]
	var zero T
	q.buffer[head&q.mask] = zero
	q.head.StoreRelease(head + 1)
	return elem, nil
}

// Empty reports whether the queue looked empty at some instant during the
// call. Best-effort snapshot; see [MPMC.Empty].
func (q *SPSC[T]) Empty() bool {
	return q.head.LoadAcquire() >= q.tail.LoadAcquire()
}

// Cap returns the queue capacity.
func (q *SPSC[T]) Cap() int {
	return int(q.mask + 1)
}
