// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"golang.org/x/sys/cpu"
)

// MPSC is a bounded multi-producer single-consumer queue.
//
// Producers run the same sequence-based claim protocol as [MPMC]. The single
// consumer reads sequentially and advances its cursor with a plain release
// store instead of a CAS.
//
// Memory: n slots (16+ bytes per slot, padded toward a cache line)
type MPSC[T any] struct {
	_        cpu.CacheLinePad
	tail     atomix.Uint64 // Producers CAS here
	_        cpu.CacheLinePad
	head     atomix.Uint64 // Consumer reads from here
	_        cpu.CacheLinePad
	buffer   []cell[T]
	mask     uint64
	capacity uint64
}

// NewMPSC creates a bounded MPSC queue.
// Capacity must be >= 2 and an exact power of two; violation panics.
func NewMPSC[T any](capacity int) *MPSC[T] {
	n := checkCapacity(capacity)
	q := &MPSC[T]{
		buffer:   make([]cell[T], n),
		mask:     n - 1,
		capacity: n,
	}

	for i := uint64(0); i < n; i++ {
		q.buffer[i].seq.StoreRelaxed(i)
	}

	return q
}

// Enqueue adds an element to the queue (multiple producers safe).
// Returns ErrWouldBlock if the queue is full.
func (q *MPSC[T]) Enqueue(elem *T) error {
	sw := spin.Wait{}
	for {
		tail := q.tail.LoadRelaxed()
		c := &q.buffer[tail&q.mask]
		seq := c.seq.LoadAcquire()
		diff := int64(seq) - int64(tail)

		if diff == 0 {
			if q.tail.CompareAndSwapAcqRel(tail, tail+1) {
				c.data = *elem
				c.seq.StoreRelease(tail + 1)
				return nil
			}
		} else if diff < 0 {
			return ErrWouldBlock
		}
		sw.Once()
	}
}

// Dequeue removes and returns an element (single consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *MPSC[T]) Dequeue() (T, error) {
	head := q.head.LoadRelaxed()
	c := &q.buffer[head&q.mask]
	seq := c.seq.LoadAcquire()

	if int64(seq)-int64(head+1) != 0 {
		var zero T
		return zero, ErrWouldBlock
	}

	elem := c.data
	var zero T
	c.data = zero
	c.seq.StoreRelease(head + q.capacity)
	q.head.StoreRelease(head + 1)

	return elem, nil
}

// Empty reports whether the queue looked empty at some instant during the
// call. Best-effort snapshot; see [MPMC.Empty].
func (q *MPSC[T]) Empty() bool {
	head := q.head.LoadRelaxed()
	seq := q.buffer[head&q.mask].seq.LoadAcquire()
	return int64(seq)-int64(head+1) < 0
}

// Cap returns the queue capacity.
func (q *MPSC[T]) Cap() int {
	return int(q.capacity)
}
