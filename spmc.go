// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"golang.org/x/sys/cpu"
)

// SPMC is a bounded single-producer multi-consumer queue.
//
// The single producer writes sequentially and advances its cursor with a
// plain release store. Consumers run the same sequence-based claim protocol
// as [MPMC].
//
// Memory: n slots (16+ bytes per slot, padded toward a cache line)
type SPMC[T any] struct {
	_        cpu.CacheLinePad
	head     atomix.Uint64 // Consumers CAS here
	_        cpu.CacheLinePad
	tail     atomix.Uint64 // Producer writes here
	_        cpu.CacheLinePad
	buffer   []cell[T]
	mask     uint64
	capacity uint64
}

// NewSPMC creates a bounded SPMC queue.
// Capacity must be >= 2 and an exact power of two; violation panics.
func NewSPMC[T any](capacity int) *SPMC[T] {
	n := checkCapacity(capacity)
	q := &SPMC[T]{
		buffer:   make([]cell[T], n),
		mask:     n - 1,
		capacity: n,
	}

	for i := uint64(0); i < n; i++ {
		q.buffer[i].seq.StoreRelaxed(i)
	}

	return q
}

// Enqueue adds an element to the queue (single producer only).
// Returns ErrWouldBlock if the queue is full.
func (q *SPMC[T]) Enqueue(elem *T) error {
	tail := q.tail.LoadRelaxed()
	c := &q.buffer[tail&q.mask]
	seq := c.seq.LoadAcquire()

	if int64(seq)-int64(tail) != 0 {
		return ErrWouldBlock
	}

	c.data = *elem
	c.seq.StoreRelease(tail + 1)
	q.tail.StoreRelease(tail + 1)

	return nil
}

// Dequeue removes and returns an element (multiple consumers safe).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *SPMC[T]) Dequeue() (T, error) {
	sw := spin.Wait{}
	for {
		head := q.head.LoadRelaxed()
		c := &q.buffer[head&q.mask]
		seq := c.seq.LoadAcquire()
		diff := int64(seq) - int64(head+1)

		if diff == 0 {
			if q.head.CompareAndSwapAcqRel(head, head+1) {
				elem := c.data
				var zero T
				c.data = zero
				c.seq.StoreRelease(head + q.capacity)
				return elem, nil
			}
		} else if diff < 0 {
			var zero T
			return zero, ErrWouldBlock
		}
		sw.Once()
	}
}

// Empty reports whether the queue looked empty at some instant during the
// call. Best-effort snapshot; see [MPMC.Empty].
func (q *SPMC[T]) Empty() bool {
	pos := q.head.LoadRelaxed()
	for {
		c := &q.buffer[pos&q.mask]
		seq := c.seq.LoadAcquire()
		diff := int64(seq) - int64(pos+1)

		if diff == 0 {
			return false
		} else if diff < 0 {
			return true
		}
		pos = q.head.LoadRelaxed()
	}
}

// Cap returns the queue capacity.
func (q *SPMC[T]) Cap() int {
	return int(q.capacity)
}
