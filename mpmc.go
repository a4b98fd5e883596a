// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"golang.org/x/sys/cpu"
)

// MPMC is a bounded multi-producer multi-consumer queue.
//
// Implementation of Dmitry Vyukov's bounded MPMC algorithm. Each slot
// carries a sequence number that doubles as a single-slot ticket lock:
// comparing it against a cursor tells whether the slot is writable or
// readable for that cursor's generation. Producers and consumers
// communicate only through these sequence numbers; neither side ever
// blocks the other.
//
// The cursors wrap only at uint64 overflow. The physical slot is the cursor
// masked by capacity-1, which is why capacity must be a power of two.
//
// Memory: n slots (16+ bytes per slot, padded toward a cache line)
type MPMC[T any] struct {
	_        cpu.CacheLinePad
	tail     atomix.Uint64 // Producer cursor
	_        cpu.CacheLinePad
	head     atomix.Uint64 // Consumer cursor
	_        cpu.CacheLinePad
	buffer   []cell[T]
	mask     uint64
	capacity uint64
}

// cell is one ring slot: a payload and its generation-tracking sequence.
// Slot i starts at seq=i, meaning "writable by producer cursor value i".
type cell[T any] struct {
	seq  atomix.Uint64
	data T
	_    padShort // Pad to cache line
}

// NewMPMC creates a bounded MPMC queue.
// Capacity must be >= 2 and an exact power of two; violation panics.
func NewMPMC[T any](capacity int) *MPMC[T] {
	n := checkCapacity(capacity)
	q := &MPMC[T]{
		buffer:   make([]cell[T], n),
		mask:     n - 1,
		capacity: n,
	}

	for i := uint64(0); i < n; i++ {
		q.buffer[i].seq.StoreRelaxed(i)
	}

	return q
}

// Enqueue adds an element to the queue.
// Returns ErrWouldBlock if the queue is full; a full queue is left
// completely unchanged and the caller keeps the value.
//
// The cursor CAS here is Go's strong compare-and-swap where the original
// algorithm allows a weak one. The claim loop tolerates spurious failure
// either way: a failed CAS only means another producer advanced the cursor,
// which is the ordinary contention retry path.
func (q *MPMC[T]) Enqueue(elem *T) error {
	sw := spin.Wait{}
	for {
		tail := q.tail.LoadRelaxed()
		c := &q.buffer[tail&q.mask]
		seq := c.seq.LoadAcquire()
		// Signed difference keeps the comparison correct across uint64
		// wraparound of the cursors.
		diff := int64(seq) - int64(tail)

		if diff == 0 {
			// Slot is writable for this generation. Claim it by
			// advancing the producer cursor.
			if q.tail.CompareAndSwapAcqRel(tail, tail+1) {
				c.data = *elem
				// Publish: pairs with the acquire load in Dequeue.
				c.seq.StoreRelease(tail + 1)
				return nil
			}
		} else if diff < 0 {
			// The consumer side has not recycled this slot yet.
			return ErrWouldBlock
		}
		// diff > 0, or lost the cursor CAS: another producer got here
		// first. Retry with a fresh cursor read.
		sw.Once()
	}
}

// Dequeue removes and returns an element from the queue.
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *MPMC[T]) Dequeue() (T, error) {
	sw := spin.Wait{}
	for {
		head := q.head.LoadRelaxed()
		c := &q.buffer[head&q.mask]
		seq := c.seq.LoadAcquire()
		diff := int64(seq) - int64(head+1)

		if diff == 0 {
			// Slot holds a fully published item. Claim it by advancing
			// the consumer cursor.
			if q.head.CompareAndSwapAcqRel(head, head+1) {
				elem := c.data
				var zero T
				c.data = zero
				// Recycle for the next wrap: the producer at cursor
				// head+capacity will see diff == 0.
				c.seq.StoreRelease(head + q.capacity)
				return elem, nil
			}
		} else if diff < 0 {
			var zero T
			return zero, ErrWouldBlock
		}
		// diff > 0 should not occur with a single queue instance;
		// defensive retry with a fresh cursor read.
		sw.Once()
	}
}

// Empty reports whether the queue looked empty at some instant during the
// call. The snapshot is best-effort: under concurrent producers the answer
// may be stale before Empty returns. Use for heuristics only.
func (q *MPMC[T]) Empty() bool {
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
		// A racing consumer claimed this slot; re-read the cursor.
		pos = q.head.LoadRelaxed()
	}
}

// Cap returns the queue capacity.
func (q *MPMC[T]) Cap() int {
	return int(q.capacity)
}
