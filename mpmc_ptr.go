// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq

import (
	"unsafe"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"golang.org/x/sys/cpu"
)

// MPMCPtr is a bounded MPMC queue for unsafe.Pointer values.
//
// Same sequence protocol as [MPMC] with a pointer payload. Enables zero-copy
// object hand-off: the producer enqueues a pointer and must not touch the
// object afterwards; the consumer receives the same pointer.
//
// Memory: n slots, 16 bytes of live data per slot (padded to a cache line)
type MPMCPtr struct {
	_        cpu.CacheLinePad
	tail     atomix.Uint64 // Producer cursor
	_        cpu.CacheLinePad
	head     atomix.Uint64 // Consumer cursor
	_        cpu.CacheLinePad
	buffer   []cellPtr
	mask     uint64
	capacity uint64
}

type cellPtr struct {
	seq  atomix.Uint64
	data unsafe.Pointer
	_    [64 - 16]byte // Pad to cache line
}

// NewMPMCPtr creates a bounded MPMC queue for unsafe.Pointer values.
// Capacity must be >= 2 and an exact power of two; violation panics.
func NewMPMCPtr(capacity int) *MPMCPtr {
	n := checkCapacity(capacity)
	q := &MPMCPtr{
		buffer:   make([]cellPtr, n),
		mask:     n - 1,
		capacity: n,
	}

	for i := uint64(0); i < n; i++ {
		q.buffer[i].seq.StoreRelaxed(i)
	}

	return q
}

// Enqueue adds a pointer to the queue.
// Returns ErrWouldBlock if the queue is full.
func (q *MPMCPtr) Enqueue(elem unsafe.Pointer) error {
	sw := spin.Wait{}
	for {
		tail := q.tail.LoadRelaxed()
		c := &q.buffer[tail&q.mask]
		seq := c.seq.LoadAcquire()
		diff := int64(seq) - int64(tail)

		if diff == 0 {
			if q.tail.CompareAndSwapAcqRel(tail, tail+1) {
				c.data = elem
				c.seq.StoreRelease(tail + 1)
				return nil
			}
		} else if diff < 0 {
			return ErrWouldBlock
		}
		sw.Once()
	}
}

// Dequeue removes and returns a pointer from the queue.
// Returns (nil, ErrWouldBlock) if the queue is empty.
func (q *MPMCPtr) Dequeue() (unsafe.Pointer, error) {
	sw := spin.Wait{}
	for {
		head := q.head.LoadRelaxed()
		c := &q.buffer[head&q.mask]
		seq := c.seq.LoadAcquire()
		diff := int64(seq) - int64(head+1)

		if diff == 0 {
			if q.head.CompareAndSwapAcqRel(head, head+1) {
				elem := c.data
				c.data = nil
				c.seq.StoreRelease(head + q.capacity)
				return elem, nil
			}
		} else if diff < 0 {
			return nil, ErrWouldBlock
		}
		sw.Once()
	}
}

// Empty reports whether the queue looked empty at some instant during the
// call. Best-effort snapshot; see [MPMC.Empty].
func (q *MPMCPtr) Empty() bool {
	pos := q.head.LoadRelaxed()
	for {
		seq := q.buffer[pos&q.mask].seq.LoadAcquire()
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
func (q *MPMCPtr) Cap() int {
	return int(q.capacity)
}
