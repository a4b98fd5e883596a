// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"golang.org/x/sys/cpu"
)

// MPMCIndirect is a bounded MPMC queue for uintptr values.
//
// Same sequence protocol as [MPMC], but each slot packs the sequence number
// and the value into a single 128-bit atomic entry, so claim and publish
// collapse into one CAS on the slot. The cursor CAS becomes a help-advance:
// whichever thread wins the slot nudges the cursor forward for the others.
//
// Entry format: [lo=sequence | hi=value]
//
// Memory: n slots, 16 bytes per slot (padded to a cache line)
type MPMCIndirect struct {
	_        cpu.CacheLinePad
	tail     atomix.Uint64 // Producer cursor
	_        cpu.CacheLinePad
	head     atomix.Uint64 // Consumer cursor
	_        cpu.CacheLinePad
	buffer   []cell128
	mask     uint64
	capacity uint64
}

type cell128 struct {
	entry atomix.Uint128 // lo=seq, hi=value
	_     [64 - 16]byte  // Pad to cache line
}

// NewMPMCIndirect creates a bounded MPMC queue for uintptr values.
// Capacity must be >= 2 and an exact power of two; violation panics.
func NewMPMCIndirect(capacity int) *MPMCIndirect {
	n := checkCapacity(capacity)
	q := &MPMCIndirect{
		buffer:   make([]cell128, n),
		mask:     n - 1,
		capacity: n,
	}

	// seq[i] = i (writable at generation 0), value = 0
	for i := uint64(0); i < n; i++ {
		q.buffer[i].entry.StoreRelaxed(i, 0)
	}

	return q
}

// Enqueue adds a value to the queue.
// Returns ErrWouldBlock if the queue is full.
func (q *MPMCIndirect) Enqueue(elem uintptr) error {
	sw := spin.Wait{}
	for {
		tail := q.tail.LoadRelaxed()
		c := &q.buffer[tail&q.mask]
		seqLo, valHi := c.entry.LoadAcquire()
		diff := int64(seqLo) - int64(tail)

		if diff == 0 {
			// One CAS claims the slot and publishes the value.
			if c.entry.CompareAndSwapAcqRel(seqLo, valHi, tail+1, uint64(elem)) {
				q.tail.CompareAndSwapRelaxed(tail, tail+1)
				return nil
			}
		} else if diff < 0 {
			return ErrWouldBlock
		}
		sw.Once()
	}
}

// Dequeue removes and returns a value from the queue.
// Returns (0, ErrWouldBlock) if the queue is empty.
func (q *MPMCIndirect) Dequeue() (uintptr, error) {
	sw := spin.Wait{}
	for {
		head := q.head.LoadRelaxed()
		c := &q.buffer[head&q.mask]
		seqLo, valHi := c.entry.LoadAcquire()
		diff := int64(seqLo) - int64(head+1)

		if diff == 0 {
			// One CAS claims the slot and recycles it for the next wrap.
			if c.entry.CompareAndSwapAcqRel(seqLo, valHi, head+q.capacity, 0) {
				q.head.CompareAndSwapRelaxed(head, head+1)
				return uintptr(valHi), nil
			}
		} else if diff < 0 {
			return 0, ErrWouldBlock
		}
		sw.Once()
	}
}

// Empty reports whether the queue looked empty at some instant during the
// call. Best-effort snapshot; see [MPMC.Empty].
func (q *MPMCIndirect) Empty() bool {
	pos := q.head.LoadRelaxed()
	for {
		seqLo, _ := q.buffer[pos&q.mask].entry.LoadAcquire()
		diff := int64(seqLo) - int64(pos+1)

		if diff == 0 {
			return false
		} else if diff < 0 {
			return true
		}
		pos = q.head.LoadRelaxed()
	}
}

// Cap returns the queue capacity.
func (q *MPMCIndirect) Cap() int {
	return int(q.capacity)
}
