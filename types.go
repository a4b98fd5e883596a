// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq

import "unsafe"

// Queue is the combined producer-consumer interface for a bounded queue.
//
// Queue provides non-blocking Enqueue and Dequeue operations. Both return
// ErrWouldBlock when they cannot proceed (queue full or empty).
//
// The interface intentionally excludes length because accurate counts in
// lock-free algorithms require expensive cross-core synchronization.
// Track counts in application logic when needed.
type Queue[T any] interface {
	Producer[T]
	Consumer[T]

	// Cap returns the queue capacity. It is a pure function of the
	// construction-time argument and constant for the queue's lifetime.
	Cap() int

	// Empty reports whether the queue looked empty at some instant during
	// the call. The answer is best-effort: under concurrent producers it
	// may be stale before Empty returns. Never use it for synchronization.
	Empty() bool
}

// Producer is the interface for enqueueing elements.
//
// The element is passed by pointer to avoid copying large structs at the
// call boundary. The queue stores a copy of the pointed-to value, so the
// caller retains ownership of the original.
type Producer[T any] interface {
	// Enqueue adds an element to the queue (non-blocking).
	// Returns nil on success, ErrWouldBlock if the queue is full. A full
	// queue is left completely unchanged.
	//
	// Thread safety depends on queue type:
	//   - SPSC/SPMC: single producer only
	//   - MPSC/MPMC: multiple producers safe
	Enqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// The element is returned by value, copied out of the queue's buffer. The
// vacated slot is zeroed so the queue does not pin referenced objects
// against garbage collection.
type Consumer[T any] interface {
	// Dequeue removes and returns an element from the queue (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	//
	// Thread safety depends on queue type:
	//   - SPSC/MPSC: single consumer only
	//   - SPMC/MPMC: multiple consumers safe
	Dequeue() (T, error)
}

// QueueIndirect is the combined interface for uintptr queues.
//
// QueueIndirect passes indices or handles instead of full objects, which
// suits buffer pools and other index-addressed structures:
//
//	pool := make([][]byte, 1024)
//	freeList := bq.NewMPMCIndirect(1024)
//
//	for i := range pool {
//	    pool[i] = make([]byte, 4096)
//	    freeList.Enqueue(uintptr(i))
//	}
//
//	idx, _ := freeList.Dequeue() // allocate
//	buf := pool[idx]
//	freeList.Enqueue(idx)        // free
type QueueIndirect interface {
	// Enqueue adds a value to the queue.
	// Returns ErrWouldBlock immediately if the queue is full.
	Enqueue(elem uintptr) error

	// Dequeue removes and returns a value from the queue.
	// Returns (0, ErrWouldBlock) immediately if the queue is empty.
	Dequeue() (uintptr, error)

	Cap() int
	Empty() bool
}

// QueuePtr is the combined interface for unsafe.Pointer queues.
//
// QueuePtr passes pointers without copying the pointed-to object, enabling
// zero-copy transfer between goroutines. Ownership semantics: the producer
// transfers ownership to the consumer and must not touch the object after a
// successful Enqueue.
type QueuePtr interface {
	// Enqueue adds a pointer to the queue.
	// Returns ErrWouldBlock immediately if the queue is full.
	Enqueue(elem unsafe.Pointer) error

	// Dequeue removes and returns a pointer from the queue.
	// Returns (nil, ErrWouldBlock) immediately if the queue is empty.
	Dequeue() (unsafe.Pointer, error)

	Cap() int
	Empty() bool
}
