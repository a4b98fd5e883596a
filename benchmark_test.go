// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq_test

import (
	"testing"
	"unsafe"

	"code.hybscloud.com/bq"
)

// =============================================================================
// Single-Op Baselines (uncontended enqueue+dequeue pair)
// =============================================================================

func BenchmarkSPSC_SingleOp(b *testing.B) {
	q := bq.NewSPSC[int](1024)

	b.ResetTimer()
	for i := range b.N {
		v := i
		q.Enqueue(&v)
		q.Dequeue()
	}
}

func BenchmarkMPMC_SingleOp(b *testing.B) {
	q := bq.NewMPMC[int](1024)

	b.ResetTimer()
	for i := range b.N {
		v := i
		q.Enqueue(&v)
		q.Dequeue()
	}
}

func BenchmarkMPMCIndirect_SingleOp(b *testing.B) {
	q := bq.NewMPMCIndirect(1024)

	b.ResetTimer()
	for i := range b.N {
		q.Enqueue(uintptr(i))
		q.Dequeue()
	}
}

func BenchmarkMPMCPtr_SingleOp(b *testing.B) {
	q := bq.NewMPMCPtr(1024)
	val := 42

	b.ResetTimer()
	for range b.N {
		q.Enqueue(unsafe.Pointer(&val))
		q.Dequeue()
	}
}

// =============================================================================
// Contended Benchmarks
// =============================================================================

func BenchmarkMPMC_Parallel(b *testing.B) {
	q := bq.NewMPMC[int](4096)

	b.RunParallel(func(pb *testing.PB) {
		v := 1
		for pb.Next() {
			if q.Enqueue(&v) != nil {
				q.Dequeue()
			}
		}
	})
}

func BenchmarkMPMCIndirect_Parallel(b *testing.B) {
	q := bq.NewMPMCIndirect(4096)

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if q.Enqueue(1) != nil {
				q.Dequeue()
			}
		}
	})
}

func BenchmarkMPMC_Empty(b *testing.B) {
	q := bq.NewMPMC[int](1024)
	v := 1
	q.Enqueue(&v)

	b.ResetTimer()
	for range b.N {
		q.Empty()
	}
}
