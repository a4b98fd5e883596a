// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// This file contains examples that run queues concurrently. They trigger
// false positives with Go's race detector because atomix atomic operations
// appear as regular memory accesses to the detector. The examples are
// correct; they're excluded from race testing.

package bq_test

import (
	"fmt"
	"slices"
	"sync"

	"code.hybscloud.com/bq"
	"code.hybscloud.com/iox"
)

// ExampleNewMPMC demonstrates a worker-pool hand-off: several submitters,
// several workers, no locks.
func ExampleNewMPMC() {
	q := bq.NewMPMC[int](16)

	var prodWg sync.WaitGroup
	for p := range 3 {
		prodWg.Add(1)
		go func(id int) {
			defer prodWg.Done()
			backoff := iox.Backoff{}
			for i := range 4 {
				v := id*10 + i
				for q.Enqueue(&v) != nil {
					backoff.Wait()
				}
				backoff.Reset()
			}
		}(p)
	}
	prodWg.Wait()

	// Drain and sort for deterministic output; MPMC guarantees no loss and
	// no duplication, not a global cross-producer order.
	var got []int
	for {
		v, err := q.Dequeue()
		if err != nil {
			break
		}
		got = append(got, v)
	}
	slices.Sort(got)
	fmt.Println(got)

	// Output:
	// [0 1 2 3 10 11 12 13 20 21 22 23]
}

// ExampleNewSPSC demonstrates a two-stage pipeline.
func ExampleNewSPSC() {
	q := bq.NewSPSC[int](8)

	for i := 1; i <= 5; i++ {
		v := i * 10
		q.Enqueue(&v)
	}

	for range 5 {
		v, _ := q.Dequeue()
		fmt.Println(v)
	}

	// Output:
	// 10
	// 20
	// 30
	// 40
	// 50
}

// ExampleNew demonstrates the builder with constraint-driven variant
// selection and backpressure handling.
func ExampleNew() {
	q := bq.Build[string](bq.New(2).SingleConsumer())

	a, b, c := "alpha", "beta", "gamma"
	fmt.Println(q.Enqueue(&a) == nil)
	fmt.Println(q.Enqueue(&b) == nil)

	// Ring is full: the value stays with the caller.
	fmt.Println(bq.IsWouldBlock(q.Enqueue(&c)))

	v, _ := q.Dequeue()
	fmt.Println(v)

	// The freed slot is reusable on the next generation.
	fmt.Println(q.Enqueue(&c) == nil)

	// Output:
	// true
	// true
	// true
	// alpha
	// true
}
