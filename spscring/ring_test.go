package spscring

import (
	"sync"
	"testing"

	"dispatchfabric/message"
)

func TestNewPanicsOnBadCapacity(t *testing.T) {
	cases := []int{0, -1, 3, 100}
	for _, c := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("capacity %d: expected panic", c)
				}
			}()
			New[int](c)
		}()
	}
}

// TestEmptyDrain implements scenario S4: capacity 8, push 7, pop 7.
func TestEmptyDrain(t *testing.T) {
	r := New[int](8)

	for i := 0; i < 7; i++ {
		if !r.TryPush(i) {
			t.Fatalf("push %d: expected success", i)
		}
		if got := r.ApproxLen(); got != i+1 {
			t.Fatalf("after push %d: size = %d, want %d", i, got, i+1)
		}
	}
	if r.TryPush(99) {
		t.Fatal("8th push: expected failure (ring full)")
	}

	for i := 0; i < 7; i++ {
		v, ok := r.TryPop()
		if !ok {
			t.Fatalf("pop %d: expected success", i)
		}
		if v != i {
			t.Fatalf("pop %d: got %d, want %d", i, v, i)
		}
		if got := r.ApproxLen(); got != 7-i-1 {
			t.Fatalf("after pop %d: size = %d, want %d", i, got, 7-i-1)
		}
	}
	if _, ok := r.TryPop(); ok {
		t.Fatal("8th pop: expected failure (ring empty)")
	}
}

func TestFIFOOrder(t *testing.T) {
	r := New[int](16)
	for i := 0; i < 15; i++ {
		if !r.TryPush(i) {
			t.Fatalf("push %d failed", i)
		}
	}
	for i := 0; i < 15; i++ {
		v, ok := r.TryPop()
		if !ok || v != i {
			t.Fatalf("pop %d: got (%d,%v), want (%d,true)", i, v, ok, i)
		}
	}
}

func TestProducerConsumerEndpointsIsolated(t *testing.T) {
	r := New[int](4)
	p := r.Producer()
	c := r.Consumer()

	if !p.TryPush(1) {
		t.Fatal("producer endpoint push failed")
	}
	v, ok := c.TryPop()
	if !ok || v != 1 {
		t.Fatalf("consumer endpoint pop: got (%d,%v)", v, ok)
	}
}

// TestConcurrentSPSC drives one real producer goroutine and one real
// consumer goroutine and checks invariant 1 from the specification: popped
// items form a prefix of pushed items (FIFO) and no item is lost or
// duplicated across any interleaving.
func TestConcurrentSPSC(t *testing.T) {
	const n = 200_000
	r := New[int](1024)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			for !r.TryPush(i) {
			}
		}
	}()

	received := make([]int, 0, n)
	go func() {
		defer wg.Done()
		for len(received) < n {
			if v, ok := r.TryPop(); ok {
				received = append(received, v)
			}
		}
	}()

	wg.Wait()

	for i, v := range received {
		if v != i {
			t.Fatalf("out-of-order delivery at index %d: got %d, want %d", i, v, i)
		}
	}
}

func TestApproxLenNeverExceedsCapacityMinusOne(t *testing.T) {
	r := New[int](8)
	for i := 0; i < 100; i++ {
		r.TryPush(i)
		if got := r.ApproxLen(); got > r.Capacity()-1 {
			t.Fatalf("size %d exceeds capacity-1 (%d)", got, r.Capacity()-1)
		}
	}
}

// TestTryPushAllocationFree asserts invariant 5: no allocation occurs on
// the per-message path. The ring is preallocated once by New; TryPush
// thereafter only writes into existing backing storage and stores an
// index, so amortized allocations per call must be zero.
func TestTryPushAllocationFree(t *testing.T) {
	r := New[message.Message](1024)
	var msg message.Message

	allocs := testing.AllocsPerRun(1000, func() {
		if !r.TryPush(msg) {
			r.TryPop()
			r.TryPush(msg)
		}
	})
	if allocs != 0 {
		t.Fatalf("TryPush allocates %.2f times per call, want 0", allocs)
	}
}

// TestTryPopAllocationFree mirrors TestTryPushAllocationFree for the
// consumer side.
func TestTryPopAllocationFree(t *testing.T) {
	r := New[message.Message](1024)
	var msg message.Message
	for i := 0; i < 1024; i++ {
		r.TryPush(msg)
	}

	allocs := testing.AllocsPerRun(1000, func() {
		if _, ok := r.TryPop(); !ok {
			r.TryPush(msg)
		}
	})
	if allocs != 0 {
		t.Fatalf("TryPop allocates %.2f times per call, want 0", allocs)
	}
}
