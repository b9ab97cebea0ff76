// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"code.hybscloud.com/qbench/queue"
)

// =============================================================================
// Universal invariants, exercised across every variant
// =============================================================================

// variants returns a builder of a fresh single-worker queue for each of
// the four kinds.
func variants() map[string]func() queue.Queue {
	return map[string]func() queue.Queue{
		"sequential": func() queue.Queue { return queue.NewSequential() },
		"coarse":     func() queue.Queue { return queue.NewCoarseLock() },
		"twolock":    func() queue.Queue { return queue.NewTwoLock(1) },
		"lockfree":   func() queue.Queue { return queue.NewLockFree(1) },
	}
}

func TestFIFOOrder(t *testing.T) {
	for name, build := range variants() {
		t.Run(name, func(t *testing.T) {
			q := build()
			h := q.Worker(0)
			for i := int64(0); i < 100; i++ {
				if !h.Push(i) {
					t.Fatalf("Push(%d): want true", i)
				}
			}
			for i := int64(0); i < 100; i++ {
				got := h.Pop()
				if got != i {
					t.Fatalf("Pop(): got %d, want %d", got, i)
				}
			}
			if got := h.Pop(); got != queue.Empty {
				t.Fatalf("Pop on empty: got %d, want Empty", got)
			}
		})
	}
}

func TestEmptyPopReturnsSentinel(t *testing.T) {
	for name, build := range variants() {
		t.Run(name, func(t *testing.T) {
			q := build()
			h := q.Worker(0)
			if got := h.Pop(); got != queue.Empty {
				t.Fatalf("Pop on fresh queue: got %d, want Empty", got)
			}
		})
	}
}

func TestPushThenSizeTracksPops(t *testing.T) {
	for name, build := range variants() {
		t.Run(name, func(t *testing.T) {
			q := build()
			h := q.Worker(0)
			for i := int64(0); i < 10; i++ {
				h.Push(i)
			}
			if q.Size() != 10 {
				t.Fatalf("Size after 10 pushes: got %d, want 10", q.Size())
			}
			for i := 0; i < 10; i++ {
				h.Pop()
			}
			if q.Size() != 0 {
				t.Fatalf("Size after draining: got %d, want 0", q.Size())
			}
		})
	}
}

// TestRoundTripIdempotence pushes and pops a single value repeatedly: the
// queue must return to the same externally observable state (empty) each
// time, with no leaked or duplicated elements.
func TestRoundTripIdempotence(t *testing.T) {
	for name, build := range variants() {
		t.Run(name, func(t *testing.T) {
			q := build()
			h := q.Worker(0)
			for i := 0; i < 1000; i++ {
				h.Push(int64(i))
				if got := h.Pop(); got != int64(i) {
					t.Fatalf("round trip %d: got %d", i, got)
				}
				if got := h.Pop(); got != queue.Empty {
					t.Fatalf("round trip %d: queue not empty after drain, got %d", i, got)
				}
			}
		})
	}
}

// TestDestroyThenUnreachable confirms Destroy does not panic and leaves the
// queue in a state safe to drop.
func TestDestroyThenUnreachable(t *testing.T) {
	for name, build := range variants() {
		t.Run(name, func(t *testing.T) {
			q := build()
			h := q.Worker(0)
			h.Push(1)
			h.Push(2)
			q.Destroy()
		})
	}
}

// =============================================================================
// Boundary scenarios (spec.md §8)
// =============================================================================

func TestSingleElementPushPop(t *testing.T) {
	for name, build := range variants() {
		t.Run(name, func(t *testing.T) {
			q := build()
			h := q.Worker(0)
			h.Push(42)
			if got := h.Pop(); got != 42 {
				t.Fatalf("got %d, want 42", got)
			}
			if got := h.Pop(); got != queue.Empty {
				t.Fatalf("second pop: got %d, want Empty", got)
			}
		})
	}
}

func TestInterleavedPushPop(t *testing.T) {
	for name, build := range variants() {
		t.Run(name, func(t *testing.T) {
			q := build()
			h := q.Worker(0)
			h.Push(1)
			h.Push(2)
			if got := h.Pop(); got != 1 {
				t.Fatalf("got %d, want 1", got)
			}
			h.Push(3)
			if got := h.Pop(); got != 2 {
				t.Fatalf("got %d, want 2", got)
			}
			if got := h.Pop(); got != 3 {
				t.Fatalf("got %d, want 3", got)
			}
			if got := h.Pop(); got != queue.Empty {
				t.Fatalf("got %d, want Empty", got)
			}
		})
	}
}

func TestEmptyThenRefill(t *testing.T) {
	for name, build := range variants() {
		t.Run(name, func(t *testing.T) {
			q := build()
			h := q.Worker(0)
			h.Push(1)
			h.Pop()
			if got := h.Pop(); got != queue.Empty {
				t.Fatalf("got %d, want Empty", got)
			}
			h.Push(2)
			if got := h.Pop(); got != 2 {
				t.Fatalf("after refill: got %d, want 2", got)
			}
		})
	}
}

// TestNegativeAndZeroValues confirms values other than Empty itself pass
// through unmodified, including zero and negative values.
func TestNegativeAndZeroValues(t *testing.T) {
	for name, build := range variants() {
		t.Run(name, func(t *testing.T) {
			q := build()
			h := q.Worker(0)
			values := []int64{0, -1, -1000000, 1000000}
			for _, v := range values {
				h.Push(v)
			}
			for _, want := range values {
				if got := h.Pop(); got != want {
					t.Fatalf("got %d, want %d", got, want)
				}
			}
		})
	}
}

// TestManyWorkersDrainFreeLists exercises the per-worker handles of the
// concurrent variants: every worker pushes concurrently through its own
// Handle, then worker 0 alone drains the queue (recycling every node onto
// its own free-list), and the drained count must match what was pushed.
func TestManyWorkersDrainFreeLists(t *testing.T) {
	const numWorkers = 8
	const perWorker = 2000

	concurrent := map[string]func() queue.Queue{
		"twolock":  func() queue.Queue { return queue.NewTwoLock(numWorkers) },
		"lockfree": func() queue.Queue { return queue.NewLockFree(numWorkers) },
	}

	for name, build := range concurrent {
		t.Run(name, func(t *testing.T) {
			q := build()
			var wg sync.WaitGroup
			for w := 0; w < numWorkers; w++ {
				wg.Add(1)
				go func(id int) {
					defer wg.Done()
					h := q.Worker(id)
					for i := 0; i < perWorker; i++ {
						h.Push(int64(id*perWorker + i))
					}
				}(w)
			}
			wg.Wait()

			got := 0
			h := q.Worker(0)
			for {
				v := h.Pop()
				if v == queue.Empty {
					break
				}
				got++
			}
			if got != numWorkers*perWorker {
				t.Fatalf("drained %d elements, want %d", got, numWorkers*perWorker)
			}
		})
	}
}

// TestConcurrentPushPopPreservesCount is the per-variant property for the
// concurrent queues: under concurrent Push/Pop from many goroutines, no
// element is lost or duplicated — every pushed value is popped exactly
// once, counted rather than order-checked since FIFO order across workers
// is not itself a cross-worker guarantee.
func TestConcurrentPushPopPreservesCount(t *testing.T) {
	const numWorkers = 4
	const perWorker = 5000

	concurrent := map[string]func() queue.Queue{
		"twolock":  func() queue.Queue { return queue.NewTwoLock(numWorkers) },
		"lockfree": func() queue.Queue { return queue.NewLockFree(numWorkers) },
	}

	for name, build := range concurrent {
		t.Run(name, func(t *testing.T) {
			if name == "lockfree" && queue.RaceEnabled {
				t.Skip("lock-free CAS ordering is not modeled by the race detector")
			}
			q := build()
			var popped atomic.Int64
			var wg sync.WaitGroup

			for w := 0; w < numWorkers; w++ {
				wg.Add(1)
				go func(id int) {
					defer wg.Done()
					h := q.Worker(id)
					for i := 0; i < perWorker; i++ {
						h.Push(1)
					}
				}(w)
			}
			wg.Wait()

			for w := 0; w < numWorkers; w++ {
				wg.Add(1)
				go func(id int) {
					defer wg.Done()
					h := q.Worker(id)
					for {
						v := h.Pop()
						if v == queue.Empty {
							return
						}
						popped.Add(v) // values are all 1
					}
				}(w)
			}
			wg.Wait()

			if got := popped.Load(); int(got) != numWorkers*perWorker {
				t.Fatalf("popped total %d, want %d", got, numWorkers*perWorker)
			}
		})
	}
}
