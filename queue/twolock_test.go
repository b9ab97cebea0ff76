// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue_test

import (
	"testing"

	"code.hybscloud.com/qbench/queue"
)

// TestTwoLockLastElementEdgeCase exercises Dequeue's hard edge case: the
// popped node has no successor, so it takes the tail lock to re-examine
// before unlinking, and the queue must still be usable afterward.
func TestTwoLockLastElementEdgeCase(t *testing.T) {
	q := queue.NewTwoLock(1)
	h := q.Worker(0)

	h.Push(1)
	if got := h.Pop(); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
	if got := h.Pop(); got != queue.Empty {
		t.Fatalf("got %d, want Empty", got)
	}

	// Queue must still be usable after tail was reset to the dummy head.
	h.Push(2)
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
}

// TestTwoLockIndependentWorkerFreeLists has worker 0 retire a node onto
// its own free-list and then checks that worker 1, allocating from its
// own empty free-list, still round-trips its value.
func TestTwoLockIndependentWorkerFreeLists(t *testing.T) {
	q := queue.NewTwoLock(2)
	h0 := q.Worker(0)
	h1 := q.Worker(1)

	h0.Push(10)
	h0.Pop() // retires a node onto worker 0's free-list

	h1.Push(20)
	if got := h1.Pop(); got != 20 {
		t.Fatalf("got %d, want 20", got)
	}
}
