// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

// Sequential is a single-threaded reference FIFO queue. It has no internal
// synchronization and must be driven from exactly one goroutine; Worker
// panics for any id other than 0.
type Sequential struct {
	head *node // dummy head; head.next is the first live element
	tail *node
	fl   freeList
	size int
}

// NewSequential creates an empty single-threaded queue.
func NewSequential() *Sequential {
	dummy := &node{}
	return &Sequential{head: dummy, tail: dummy}
}

// Worker returns a Handle for worker 0. Sequential is not partitioned by
// worker, so any other id panics: a sequential queue run with more than
// one thread is a configuration error, caught earlier by bench.New.
func (q *Sequential) Worker(id int) Handle {
	if id != 0 {
		panic("queue: Sequential.Worker called with id != 0")
	}
	return sequentialHandle{q}
}

// Size returns the number of elements currently queued.
func (q *Sequential) Size() int {
	return q.size
}

// Destroy drops the head chain and free-list, letting the garbage
// collector reclaim every node once q becomes unreachable.
func (q *Sequential) Destroy() {
	q.head = nil
	q.tail = nil
	q.fl = freeList{}
	q.size = 0
}

// push appends v and always succeeds.
func (q *Sequential) push(v int64) bool {
	n := q.fl.get(v)
	q.tail.next = n
	q.tail = n
	q.size++
	return true
}

// pop removes and returns the oldest element, or Empty if none remain. The
// dummy head is reused as the new dummy and the old head retired onto the
// free-list; tail resets to the dummy when the last live element is
// popped.
func (q *Sequential) pop() int64 {
	first := q.head.next
	if first == nil {
		return Empty
	}
	v := first.value
	old := q.head
	q.head = first
	if q.tail == first {
		q.tail = q.head
	}
	q.fl.push(old)
	q.size--
	return v
}

type sequentialHandle struct{ q *Sequential }

func (h sequentialHandle) Push(v int64) bool { return h.q.push(v) }
func (h sequentialHandle) Pop() int64        { return h.q.pop() }
