// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import "sync"

// CoarseLock wraps a Sequential queue behind one global mutex. Every
// operation, including Size, holds the lock for its entire duration.
type CoarseLock struct {
	mu sync.Mutex
	q  *Sequential
}

// NewCoarseLock creates an empty coarse-lock queue.
func NewCoarseLock() *CoarseLock {
	return &CoarseLock{q: NewSequential()}
}

// Worker returns a Handle; CoarseLock does not partition free-lists per
// worker, so any worker id is accepted and every Handle shares the same
// lock.
func (q *CoarseLock) Worker(id int) Handle {
	return coarseHandle{q}
}

// Size returns the number of elements currently queued.
func (q *CoarseLock) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.q.Size()
}

// Destroy releases the wrapped queue's chain and free-list.
func (q *CoarseLock) Destroy() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.q.Destroy()
}

func (q *CoarseLock) push(v int64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.q.push(v)
}

func (q *CoarseLock) pop() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.q.pop()
}

type coarseHandle struct{ q *CoarseLock }

func (h coarseHandle) Push(v int64) bool { return h.q.push(v) }
func (h coarseHandle) Pop() int64        { return h.q.pop() }
