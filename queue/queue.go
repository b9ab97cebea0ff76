// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package queue implements four FIFO queue variants over a single worker
// model: a single-threaded reference queue, a coarse-lock queue, a
// fine-grained two-lock queue, and a lock-free Michael–Scott queue with
// ABA-safe tagged pointers.
//
// Every variant stores int64 values and reserves Empty as a sentinel that
// callers must never push. Concurrent variants partition node recycling
// per worker: call Worker once per goroutine at spawn time and use the
// returned Handle for every subsequent operation from that goroutine.
package queue

import "math"

// Empty is returned by Pop when the queue has no element to return. It is
// a reserved sentinel, not a valid pushed value.
const Empty int64 = math.MinInt64

// Queue is implemented by every variant. Worker binds a goroutine to its
// per-worker free-list; Sequential and CoarseLock do not partition
// free-lists per worker, so their Worker is a thin wrapper: Sequential's
// panics for any id other than 0, and CoarseLock's accepts any id.
type Queue interface {
	// Worker returns a Handle bound to worker id. id must be in
	// [0, numWorkers) as given at construction time.
	Worker(id int) Handle

	// Size reports the approximate number of elements currently queued.
	// For LockFree this is advisory: it may be observed stale relative to
	// a concurrent Push/Pop's linearization point.
	Size() int

	// Destroy releases every node owned by the queue: its head chain and
	// every per-worker free-list. The queue must not be used afterward.
	Destroy()
}

// Handle is bound to exactly one worker and is not safe for concurrent use
// by more than one goroutine.
type Handle interface {
	// Push always succeeds for these variants; the bool return exists so
	// Handle composes with future bounded implementations.
	Push(v int64) bool

	// Pop returns Empty if the queue has no element to return.
	Pop() int64
}
