// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// lfPad separates a node's hot, CAS-touched fields from its free-list
// link, which is only ever read or written by the single worker that owns
// the node while it sits on that worker's free-list.
type lfPad [64]byte

// lfNode is the link type for LockFree. next is a tagged pointer so
// concurrent CAS loops can detect the ABA hazard of a retired-and-reused
// node reappearing at the same address.
type lfNode struct {
	value int64
	next  taggedPtr
	_     lfPad
	freeNext *lfNode
}

// lfFreeList is an unsynchronized LIFO stack of retired lfNodes. It is
// safe without locking only because exactly one worker goroutine ever
// touches a given instance, via the Handle returned from Worker.
type lfFreeList struct {
	top *lfNode
}

func (f *lfFreeList) push(n *lfNode) {
	n.freeNext = f.top
	f.top = n
}

func (f *lfFreeList) pop() *lfNode {
	n := f.top
	if n == nil {
		return nil
	}
	f.top = n.freeNext
	return n
}

// LockFree is a Michael–Scott unbounded FIFO queue. Every node is kept
// alive for the life of the queue via nodeRegistry (see Destroy), since a
// node reachable only through a tagged pointer's packed address bits is
// invisible to the Go garbage collector.
type LockFree struct {
	head taggedPtr
	tail taggedPtr
	size atomix.Int64

	fls []lfFreeList // one per worker, indexed by worker id

	registryMu sync.Mutex
	registry   []*lfNode
}

// NewLockFree creates an empty lock-free queue with numWorkers per-worker
// free-lists.
func NewLockFree(numWorkers int) *LockFree {
	q := &LockFree{fls: make([]lfFreeList, numWorkers)}
	dummy := &lfNode{}
	q.registry = append(q.registry, dummy)
	q.head.storeRelaxed(dummy, 0)
	q.tail.storeRelaxed(dummy, 0)
	return q
}

// Worker binds a Handle to worker id's free-list. id must be in
// [0, numWorkers).
func (q *LockFree) Worker(id int) Handle {
	return lockFreeHandle{q: q, fl: &q.fls[id]}
}

// Size returns the approximate number of elements currently queued. It is
// advisory: it may be observed stale relative to a concurrent Push/Pop's
// linearization point.
func (q *LockFree) Size() int {
	return int(q.size.LoadRelaxed())
}

// Destroy drops the node registry, the head chain, and every per-worker
// free-list, letting the garbage collector reclaim the whole node graph
// once q itself becomes unreachable. q must not be used afterward.
func (q *LockFree) Destroy() {
	q.registryMu.Lock()
	q.registry = nil
	q.registryMu.Unlock()
	q.fls = nil
}

// alloc returns a node carrying value v, reusing one from fl if available
// and otherwise allocating a fresh node and pinning it in the registry.
func (q *LockFree) alloc(fl *lfFreeList, v int64) *lfNode {
	n := fl.pop()
	if n == nil {
		n = &lfNode{}
		q.registryMu.Lock()
		q.registry = append(q.registry, n)
		q.registryMu.Unlock()
	}
	n.value = v
	n.next.storeRelaxed(nil, 0)
	n.freeNext = nil
	return n
}

// push implements Michael–Scott enqueue: link the new node onto the
// current tail's next slot, helping a lagging tail catch up first if
// necessary, then swing tail onto the new node (a failed swing is fine —
// the next operation to observe it will help instead).
func (q *LockFree) push(fl *lfFreeList, v int64) bool {
	n := q.alloc(fl, v)
	sw := spin.Wait{}
	for {
		tail, tailVer := q.tail.load()
		next, nextVer := tail.next.load()
		// tail may have moved between the two loads above; start over
		// with a fresh backoff if so.
		if curTail, _ := q.tail.load(); curTail != tail {
			sw = spin.Wait{}
			continue
		}
		if next == nil {
			if tail.next.cas(next, nextVer, n) {
				q.tail.cas(tail, tailVer, n)
				q.size.AddAcqRel(1)
				return true
			}
		} else {
			q.tail.cas(tail, tailVer, next)
		}
		sw.Once()
	}
}

// pop implements Michael–Scott dequeue: re-validate head before trusting
// the value read from it (the ABA guard), help advance a lagging tail
// when head and tail coincide, and on success recycle the consumed dummy
// node onto the calling worker's own free-list only — never another
// worker's.
func (q *LockFree) pop(fl *lfFreeList) int64 {
	sw := spin.Wait{}
	for {
		head, headVer := q.head.load()
		tail, tailVer := q.tail.load()
		next, _ := head.next.load()

		// ABA guard: head may have moved between the two loads above.
		if curHead, _ := q.head.load(); curHead != head {
			sw.Once()
			continue
		}

		if head == tail {
			if next == nil {
				return Empty
			}
			q.tail.cas(tail, tailVer, next)
		} else {
			if next == nil {
				sw.Once()
				continue
			}
			value := next.value
			if q.head.cas(head, headVer, next) {
				q.size.AddAcqRel(-1)
				fl.push(head)
				return value
			}
		}
		sw.Once()
	}
}

type lockFreeHandle struct {
	q  *LockFree
	fl *lfFreeList
}

func (h lockFreeHandle) Push(v int64) bool { return h.q.push(h.fl, v) }
func (h lockFreeHandle) Pop() int64        { return h.q.pop(h.fl) }
