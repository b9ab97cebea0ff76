// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"sync"
	"unsafe"

	"code.hybscloud.com/atomix"
)

// tlNode is TwoLock's link type. next is accessed by Enqueue under the
// tail lock and by Dequeue under the head lock alone, so it is kept as a
// release/acquire-ordered word rather than a plain pointer: a plain
// pointer would let the two locks race on the same field with no
// synchronizing edge between them. freeNext, by contrast, is only ever
// touched by the single worker that owns the node while it sits on that
// worker's own free-list, so it stays a plain pointer.
type tlNode struct {
	value    int64
	next     tlPtr
	freeNext *tlNode
}

// tlPtr is a release/acquire-ordered *tlNode with no version tag: TwoLock
// never CASes it, so (unlike taggedPtr) it carries nothing to guard
// against ABA, only the ordering Enqueue and Dequeue need to hand a node
// from the tail lock's critical section to the head lock's.
type tlPtr struct {
	word atomix.Uint64
}

func (p *tlPtr) load() *tlNode {
	return (*tlNode)(unsafe.Pointer(uintptr(p.word.LoadAcquire())))
}

func (p *tlPtr) store(n *tlNode) {
	p.word.StoreRelease(uint64(uintptr(unsafe.Pointer(n))))
}

// tlFreeList is a LIFO stack of retired tlNodes, unsynchronized: every
// worker owns exactly one and never touches another's.
type tlFreeList struct {
	top *tlNode
}

func (f *tlFreeList) push(n *tlNode) {
	n.freeNext = f.top
	f.top = n
}

func (f *tlFreeList) get(v int64) *tlNode {
	n := f.top
	if n == nil {
		n = &tlNode{}
	} else {
		f.top = n.freeNext
	}
	n.value = v
	n.next.store(nil)
	n.freeNext = nil
	return n
}

// TwoLock is a fine-grained FIFO queue with independent head and tail
// locks. Enqueue only ever takes the tail lock. Dequeue takes the head
// lock alone in the common case, and additionally the tail lock — always
// acquired head-before-tail — only to re-examine the hard edge case: the
// node it is about to unlink has no successor yet, so it might be the
// last live element, and resetting tail correctly requires observing
// head and tail consistently with a concurrent Enqueue.
type TwoLock struct {
	headLock sync.Mutex
	tailLock sync.Mutex
	head     *tlNode // dummy
	tail     *tlNode
	size     atomix.Int64

	fls []tlFreeList // one per worker, indexed by worker id
}

// NewTwoLock creates an empty two-lock queue with numWorkers per-worker
// free-lists. numWorkers must match the number of distinct ids passed to
// Worker.
func NewTwoLock(numWorkers int) *TwoLock {
	dummy := &tlNode{}
	return &TwoLock{
		head: dummy,
		tail: dummy,
		fls:  make([]tlFreeList, numWorkers),
	}
}

// Worker binds a Handle to worker id's free-list. id must be in
// [0, numWorkers).
func (q *TwoLock) Worker(id int) Handle {
	return twoLockHandle{q: q, fl: &q.fls[id]}
}

// Size returns the number of elements currently queued.
func (q *TwoLock) Size() int {
	return int(q.size.LoadAcquire())
}

// Destroy releases the chain and every per-worker free-list.
func (q *TwoLock) Destroy() {
	q.headLock.Lock()
	q.tailLock.Lock()
	q.head = nil
	q.tail = nil
	q.fls = nil
	q.size.StoreRelaxed(0)
	q.tailLock.Unlock()
	q.headLock.Unlock()
}

func (q *TwoLock) push(fl *tlFreeList, v int64) bool {
	n := fl.get(v)
	q.tailLock.Lock()
	q.tail.next.store(n)
	q.tail = n
	q.tailLock.Unlock()
	q.size.AddAcqRel(1)
	return true
}

func (q *TwoLock) pop(fl *tlFreeList) int64 {
	q.headLock.Lock()
	first := q.head.next.load()
	if first == nil {
		q.headLock.Unlock()
		return Empty
	}
	value := first.value

	if successor := first.next.load(); successor == nil {
		// first may be the last live element. Re-examine under both
		// locks: first.next is read through the same release/acquire
		// word Enqueue writes under the tail lock, so this is never
		// stale relative to a concurrent Enqueue's decision of what
		// it just linked onto.
		q.tailLock.Lock()
		if first.next.load() == nil {
			q.tail = first
		}
		q.tailLock.Unlock()
	}

	old := q.head
	q.head = first
	q.headLock.Unlock()

	fl.push(old)
	q.size.AddAcqRel(-1)
	return value
}

type twoLockHandle struct {
	q  *TwoLock
	fl *tlFreeList
}

func (h twoLockHandle) Push(v int64) bool { return h.q.push(h.fl, v) }
func (h twoLockHandle) Pop() int64        { return h.q.pop(h.fl) }
