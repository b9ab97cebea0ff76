// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

// node is the plain, unsynchronized link type shared by Sequential and
// CoarseLock. TwoLock uses its own tlNode, whose next link is
// release/acquire-ordered, and LockFree uses its own cache-padded lfNode,
// since it is touched by concurrent CAS loops.
type node struct {
	value int64
	next  *node
}

// freeList is a LIFO stack of retired nodes with no synchronization of its
// own. Sequential is single-threaded, and CoarseLock relies on its single
// global lock to make this safe. TwoLock and LockFree keep their own
// per-worker free-list types (tlFreeList, lfFreeList).
type freeList struct {
	top *node
}

// push retires n onto the free-list for later reuse.
func (f *freeList) push(n *node) {
	n.next = f.top
	f.top = n
}

// pop returns a retired node for reuse, or nil if the free-list is empty.
func (f *freeList) pop() *node {
	n := f.top
	if n == nil {
		return nil
	}
	f.top = n.next
	return n
}

// get returns a node for value v, reusing a retired one if available.
func (f *freeList) get(v int64) *node {
	n := f.pop()
	if n == nil {
		n = &node{}
	}
	n.value = v
	n.next = nil
	return n
}
