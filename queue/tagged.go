// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"unsafe"

	"code.hybscloud.com/atomix"
)

// taggedPtr packs a node address and a monotonically increasing version
// counter into one atomically-updatable word, giving Michael–Scott's
// dequeue its ABA protection: a stale pointer compared by address alone
// cannot be mistaken for the current one once the version has moved.
//
// Layout: bits [0:48) hold the address, bits [48:64) hold the version.
// 48 bits is enough to address any pointer a Go program actually produces
// on every platform the runtime supports today.
type taggedPtr struct {
	word atomix.Uint64
}

const (
	tpPtrMask     = 0x0000FFFFFFFFFFFF
	tpVersionMask = 0xFFFF000000000000
	tpVersionBits = 48
)

func packTagged(n *lfNode, version uint16) uint64 {
	return uint64(uintptr(unsafe.Pointer(n)))&tpPtrMask | uint64(version)<<tpVersionBits
}

func unpackTagged(w uint64) (*lfNode, uint16) {
	addr := uintptr(w & tpPtrMask)
	version := uint16(w >> tpVersionBits)
	return (*lfNode)(unsafe.Pointer(addr)), version
}

// load returns the current node pointer and version, acquire-ordered.
func (t *taggedPtr) load() (*lfNode, uint16) {
	return unpackTagged(t.word.LoadAcquire())
}

// loadRelaxed returns the current node pointer and version with no
// ordering guarantee, for speculative reads that are re-validated by a
// later CAS.
func (t *taggedPtr) loadRelaxed() (*lfNode, uint16) {
	return unpackTagged(t.word.LoadRelaxed())
}

// store release-writes n with the given version, unconditionally.
func (t *taggedPtr) store(n *lfNode, version uint16) {
	t.word.StoreRelease(packTagged(n, version))
}

// storeRelaxed writes n with no ordering guarantee; used only at
// construction time before the queue is published to other goroutines.
func (t *taggedPtr) storeRelaxed(n *lfNode, version uint16) {
	t.word.StoreRelaxed(packTagged(n, version))
}

// cas attempts to replace (oldPtr, oldVersion) with (newPtr, oldVersion+1),
// acquire-release ordered. Returns false if the word changed underneath.
func (t *taggedPtr) cas(oldPtr *lfNode, oldVersion uint16, newPtr *lfNode) bool {
	old := packTagged(oldPtr, oldVersion)
	newWord := packTagged(newPtr, oldVersion+1)
	return t.word.CompareAndSwapAcqRel(old, newWord)
}
