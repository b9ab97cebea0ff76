// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"fmt"

	"code.hybscloud.com/qbench/queue"
)

// Kind names one of the queue variants the driver can exercise.
type Kind string

const (
	KindSequential Kind = "sequential"
	KindGlobalLock Kind = "global_lock"
	KindFineLock   Kind = "fine_lock"
	KindLockFree   Kind = "lock_free"
)

// SequentialThreadCountError reports a request to run the single-threaded
// Sequential queue with more than one worker — a violated precondition,
// rejected before any run begins rather than left to panic mid-run.
type SequentialThreadCountError struct {
	NumThreads int
}

func (e *SequentialThreadCountError) Error() string {
	return fmt.Sprintf("bench: sequential queue requires exactly 1 thread, got %d", e.NumThreads)
}

// New constructs the queue variant named by kind, sized for numWorkers
// concurrent callers.
func New(kind Kind, numWorkers int) (queue.Queue, error) {
	switch kind {
	case KindSequential:
		if numWorkers != 1 {
			return nil, &SequentialThreadCountError{NumThreads: numWorkers}
		}
		return queue.NewSequential(), nil
	case KindGlobalLock:
		return queue.NewCoarseLock(), nil
	case KindFineLock:
		return queue.NewTwoLock(numWorkers), nil
	case KindLockFree:
		return queue.NewLockFree(numWorkers), nil
	default:
		return nil, fmt.Errorf("bench: unknown queue kind %q", kind)
	}
}
