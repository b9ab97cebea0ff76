// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"fmt"

	"code.hybscloud.com/qbench/queue"
)

// CorrectnessError reports a failed safe-mode verification for one
// repetition. RunSafe does not return or build one: a failed verification
// shows up as the repetition's VerifyResult with OK false, and the run
// continues to its remaining repetitions.
type CorrectnessError struct {
	Repetition        int
	Pushed, Popped, Residual int64
}

func (e *CorrectnessError) Error() string {
	return fmt.Sprintf("bench: repetition %d correctness check failed: pushed=%d popped=%d residual=%d",
		e.Repetition, e.Pushed, e.Popped, e.Residual)
}

// VerifyResult is the outcome of draining and checking one repetition.
type VerifyResult struct {
	Pushed, Popped, Residual int64
	OK                       bool
}

// Verify drains q single-threaded through Worker(0), summing every
// residual value, and checks that every pushed value is accounted for as
// either popped during the run or residual afterward.
func Verify(q queue.Queue, counters []Counter) VerifyResult {
	var pushed, popped int64
	for _, c := range counters {
		pushed += c.SumPushed
		popped += c.SumPopped
	}

	h := q.Worker(0)
	var residual int64
	for {
		v := h.Pop()
		if v == queue.Empty {
			break
		}
		residual += v
	}

	return VerifyResult{
		Pushed:   pushed,
		Popped:   popped,
		Residual: residual,
		OK:       pushed == popped+residual,
	}
}
