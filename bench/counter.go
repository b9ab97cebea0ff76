// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import "time"

// Counter is one worker's tally for a single repetition.
type Counter struct {
	TotalOperations   uint64
	SucceededEnqueues uint64
	SucceededDequeues uint64
	TotalEnqueues     uint64
	TotalDequeues     uint64
	SumPushed         int64
	SumPopped         int64
	Elapsed           time.Duration
	SetupOverhead     time.Duration
}

// Results is the run-level tally: per-worker Counters summed across
// workers, and ultimately across repetitions via Average.
type Results struct {
	AvgTime           time.Duration
	AvgTimeout        time.Duration
	TotalOperations   uint64
	TotalSucceededEnq uint64
	TotalSucceededDeq uint64
	TotalEnqueues     uint64
	TotalDequeues     uint64
}

// Aggregate sums a repetition's per-worker Counters into one Results.
// AvgTime and AvgTimeout are the mean Elapsed/SetupOverhead across
// workers for this repetition.
func Aggregate(counters []Counter) Results {
	var r Results
	if len(counters) == 0 {
		return r
	}
	var totalElapsed, totalOverhead time.Duration
	for _, c := range counters {
		r.TotalOperations += c.TotalOperations
		r.TotalSucceededEnq += c.SucceededEnqueues
		r.TotalSucceededDeq += c.SucceededDequeues
		r.TotalEnqueues += c.TotalEnqueues
		r.TotalDequeues += c.TotalDequeues
		totalElapsed += c.Elapsed
		totalOverhead += c.SetupOverhead
	}
	r.AvgTime = totalElapsed / time.Duration(len(counters))
	r.AvgTimeout = totalOverhead / time.Duration(len(counters))
	return r
}

// Average divides every accumulated total by repetitions. Driver sums
// every repetition's Counters in place (mergeCounters) before a caller
// ever calls Aggregate, so Average is meant to be called exactly once,
// on the cross-repetition sum, never divided repetition by repetition.
func (r *Results) Average(repetitions int) {
	if repetitions <= 0 {
		return
	}
	n := uint64(repetitions)
	r.AvgTime /= time.Duration(repetitions)
	r.AvgTimeout /= time.Duration(repetitions)
	r.TotalOperations /= n
	r.TotalSucceededEnq /= n
	r.TotalSucceededDeq /= n
	r.TotalEnqueues /= n
	r.TotalDequeues /= n
}

