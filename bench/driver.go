// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"math/rand"
	"sync"
	"time"

	"code.hybscloud.com/qbench/queue"
)

// Driver runs a Config's workload against a Queue in one of three modes:
// RunFast (throughput, wall-clock bounded, no verification), RunSafe
// (wall-clock bounded, verified after every repetition), and RunSets
// (a fixed number of batch iterations, no verification).
type Driver struct {
	Config Config
	Queue  queue.Queue
}

// generateBatch returns a shuffled permutation of [0, n), mirroring the
// original's generate_batch_of_elements: batches carry distinct values so
// a safe-mode Verify can detect a lost or duplicated element by comparing
// sums rather than multisets.
func generateBatch(n int, rng *rand.Rand) []int64 {
	batch := make([]int64, n)
	for i := range batch {
		batch[i] = int64(i)
	}
	rng.Shuffle(n, func(i, j int) { batch[i], batch[j] = batch[j], batch[i] })
	return batch
}

// barrier synchronizes numWorkers goroutines: every caller blocks in
// wait() until all numWorkers have called wait().
type barrier struct {
	wg sync.WaitGroup
}

func newBarrier(numWorkers int) *barrier {
	b := &barrier{}
	b.wg.Add(numWorkers)
	return b
}

func (b *barrier) wait() {
	b.wg.Done()
	b.wg.Wait()
}

// RunFast measures raw throughput: each worker generates its batch once
// per repetition, before the start barrier, Config.Prefill values are
// pushed into the queue before the first
// repetition's start barrier, and every repetition runs until MaxTimeS
// elapses with no correctness verification.
func (d *Driver) RunFast() ([]Counter, error) {
	if err := d.Config.Validate(); err != nil {
		return nil, err
	}

	if d.Config.Prefill > 0 {
		h := d.Queue.Worker(0)
		for i := 0; i < d.Config.Prefill; i++ {
			h.Push(int64(i))
		}
	}

	accumulated := make([]Counter, d.Config.NumThreads)
	for rep := 0; rep < d.Config.Repetitions; rep++ {
		mergeCounters(accumulated, d.runTimeBoundedRepetition(false))
	}
	return accumulated, nil
}

// RunSafe runs each repetition like RunFast but regenerates a fresh
// shuffled batch on every loop iteration and verifies correctness once
// the repetition's workers have all stopped.
func (d *Driver) RunSafe() ([]Counter, []VerifyResult, error) {
	if err := d.Config.Validate(); err != nil {
		return nil, nil, err
	}

	accumulated := make([]Counter, d.Config.NumThreads)
	var verifications []VerifyResult
	for rep := 0; rep < d.Config.Repetitions; rep++ {
		counters := d.runTimeBoundedRepetition(true)
		verifications = append(verifications, Verify(d.Queue, counters))
		mergeCounters(accumulated, counters)
	}
	return accumulated, verifications, nil
}

// RunSets runs exactly Config.Sets batch iterations per repetition
// instead of a wall-clock budget, with no per-iteration regeneration.
func (d *Driver) RunSets() ([]Counter, error) {
	if err := d.Config.Validate(); err != nil {
		return nil, err
	}

	accumulated := make([]Counter, d.Config.NumThreads)
	for rep := 0; rep < d.Config.Repetitions; rep++ {
		mergeCounters(accumulated, d.runSetsRepetition())
	}
	return accumulated, nil
}

// mergeCounters adds each field of next into dst in place, giving true
// cross-repetition accumulation: callers divide by repetitions exactly
// once, via Aggregate+Results.Average, rather than per repetition.
func mergeCounters(dst, next []Counter) {
	for i := range dst {
		dst[i].TotalOperations += next[i].TotalOperations
		dst[i].SucceededEnqueues += next[i].SucceededEnqueues
		dst[i].SucceededDequeues += next[i].SucceededDequeues
		dst[i].TotalEnqueues += next[i].TotalEnqueues
		dst[i].TotalDequeues += next[i].TotalDequeues
		dst[i].SumPushed += next[i].SumPushed
		dst[i].SumPopped += next[i].SumPopped
		dst[i].Elapsed += next[i].Elapsed
		dst[i].SetupOverhead += next[i].SetupOverhead
	}
}

// runTimeBoundedRepetition drives one repetition of RunFast (regenerate
// false) or RunSafe (regenerate true) for MaxTimeS seconds.
func (d *Driver) runTimeBoundedRepetition(regenerate bool) []Counter {
	n := d.Config.NumThreads
	counters := make([]Counter, n)
	start := newBarrier(n)
	var stop sync.WaitGroup
	stop.Add(n)

	deadline := time.Duration(d.Config.MaxTimeS) * time.Second

	for id := 0; id < n; id++ {
		go func(id int) {
			defer stop.Done()

			h := d.Queue.Worker(id)
			rng := rand.New(rand.NewSource(int64(d.Config.Seed) + int64(id) + 1))
			enqN := d.Config.BatchEnqueue[id]
			deqN := d.Config.BatchDequeue[id]

			var batch []int64
			var overhead time.Duration
			if !regenerate {
				t0 := time.Now()
				batch = generateBatch(enqN, rng)
				overhead = time.Since(t0)
			}

			start.wait()
			runStart := time.Now()

			var c Counter
			for time.Since(runStart) < deadline {
				if regenerate {
					t0 := time.Now()
					batch = generateBatch(enqN, rng)
					overhead += time.Since(t0)
				}
				for i := 0; i < enqN; i++ {
					v := batch[i]
					if h.Push(v) {
						c.SumPushed += v
						c.SucceededEnqueues++
					}
					c.TotalEnqueues++
				}
				for i := 0; i < deqN; i++ {
					v := h.Pop()
					if v != queue.Empty {
						c.SumPopped += v
						c.SucceededDequeues++
					}
					c.TotalDequeues++
				}
			}

			c.TotalOperations = c.TotalEnqueues + c.TotalDequeues
			c.Elapsed = time.Since(runStart)
			c.SetupOverhead = overhead
			counters[id] = c
		}(id)
	}

	stop.Wait()
	return counters
}

// runSetsRepetition drives one repetition of RunSets: exactly Config.Sets
// batch iterations, batch generated once up front per worker.
func (d *Driver) runSetsRepetition() []Counter {
	n := d.Config.NumThreads
	counters := make([]Counter, n)
	start := newBarrier(n)
	var stop sync.WaitGroup
	stop.Add(n)

	sets := d.Config.Sets

	for id := 0; id < n; id++ {
		go func(id int) {
			defer stop.Done()

			h := d.Queue.Worker(id)
			rng := rand.New(rand.NewSource(int64(d.Config.Seed) + int64(id) + 1))
			enqN := d.Config.BatchEnqueue[id]
			deqN := d.Config.BatchDequeue[id]
			batch := generateBatch(enqN, rng)

			start.wait()
			runStart := time.Now()

			var c Counter
			for i := 0; i < sets; i++ {
				for j := 0; j < enqN; j++ {
					v := batch[j]
					h.Push(v)
					c.SumPushed += v
				}
				c.TotalEnqueues += uint64(enqN)
				c.SucceededEnqueues += uint64(enqN)

				for j := 0; j < deqN; j++ {
					h.Pop()
				}
				c.TotalDequeues += uint64(deqN)
				c.SucceededDequeues += uint64(deqN)
			}

			c.TotalOperations = c.TotalEnqueues + c.TotalDequeues
			c.Elapsed = time.Since(runStart)
			counters[id] = c
		}(id)
	}

	stop.Wait()
	return counters
}
