// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bench drives the concurrent-queue workload: configuration,
// per-worker counters, queue-kind selection, the barriered goroutine
// driver, and the safe-mode correctness verifier.
package bench

import "fmt"

// Config describes one benchmark run: how many worker goroutines to
// spawn, how many repetitions to average over, a stop condition
// (wall-clock budget or a fixed number of sets), and each worker's
// enqueue/dequeue batch sizes.
type Config struct {
	NumThreads   int
	Repetitions  int
	MaxTimeS     int
	Sets         int
	Seed         int32
	BatchEnqueue []int // len == NumThreads
	BatchDequeue []int // len == NumThreads
	Prefill      int
}

// ConfigError reports a Config field that failed Validate. It is a
// configuration error per the error taxonomy: returned before any run
// begins, never a panic.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("bench: invalid config field %s: %s", e.Field, e.Reason)
}

// Validate checks every field invariant a Config must satisfy before a
// Driver can use it.
func (c Config) Validate() error {
	if c.NumThreads <= 0 {
		return &ConfigError{"NumThreads", "must be > 0"}
	}
	if c.Repetitions < 1 || c.Repetitions > 100 {
		return &ConfigError{"Repetitions", "must be in [1, 100]"}
	}
	if c.MaxTimeS < 0 || c.MaxTimeS > 100 {
		return &ConfigError{"MaxTimeS", "must be in [0, 100]"}
	}
	if (c.MaxTimeS == 0) == (c.Sets == 0) {
		return &ConfigError{"MaxTimeS/Sets", "exactly one of MaxTimeS and Sets must be zero"}
	}
	if len(c.BatchEnqueue) != c.NumThreads {
		return &ConfigError{"BatchEnqueue", "length must equal NumThreads"}
	}
	if len(c.BatchDequeue) != c.NumThreads {
		return &ConfigError{"BatchDequeue", "length must equal NumThreads"}
	}
	if c.Prefill < 0 {
		return &ConfigError{"Prefill", "must be >= 0"}
	}
	return nil
}

// Recipe names a way of distributing producer/consumer batch sizes across
// worker threads.
type Recipe int

const (
	// Balanced gives every worker the same enqueue and dequeue batch size.
	Balanced Recipe = iota
	// UpperHalf makes the lower half of workers pure producers and the
	// upper half pure consumers.
	UpperHalf
	// OneToAll makes worker 0 the sole producer and every other worker a
	// consumer.
	OneToAll
	// EvenOdd alternates producer/consumer role by worker parity.
	EvenOdd
)

// BuildConfig expands a Recipe into a fully populated Config, the Go
// analogue of the original ConfigFactory.
func BuildConfig(recipe Recipe, batchSize, numThreads, repetitions, maxTimeS, sets int, seed int32, prefill int) Config {
	enq := make([]int, numThreads)
	deq := make([]int, numThreads)

	switch recipe {
	case Balanced:
		for i := range enq {
			enq[i] = batchSize
			deq[i] = batchSize
		}
	case UpperHalf:
		half := numThreads / 2
		for i := 0; i < half; i++ {
			enq[i] = batchSize
		}
		for i := half; i < numThreads; i++ {
			deq[i] = batchSize
		}
		if numThreads%2 == 1 && half > 0 {
			// Odd worker count: the extra worker falls in the upper
			// (consumer) half. The last producer slot is set to a full
			// batch again; the loop above has already given it one.
			enq[half-1] = batchSize
		}
	case OneToAll:
		enq[0] = batchSize
		for i := 1; i < numThreads; i++ {
			deq[i] = batchSize
		}
	case EvenOdd:
		for i := range enq {
			if i%2 == 0 {
				enq[i] = batchSize
			} else {
				deq[i] = batchSize
			}
		}
	}

	return Config{
		NumThreads:   numThreads,
		Repetitions:  repetitions,
		MaxTimeS:     maxTimeS,
		Sets:         sets,
		Seed:         seed,
		BatchEnqueue: enq,
		BatchDequeue: deq,
		Prefill:      prefill,
	}
}
