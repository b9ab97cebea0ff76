// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/qbench/bench"
	"code.hybscloud.com/qbench/queue"
)

func TestRunSetsProducesExpectedOperationCounts(t *testing.T) {
	q := queue.NewLockFree(2)
	cfg := bench.BuildConfig(bench.Balanced, 50, 2, 1, 0, 20, 7, 0)
	d := &bench.Driver{Config: cfg, Queue: q}

	counters, err := d.RunSets()
	require.NoError(t, err)
	require.Len(t, counters, 2)
	for _, c := range counters {
		require.EqualValues(t, 50*20, c.TotalEnqueues)
		require.EqualValues(t, 50*20, c.TotalDequeues)
		require.EqualValues(t, 50*20, c.SucceededEnqueues)
	}
}

func TestRunSafeVerifiesEachRepetition(t *testing.T) {
	q := queue.NewCoarseLock()
	cfg := bench.BuildConfig(bench.Balanced, 5, 1, 2, 1, 0, 3, 0)
	d := &bench.Driver{Config: cfg, Queue: q}

	counters, verifications, err := d.RunSafe()
	require.NoError(t, err)
	require.Len(t, counters, 1)
	require.Len(t, verifications, 2)
	for _, v := range verifications {
		require.True(t, v.OK, "pushed=%d popped=%d residual=%d", v.Pushed, v.Popped, v.Residual)
	}
}

func TestRunFastPrefillsBeforeFirstBarrier(t *testing.T) {
	q := queue.NewTwoLock(1)
	cfg := bench.BuildConfig(bench.Balanced, 0, 1, 1, 1, 0, 1, 10)
	d := &bench.Driver{Config: cfg, Queue: q}

	_, err := d.RunFast()
	require.NoError(t, err)
	require.Equal(t, 10, q.Size())
}

func TestDriverRejectsInvalidConfig(t *testing.T) {
	q := queue.NewCoarseLock()
	d := &bench.Driver{Config: bench.Config{}, Queue: q}

	_, err := d.RunSets()
	require.Error(t, err)
}
