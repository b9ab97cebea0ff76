// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/qbench/bench"
)

func TestNewBuildsEveryKind(t *testing.T) {
	for _, kind := range []bench.Kind{bench.KindGlobalLock, bench.KindFineLock, bench.KindLockFree} {
		q, err := bench.New(kind, 4)
		require.NoError(t, err)
		require.NotNil(t, q)
	}

	q, err := bench.New(bench.KindSequential, 1)
	require.NoError(t, err)
	require.NotNil(t, q)
}

func TestNewRejectsSequentialWithManyThreads(t *testing.T) {
	_, err := bench.New(bench.KindSequential, 4)
	var target *bench.SequentialThreadCountError
	require.ErrorAs(t, err, &target)
	require.Equal(t, 4, target.NumThreads)
}

func TestNewRejectsUnknownKind(t *testing.T) {
	_, err := bench.New(bench.Kind("nonsense"), 1)
	require.Error(t, err)
}
