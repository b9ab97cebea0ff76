// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package report_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/qbench/bench"
	"code.hybscloud.com/qbench/internal/report"
)

func sampleResults() bench.Results {
	return bench.Results{
		AvgTime:           250 * time.Millisecond,
		AvgTimeout:        5 * time.Millisecond,
		TotalOperations:   1000,
		TotalSucceededEnq: 500,
		TotalSucceededDeq: 480,
		TotalEnqueues:     500,
		TotalDequeues:     500,
	}
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, "lock_free", 4, sampleResults(), true))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "name,n_threads,avg_time,avg_timeout,operations,s_enq,s_deq,enq,deq", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "lock_free,4,"))
}

func TestWriteCSVWithoutHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, "fine_lock", 2, sampleResults(), false))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
}

func TestWriteTextIncludesTotals(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, sampleResults()))
	require.Contains(t, buf.String(), "Total operations: 1000")
	require.Contains(t, buf.String(), "Total succeeded enqueues: 500")
}
