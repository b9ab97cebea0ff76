// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package report renders bench.Results as CSV or human-readable text.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"code.hybscloud.com/qbench/bench"
)

// CSVHeader is the column order every WriteCSV call uses, matching the
// original benchmark's print_csv layout.
var CSVHeader = []string{
	"name", "n_threads", "avg_time", "avg_timeout",
	"operations", "s_enq", "s_deq", "enq", "deq",
}

// WriteCSV appends one row for r to w. header selects whether the column
// header row is written first, mirroring print_csv's optional header.
func WriteCSV(w io.Writer, name string, numThreads int, r bench.Results, header bool) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if header {
		if err := cw.Write(CSVHeader); err != nil {
			return fmt.Errorf("report: write csv header: %w", err)
		}
	}

	row := []string{
		name,
		strconv.Itoa(numThreads),
		strconv.FormatInt(r.AvgTime.Nanoseconds(), 10),
		strconv.FormatInt(r.AvgTimeout.Nanoseconds(), 10),
		strconv.FormatUint(r.TotalOperations, 10),
		strconv.FormatUint(r.TotalSucceededEnq, 10),
		strconv.FormatUint(r.TotalSucceededDeq, 10),
		strconv.FormatUint(r.TotalEnqueues, 10),
		strconv.FormatUint(r.TotalDequeues, 10),
	}
	if err := cw.Write(row); err != nil {
		return fmt.Errorf("report: write csv row: %w", err)
	}
	return nil
}

// WriteText renders r as the multi-line human-readable summary, the Go
// analogue of print_results.
func WriteText(w io.Writer, r bench.Results) error {
	_, err := fmt.Fprintf(w,
		"Results:\n"+
			"  Average time: %s\n"+
			"  Total operations: %d\n"+
			"  Total succeeded enqueues: %d\n"+
			"  Total succeeded dequeues: %d\n"+
			"  Total enqueues: %d\n"+
			"  Total dequeues: %d\n",
		r.AvgTime, r.TotalOperations, r.TotalSucceededEnq, r.TotalSucceededDeq,
		r.TotalEnqueues, r.TotalDequeues,
	)
	if err != nil {
		return fmt.Errorf("report: write text: %w", err)
	}
	return nil
}
