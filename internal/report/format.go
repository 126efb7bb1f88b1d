// Package report renders finalized result lists. It sits downstream of
// the measurement core; nothing here feeds back into a run.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"benchkit/internal/core"
)

// FormatText writes results in human-readable form.
func FormatText(w io.Writer, name string, results []core.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results collected")
		return
	}

	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Benchmark: %s\n", name)
	fmt.Fprintln(w, "==============================")
	for _, r := range results {
		s := r.Statistics
		fmt.Fprintf(w, "  %-24s (%s)  n=%d  min=%d  mean=%d  p50=%d  p90=%d  p99=%d  max=%d\n",
			r.Metric.String(), r.Units().String(), s.Count(),
			r.Scaled(s.Min()), r.Scaled(s.Mean()),
			r.Scaled(s.Percentile(50)), r.Scaled(s.Percentile(90)),
			r.Scaled(s.Percentile(99)), r.Scaled(s.Max()))
	}
}

type jsonResult struct {
	Metric           string `json:"metric"`
	Units            string `json:"units"`
	WarmupIterations int    `json:"warmupIterations"`
	ScalingFactor    int    `json:"scalingFactor"`
	Count            int    `json:"count"`
	Min              int64  `json:"min"`
	Max              int64  `json:"max"`
	Mean             int64  `json:"mean"`
	P50              int64  `json:"p50"`
	P90              int64  `json:"p90"`
	P99              int64  `json:"p99"`
	P100             int64  `json:"p100"`
}

// FormatJSON writes results as JSON. The output doubles as the baseline
// file format read back by the comparison layer.
func FormatJSON(w io.Writer, name string, results []core.Result) {
	output := struct {
		Name    string       `json:"name"`
		Results []jsonResult `json:"results"`
	}{
		Name:    name,
		Results: make([]jsonResult, 0, len(results)),
	}

	for _, r := range results {
		s := r.Statistics
		output.Results = append(output.Results, jsonResult{
			Metric:           r.Metric.String(),
			Units:            r.Units().String(),
			WarmupIterations: r.WarmupIterations,
			ScalingFactor:    r.ScalingFactor,
			Count:            s.Count(),
			Min:              r.Scaled(s.Min()),
			Max:              r.Scaled(s.Max()),
			Mean:             r.Scaled(s.Mean()),
			P50:              r.Scaled(s.Percentile(50)),
			P90:              r.Scaled(s.Percentile(90)),
			P99:              r.Scaled(s.Percentile(99)),
			P100:             r.Scaled(s.Percentile(100)),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(output) // stdout errors are unrecoverable
}
