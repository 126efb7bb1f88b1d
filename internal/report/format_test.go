package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"benchkit/internal/core"
	"benchkit/internal/stats"
)

func sampleResults() []core.Result {
	wc := stats.New(stats.UnitsMicroseconds, stats.PrefersSmaller)
	for _, v := range []int64{1_000_000, 2_000_000, 3_000_000} {
		wc.Add(v)
	}
	tp := stats.New(stats.UnitsCount, stats.PrefersLarger)
	tp.Add(500)

	return []core.Result{
		{Metric: core.WallClock, TimeUnits: stats.UnitsMicroseconds, ScalingFactor: 1, Statistics: wc},
		{Metric: core.Throughput, TimeUnits: stats.UnitsMicroseconds, ScalingFactor: 1, Statistics: tp},
	}
}

func TestFormatText_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatText(&buf, "empty", nil)

	if !strings.Contains(buf.String(), "No results collected") {
		t.Errorf("expected empty notice, got %q", buf.String())
	}
}

func TestFormatText_ContainsMetrics(t *testing.T) {
	var buf bytes.Buffer
	FormatText(&buf, "demo", sampleResults())
	out := buf.String()

	if !strings.Contains(out, "Benchmark: demo") {
		t.Error("expected benchmark name in output")
	}
	if !strings.Contains(out, "wallClock") || !strings.Contains(out, "throughput") {
		t.Errorf("expected metric names in output, got %q", out)
	}
	if !strings.Contains(out, "n=3") {
		t.Errorf("expected sample count in output, got %q", out)
	}
}

func TestFormatJSON_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	FormatJSON(&buf, "demo", sampleResults())

	var decoded struct {
		Name    string `json:"name"`
		Results []struct {
			Metric string `json:"metric"`
			Units  string `json:"units"`
			Count  int    `json:"count"`
			Min    int64  `json:"min"`
			P90    int64  `json:"p90"`
		} `json:"results"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}

	if decoded.Name != "demo" {
		t.Errorf("expected name demo, got %q", decoded.Name)
	}
	if len(decoded.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(decoded.Results))
	}

	wc := decoded.Results[0]
	if wc.Metric != "wallClock" {
		t.Errorf("expected wallClock first, got %q", wc.Metric)
	}
	// Raw nanosecond samples divided down to microseconds.
	if wc.Min != 1000 {
		t.Errorf("expected min 1000μs, got %d", wc.Min)
	}
	if wc.Count != 3 {
		t.Errorf("expected 3 samples, got %d", wc.Count)
	}
}
