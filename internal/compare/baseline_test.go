package compare

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"benchkit/internal/core"
	"benchkit/internal/report"
)

func writeBaseline(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "baseline.json")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing baseline: %v", err)
	}
	return path
}

func TestLoadBaseline_FromReportOutput(t *testing.T) {
	results := []core.Result{
		resultWithSamples(core.WallClock, nil, 100, 200, 300),
		resultWithSamples(core.Throughput, nil, 5000, 6000),
	}

	var buf bytes.Buffer
	report.FormatJSON(&buf, "bench", results)
	path := writeBaseline(t, buf.Bytes())

	base, err := LoadBaseline(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(base) != 2 {
		t.Fatalf("expected 2 baseline entries, got %d", len(base))
	}
	if base["wallClock"] != 200 {
		t.Errorf("expected wallClock p90 of 200, got %d", base["wallClock"])
	}
}

func TestLoadBaseline_InvalidJSON(t *testing.T) {
	path := writeBaseline(t, []byte("{not json"))
	if _, err := LoadBaseline(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadBaseline_NoResults(t *testing.T) {
	path := writeBaseline(t, []byte(`{"name":"x","results":[]}`))
	if _, err := LoadBaseline(path); err == nil {
		t.Error("expected error for baseline without results")
	}
}

func TestCompareBaseline_WithinTolerance(t *testing.T) {
	current := []core.Result{resultWithSamples(core.WallClock, nil, 100, 104)}
	base := Baseline{"wallClock": 100}

	checks := CompareBaseline(current, base, 5)
	if !checks.Passed {
		t.Errorf("expected pass within 5%% tolerance, got %+v", checks.Results)
	}
}

func TestCompareBaseline_Regression(t *testing.T) {
	current := []core.Result{resultWithSamples(core.WallClock, nil, 150, 150)}
	base := Baseline{"wallClock": 100}

	checks := CompareBaseline(current, base, 5)
	if checks.Passed {
		t.Error("expected regression past tolerance to fail")
	}
}

func TestCompareBaseline_ThroughputDirection(t *testing.T) {
	// For prefers-larger metrics a drop is the regression.
	current := []core.Result{resultWithSamples(core.Throughput, nil, 500, 500)}

	if !CompareBaseline(current, Baseline{"throughput": 510}, 5).Passed {
		t.Error("expected small throughput drop within tolerance to pass")
	}
	if CompareBaseline(current, Baseline{"throughput": 1000}, 5).Passed {
		t.Error("expected large throughput drop to fail")
	}
}

func TestCompareBaseline_MissingMetricSkipped(t *testing.T) {
	current := []core.Result{resultWithSamples(core.WallClock, nil, 100)}
	checks := CompareBaseline(current, Baseline{"cpuTotal": 50}, 5)
	if !checks.Passed || len(checks.Results) != 0 {
		t.Errorf("expected metric absent from baseline to be skipped, got %+v", checks)
	}
}
