// Command benchdemo runs a demonstration workload through the
// measurement engine and prints the result list.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"benchkit"
	"benchkit/internal/compare"
	"benchkit/internal/config"
	"benchkit/internal/report"
)

const (
	ExitSuccess         = 0
	ExitThresholdFailed = 1
	ExitError           = 2
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	output := flag.String("output", "text", "output format: text, json")
	baseline := flag.String("baseline", "", "path to baseline JSON report to compare against")
	tolerance := flag.Float64("tolerance", 5.0, "baseline comparison tolerance in percent")
	flag.Parse()

	if *output != "text" && *output != "json" {
		fmt.Fprintf(os.Stderr, "error: --output must be 'text' or 'json', got %q\n", *output)
		os.Exit(ExitError)
	}

	cfg := benchkit.DefaultConfiguration()
	if *configPath != "" {
		rc, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(ExitError)
		}
		cfg, err = rc.Configuration()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(ExitError)
		}
	}

	b := &benchkit.Benchmark{
		Name:   "sortInts",
		Target: "sort.Ints",
		Config: cfg,
		RunFn: func(b *benchkit.Benchmark) {
			data := make([]int, 1000)
			for i := range data {
				data[i] = (i*7919 + b.CurrentIteration) % 1000
			}
			sort.Ints(data)
		},
	}

	results, err := benchkit.Run(b)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitError)
	}
	if len(results) == 0 {
		fmt.Fprintf(os.Stderr, "benchmark failed: %s\n", b.FailureReason)
		os.Exit(ExitError)
	}

	if *output == "json" {
		report.FormatJSON(os.Stdout, b.Name, results)
	} else {
		report.FormatText(os.Stdout, b.Name, results)
	}

	checks := compare.CheckThresholds(results)
	if *baseline != "" {
		base, err := compare.LoadBaseline(*baseline)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(ExitError)
		}
		bc := compare.CompareBaseline(results, base, *tolerance)
		checks.Results = append(checks.Results, bc.Results...)
		checks.Passed = checks.Passed && bc.Passed
	}

	if !checks.Passed {
		for _, v := range checks.Violations() {
			fmt.Fprintf(os.Stderr, "threshold failed: %s (limit %s, actual %s)\n",
				v.Name, v.Threshold, v.Actual)
		}
		os.Exit(ExitThresholdFailed)
	}
	os.Exit(ExitSuccess)
}
