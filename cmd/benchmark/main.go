package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"

	"github.com/limaJavier/qbf/internal/qdimacs"
	"github.com/limaJavier/qbf/internal/search"
	"github.com/limaJavier/qbf/internal/solver"
)

type BenchmarkConfig struct {
	SatisfiableDirectories   []string `mapstructure:"satisfiableDirectories"`
	UnsatisfiableDirectories []string `mapstructure:"unsatisfiableDirectories"`
}

type BenchmarkResult struct {
	Instance   string
	Expected   search.Verdict
	Actual     search.Verdict
	DurationMs int64
}

func main() {
	configPathPtr := flag.String("config", "benchmark.json", "Path to the benchmark configuration file")
	outFilePathPtr := flag.String("out", "", "Path to the csv file where results will be written; if empty, results are written to the standard output")
	flag.Parse()

	config := configFromJson(*configPathPtr)

	results := make([]BenchmarkResult, 0)
	results = append(results, runDirectories(config.SatisfiableDirectories, search.Sat)...)
	results = append(results, runDirectories(config.UnsatisfiableDirectories, search.Unsat)...)

	mismatches := lo.Filter(results, func(result BenchmarkResult, _ int) bool {
		return result.Expected != result.Actual
	})

	writeResults(results, *outFilePathPtr)

	if len(mismatches) > 0 {
		for _, mismatch := range mismatches {
			fmt.Printf("mismatch on %v: expected %v, got %v\n", mismatch.Instance, mismatch.Expected, mismatch.Actual)
		}
		os.Exit(1)
	}
}

func configFromJson(path string) BenchmarkConfig {
	bytes, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("cannot read benchmark configuration: %v", err)
	}

	var configJson map[string]any
	if err := json.Unmarshal(bytes, &configJson); err != nil {
		log.Fatalf("cannot parse benchmark configuration: %v", err)
	}

	var config BenchmarkConfig
	mapstructure.Decode(configJson, &config)
	return config
}

func runDirectories(directories []string, expected search.Verdict) []BenchmarkResult {
	results := make([]BenchmarkResult, 0)

	for _, directory := range directories {
		entries, err := os.ReadDir(directory)
		if err != nil {
			log.Fatalf("cannot read instance directory %v: %v", directory, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".qdimacs") {
				continue
			}
			instance := filepath.Join(directory, entry.Name())
			fmt.Printf("Benchmarking instance %q\n", instance)
			results = append(results, runInstance(instance, expected))
		}
	}
	return results
}

func runInstance(instance string, expected search.Verdict) BenchmarkResult {
	fp, err := os.Open(instance)
	if err != nil {
		log.Fatalf("cannot open instance %v: %v", instance, err)
	}
	defer fp.Close()

	f, err := qdimacs.Parse(fp)
	if err != nil {
		log.Fatalf("cannot parse instance %v: %v", instance, err)
	}

	start := time.Now()
	verdict := solver.NewSolver(solver.Options{}).Decide(f)
	duration := time.Since(start)

	return BenchmarkResult{
		Instance:   instance,
		Expected:   expected,
		Actual:     verdict,
		DurationMs: duration.Milliseconds(),
	}
}

func writeResults(results []BenchmarkResult, outFile string) {
	out := os.Stdout
	if outFile != "" {
		var err error
		out, err = os.Create(outFile)
		if err != nil {
			log.Fatalf("cannot create output file: %v", err)
		}
		defer out.Close()
	}

	writer := csv.NewWriter(out)
	defer writer.Flush()

	writer.Write([]string{"instance", "expected", "actual", "duration_ms"})
	for _, result := range results {
		writer.Write([]string{
			result.Instance,
			result.Expected.String(),
			result.Actual.String(),
			fmt.Sprintf("%v", result.DurationMs),
		})
	}
}
