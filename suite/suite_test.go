package suite

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/scibench/core/bench"
	"github.com/YuminosukeSato/scibench/core/bench/benchtest"
	"github.com/YuminosukeSato/scibench/pkg/errors"
	"github.com/YuminosukeSato/scibench/pkg/log"
	"github.com/YuminosukeSato/scibench/toolkit"
)

const suiteYAML = `
general:
  timeout: 10m
  iterations: 3
  python: python3
  results: results.json
methods:
  - name: scikit.svr
    options: "-c 1.0 -e 0.1"
    metrics: true
    datasets:
      - [data/wine_train.csv, data/wine_test.csv, data/wine_labels.csv]
      - [data/iris_train.csv]
`

func TestParse(t *testing.T) {
	cfg, err := Parse(strings.NewReader(suiteYAML))
	require.NoError(t, err)

	assert.Equal(t, 10*time.Minute, cfg.General.Timeout)
	assert.Equal(t, 3, cfg.General.Iterations)
	assert.Equal(t, toolkit.Config{Python: "python3"}, cfg.Toolkit())
	require.Len(t, cfg.Methods, 1)
	assert.Equal(t, "-c 1.0 -e 0.1", cfg.Methods[0].Options)
	assert.True(t, cfg.Methods[0].Metrics)
	assert.Len(t, cfg.Methods[0].Datasets, 2)
}

func TestParseDefaultsIterations(t *testing.T) {
	cfg, err := Parse(strings.NewReader("methods:\n  - name: shogun.lasso\n    datasets: [[a.csv, b.csv]]\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.General.Iterations)
}

func TestParseRejects(t *testing.T) {
	tests := map[string]string{
		"empty":          "",
		"unknown method": "methods:\n  - name: weka.j48\n    datasets: [[a.csv]]\n",
		"no datasets":    "methods:\n  - name: scikit.svr\n",
		"four files":     "methods:\n  - name: scikit.svr\n    datasets: [[a, b, c, d]]\n",
		"unknown key":    "general:\n  iteration: 2\nmethods:\n  - name: scikit.svr\n    datasets: [[a]]\n",
		"bad timeout":    "general:\n  timeout: soon\nmethods:\n  - name: scikit.svr\n    datasets: [[a]]\n",
		"no methods":     "general:\n  iterations: 2\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := benchtest.WriteFile(t, t.TempDir(), "suite.yaml", suiteYAML)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "results.json", cfg.General.Results)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// stubMethod replays a fixed sequence of results.
type stubMethod struct {
	name    string
	results []bench.Result
	metrics bench.Metrics
	calls   int
	closed  bool
}

func (s *stubMethod) Name() string { return s.name }

func (s *stubMethod) RunTiming(context.Context, string) bench.Result {
	res := s.results[s.calls%len(s.results)]
	s.calls++
	return res
}

func (s *stubMethod) RunMetrics(context.Context, string) (bench.Metrics, error) {
	if s.metrics == nil {
		return nil, errors.NewDatasetShapeError(s.name, "three", 1)
	}
	return s.metrics, nil
}

func (s *stubMethod) Close() error {
	s.closed = true
	return nil
}

func TestRunnerAggregatesIterations(t *testing.T) {
	cfg := &Config{
		General: General{Iterations: 3},
		Methods: []Benchmark{
			{Name: "ok", Metrics: true, Datasets: [][]string{{"a.csv", "b.csv", "c.csv"}}},
			{Name: "timeout", Datasets: [][]string{{"a.csv"}}},
			{Name: "broken", Datasets: [][]string{{"a.csv"}}},
		},
	}

	stubs := map[string]*stubMethod{
		"ok": {
			name:    "ok",
			results: []bench.Result{bench.Succeeded(time.Second), bench.Succeeded(2 * time.Second), bench.Succeeded(3 * time.Second)},
			metrics: bench.Metrics{"Simple MSE": 0.5},
		},
		"timeout": {
			name:    "timeout",
			results: []bench.Result{bench.Succeeded(time.Second), bench.TimedOut()},
		},
	}
	logger, _ := log.NewTestLogger(log.LevelDebug)
	runner := &Runner{
		Logger: logger,
		Factory: func(name string, _ bench.Settings, _ toolkit.Config) (bench.Method, error) {
			if s, ok := stubs[name]; ok {
				return s, nil
			}
			return nil, errors.New("toolkit not installed")
		},
	}

	report, err := runner.Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, report.Records, 3)
	assert.NotEmpty(t, report.RunID)

	ok := report.Records[0]
	assert.True(t, ok.OK())
	assert.InDelta(t, 2.0, ok.Mean, 1e-12)
	assert.InDelta(t, 1.0, ok.StdDev, 1e-12)
	assert.Equal(t, []float64{1, 2, 3}, ok.Runs)
	assert.Equal(t, bench.Metrics{"Simple MSE": 0.5}, ok.Metrics)

	timeout := report.Records[1]
	assert.Equal(t, "timeout", timeout.Status)
	assert.Equal(t, bench.SentinelTimeout, timeout.Mean)
	assert.Equal(t, []float64{1, -2}, timeout.Runs, "the suite stops at the first unsuccessful run")

	broken := report.Records[2]
	assert.Equal(t, "failure", broken.Status)
	assert.Equal(t, bench.SentinelFailure, broken.Mean)
	assert.Contains(t, broken.Error, "toolkit not installed")

	for _, s := range stubs {
		assert.True(t, s.closed, "%s was not closed", s.name)
	}
	assert.True(t, logger.ContainsField(log.RunIDKey, report.RunID))
}

func TestRunnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := &Config{General: General{Iterations: 1}, Methods: []Benchmark{{Name: "x", Datasets: [][]string{{"a"}}}}}
	report, err := (&Runner{Factory: func(string, bench.Settings, toolkit.Config) (bench.Method, error) {
		t.Fatal("factory must not be called")
		return nil, nil
	}}).Run(ctx, cfg)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Records)
}

func TestRunGonumRidgeEndToEnd(t *testing.T) {
	dir := t.TempDir()
	train := benchtest.WriteCSV(t, dir, "train.csv", "0,1", "1,3", "2,5", "3,7")
	test := benchtest.WriteCSV(t, dir, "test.csv", "4", "5")
	labels := benchtest.WriteCSV(t, dir, "labels.csv", "9", "11")

	cfg := &Config{
		General: General{Iterations: 2, WorkDir: dir},
		Methods: []Benchmark{{
			Name:     "gonum.linear_ridge_regression",
			Options:  "-t 0",
			Metrics:  true,
			Datasets: [][]string{{train, test, labels}},
		}},
	}
	logger, _ := log.NewTestLogger(log.LevelInfo)
	report, err := Run(context.Background(), cfg, logger)
	require.NoError(t, err)
	require.Len(t, report.Records, 1)

	rec := report.Records[0]
	require.True(t, rec.OK(), "got %+v", rec)
	assert.Len(t, rec.Runs, 2)
	assert.GreaterOrEqual(t, rec.Mean, 0.0)
	assert.InDelta(t, 0.0, rec.Metrics["Simple MSE"], 1e-9)

	// Adapters clean their workspace on Close.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), "scibench-"), "leftover workspace %s", e.Name())
	}
}

func TestReportJSONAndChart(t *testing.T) {
	report := &Report{
		RunID: "run-1",
		Records: []Record{
			{Method: "scikit.svr", Dataset: []string{"data/wine.csv"}, Status: "success", Mean: 1.5, Runs: []float64{1.5}},
			{Method: "shogun.lasso", Dataset: []string{"data/wine.csv"}, Status: "timeout", Mean: -2, Runs: []float64{-2}},
		},
	}
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "results.json")
	require.NoError(t, report.WriteJSON(jsonPath))
	back, err := ReadJSON(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, report.Records, back.Records)

	chartPath := filepath.Join(dir, "timings.png")
	require.NoError(t, report.PlotTimings(chartPath))
	info, err := os.Stat(chartPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	empty := &Report{Records: report.Records[1:]}
	assert.Error(t, empty.PlotTimings(filepath.Join(dir, "none.png")))
}
