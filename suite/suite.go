package suite

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/scibench/core/bench"
	"github.com/YuminosukeSato/scibench/methods"
	"github.com/YuminosukeSato/scibench/pkg/errors"
	"github.com/YuminosukeSato/scibench/pkg/log"
	"github.com/YuminosukeSato/scibench/toolkit"
)

// Record is the outcome of one method on one dataset.
type Record struct {
	Method  string   `json:"method"`
	Options string   `json:"options"`
	Dataset []string `json:"dataset"`
	Status  string   `json:"status"`

	// Mean is the mean of the successful runs in seconds, or the legacy
	// sentinel (-1 failure, -2 timeout) when a run did not succeed.
	Mean   float64   `json:"mean_seconds"`
	StdDev float64   `json:"stddev_seconds"`
	Runs   []float64 `json:"runs_seconds"`

	Metrics bench.Metrics `json:"metrics,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// OK reports whether every timing run succeeded.
func (r Record) OK() bool {
	return r.Status == log.StatusSuccess
}

// Report is the result of a suite run.
type Report struct {
	RunID    string        `json:"run_id"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration_ns"`
	Records  []Record      `json:"records"`
}

// Factory builds the adapter for one benchmark. methods.New is used by
// default.
type Factory func(name string, settings bench.Settings, cfg toolkit.Config) (bench.Method, error)

// Runner executes suites sequentially so timings do not interfere.
type Runner struct {
	Logger  log.Logger
	Factory Factory
}

// Run executes cfg with the default Runner.
func Run(ctx context.Context, cfg *Config, logger log.Logger) (*Report, error) {
	return (&Runner{Logger: logger}).Run(ctx, cfg)
}

// Run executes every benchmark on every dataset. A cancelled ctx stops the
// suite and returns the records collected so far with ctx.Err().
func (r *Runner) Run(ctx context.Context, cfg *Config) (*Report, error) {
	logger := r.Logger
	if logger == nil {
		logger = log.GetLogger()
	}
	factory := r.Factory
	if factory == nil {
		factory = methods.New
	}

	report := &Report{RunID: uuid.NewString(), Started: time.Now()}
	logger = logger.With(log.RunIDKey, report.RunID)
	logger.Info("Starting benchmark suite.", "benchmarks", len(cfg.Methods), "iterations", cfg.General.Iterations)

	for _, b := range cfg.Methods {
		for _, ds := range b.Datasets {
			if err := ctx.Err(); err != nil {
				report.Duration = time.Since(report.Started)
				return report, errors.Wrap(err, "suite cancelled")
			}
			rec := r.runOne(ctx, cfg, b, ds, factory, logger)
			report.Records = append(report.Records, rec)
		}
	}
	report.Duration = time.Since(report.Started)
	logger.Info("Benchmark suite finished.", "records", len(report.Records), log.DurationSecondsKey, report.Duration.Seconds())
	return report, nil
}

func (r *Runner) runOne(ctx context.Context, cfg *Config, b Benchmark, ds []string, factory Factory, logger log.Logger) Record {
	rec := Record{Method: b.Name, Options: b.Options, Dataset: ds}
	logger = logger.With(log.MethodKey, b.Name, log.DatasetTrainKey, ds[0])

	settings := bench.Settings{
		Dataset:        bench.Dataset(ds),
		Timeout:        cfg.General.Timeout,
		Verbose:        cfg.General.Verbose,
		Logger:         logger,
		WorkDir:        cfg.General.WorkDir,
		LenientOptions: cfg.General.LenientOptions,
	}
	m, err := factory(b.Name, settings, cfg.Toolkit())
	if err != nil {
		logger.Error("Could not create benchmark.", err)
		rec.Status, rec.Mean, rec.Error = log.StatusFailure, bench.SentinelFailure, err.Error()
		return rec
	}
	defer func() {
		if err := m.Close(); err != nil {
			logger.Warn("Could not clean up.", err)
		}
	}()

	var durations []float64
	for i := 0; i < cfg.General.Iterations; i++ {
		res := m.RunTiming(ctx, b.Options)
		rec.Runs = append(rec.Runs, res.Seconds())
		logger.Info("Timing run finished.", log.IterationKey, i, log.StatusKey, res.Status.String(), log.DurationSecondsKey, res.Seconds())
		if !res.OK() {
			rec.Status, rec.Mean = res.Status.String(), res.Seconds()
			if res.Err != nil {
				rec.Error = res.Err.Error()
			}
			return rec
		}
		durations = append(durations, res.Seconds())
	}

	rec.Status = log.StatusSuccess
	rec.Mean, rec.StdDev = stat.MeanStdDev(durations, nil)
	if math.IsNaN(rec.StdDev) {
		rec.StdDev = 0
	}

	if b.Metrics {
		metrics, err := m.RunMetrics(ctx, b.Options)
		if err != nil {
			rec.Error = err.Error()
		} else {
			rec.Metrics = metrics
		}
	}
	return rec
}
