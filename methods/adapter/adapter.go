// Package adapter holds the plumbing shared by the method adapters:
// workspace ownership, verbose logging, option decoding and the timeout
// wrapped timing call.
package adapter

import (
	"context"
	"path/filepath"

	"github.com/YuminosukeSato/scibench/core/bench"
	"github.com/YuminosukeSato/scibench/options"
	"github.com/YuminosukeSato/scibench/pkg/errors"
	"github.com/YuminosukeSato/scibench/pkg/log"
	"github.com/YuminosukeSato/scibench/toolkit"
)

// PredictionsFile is the intermediate file delegates write predicted
// labels or responses to, one value per line.
const PredictionsFile = "predictions.csv"

// Base is embedded by every adapter.
type Base struct {
	name      string
	settings  bench.Settings
	logger    log.Logger
	workspace *bench.Workspace

	// predictedWith is the option string of the run that wrote
	// PredictionsFile. Valid only while hasPredictions is set.
	predictedWith  string
	hasPredictions bool
}

// New creates the adapter workspace. toolkit is only used for logging.
func New(name, toolkit string, settings bench.Settings) (*Base, error) {
	ws, err := bench.NewWorkspace(settings.WorkDir)
	if err != nil {
		return nil, errors.NewDelegateError(name, "create workspace", err)
	}
	logger := settings.LoggerOrDefault().With(log.MethodKey, name, log.ToolkitKey, toolkit)
	return &Base{name: name, settings: settings, logger: logger, workspace: ws}, nil
}

func (b *Base) Name() string { return b.name }

func (b *Base) Dataset() bench.Dataset { return b.settings.Dataset }

func (b *Base) Logger() log.Logger { return b.logger }

func (b *Base) Workspace() *bench.Workspace { return b.workspace }

// OptionMode reports how unparsable option strings are handled.
func (b *Base) OptionMode() options.Mode {
	return options.ModeFor(b.settings.LenientOptions)
}

// Info logs msg when the adapter is verbose.
func (b *Base) Info(msg string, fields ...any) {
	if b.settings.Verbose {
		b.logger.Info(msg, fields...)
	}
}

// Fatal logs err at error level and returns it. Used for conditions the
// caller must see, such as a dataset that cannot produce metrics.
func (b *Base) Fatal(err error) error {
	b.logger.Error(err.Error(), err)
	return err
}

// Timed runs fn under the configured timeout and logs the outcome.
func (b *Base) Timed(ctx context.Context, fn func(ctx context.Context) bench.Result) bench.Result {
	if err := b.workspace.Err(); err != nil {
		err = errors.NewDelegateError(b.name, "run", err)
		b.logger.Error("Benchmark failed.", err, log.StatusKey, log.StatusFailure)
		return bench.Failed(err)
	}
	res := bench.WithTimeout(ctx, b.settings.Timeout, fn)
	switch res.Status {
	case bench.StatusSuccess:
		b.Info("Benchmark finished.", log.StatusKey, log.StatusSuccess, log.DurationSecondsKey, res.Seconds())
	case bench.StatusTimeout:
		b.logger.Warn("Benchmark timed out.", log.StatusKey, log.StatusTimeout, log.TimeoutKey, b.settings.Timeout.String())
	default:
		b.logger.Error("Benchmark failed.", res.Err, log.StatusKey, log.StatusFailure)
	}
	return res
}

// RunProcess times inv under the configured timeout.
func (b *Base) RunProcess(ctx context.Context, inv toolkit.Invocation) bench.Result {
	return b.Timed(ctx, func(ctx context.Context) bench.Result {
		return toolkit.Time(ctx, b.name, inv, b.logger)
	})
}

// Predicted records that a timing run with opts produced PredictionsFile.
// Any other outcome forgets earlier predictions. It returns res.
func (b *Base) Predicted(opts string, res bench.Result) bench.Result {
	b.hasPredictions = res.OK() && b.workspace.Exists(PredictionsFile)
	b.predictedWith = opts
	return res
}

// EnsurePredictions reuses PredictionsFile when the last timing run used
// the same opts. Otherwise the stale file is removed and run is called.
func (b *Base) EnsurePredictions(opts string, run func() bench.Result) error {
	if err := b.workspace.Err(); err != nil {
		return errors.NewDelegateError(b.name, "compute predictions", err)
	}
	if b.hasPredictions && b.predictedWith == opts && b.workspace.Exists(PredictionsFile) {
		return nil
	}
	b.hasPredictions = false
	if err := b.workspace.Remove(PredictionsFile); err != nil {
		return errors.NewDelegateError(b.name, "compute predictions", err)
	}
	res := run()
	if !res.OK() {
		return errors.NewDelegateError(b.name, "compute predictions", res.Err)
	}
	if !b.workspace.Exists(PredictionsFile) {
		return errors.NewDelegateError(b.name, "compute predictions", errors.Newf("%s was not written", PredictionsFile))
	}
	return nil
}

// Close removes the workspace and every intermediate file in it.
func (b *Base) Close() error {
	b.Info("Clean up.")
	b.hasPredictions = false
	return b.workspace.Close()
}

// DatasetArgs returns the --train flag and, when the dataset has a test
// file, the --test and --predictions flags, all with absolute paths.
func (b *Base) DatasetArgs() ([]string, error) {
	paths, err := AbsPaths(b.settings.Dataset...)
	if err != nil {
		return nil, err
	}
	args := []string{"--train", paths[0]}
	if len(paths) >= 2 {
		args = append(args, "--test", paths[1], "--predictions", b.workspace.Path(PredictionsFile))
	}
	return args, nil
}

// AbsPaths resolves dataset paths against the caller's working directory,
// since delegates run inside the workspace.
func AbsPaths(paths ...string) ([]string, error) {
	out := make([]string, len(paths))
	for i, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve %s", p)
		}
		out[i] = abs
	}
	return out, nil
}
