// Package matlab benchmarks methods implemented as MATLAB functions. Each
// function receives its arguments as a single character vector and prints
// "total_time: <seconds>s" when it finishes.
package matlab

import (
	"context"
	"strings"

	"github.com/YuminosukeSato/scibench/core/bench"
	"github.com/YuminosukeSato/scibench/dataset"
	"github.com/YuminosukeSato/scibench/methods/adapter"
	"github.com/YuminosukeSato/scibench/metrics"
	"github.com/YuminosukeSato/scibench/options"
	"github.com/YuminosukeSato/scibench/pkg/errors"
	"github.com/YuminosukeSato/scibench/toolkit"
)

const (
	LogisticRegressionName = "matlab.logistic_regression"

	logisticRegressionFunc = "LOGISTIC_REGRESSION"

	// ProbabilitiesFile is written next to the predictions by the MATLAB
	// function. It is cleaned up with the workspace but not read.
	ProbabilitiesFile = "matlab_lr_probs.csv"
)

// LogisticRegression benchmarks LOGISTIC_REGRESSION.
type LogisticRegression struct {
	*adapter.Base
	cfg toolkit.Config
}

// NewLogisticRegression creates the adapter and its workspace. The caller
// must Close it.
func NewLogisticRegression(settings bench.Settings, cfg toolkit.Config) (*LogisticRegression, error) {
	base, err := adapter.New(LogisticRegressionName, "matlab", settings)
	if err != nil {
		return nil, err
	}
	return &LogisticRegression{Base: base, cfg: cfg}, nil
}

// RunTiming runs LOGISTIC_REGRESSION on the training file and, when given,
// the test file. options are appended to the MATLAB argument string as is.
func (lr *LogisticRegression) RunTiming(ctx context.Context, opts string) bench.Result {
	lr.Info("Perform Logistic Regression.")

	inv, err := lr.invocation(opts)
	if err != nil {
		lr.Logger().Error("Invalid benchmark input.", err)
		return bench.Failed(err)
	}
	return lr.Predicted(opts, lr.RunProcess(ctx, inv))
}

func (lr *LogisticRegression) invocation(opts string) (toolkit.Invocation, error) {
	ds := lr.Dataset()
	if err := ds.Validate(LogisticRegressionName); err != nil {
		return toolkit.Invocation{}, err
	}

	if _, err := options.Split(opts); err != nil {
		if lr.OptionMode() == options.Strict {
			return toolkit.Invocation{}, err
		}
		errors.Warn(errors.NewOptionFallbackWarning(LogisticRegressionName, opts, err))
		opts = ""
	}

	paths, err := adapter.AbsPaths(ds...)
	if err != nil {
		return toolkit.Invocation{}, err
	}
	parts := []string{"-i", paths[0]}
	if len(paths) >= 2 {
		parts = append(parts, "-t", paths[1])
	}
	if opts = strings.TrimSpace(opts); opts != "" {
		parts = append(parts, opts)
	}
	return toolkit.MatlabInvocation(lr.cfg, logisticRegressionFunc, strings.Join(parts, " "), lr.Workspace().Dir()), nil
}

// RunMetrics needs the training, test and true-label files. Predictions of
// an earlier RunTiming call are reused.
func (lr *LogisticRegression) RunMetrics(ctx context.Context, opts string) (bench.Metrics, error) {
	ds := lr.Dataset()
	if err := ds.RequireExactly(LogisticRegressionName, 3); err != nil {
		return nil, lr.Fatal(err)
	}

	if err := lr.EnsurePredictions(opts, func() bench.Result { return lr.RunTiming(ctx, opts) }); err != nil {
		return nil, lr.Fatal(err)
	}

	labelsPath, _ := ds.Labels()
	trueLabels, err := dataset.LoadVector(labelsPath)
	if err != nil {
		return nil, lr.Fatal(err)
	}
	predicted, err := dataset.LoadVector(lr.Workspace().Path(adapter.PredictionsFile))
	if err != nil {
		return nil, lr.Fatal(err)
	}

	cm, err := metrics.NewConfusionMatrix(trueLabels, predicted)
	if err != nil {
		return nil, lr.Fatal(err)
	}
	mse, err := metrics.SimpleMeanSquaredError(trueLabels, predicted)
	if err != nil {
		return nil, lr.Fatal(err)
	}

	return bench.Metrics{
		"Avg Accuracy":           metrics.AverageAccuracy(cm),
		"MultiClass Precision":   metrics.AvgPrecision(cm),
		"MultiClass Recall":      metrics.AvgRecall(cm),
		"MultiClass FMeasure":    metrics.AvgFMeasure(cm),
		"MultiClass Lift":        metrics.LiftMultiClass(cm),
		"MultiClass MCC":         metrics.MCCMultiClass(cm),
		"MultiClass Information": metrics.MutualInformation(cm),
		"Simple MSE":             mse,
	}, nil
}
