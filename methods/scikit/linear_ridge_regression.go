package scikit

import (
	"context"

	"github.com/YuminosukeSato/scibench/core/bench"
	"github.com/YuminosukeSato/scibench/dataset"
	"github.com/YuminosukeSato/scibench/methods/adapter"
	"github.com/YuminosukeSato/scibench/metrics"
	"github.com/YuminosukeSato/scibench/options"
	"github.com/YuminosukeSato/scibench/toolkit"
)

const LinearRidgeRegressionName = "scikit.linear_ridge_regression"

// LinearRidgeRegression benchmarks sklearn.linear_model.Ridge.
type LinearRidgeRegression struct {
	*adapter.Base
	cfg toolkit.Config
}

// NewLinearRidgeRegression creates the adapter and its workspace.
func NewLinearRidgeRegression(settings bench.Settings, cfg toolkit.Config) (*LinearRidgeRegression, error) {
	base, err := adapter.New(LinearRidgeRegressionName, "scikit", settings)
	if err != nil {
		return nil, err
	}
	return &LinearRidgeRegression{Base: base, cfg: cfg}, nil
}

func (r *LinearRidgeRegression) RunTiming(ctx context.Context, opts string) bench.Result {
	r.Info("Perform Linear Ridge Regression.")

	inv, err := r.invocation(opts)
	if err != nil {
		r.Logger().Error("Invalid benchmark input.", err)
		return bench.Failed(err)
	}
	return r.Predicted(opts, r.RunProcess(ctx, inv))
}

func (r *LinearRidgeRegression) invocation(opts string) (toolkit.Invocation, error) {
	if err := r.Dataset().RequireAtLeast(LinearRidgeRegressionName, 1); err != nil {
		return toolkit.Invocation{}, err
	}
	o, err := options.Parse[options.Ridge](LinearRidgeRegressionName, opts, r.OptionMode())
	if err != nil {
		return toolkit.Invocation{}, err
	}
	if err := o.Validate(); err != nil {
		return toolkit.Invocation{}, err
	}
	args, err := r.DatasetArgs()
	if err != nil {
		return toolkit.Invocation{}, err
	}
	args = append(args, "--alpha", formatFloat(o.Alpha))
	return toolkit.PythonInvocation(r.cfg, ridgeDriver, args, r.Workspace().Dir()), nil
}

// RunMetrics reports the mean squared error of the predictions rounded to
// the nearest integer label.
func (r *LinearRidgeRegression) RunMetrics(ctx context.Context, opts string) (bench.Metrics, error) {
	ds := r.Dataset()
	if err := ds.RequireExactly(LinearRidgeRegressionName, 3); err != nil {
		return nil, r.Fatal(err)
	}
	if err := r.EnsurePredictions(opts, func() bench.Result { return r.RunTiming(ctx, opts) }); err != nil {
		return nil, r.Fatal(err)
	}

	labelsPath, _ := ds.Labels()
	trueLabels, err := dataset.LoadVector(labelsPath)
	if err != nil {
		return nil, r.Fatal(err)
	}
	predicted, err := dataset.LoadVector(r.Workspace().Path(adapter.PredictionsFile))
	if err != nil {
		return nil, r.Fatal(err)
	}
	mse, err := metrics.SimpleMeanSquaredError(trueLabels, metrics.RoundLabels(predicted))
	if err != nil {
		return nil, r.Fatal(err)
	}
	return bench.Metrics{"Simple MSE": mse}, nil
}
