// Package gonum benchmarks methods that run in-process on gonum. The
// timed region covers fit and predict; loading the CSV files and writing
// predictions are excluded.
package gonum

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scibench/core/bench"
	"github.com/YuminosukeSato/scibench/dataset"
	"github.com/YuminosukeSato/scibench/linear"
	"github.com/YuminosukeSato/scibench/methods/adapter"
	"github.com/YuminosukeSato/scibench/metrics"
	"github.com/YuminosukeSato/scibench/options"
	"github.com/YuminosukeSato/scibench/pkg/errors"
	"github.com/YuminosukeSato/scibench/pkg/log"
)

const LinearRidgeRegressionName = "gonum.linear_ridge_regression"

// LinearRidgeRegression benchmarks linear.Ridge.
type LinearRidgeRegression struct {
	*adapter.Base
}

// NewLinearRidgeRegression creates the adapter and its workspace.
func NewLinearRidgeRegression(settings bench.Settings) (*LinearRidgeRegression, error) {
	base, err := adapter.New(LinearRidgeRegressionName, "gonum", settings)
	if err != nil {
		return nil, err
	}
	return &LinearRidgeRegression{Base: base}, nil
}

type ridgeInput struct {
	X    *mat.Dense
	y    *mat.VecDense
	test *mat.Dense
}

func (r *LinearRidgeRegression) load() (*ridgeInput, error) {
	ds := r.Dataset()
	if err := ds.RequireAtLeast(LinearRidgeRegressionName, 1); err != nil {
		return nil, err
	}

	r.Info("Loading dataset", log.DatasetTrainKey, ds.Train())
	X, y, err := dataset.SplitTrainData(ds.Train())
	if err != nil {
		return nil, err
	}
	in := &ridgeInput{X: X, y: y}
	if path, ok := ds.Test(); ok {
		if in.test, err = dataset.Load(path); err != nil {
			return nil, err
		}
	}
	rows, cols := X.Dims()
	r.Logger().Debug("Dataset loaded.", log.SamplesKey, rows, log.FeaturesKey, cols)
	return in, nil
}

// RunTiming fits on the training file and predicts the test file if one
// is given. Predictions are written to the workspace after timing stops.
func (r *LinearRidgeRegression) RunTiming(ctx context.Context, opts string) bench.Result {
	r.Info("Perform Linear Ridge Regression.")

	o, err := options.Parse[options.Ridge](LinearRidgeRegressionName, opts, r.OptionMode())
	if err == nil {
		err = o.Validate()
	}
	var in *ridgeInput
	if err == nil {
		in, err = r.load()
	}
	if err != nil {
		r.Logger().Error("Invalid benchmark input.", err)
		return bench.Failed(err)
	}

	var predictions *mat.VecDense
	res := r.Timed(ctx, func(ctx context.Context) bench.Result {
		return bench.Measure(LinearRidgeRegressionName, func() error {
			model := linear.NewRidge(linear.WithAlpha(o.Alpha))
			if err := model.Fit(in.X, in.y); err != nil {
				return errors.NewDelegateError(LinearRidgeRegressionName, "fit", err)
			}
			if in.test == nil {
				return nil
			}
			p, err := model.Predict(in.test)
			if err != nil {
				return errors.NewDelegateError(LinearRidgeRegressionName, "predict", err)
			}
			predictions = p
			return nil
		})
	})
	if !res.OK() || predictions == nil {
		return r.Predicted(opts, res)
	}

	if err := dataset.WriteVector(r.Workspace().Path(adapter.PredictionsFile), predictions.RawVector().Data); err != nil {
		r.Logger().Error("Could not write predictions.", err)
		return r.Predicted(opts, bench.Failed(err))
	}
	return r.Predicted(opts, res)
}

// RunMetrics reports the mean squared error of the rounded predictions
// like the other ridge adapters, plus RMSE and MAE of the raw predictions.
func (r *LinearRidgeRegression) RunMetrics(ctx context.Context, opts string) (bench.Metrics, error) {
	ds := r.Dataset()
	if err := ds.RequireExactly(LinearRidgeRegressionName, 3); err != nil {
		return nil, r.Fatal(err)
	}
	if err := r.EnsurePredictions(opts, func() bench.Result { return r.RunTiming(ctx, opts) }); err != nil {
		return nil, r.Fatal(err)
	}

	labelsPath, _ := ds.Labels()
	trueValues, err := dataset.LoadVector(labelsPath)
	if err != nil {
		return nil, r.Fatal(err)
	}
	predicted, err := dataset.LoadVector(r.Workspace().Path(adapter.PredictionsFile))
	if err != nil {
		return nil, r.Fatal(err)
	}

	mse, err := metrics.SimpleMeanSquaredError(trueValues, metrics.RoundLabels(predicted))
	if err != nil {
		return nil, r.Fatal(err)
	}

	yTrue := mat.NewVecDense(len(trueValues), trueValues)
	yPred := mat.NewVecDense(len(predicted), predicted)
	rmse, err := metrics.RMSE(yTrue, yPred)
	if err != nil {
		return nil, r.Fatal(err)
	}
	mae, err := metrics.MAE(yTrue, yPred)
	if err != nil {
		return nil, r.Fatal(err)
	}
	return bench.Metrics{"Simple MSE": mse, "RMSE": rmse, "MAE": mae}, nil
}
