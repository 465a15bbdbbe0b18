package scikit

import (
	"context"

	"github.com/YuminosukeSato/scibench/core/bench"
	"github.com/YuminosukeSato/scibench/dataset"
	"github.com/YuminosukeSato/scibench/methods/adapter"
	"github.com/YuminosukeSato/scibench/metrics"
	"github.com/YuminosukeSato/scibench/options"
	"github.com/YuminosukeSato/scibench/pkg/errors"
	"github.com/YuminosukeSato/scibench/toolkit"
)

const SVRName = "scikit.svr"

// SVROptions are the flags accepted by scikit.svr.
type SVROptions struct {
	C       float64 `arg:"-c,--c" default:"1.0" help:"penalty parameter C"`
	Epsilon float64 `arg:"-e,--epsilon" default:"1.0" help:"epsilon-tube width"`
	Gamma   float64 `arg:"-g,--gamma" default:"0.1" help:"kernel coefficient"`
	Kernel  string  `arg:"-k,--kernel" default:"rbf" help:"linear, poly, rbf or sigmoid"`
}

func (o SVROptions) validate() error {
	switch o.Kernel {
	case "linear", "poly", "rbf", "sigmoid":
	default:
		return errors.NewValidationError("kernel", "must be linear, poly, rbf or sigmoid", o.Kernel)
	}
	if o.C <= 0 {
		return errors.NewValidationError("c", "must be positive", o.C)
	}
	if o.Epsilon < 0 {
		return errors.NewValidationError("epsilon", "must be non-negative", o.Epsilon)
	}
	return nil
}

// SVR benchmarks sklearn.svm.SVR.
type SVR struct {
	*adapter.Base
	cfg toolkit.Config
}

// NewSVR creates the adapter and its workspace.
func NewSVR(settings bench.Settings, cfg toolkit.Config) (*SVR, error) {
	base, err := adapter.New(SVRName, "scikit", settings)
	if err != nil {
		return nil, err
	}
	return &SVR{Base: base, cfg: cfg}, nil
}

// RunTiming fits on the training file and predicts the test file if one
// is given.
func (s *SVR) RunTiming(ctx context.Context, opts string) bench.Result {
	s.Info("Perform SVR.")

	inv, err := s.invocation(opts)
	if err != nil {
		s.Logger().Error("Invalid benchmark input.", err)
		return bench.Failed(err)
	}
	return s.Predicted(opts, s.RunProcess(ctx, inv))
}

func (s *SVR) invocation(opts string) (toolkit.Invocation, error) {
	if err := s.Dataset().RequireAtLeast(SVRName, 1); err != nil {
		return toolkit.Invocation{}, err
	}
	o, err := options.Parse[SVROptions](SVRName, opts, s.OptionMode())
	if err != nil {
		return toolkit.Invocation{}, err
	}
	if err := o.validate(); err != nil {
		return toolkit.Invocation{}, err
	}
	args, err := s.DatasetArgs()
	if err != nil {
		return toolkit.Invocation{}, err
	}
	args = append(args,
		"--c", formatFloat(o.C),
		"--epsilon", formatFloat(o.Epsilon),
		"--gamma", formatFloat(o.Gamma),
		"--kernel", o.Kernel,
	)
	return toolkit.PythonInvocation(s.cfg, svrDriver, args, s.Workspace().Dir()), nil
}

// RunMetrics reports the mean squared error of the test predictions.
func (s *SVR) RunMetrics(ctx context.Context, opts string) (bench.Metrics, error) {
	ds := s.Dataset()
	if err := ds.RequireExactly(SVRName, 3); err != nil {
		return nil, s.Fatal(err)
	}
	if err := s.EnsurePredictions(opts, func() bench.Result { return s.RunTiming(ctx, opts) }); err != nil {
		return nil, s.Fatal(err)
	}

	labelsPath, _ := ds.Labels()
	trueValues, err := dataset.LoadVector(labelsPath)
	if err != nil {
		return nil, s.Fatal(err)
	}
	predicted, err := dataset.LoadVector(s.Workspace().Path(adapter.PredictionsFile))
	if err != nil {
		return nil, s.Fatal(err)
	}
	mse, err := metrics.SimpleMeanSquaredError(trueValues, predicted)
	if err != nil {
		return nil, s.Fatal(err)
	}
	return bench.Metrics{"Simple MSE": mse}, nil
}
