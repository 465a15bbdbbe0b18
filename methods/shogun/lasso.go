package shogun

import (
	"context"

	"github.com/YuminosukeSato/scibench/core/bench"
	"github.com/YuminosukeSato/scibench/methods/adapter"
	"github.com/YuminosukeSato/scibench/options"
	"github.com/YuminosukeSato/scibench/pkg/errors"
	"github.com/YuminosukeSato/scibench/toolkit"
)

const LassoName = "shogun.lasso"

// LassoOptions are the flags accepted by shogun.lasso.
type LassoOptions struct {
	Lambda float64 `arg:"-l,--lambda" default:"0.0" help:"L1 norm bound, 0 computes the full LARS path"`
}

// Lasso benchmarks least angle regression with the lasso modification.
// Its dataset is the input file followed by the responses file.
type Lasso struct {
	*adapter.Base
	cfg toolkit.Config
}

// NewLasso creates the adapter and its workspace.
func NewLasso(settings bench.Settings, cfg toolkit.Config) (*Lasso, error) {
	base, err := adapter.New(LassoName, "shogun", settings)
	if err != nil {
		return nil, err
	}
	return &Lasso{Base: base, cfg: cfg}, nil
}

func (l *Lasso) RunTiming(ctx context.Context, opts string) bench.Result {
	l.Info("Perform Lasso Regression.")

	inv, err := l.invocation(opts)
	if err != nil {
		l.Logger().Error("Invalid benchmark input.", err)
		return bench.Failed(err)
	}
	return l.Predicted(opts, l.RunProcess(ctx, inv))
}

func (l *Lasso) invocation(opts string) (toolkit.Invocation, error) {
	ds := l.Dataset()
	if err := ds.RequireExactly(LassoName, 2); err != nil {
		return toolkit.Invocation{}, err
	}
	o, err := options.Parse[LassoOptions](LassoName, opts, l.OptionMode())
	if err != nil {
		return toolkit.Invocation{}, err
	}
	if o.Lambda < 0 {
		return toolkit.Invocation{}, errors.NewValidationError("lambda", "must be non-negative", o.Lambda)
	}
	paths, err := adapter.AbsPaths(ds...)
	if err != nil {
		return toolkit.Invocation{}, err
	}
	args := []string{"--train", paths[0], "--responses", paths[1], "--lambda1", formatFloat(o.Lambda)}
	return toolkit.PythonInvocation(l.cfg, lassoDriver, args, l.Workspace().Dir()), nil
}

// RunMetrics times one training run and reports it as "Runtime".
func (l *Lasso) RunMetrics(ctx context.Context, opts string) (bench.Metrics, error) {
	if err := l.Dataset().RequireExactly(LassoName, 2); err != nil {
		return nil, l.Fatal(err)
	}
	res := l.RunTiming(ctx, opts)
	if !res.OK() {
		return nil, errors.NewDelegateError(LassoName, "train", res.Err)
	}
	return bench.Metrics{"Runtime": res.Seconds()}, nil
}
