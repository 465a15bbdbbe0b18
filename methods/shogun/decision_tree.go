package shogun

import (
	"context"
	"strconv"

	"github.com/YuminosukeSato/scibench/core/bench"
	"github.com/YuminosukeSato/scibench/dataset"
	"github.com/YuminosukeSato/scibench/methods/adapter"
	"github.com/YuminosukeSato/scibench/metrics"
	"github.com/YuminosukeSato/scibench/options"
	"github.com/YuminosukeSato/scibench/pkg/errors"
	"github.com/YuminosukeSato/scibench/toolkit"
)

const DecisionTreeName = "shogun.decision_tree"

// DecisionTreeOptions are the flags accepted by shogun.decision_tree.
type DecisionTreeOptions struct {
	MaxDepth int `arg:"-D,--max-depth" default:"0" help:"maximum tree depth, 0 for unbounded"`
}

// DecisionTree benchmarks the CART classifier.
type DecisionTree struct {
	*adapter.Base
	cfg toolkit.Config
}

// NewDecisionTree creates the adapter and its workspace.
func NewDecisionTree(settings bench.Settings, cfg toolkit.Config) (*DecisionTree, error) {
	base, err := adapter.New(DecisionTreeName, "shogun", settings)
	if err != nil {
		return nil, err
	}
	return &DecisionTree{Base: base, cfg: cfg}, nil
}

// RunTiming trains on the training file and classifies the test file.
func (d *DecisionTree) RunTiming(ctx context.Context, opts string) bench.Result {
	d.Info("Perform DTC.")

	inv, err := d.invocation(opts)
	if err != nil {
		d.Logger().Error("Invalid benchmark input.", err)
		return bench.Failed(err)
	}
	return d.Predicted(opts, d.RunProcess(ctx, inv))
}

func (d *DecisionTree) invocation(opts string) (toolkit.Invocation, error) {
	if err := d.Dataset().RequireAtLeast(DecisionTreeName, 2); err != nil {
		return toolkit.Invocation{}, err
	}
	o, err := options.Parse[DecisionTreeOptions](DecisionTreeName, opts, d.OptionMode())
	if err != nil {
		return toolkit.Invocation{}, err
	}
	if o.MaxDepth < 0 {
		return toolkit.Invocation{}, errors.NewValidationError("max-depth", "must be non-negative", o.MaxDepth)
	}
	args, err := d.DatasetArgs()
	if err != nil {
		return toolkit.Invocation{}, err
	}
	args = append(args, "--max-depth", strconv.Itoa(o.MaxDepth))
	return toolkit.PythonInvocation(d.cfg, decisionTreeDriver, args, d.Workspace().Dir()), nil
}

// RunMetrics reports ACC, MCC, Precision, Recall and MSE of the test
// predictions against the true labels.
func (d *DecisionTree) RunMetrics(ctx context.Context, opts string) (bench.Metrics, error) {
	ds := d.Dataset()
	if err := ds.RequireExactly(DecisionTreeName, 3); err != nil {
		return nil, d.Fatal(err)
	}
	if err := d.EnsurePredictions(opts, func() bench.Result { return d.RunTiming(ctx, opts) }); err != nil {
		return nil, d.Fatal(err)
	}

	labelsPath, _ := ds.Labels()
	trueLabels, err := dataset.LoadVector(labelsPath)
	if err != nil {
		return nil, d.Fatal(err)
	}
	predicted, err := dataset.LoadVector(d.Workspace().Path(adapter.PredictionsFile))
	if err != nil {
		return nil, d.Fatal(err)
	}

	cm, err := metrics.NewConfusionMatrix(trueLabels, predicted)
	if err != nil {
		return nil, d.Fatal(err)
	}
	mse, err := metrics.SimpleMeanSquaredError(trueLabels, predicted)
	if err != nil {
		return nil, d.Fatal(err)
	}
	return bench.Metrics{
		"ACC":       metrics.AverageAccuracy(cm),
		"MCC":       metrics.MCCMultiClass(cm),
		"Precision": metrics.AvgPrecision(cm),
		"Recall":    metrics.AvgRecall(cm),
		"MSE":       mse,
	}, nil
}
