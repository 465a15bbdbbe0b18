// Package methods maps method names such as "scikit.svr" to adapter
// constructors.
package methods

import (
	"sort"

	"github.com/YuminosukeSato/scibench/core/bench"
	"github.com/YuminosukeSato/scibench/methods/gonum"
	"github.com/YuminosukeSato/scibench/methods/matlab"
	"github.com/YuminosukeSato/scibench/methods/scikit"
	"github.com/YuminosukeSato/scibench/methods/shogun"
	"github.com/YuminosukeSato/scibench/pkg/errors"
	"github.com/YuminosukeSato/scibench/toolkit"
)

// Constructor builds an adapter for one run.
type Constructor func(settings bench.Settings, cfg toolkit.Config) (bench.Method, error)

var registry = map[string]Constructor{
	matlab.LogisticRegressionName: func(s bench.Settings, c toolkit.Config) (bench.Method, error) {
		return matlab.NewLogisticRegression(s, c)
	},
	scikit.SVRName: func(s bench.Settings, c toolkit.Config) (bench.Method, error) {
		return scikit.NewSVR(s, c)
	},
	scikit.LinearRidgeRegressionName: func(s bench.Settings, c toolkit.Config) (bench.Method, error) {
		return scikit.NewLinearRidgeRegression(s, c)
	},
	shogun.DecisionTreeName: func(s bench.Settings, c toolkit.Config) (bench.Method, error) {
		return shogun.NewDecisionTree(s, c)
	},
	shogun.LassoName: func(s bench.Settings, c toolkit.Config) (bench.Method, error) {
		return shogun.NewLasso(s, c)
	},
	gonum.LinearRidgeRegressionName: func(s bench.Settings, _ toolkit.Config) (bench.Method, error) {
		return gonum.NewLinearRidgeRegression(s)
	},
}

// New constructs the named adapter. The caller must Close it.
func New(name string, settings bench.Settings, cfg toolkit.Config) (bench.Method, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, errors.NewValidationError("method", "unknown method", name)
	}
	return ctor(settings, cfg)
}

// Names returns the registered method names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
