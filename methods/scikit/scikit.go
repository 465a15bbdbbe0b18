// Package scikit benchmarks scikit-learn estimators. Each adapter runs an
// embedded Python driver that loads the CSV files, times fit and predict,
// and writes predictions into the adapter workspace.
package scikit

import (
	_ "embed"
	"strconv"
)

var (
	//go:embed drivers/svr.py
	svrDriver string

	//go:embed drivers/linear_ridge_regression.py
	ridgeDriver string
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
