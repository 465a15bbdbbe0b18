// Package shogun benchmarks Shogun toolbox methods through embedded Python
// drivers that use the modshogun bindings.
package shogun

import (
	_ "embed"
	"strconv"
)

var (
	//go:embed drivers/decision_tree.py
	decisionTreeDriver string

	//go:embed drivers/lasso.py
	lassoDriver string
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
