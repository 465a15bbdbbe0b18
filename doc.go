// Package scibench benchmarks machine learning methods implemented in
// MATLAB, scikit-learn, Shogun and gonum under a common contract.
//
// Every method adapter exposes two operations: RunTiming measures the
// run time of the underlying implementation and RunMetrics computes
// quality metrics from the predictions it leaves in a scratch workspace.
//
// # Quick Start
//
//	settings := bench.Settings{
//	    Dataset: bench.Dataset{"train.csv", "test.csv", "labels.csv"},
//	    Timeout: 30 * time.Second,
//	}
//	m, err := methods.New("gonum.linear_ridge_regression", settings, toolkit.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Close()
//
//	res := m.RunTiming(ctx, "-t 0.5")
//	fmt.Println(res.Seconds()) // -1 on failure, -2 on timeout
//
//	metrics, err := m.RunMetrics(ctx, "-t 0.5")
//
// # Packages
//
//   - core/bench: Result, Method, Dataset, Timer, timeout wrapper, Workspace
//   - core/parallel: chunked goroutine fan-out for row-wise work
//   - dataset: CSV loading and train/label splitting
//   - metrics: classification and regression metrics
//   - options: typed option strings for each method
//   - toolkit: subprocess invocation and timer parsing
//   - methods: the adapters and the name registry
//   - linear: the in-process ridge regression
//   - suite: YAML-driven benchmark suites with JSON and chart reports
//
// The scibench command in cmd/scibench wraps all of the above.
package scibench
