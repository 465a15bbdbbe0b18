// Standard attribute keys for benchmark logging. Keys are hierarchical
// ("bench.method", "dataset.train") so log lines can be filtered per run.

package log

// Benchmark context
const (
	// MethodKey is the registered method name, e.g. "scikit.svr".
	MethodKey = "bench.method"

	// ToolkitKey is the toolkit that runs the method: "matlab", "scikit",
	// "shogun" or "gonum".
	ToolkitKey = "bench.toolkit"

	// OptionsKey is the raw option string supplied by the caller.
	OptionsKey = "bench.options"

	// StatusKey is the outcome of a timing run: "success", "timeout", "failure".
	StatusKey = "bench.status"

	// IterationKey is the repetition index inside a suite.
	IterationKey = "bench.iteration"

	// RunIDKey identifies one suite execution.
	RunIDKey = "bench.run_id"
)

// Dataset context
const (
	DatasetTrainKey  = "dataset.train"
	DatasetTestKey   = "dataset.test"
	DatasetLabelsKey = "dataset.labels"

	// SamplesKey is the number of rows in a loaded table.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns in a loaded table.
	FeaturesKey = "data.features"
)

// Performance
const (
	// DurationSecondsKey is the reported benchmark time.
	DurationSecondsKey = "perf.duration_seconds"

	// WallSecondsKey is the wall-clock time the harness observed around a
	// subprocess, including process start-up.
	WallSecondsKey = "perf.wall_seconds"

	// TimeoutKey is the configured bound.
	TimeoutKey = "perf.timeout"
)

// Subprocess context
const (
	CommandKey  = "proc.command"
	ExitCodeKey = "proc.exit_code"
	WorkDirKey  = "proc.workdir"
)

// Standard status values.
const (
	StatusSuccess = "success"
	StatusTimeout = "timeout"
	StatusFailure = "failure"
)
