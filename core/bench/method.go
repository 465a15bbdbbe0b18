package bench

import (
	"context"
	"time"

	"github.com/YuminosukeSato/scibench/pkg/log"
)

// Metrics maps a metric name to its value.
type Metrics map[string]float64

// Method is one algorithm/toolkit pair under benchmark.
//
// RunTiming never panics and reports every problem through the Result.
// RunMetrics returns an error when the dataset layout does not allow
// metrics or the delegate fails. Close removes intermediate files and must
// be called once the method is no longer needed.
type Method interface {
	Name() string
	RunTiming(ctx context.Context, options string) Result
	RunMetrics(ctx context.Context, options string) (Metrics, error)
	Close() error
}

// Settings are the per-run parameters every adapter is constructed with.
type Settings struct {
	Dataset Dataset

	// Timeout bounds one RunTiming call. Zero means unbounded.
	Timeout time.Duration

	// Verbose enables informational log lines.
	Verbose bool

	// Logger defaults to log.GetLogger().
	Logger log.Logger

	// WorkDir is the parent directory of the scratch workspace. Empty
	// means os.TempDir().
	WorkDir string

	// LenientOptions restores the fallback-to-defaults behaviour for
	// unparsable option strings.
	LenientOptions bool
}

// LoggerOrDefault returns the configured logger or the process default.
func (s Settings) LoggerOrDefault() log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.GetLogger()
}
