// Command scibench times machine learning methods across toolkits and
// computes their quality metrics.
//
//	scibench run scikit.svr train.csv test.csv --options="-c 1.0"
//	scibench run --metrics shogun.decision_tree train.csv test.csv labels.csv
//	scibench suite config.yaml
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/fatih/color"

	"github.com/YuminosukeSato/scibench/core/bench"
	"github.com/YuminosukeSato/scibench/methods"
	"github.com/YuminosukeSato/scibench/pkg/errors"
	"github.com/YuminosukeSato/scibench/pkg/log"
	"github.com/YuminosukeSato/scibench/suite"
	"github.com/YuminosukeSato/scibench/toolkit"
)

type runCmd struct {
	Method   string        `arg:"positional,required" help:"method name, see 'scibench list'"`
	Datasets []string      `arg:"positional,required" help:"training file, then optional test and label files"`
	Options  string        `arg:"-o,--options" help:"method option string; it starts with '-', so join it with '=': --options=\"-c 1.0 -g 0.1\""`
	Metrics  bool          `arg:"-m,--metrics" help:"compute metrics instead of timing"`
	Timeout  time.Duration `arg:"-t,--timeout" default:"0s" help:"bound on one timing run, 0 for none"`
}

type suiteCmd struct {
	Config string `arg:"positional,required" help:"suite YAML file"`
}

type listCmd struct{}

type args struct {
	Run   *runCmd   `arg:"subcommand:run" help:"benchmark one method"`
	Suite *suiteCmd `arg:"subcommand:suite" help:"run a benchmark suite"`
	List  *listCmd  `arg:"subcommand:list" help:"list available methods"`

	MatlabBin      string `arg:"--matlab-bin,env:MATLAB_BIN" help:"directory containing the matlab executable"`
	Python         string `arg:"--python,env:SCIBENCH_PYTHON" help:"python interpreter for scikit and shogun"`
	WorkDir        string `arg:"--workdir" help:"parent directory for scratch workspaces"`
	LogLevel       string `arg:"--log-level" default:"warn" help:"debug, info, warn or error"`
	LogJSON        bool   `arg:"--log-json" help:"emit JSON log lines"`
	Verbose        bool   `arg:"-v,--verbose" help:"log progress of every benchmark"`
	LenientOptions bool   `arg:"--lenient-options" help:"fall back to defaults when options cannot be parsed"`
}

func (args) Description() string {
	return "scibench benchmarks machine learning methods implemented in MATLAB, scikit-learn, Shogun and gonum."
}

func (args) Version() string {
	return "scibench 0.1.0"
}

// parseArgs decodes argv (without the program name).
func parseArgs(argv []string) (args, *arg.Parser, error) {
	var a args
	p, err := arg.NewParser(arg.Config{Program: "scibench"}, &a)
	if err != nil {
		return a, nil, err
	}
	if err := p.Parse(argv); err != nil {
		return a, p, err
	}
	if p.Subcommand() == nil {
		return a, p, errors.New("missing subcommand")
	}
	return a, p, nil
}

func main() {
	a, p, err := parseArgs(os.Args[1:])
	switch {
	case p == nil:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	case errors.Is(err, arg.ErrHelp):
		p.WriteHelp(os.Stdout)
		os.Exit(0)
	case errors.Is(err, arg.ErrVersion):
		fmt.Println(a.Version())
		os.Exit(0)
	case err != nil:
		p.Fail(err.Error())
	}

	level := a.LogLevel
	if a.Verbose && level == "warn" {
		level = "info"
	}
	if err := log.SetupLogger(level, a.LogJSON, os.Stderr); err != nil {
		p.Fail(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case a.Run != nil:
		err = runMethod(ctx, a, color.Output)
	case a.Suite != nil:
		err = runSuite(ctx, a, color.Output)
	case a.List != nil:
		for _, name := range methods.Names() {
			fmt.Fprintln(color.Output, name)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		stop()
		os.Exit(1)
	}
}

func toolkitConfig(a args) toolkit.Config {
	return toolkit.Config{MatlabBin: a.MatlabBin, Python: a.Python}
}

func runMethod(ctx context.Context, a args, out io.Writer) error {
	settings := bench.Settings{
		Dataset:        bench.Dataset(a.Run.Datasets),
		Timeout:        a.Run.Timeout,
		Verbose:        a.Verbose,
		WorkDir:        a.WorkDir,
		LenientOptions: a.LenientOptions,
	}
	m, err := methods.New(a.Run.Method, settings, toolkitConfig(a))
	if err != nil {
		return err
	}
	defer m.Close()

	if a.Run.Metrics {
		metrics, err := m.RunMetrics(ctx, a.Run.Options)
		if err != nil {
			return err
		}
		printMetrics(out, metrics)
		return nil
	}

	res := m.RunTiming(ctx, a.Run.Options)
	fmt.Fprintf(out, "%s: %s\n", m.Name(), colorResult(res))
	if !res.OK() {
		return errors.Wrapf(res.Err, "%s", res.Status)
	}
	return nil
}

func runSuite(ctx context.Context, a args, out io.Writer) error {
	cfg, err := suite.Load(a.Suite.Config)
	if err != nil {
		return err
	}
	if a.MatlabBin != "" {
		cfg.General.MatlabBin = a.MatlabBin
	}
	if a.Python != "" {
		cfg.General.Python = a.Python
	}
	if a.WorkDir != "" {
		cfg.General.WorkDir = a.WorkDir
	}
	cfg.General.Verbose = cfg.General.Verbose || a.Verbose
	cfg.General.LenientOptions = cfg.General.LenientOptions || a.LenientOptions

	report, runErr := suite.Run(ctx, cfg, log.GetLogger())
	if report != nil {
		printReport(out, report)
		if cfg.General.Results != "" {
			if err := report.WriteJSON(cfg.General.Results); err != nil {
				return err
			}
		}
		if cfg.General.Chart != "" && runErr == nil {
			if err := report.PlotTimings(cfg.General.Chart); err != nil {
				log.GetLogger().Warn("Could not draw the timing chart.", err)
			}
		}
	}
	return runErr
}

func colorResult(res bench.Result) string {
	switch res.Status {
	case bench.StatusSuccess:
		return color.GreenString("%.6fs", res.Seconds())
	case bench.StatusTimeout:
		return color.YellowString("%g (timeout)", res.Seconds())
	default:
		return color.RedString("%g (failure)", res.Seconds())
	}
}

func printMetrics(out io.Writer, m bench.Metrics) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "%s: %s\n", color.CyanString(k), formatValue(m[k]))
	}
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.6g", v)
}

func printReport(out io.Writer, r *suite.Report) {
	for _, rec := range r.Records {
		var status string
		switch rec.Status {
		case log.StatusSuccess:
			status = color.GreenString("%.6fs ± %.6f", rec.Mean, rec.StdDev)
		case log.StatusTimeout:
			status = color.YellowString("timeout")
		default:
			status = color.RedString("failure")
		}
		train := ""
		if len(rec.Dataset) > 0 {
			train = rec.Dataset[0]
		}
		fmt.Fprintf(out, "%-34s %-40s %s\n", rec.Method, train, status)
		if len(rec.Metrics) > 0 {
			printMetrics(out, rec.Metrics)
		}
		if rec.Error != "" && rec.OK() {
			fmt.Fprintf(out, "  metrics: %s\n", color.RedString(rec.Error))
		}
	}
}
