// Package toolkit runs external ML toolkits as subprocesses. A delegate
// reports its own elapsed time on stdout as "total_time: <seconds>s" so
// that interpreter and JVM start-up are not counted.
package toolkit

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/YuminosukeSato/scibench/core/bench"
	"github.com/YuminosukeSato/scibench/pkg/errors"
	"github.com/YuminosukeSato/scibench/pkg/log"
)

// DefaultPython is used when Config.Python is empty.
const DefaultPython = "python3"

// waitDelay bounds how long Run waits for output pipes after the process
// has been killed on cancellation.
const waitDelay = 2 * time.Second

// Config locates the toolkit executables.
type Config struct {
	// MatlabBin is the directory holding the matlab executable. Empty
	// means look matlab up on PATH.
	MatlabBin string

	// Python is the interpreter used for the scikit and shogun drivers.
	Python string
}

// PythonOrDefault returns Python or DefaultPython.
func (c Config) PythonOrDefault() string {
	if c.Python == "" {
		return DefaultPython
	}
	return c.Python
}

// MatlabExecutable returns the path of the matlab binary.
func (c Config) MatlabExecutable() string {
	if c.MatlabBin == "" {
		return "matlab"
	}
	return filepath.Join(c.MatlabBin, "matlab")
}

// Invocation is one subprocess call: an argument vector and a working
// directory. Arguments are passed to the process unchanged.
type Invocation struct {
	Name string
	Args []string
	Dir  string
}

// String renders the invocation for logs, quoting arguments with spaces.
// Long inline scripts are abbreviated.
func (inv Invocation) String() string {
	parts := make([]string, 0, len(inv.Args)+1)
	parts = append(parts, inv.Name)
	for _, a := range inv.Args {
		if len(a) > 80 {
			a = a[:77] + "..."
		}
		if strings.ContainsAny(a, " \t\n'\"") {
			a = strconv.Quote(a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// MatlabInvocation builds the call of a MATLAB function taking a single
// character-vector argument:
//
//	matlab -nodisplay -nosplash -r "try, FUNC('args'), catch, exit(1), end, exit(0)"
//
// Single quotes in args are doubled, which is MATLAB's escape for a quote
// inside a character vector.
func MatlabInvocation(cfg Config, function, args, dir string) Invocation {
	escaped := strings.ReplaceAll(args, "'", "''")
	script := "try, " + function + "('" + escaped + "'), catch, exit(1), end, exit(0)"
	return Invocation{
		Name: cfg.MatlabExecutable(),
		Args: []string{"-nodisplay", "-nosplash", "-r", script},
		Dir:  dir,
	}
}

// PythonInvocation builds `python -c <source> args...`.
func PythonInvocation(cfg Config, source string, args []string, dir string) Invocation {
	return Invocation{
		Name: cfg.PythonOrDefault(),
		Args: append([]string{"-c", source}, args...),
		Dir:  dir,
	}
}

// Run starts inv and returns its combined stdout and stderr. The process is
// killed when ctx ends. A non-zero exit status is an error; the output is
// returned in every case.
func Run(ctx context.Context, inv Invocation) ([]byte, error) {
	cmd := exec.CommandContext(ctx, inv.Name, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.WaitDelay = waitDelay

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return out.Bytes(), errors.Wrapf(ctxErr, "%s interrupted", filepath.Base(inv.Name))
	}
	if err != nil {
		return out.Bytes(), errors.Wrapf(err, "run %s", filepath.Base(inv.Name))
	}
	return out.Bytes(), nil
}

var totalTimePattern = regexp.MustCompile(`total_time:\s*([-+0-9.eE]+)s`)

// ParseTotalTime extracts the first "total_time: <float>s" value from
// output.
func ParseTotalTime(output []byte) (time.Duration, error) {
	m := totalTimePattern.FindSubmatch(output)
	if m == nil {
		return 0, errors.NewTimerParseError(output, "wrong format")
	}
	secs, err := strconv.ParseFloat(string(m[1]), 64)
	if err != nil {
		return 0, errors.NewTimerParseError(output, err.Error())
	}
	if err := errors.CheckScalar("total_time", secs); err != nil {
		return 0, errors.NewTimerParseError(output, err.Error())
	}
	if secs < 0 {
		return 0, errors.NewTimerParseError(output, "negative duration")
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// Time runs inv and returns the self-reported elapsed time. A failed
// process, an interrupted process or output without a timer line yields a
// Failure; the caller's timeout wrapper turns interruption by its own
// deadline into a Timeout.
func Time(ctx context.Context, method string, inv Invocation, logger log.Logger) bench.Result {
	logger.Debug("Starting toolkit process.", log.MethodKey, method, log.CommandKey, inv.String(), log.WorkDirKey, inv.Dir)

	timer := bench.StartTimer()
	out, err := Run(ctx, inv)
	wall := timer.Stop()

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		err = errors.NewDelegateError(method, "run toolkit", err)
		if ctx.Err() == nil {
			logger.Error("Toolkit process failed.", err,
				log.MethodKey, method, log.ExitCodeKey, exitCode, "output", tail(out))
		}
		return bench.Failed(err)
	}

	elapsed, err := ParseTotalTime(out)
	if err != nil {
		logger.Error("Can't parse the timer.", err, log.MethodKey, method)
		return bench.Failed(err)
	}

	logger.Debug("Toolkit process finished.",
		log.MethodKey, method,
		log.DurationSecondsKey, elapsed.Seconds(),
		log.WallSecondsKey, wall.Seconds())
	return bench.Succeeded(elapsed)
}

func tail(out []byte) string {
	const n = 512
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return string(out)
}
