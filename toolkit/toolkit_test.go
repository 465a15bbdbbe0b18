package toolkit

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/scibench/core/bench"
	"github.com/YuminosukeSato/scibench/core/bench/benchtest"
	"github.com/YuminosukeSato/scibench/pkg/errors"
	"github.com/YuminosukeSato/scibench/pkg/log"
)

func TestParseTotalTime(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    time.Duration
		wantErr bool
	}{
		{name: "plain", output: "total_time: 1.5s\n", want: 1500 * time.Millisecond},
		{name: "surrounded", output: "Loading data\n[INFO ] total_time: 0.25s\nbye\n", want: 250 * time.Millisecond},
		{name: "exponent", output: "total_time: 2e-3s", want: 2 * time.Millisecond},
		{name: "first wins", output: "total_time: 1s total_time: 9s", want: time.Second},
		{name: "missing", output: "fit done\n", wantErr: true},
		{name: "not a number", output: "total_time: 1.2.3s", wantErr: true},
		{name: "negative", output: "total_time: -4s", wantErr: true},
		{name: "empty", output: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTotalTime([]byte(tt.output))
			if tt.wantErr {
				var parseErr *errors.TimerParseError
				require.True(t, errors.As(err, &parseErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, float64(tt.want), float64(got), float64(time.Microsecond))
		})
	}
}

func TestMatlabInvocation(t *testing.T) {
	cfg := Config{MatlabBin: "/opt/matlab/bin"}
	inv := MatlabInvocation(cfg, "LOGISTIC_REGRESSION", "-i train.csv -t it's.csv", "/work")

	assert.Equal(t, "/opt/matlab/bin/matlab", inv.Name)
	assert.Equal(t, "/work", inv.Dir)
	assert.Equal(t, []string{
		"-nodisplay", "-nosplash", "-r",
		"try, LOGISTIC_REGRESSION('-i train.csv -t it''s.csv'), catch, exit(1), end, exit(0)",
	}, inv.Args)

	assert.Equal(t, "matlab", Config{}.MatlabExecutable())
}

func TestPythonInvocation(t *testing.T) {
	inv := PythonInvocation(Config{}, "print(1)", []string{"--train", "a.csv"}, "")
	assert.Equal(t, DefaultPython, inv.Name)
	assert.Equal(t, []string{"-c", "print(1)", "--train", "a.csv"}, inv.Args)
	assert.Contains(t, inv.String(), `"print(1)"`)
}

func TestRunPassesArgumentsWithoutShell(t *testing.T) {
	dir := t.TempDir()
	script := benchtest.WriteScript(t, dir, "echo-args", `for a in "$@"; do printf '[%s]\n' "$a"; done; pwd`)

	out, err := Run(context.Background(), Invocation{Name: script, Args: []string{"a b", "$HOME", ";rm"}, Dir: dir})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"[a b]", "[$HOME]", "[;rm]"}, lines[:3])
	wantDir, _ := filepath.EvalSymlinks(dir)
	gotDir, _ := filepath.EvalSymlinks(lines[3])
	assert.Equal(t, wantDir, gotDir)
}

func TestTime(t *testing.T) {
	dir := t.TempDir()
	logger, _ := log.NewTestLogger(log.LevelDebug)

	ok := benchtest.WriteScript(t, dir, "ok", `echo "total_time: 0.5s"`)
	res := Time(context.Background(), "test.method", Invocation{Name: ok}, logger)
	require.True(t, res.OK(), "got %v", res)
	assert.Equal(t, 0.5, res.Seconds())

	noTimer := benchtest.WriteScript(t, dir, "no-timer", `echo "done"`)
	res = Time(context.Background(), "test.method", Invocation{Name: noTimer}, logger)
	assert.Equal(t, bench.SentinelFailure, res.Seconds())
	assert.True(t, logger.ContainsMessage("Can't parse the timer."))
	assert.True(t, logger.HasLevel(log.LevelError))

	logger.Clear()
	crash := benchtest.WriteScript(t, dir, "crash", `echo "total_time: 0.1s"; exit 3`)
	res = Time(context.Background(), "test.method", Invocation{Name: crash}, logger)
	assert.Equal(t, bench.StatusFailure, res.Status)
	var delegateErr *errors.DelegateError
	assert.True(t, errors.As(res.Err, &delegateErr))
	assert.True(t, logger.ContainsField(log.ExitCodeKey, 3.0))

	res = Time(context.Background(), "test.method", Invocation{Name: filepath.Join(dir, "missing")}, logger)
	assert.Equal(t, bench.StatusFailure, res.Status)
}

func TestTimeKilledByTimeout(t *testing.T) {
	dir := t.TempDir()
	slow := benchtest.WriteScript(t, dir, "slow", `sleep 5; echo "total_time: 5s"`)
	logger, _ := log.NewTestLogger(log.LevelDebug)

	start := time.Now()
	res := bench.WithTimeout(context.Background(), 100*time.Millisecond, func(ctx context.Context) bench.Result {
		return Time(ctx, "test.method", Invocation{Name: slow}, logger)
	})
	assert.Equal(t, bench.StatusTimeout, res.Status)
	assert.Equal(t, bench.SentinelTimeout, res.Seconds())
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestRunMissingExecutable(t *testing.T) {
	_, err := Run(context.Background(), Invocation{Name: filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
