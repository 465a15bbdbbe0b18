package scikit

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/scibench/core/bench"
	"github.com/YuminosukeSato/scibench/core/bench/benchtest"
	"github.com/YuminosukeSato/scibench/pkg/errors"
	"github.com/YuminosukeSato/scibench/pkg/log"
	"github.com/YuminosukeSato/scibench/toolkit"
)

type files struct {
	train, test, labels string
}

func writeFiles(t *testing.T) files {
	t.Helper()
	dir := t.TempDir()
	return files{
		train:  benchtest.WriteCSV(t, dir, "train.csv", "1,2,1", "2,3,2", "3,4,3"),
		test:   benchtest.WriteCSV(t, dir, "test.csv", "1,2", "2,2", "4,5"),
		labels: benchtest.WriteCSV(t, dir, "labels.csv", "1", "2", "4"),
	}
}

// argsRecorder is a python stand-in that drops "-c <source>" and records
// the remaining arguments one per line in args.txt.
const argsRecorder = `shift 2
printf '%s\n' "$@" > args.txt
echo "total_time: 0.5s"`

func recordedArgs(t *testing.T, path string) []string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(raw)), "\n")
}

func TestSVRRunTiming(t *testing.T) {
	f := writeFiles(t)
	python := benchtest.WriteScript(t, t.TempDir(), "python", argsRecorder)
	settings, _ := benchtest.Settings(t, f.train, f.test)

	svr, err := NewSVR(settings, toolkit.Config{Python: python})
	require.NoError(t, err)
	defer svr.Close()

	res := svr.RunTiming(context.Background(), "-c 2.5 -g 0.01")
	require.True(t, res.OK(), "got %v", res)
	assert.Equal(t, 0.5, res.Seconds())

	assert.Equal(t, []string{
		"--train", f.train,
		"--test", f.test,
		"--predictions", svr.Workspace().Path("predictions.csv"),
		"--c", "2.5",
		"--epsilon", "1",
		"--gamma", "0.01",
		"--kernel", "rbf",
	}, recordedArgs(t, svr.Workspace().Path("args.txt")))
}

func TestSVRRejectsBadOptions(t *testing.T) {
	f := writeFiles(t)
	python := benchtest.WriteScript(t, t.TempDir(), "python", argsRecorder)

	for _, opts := range []string{"-c abc", "-k quantum", "-c -1", "--unknown 1"} {
		t.Run(opts, func(t *testing.T) {
			settings, logger := benchtest.Settings(t, f.train)
			svr, err := NewSVR(settings, toolkit.Config{Python: python})
			require.NoError(t, err)
			defer svr.Close()

			res := svr.RunTiming(context.Background(), opts)
			assert.Equal(t, bench.SentinelFailure, res.Seconds())
			var verr *errors.ValidationError
			assert.True(t, errors.As(res.Err, &verr), "got %v", res.Err)
			assert.True(t, logger.HasLevel(log.LevelError))
			assert.False(t, svr.Workspace().Exists("args.txt"))
		})
	}
}

func TestSVRLenientOptions(t *testing.T) {
	f := writeFiles(t)
	python := benchtest.WriteScript(t, t.TempDir(), "python", argsRecorder)
	settings, _ := benchtest.Settings(t, f.train)
	settings.LenientOptions = true

	errors.SetWarningHandler(func(error) {})
	svr, err := NewSVR(settings, toolkit.Config{Python: python})
	require.NoError(t, err)
	defer svr.Close()

	res := svr.RunTiming(context.Background(), "-c abc")
	require.True(t, res.OK(), "got %v", res)
	assert.Contains(t, recordedArgs(t, svr.Workspace().Path("args.txt")), "1")
}

func TestSVRRunMetrics(t *testing.T) {
	f := writeFiles(t)
	python := benchtest.FakePython(t, t.TempDir(), []string{"1", "2", "2"}, "total_time: 0.1s")
	settings, _ := benchtest.Settings(t, f.train, f.test, f.labels)

	svr, err := NewSVR(settings, toolkit.Config{Python: python})
	require.NoError(t, err)
	defer svr.Close()

	got, err := svr.RunMetrics(context.Background(), "")
	require.NoError(t, err)
	assert.InDelta(t, 4.0/3.0, got["Simple MSE"], 1e-12)
}

func TestSVRTimeout(t *testing.T) {
	f := writeFiles(t)
	python := benchtest.WriteScript(t, t.TempDir(), "python", `sleep 5; echo "total_time: 5s"`)
	settings, _ := benchtest.Settings(t, f.train)
	settings.Timeout = 100 * time.Millisecond

	svr, err := NewSVR(settings, toolkit.Config{Python: python})
	require.NoError(t, err)
	defer svr.Close()

	assert.Equal(t, bench.SentinelTimeout, svr.RunTiming(context.Background(), "").Seconds())
}

func TestLinearRidgeRegressionRunTiming(t *testing.T) {
	f := writeFiles(t)
	python := benchtest.WriteScript(t, t.TempDir(), "python", argsRecorder)
	settings, _ := benchtest.Settings(t, f.train)

	ridge, err := NewLinearRidgeRegression(settings, toolkit.Config{Python: python})
	require.NoError(t, err)
	defer ridge.Close()

	res := ridge.RunTiming(context.Background(), "-t 3")
	require.True(t, res.OK(), "got %v", res)
	assert.Equal(t, []string{"--train", f.train, "--alpha", "3"},
		recordedArgs(t, ridge.Workspace().Path("args.txt")))
}

func TestLinearRidgeRegressionRunMetrics(t *testing.T) {
	f := writeFiles(t)
	// 1.4 -> 1, 2.5 -> 2, 3.6 -> 4
	python := benchtest.FakePython(t, t.TempDir(), []string{"1.4", "2.5", "3.6"}, "total_time: 0.2s")
	settings, _ := benchtest.Settings(t, f.train, f.test, f.labels)

	ridge, err := NewLinearRidgeRegression(settings, toolkit.Config{Python: python})
	require.NoError(t, err)
	defer ridge.Close()

	got, err := ridge.RunMetrics(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, bench.Metrics{"Simple MSE": 0}, got)
}

func TestLinearRidgeRegressionMetricsNeedThreeDatasets(t *testing.T) {
	f := writeFiles(t)
	python := benchtest.FakePython(t, t.TempDir(), []string{"1"}, "total_time: 0.2s")
	settings, logger := benchtest.Settings(t, f.train)

	ridge, err := NewLinearRidgeRegression(settings, toolkit.Config{Python: python})
	require.NoError(t, err)
	defer ridge.Close()

	_, err = ridge.RunMetrics(context.Background(), "")
	var shapeErr *errors.DatasetShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.True(t, logger.ContainsMessage("requires three datasets"))
}

func TestDriversKeepTablesTwoDimensional(t *testing.T) {
	for name, src := range map[string]string{"svr": svrDriver, "ridge": ridgeDriver} {
		t.Run(name, func(t *testing.T) {
			// A single-column test file must load as n samples of one
			// feature, not one sample of n features.
			assert.Contains(t, src, `np.loadtxt(args.test, delimiter=",", ndmin=2)`)
			assert.Contains(t, src, `np.loadtxt(args.train, delimiter=",", ndmin=2)`)
			assert.NotContains(t, src, "atleast_2d")
		})
	}
}

func TestLinearRidgeRegressionSingleFeatureWithPython(t *testing.T) {
	if err := exec.Command("python3", "-c", "import numpy, sklearn").Run(); err != nil {
		t.Skip("python3 with numpy and scikit-learn not available")
	}
	dir := t.TempDir()
	train := benchtest.WriteCSV(t, dir, "train.csv", "0,1", "1,3", "2,5", "3,7")
	test := benchtest.WriteCSV(t, dir, "test.csv", "4", "5")
	labels := benchtest.WriteCSV(t, dir, "labels.csv", "9", "11")

	settings, _ := benchtest.Settings(t, train, test, labels)
	ridge, err := NewLinearRidgeRegression(settings, toolkit.Config{Python: "python3"})
	require.NoError(t, err)
	defer ridge.Close()

	got, err := ridge.RunMetrics(context.Background(), "-t 0.001")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got["Simple MSE"])
}
