// Package benchtest provides fixtures for adapter tests: CSV files, fake
// toolkit executables written as shell scripts, and ready-made Settings.
package benchtest

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/YuminosukeSato/scibench/core/bench"
	"github.com/YuminosukeSato/scibench/pkg/log"
)

// RequireShell skips the test on platforms without /bin/sh.
func RequireShell(t testing.TB) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake toolkit executables need /bin/sh")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteCSV writes rows (already comma separated) as a CSV file.
func WriteCSV(t testing.TB, dir, name string, rows ...string) string {
	t.Helper()
	return WriteFile(t, dir, name, strings.Join(rows, "\n")+"\n")
}

// WriteScript writes an executable /bin/sh script with the given body.
func WriteScript(t testing.TB, dir, name, body string) string {
	t.Helper()
	RequireShell(t)
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write script %s: %v", path, err)
	}
	return path
}

// FakePython writes a "python" stand-in that ignores the driver source,
// copies predictions (one value per line) to the path following
// --predictions if that flag is present, and prints stdout verbatim.
func FakePython(t testing.TB, dir string, predictions []string, stdout string) string {
	t.Helper()
	body := `pred=""
while [ $# -gt 0 ]; do
  case "$1" in
    --predictions) pred="$2"; shift ;;
  esac
  shift
done
if [ -n "$pred" ]; then
  printf '` + strings.Join(predictions, `\n`) + `\n' > "$pred"
fi
printf '%s\n' '` + stdout + `'`
	return WriteScript(t, dir, "python", body)
}

// Settings returns Settings for dataset with a debug TestLogger and a
// workspace parent inside t.TempDir().
func Settings(t testing.TB, dataset ...string) (bench.Settings, *log.TestLogger) {
	t.Helper()
	logger, _ := log.NewTestLogger(log.LevelDebug)
	return bench.Settings{
		Dataset: bench.Dataset(dataset),
		Verbose: true,
		Logger:  logger,
		WorkDir: t.TempDir(),
	}, logger
}
