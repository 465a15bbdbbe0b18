package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scibench/pkg/errors"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "1,2,3\n4.5, 5,-6e1\n")

	m, err := Load(path)
	require.NoError(t, err)

	want := mat.NewDense(2, 3, []float64{1, 2, 3, 4.5, 5, -60})
	assert.True(t, mat.Equal(want, m))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine int
	}{
		{name: "ragged rows", content: "1,2\n3\n", wantLine: 2},
		{name: "non numeric", content: "1,2\n3,abc\n", wantLine: 2},
		{name: "nan cell", content: "NaN,1\n", wantLine: 1},
		{name: "infinite cell", content: "1,2\n3,4\n+Inf,5\n", wantLine: 3},
		{name: "empty file", content: "", wantLine: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.content)
			_, err := Load(path)
			require.Error(t, err)

			var loadErr *errors.LoadError
			require.True(t, errors.As(err, &loadErr), "got %T", err)
			assert.Equal(t, path, loadErr.Path)
			assert.Equal(t, tt.wantLine, loadErr.Line)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	var loadErr *errors.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadLargeTableInParallel(t *testing.T) {
	var b strings.Builder
	const rows = 2500
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "%d,%d\n", i, 2*i)
	}
	m, err := Read("large", strings.NewReader(b.String()))
	require.NoError(t, err)

	r, c := m.Dims()
	assert.Equal(t, rows, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, float64(2*(rows-1)), m.At(rows-1, 1))

	_, err = Read("large", strings.NewReader(b.String()+"1,x\n"))
	var loadErr *errors.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, rows+1, loadErr.Line)
}

func TestSplitTrainData(t *testing.T) {
	path := writeFile(t, "1,2,10\n3,4,20\n5,6,30\n")

	X, y, err := SplitTrainData(path)
	require.NoError(t, err)

	assert.True(t, mat.Equal(mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6}), X))
	assert.Equal(t, []float64{10, 20, 30}, y.RawVector().Data)

	_, _, err = SplitTrainData(writeFile(t, "1\n2\n"))
	assert.Error(t, err)
}

func TestLoadVector(t *testing.T) {
	col, err := LoadVector(writeFile(t, "1\n2\n3\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, col)

	row, err := LoadVector(writeFile(t, "4,5,6\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, row)

	_, err = LoadVector(writeFile(t, "1,2\n3,4\n"))
	assert.Error(t, err)
}

func TestWriteVectorRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.csv")
	require.NoError(t, WriteVector(path, []float64{0, 1.5, -2}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0\n1.5\n-2\n", string(raw))

	got, err := LoadVector(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1.5, -2}, got)
}
