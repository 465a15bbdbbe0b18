// Package dataset reads the comma-delimited numeric tables the benchmark
// methods consume and writes prediction files in the same format.
package dataset

import (
	"bufio"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scibench/core/parallel"
	"github.com/YuminosukeSato/scibench/pkg/errors"
)

// Load reads a numeric CSV file into a matrix with one row per record.
// Every record must have the same number of fields and every field must
// parse as a finite float.
func Load(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewLoadError(path, 0, err)
	}
	defer f.Close()

	records, err := readRecords(path, f)
	if err != nil {
		return nil, err
	}
	return parse(path, records)
}

// Read is Load for an already open reader. name is used in errors.
func Read(name string, r io.Reader) (*mat.Dense, error) {
	records, err := readRecords(name, r)
	if err != nil {
		return nil, err
	}
	return parse(name, records)
}

func readRecords(path string, r io.Reader) ([][]string, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.TrimLeadingSpace = true

	var records [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				line = perr.Line
			}
			return nil, errors.NewLoadError(path, line, err)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, errors.NewLoadError(path, 0, errors.ErrEmptyData)
	}
	return records, nil
}

func parse(path string, records [][]string) (*mat.Dense, error) {
	rows, cols := len(records), len(records[0])
	data := make([]float64, rows*cols)

	err := parallel.Run(rows, parallel.DefaultThreshold, func(start, end int) error {
		for i := start; i < end; i++ {
			for j, field := range records[i] {
				v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
				if err != nil {
					return errors.NewLoadError(path, i+1, errors.Newf("column %d: %q is not a number", j+1, field))
				}
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return errors.NewLoadError(path, i+1, errors.Newf("column %d: non-finite value %q", j+1, field))
				}
				data[i*cols+j] = v
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mat.NewDense(rows, cols, data), nil
}

// SplitTrainData loads a training table whose last column holds the
// responses and returns the features and the responses separately.
func SplitTrainData(path string) (*mat.Dense, *mat.VecDense, error) {
	m, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	return Split(path, m)
}

// Split separates the last column of m.
func Split(name string, m *mat.Dense) (*mat.Dense, *mat.VecDense, error) {
	r, c := m.Dims()
	if c < 2 {
		return nil, nil, errors.NewLoadError(name, 0, errors.Newf("need at least two columns to split responses, got %d", c))
	}
	X := mat.DenseCopyOf(m.Slice(0, r, 0, c-1))
	y := mat.VecDenseCopyOf(m.ColView(c - 1))
	return X, y, nil
}

// LoadVector reads a single-column or single-row file as a flat slice.
// Label and prediction files come in both shapes.
func LoadVector(path string) ([]float64, error) {
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	r, c := m.Dims()
	switch {
	case c == 1:
		return mat.Col(nil, 0, m), nil
	case r == 1:
		return mat.Row(nil, 0, m), nil
	default:
		return nil, errors.NewLoadError(path, 0, errors.Newf("expected a single row or column, got %dx%d", r, c))
	}
}

// WriteVector writes v one value per line.
func WriteVector(path string, v []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	w := bufio.NewWriter(f)
	for _, x := range v {
		w.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
