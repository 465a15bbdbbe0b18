package bench

import (
	"fmt"

	"github.com/YuminosukeSato/scibench/pkg/errors"
)

// Dataset is an ordered list of 1 to 3 file paths: training data, test
// data, and the true labels for the test data.
type Dataset []string

// Train returns the training file.
func (d Dataset) Train() string {
	if len(d) == 0 {
		return ""
	}
	return d[0]
}

// Test returns the test file if present.
func (d Dataset) Test() (string, bool) {
	if len(d) < 2 {
		return "", false
	}
	return d[1], true
}

// Labels returns the true-labels file if present.
func (d Dataset) Labels() (string, bool) {
	if len(d) < 3 {
		return "", false
	}
	return d[2], true
}

// Validate checks the general 1..3 layout.
func (d Dataset) Validate(method string) error {
	if len(d) < 1 || len(d) > 3 {
		return errors.NewDatasetShapeError(method, "between one and three", len(d))
	}
	for i, p := range d {
		if p == "" {
			return errors.NewValidationError(fmt.Sprintf("dataset[%d]", i), "empty path", p)
		}
	}
	return nil
}

// RequireExactly returns a DatasetShapeError unless the dataset has n files.
func (d Dataset) RequireExactly(method string, n int) error {
	if len(d) != n {
		return errors.NewDatasetShapeError(method, numberWord(n), len(d))
	}
	return nil
}

// RequireAtLeast returns a DatasetShapeError when fewer than n files are given.
func (d Dataset) RequireAtLeast(method string, n int) error {
	if len(d) < n {
		return errors.NewDatasetShapeError(method, "at least "+numberWord(n), len(d))
	}
	return nil
}

func numberWord(n int) string {
	switch n {
	case 1:
		return "one"
	case 2:
		return "two"
	case 3:
		return "three"
	default:
		return fmt.Sprint(n)
	}
}
