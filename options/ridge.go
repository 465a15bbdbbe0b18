package options

import "github.com/YuminosukeSato/scibench/pkg/errors"

// Ridge are the flags shared by the ridge regression methods of every
// toolkit.
type Ridge struct {
	Alpha float64 `arg:"-t,--alpha" default:"1.0" help:"regularization strength"`
}

// Validate rejects a negative alpha.
func (o Ridge) Validate() error {
	if o.Alpha < 0 {
		return errors.NewValidationError("alpha", "must be non-negative", o.Alpha)
	}
	return nil
}
