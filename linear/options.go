package linear

// Option configures a Ridge model.
type Option func(*Ridge)

// WithAlpha sets the L2 regularization strength.
func WithAlpha(alpha float64) Option {
	return func(r *Ridge) {
		r.alpha = alpha
	}
}

// WithFitIntercept sets whether to calculate the intercept
func WithFitIntercept(fit bool) Option {
	return func(r *Ridge) {
		r.fitIntercept = fit
	}
}

// WithParallelThreshold sets the row count above which centering and
// prediction are split across CPUs.
func WithParallelThreshold(rows int) Option {
	return func(r *Ridge) {
		r.parallelThreshold = rows
	}
}
