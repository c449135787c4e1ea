package td

import "github.com/pkg/errors"

// Failure kinds of a propagation run. All are fatal: a failed run produces
// no time series and nothing is retried.
var (
	// ErrInvalidMode is returned when the requested run mode is not one of
	// the supported kernel modes.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrMissingParameter is returned when plot mode is requested without
	// the bond site or the hopping amplitude.
	ErrMissingParameter = errors.New("missing parameter")
	// ErrUnsupportedOrder is returned for integration orders other than
	// 1 and 4.
	ErrUnsupportedOrder = errors.New("unsupported integration order")
	// ErrDimensionMismatch is returned when tensor or vector shapes are
	// inconsistent with the declared orbital and electron counts.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
