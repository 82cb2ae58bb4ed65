package projection

import "errors"

var (
	// ErrInvalidArgument indicates a malformed density, eps, or shape
	// parameter. It is detected before any matrix construction starts.
	ErrInvalidArgument = errors.New("projection: invalid argument")

	// ErrNotFitted indicates Transform was called before a successful Fit.
	ErrNotFitted = errors.New("projection: transformer has not been fitted")

	// ErrDimensionMismatch indicates the input's feature count disagrees
	// with the fitted projection matrix.
	ErrDimensionMismatch = errors.New("projection: feature dimension mismatch")
)
