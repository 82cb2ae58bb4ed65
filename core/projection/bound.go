package projection

import (
	"fmt"
	"math"
)

// MinComponents returns the minimum target dimensionality for a random
// projection of nSamples points such that, with good probability, all
// pairwise squared distances are preserved within a factor of (1 ± eps).
// This is the Johnson-Lindenstrauss bound:
//
//	n_components >= 4 * ln(n_samples) / (eps²/2 - eps³/3)
//
// The bound depends only on the number of samples, not on the original
// feature count. The result is truncated toward zero, never rounded up.
//
// eps must lie in (0, 1) and nSamples must be at least 1, otherwise
// ErrInvalidArgument is returned.
func MinComponents(nSamples, eps float64) (int, error) {
	if eps <= 0 || eps >= 1 {
		return 0, fmt.Errorf("%w: eps must be in (0, 1), got %g", ErrInvalidArgument, eps)
	}
	if nSamples < 1 {
		return 0, fmt.Errorf("%w: nSamples must be >= 1, got %g", ErrInvalidArgument, nSamples)
	}
	denominator := eps*eps/2 - eps*eps*eps/3
	return int(4 * math.Log(nSamples) / denominator), nil
}
