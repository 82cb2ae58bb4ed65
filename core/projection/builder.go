package projection

import (
	"fmt"
	"math"
)

// MaxDensity is the upper bound on projection matrix density. Densities
// above 1/3 lose the sparsity advantage over the Achlioptas construction.
const MaxDensity = 1.0 / 3.0

// AutoDensity returns the recommended density for a feature count, following
// Ping Li et al.: min(1/sqrt(n_features), 1/3).
func AutoDensity(nFeatures int) float64 {
	return math.Min(1/math.Sqrt(float64(nFeatures)), MaxDensity)
}

// BuildSparseRandomMatrix generates an [nComponents × nFeatures] sparse
// random matrix suitable for projection. Every stored value is exactly +s or
// -s with s = sqrt(1/density)/sqrt(nComponents); each entry is nonzero with
// probability density, independently.
//
// Draw order per row is fixed and part of the contract: nFeatures selection
// draws (one per column, selected when the draw is strictly below density,
// columns kept in ascending order), then one sign draw per selected column
// (a draw below 0.5 makes the value negative). A seeded Source therefore
// reproduces the matrix bit for bit.
//
// density must lie in (0, 1/3] and both dimensions must be positive,
// otherwise ErrInvalidArgument is returned.
func BuildSparseRandomMatrix(nComponents, nFeatures int, density float64, src Source) (*CSR, error) {
	if nComponents <= 0 {
		return nil, fmt.Errorf("%w: nComponents must be positive, got %d", ErrInvalidArgument, nComponents)
	}
	if nFeatures <= 0 {
		return nil, fmt.Errorf("%w: nFeatures must be positive, got %d", ErrInvalidArgument, nFeatures)
	}
	if density <= 0 || density > MaxDensity {
		return nil, fmt.Errorf("%w: density must be in (0, 1/3], got %g", ErrInvalidArgument, density)
	}

	// Pre-size at the expected nonzero count to avoid growth churn. The
	// realized count varies per Bernoulli trial, so append still handles
	// overflow past the hint.
	expected := int(math.Ceil(density * float64(nComponents) * float64(nFeatures)))
	data := make([]float64, 0, expected)
	indices := make([]int, 0, expected)
	indptr := make([]int, 1, nComponents+1)

	for i := 0; i < nComponents; i++ {
		rowStart := len(indices)
		for j := 0; j < nFeatures; j++ {
			if src.Float64() < density {
				indices = append(indices, j)
			}
		}
		for range indices[rowStart:] {
			if src.Float64() < 0.5 {
				data = append(data, -1)
			} else {
				data = append(data, 1)
			}
		}
		indptr = append(indptr, len(indices))
	}

	m := &CSR{rows: nComponents, cols: nFeatures, data: data, indices: indices, indptr: indptr}
	m.scale(math.Sqrt(1/density) / math.Sqrt(float64(nComponents)))
	return m, nil
}
