// Package projection implements sparse random projection: dimensionality
// reduction that approximately preserves pairwise distances per the
// Johnson-Lindenstrauss lemma, using a seeded sparse sign matrix in
// compressed sparse row form.
package projection

import (
	"fmt"
	"log/slog"
	"math"
)

// =============================================================================
// Configuration
// =============================================================================

// DefaultEps is the distortion tolerance used when none is configured.
const DefaultEps = 0.1

// OptionalInt is an integer parameter that may be left to auto-resolution.
// The zero value means auto.
type OptionalInt struct {
	value int
	set   bool
}

// Int returns an explicitly set OptionalInt.
func Int(v int) OptionalInt { return OptionalInt{value: v, set: true} }

// OptionalFloat is a float parameter that may be left to auto-resolution.
// The zero value means auto.
type OptionalFloat struct {
	value float64
	set   bool
}

// Float returns an explicitly set OptionalFloat.
func Float(v float64) OptionalFloat { return OptionalFloat{value: v, set: true} }

// Config holds construction options for a SparseRandomProjector.
type Config struct {
	// Components is the target dimensionality. Auto resolves it from the
	// Johnson-Lindenstrauss bound for the sample count seen at fit time,
	// capped at the feature count.
	Components OptionalInt

	// Density is the ratio of nonzero entries in the projection matrix,
	// in (0, 1/3]. Auto resolves it to min(1/sqrt(n_features), 1/3).
	// Use 1/3 to reproduce the Achlioptas construction.
	Density OptionalFloat

	// Eps is the distortion tolerance driving the auto Components bound.
	// Zero means DefaultEps. Unused when Components is explicit.
	Eps float64

	// Logger receives the non-fatal capping diagnostic. Nil means the
	// default slog logger.
	Logger *slog.Logger
}

// =============================================================================
// SparseRandomProjector
// =============================================================================

// SparseRandomProjector reduces dimensionality by multiplying data with the
// transpose of a sparse random matrix. Compared to a dense Gaussian random
// matrix it offers similar embedding quality with far less memory and faster
// projection.
//
// Fit freezes the resolved components, density, and matrix; Transform only
// reads them, so concurrent Transforms on a fitted instance are safe. Fit
// itself takes no lock and must not race with other calls on the same
// instance.
type SparseRandomProjector struct {
	cfg Config

	fitted      bool
	nComponents int
	density     float64
	components  *CSR
}

// NewSparseRandomProjector returns an unfitted projector with the given
// configuration.
func NewSparseRandomProjector(cfg Config) *SparseRandomProjector {
	if cfg.Eps == 0 {
		cfg.Eps = DefaultEps
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &SparseRandomProjector{cfg: cfg}
}

// Fit resolves the target dimensionality and density for the given data
// shape and builds the projection matrix from src. Only the shape matters;
// no row data is consumed. On error the previous fitted state, if any, is
// left untouched.
func (p *SparseRandomProjector) Fit(nSamples, nFeatures int, src Source) error {
	if nSamples <= 0 {
		return fmt.Errorf("%w: nSamples must be positive, got %d", ErrInvalidArgument, nSamples)
	}
	if nFeatures <= 0 {
		return fmt.Errorf("%w: nFeatures must be positive, got %d", ErrInvalidArgument, nFeatures)
	}

	eps := p.cfg.Eps
	if eps == 0 {
		eps = DefaultEps
	}
	logger := p.cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	nComponents := p.cfg.Components.value
	if !p.cfg.Components.set {
		resolved, err := MinComponents(float64(nSamples), eps)
		if err != nil {
			return err
		}
		if resolved > nFeatures {
			logger.Warn("johnson-lindenstrauss bound exceeds feature count, capping",
				slog.Float64("eps", eps),
				slog.Int("n_samples", nSamples),
				slog.Int("bound", resolved),
				slog.Int("n_features", nFeatures))
			resolved = nFeatures
		}
		nComponents = resolved
	} else if nComponents <= 0 {
		return fmt.Errorf("%w: nComponents must be positive, got %d", ErrInvalidArgument, nComponents)
	}

	density := p.cfg.Density.value
	if !p.cfg.Density.set {
		density = AutoDensity(nFeatures)
	}

	components, err := BuildSparseRandomMatrix(nComponents, nFeatures, density, src)
	if err != nil {
		return err
	}

	p.nComponents = nComponents
	p.density = density
	p.components = components
	p.fitted = true
	return nil
}

// Transform projects data into the fitted target space by computing
// data × componentsᵀ. A dense input yields a dense [nRows × nComponents]
// result, a sparse input a sparse one. Transform is idempotent and safe to
// call concurrently on a fitted instance.
func (p *SparseRandomProjector) Transform(data Matrix) (Matrix, error) {
	if !p.fitted {
		return nil, ErrNotFitted
	}
	_, cols := data.Dims()
	if cols != p.components.cols {
		return nil, fmt.Errorf("%w: input has %d features, matrix was fitted for %d",
			ErrDimensionMismatch, cols, p.components.cols)
	}
	return data.MulTransposed(p.components), nil
}

// FitTransform fits on data's shape and immediately projects it.
func (p *SparseRandomProjector) FitTransform(data Matrix, src Source) (Matrix, error) {
	rows, cols := data.Dims()
	if err := p.Fit(rows, cols, src); err != nil {
		return nil, err
	}
	return p.Transform(data)
}

// =============================================================================
// Fitted State Accessors
// =============================================================================

// IsFitted reports whether a successful Fit has run.
func (p *SparseRandomProjector) IsFitted() bool { return p.fitted }

// NComponents returns the resolved target dimensionality, zero before fit.
func (p *SparseRandomProjector) NComponents() int { return p.nComponents }

// Density returns the resolved density, zero before fit.
func (p *SparseRandomProjector) Density() float64 { return p.density }

// Components returns the fitted projection matrix, nil before fit. It is
// owned by the projector and must be treated read-only.
func (p *SparseRandomProjector) Components() *CSR { return p.components }

// Scale returns the magnitude shared by every nonzero matrix entry,
// sqrt(1/density)/sqrt(nComponents), zero before fit.
func (p *SparseRandomProjector) Scale() float64 {
	if !p.fitted {
		return 0
	}
	return math.Sqrt(1/p.density) / math.Sqrt(float64(p.nComponents))
}
