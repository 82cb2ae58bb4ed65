package projection

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// matrixKey identifies a projection matrix by everything that determines its
// contents.
type matrixKey struct {
	components int
	features   int
	density    float64
	seed       int64
}

// MatrixCache reuses built projection matrices across projector instances
// that share identical parameters and seed. Cached matrices are frozen after
// construction, so handing the same *CSR to multiple readers is safe.
type MatrixCache struct {
	cache *lru.Cache[matrixKey, *CSR]
}

// NewMatrixCache creates a cache holding at most maxSize matrices. Sizes
// below 1 fall back to 16 entries.
func NewMatrixCache(maxSize int) *MatrixCache {
	if maxSize <= 0 {
		maxSize = 16
	}
	cache, _ := lru.New[matrixKey, *CSR](maxSize)
	return &MatrixCache{cache: cache}
}

// GetOrBuild returns the cached matrix for the given parameters, building
// and inserting it on a miss. The seed fully determines the draw sequence,
// so a hit is bit-identical to a fresh build.
func (c *MatrixCache) GetOrBuild(nComponents, nFeatures int, density float64, seed int64) (*CSR, error) {
	key := matrixKey{components: nComponents, features: nFeatures, density: density, seed: seed}
	if m, ok := c.cache.Get(key); ok {
		return m, nil
	}
	m, err := BuildSparseRandomMatrix(nComponents, nFeatures, density, NewSource(seed))
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, m)
	return m, nil
}

// Len returns the number of cached matrices.
func (c *MatrixCache) Len() int { return c.cache.Len() }

// Purge drops every cached matrix.
func (c *MatrixCache) Purge() { c.cache.Purge() }
