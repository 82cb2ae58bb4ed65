package projection

import "math/rand"

// Source produces independent uniform draws in [0,1). A *rand.Rand satisfies
// it directly. Builds consume draws in a fixed documented order, so two
// sources seeded identically yield bit-identical matrices.
//
// A Source is a sequential stream: callers sharing one across builds must
// serialize access themselves if they care about reproducibility.
type Source interface {
	Float64() float64
}

// NewSource returns a deterministic Source seeded with the given value.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}
