package allocator

import "math/rand/v2"

// Random is the only source of randomness in a run. Each run must own its own
// Random; implementations are not required to be safe for concurrent use.
type Random interface {
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64

	// ShuffleInts permutes the slice in place
	ShuffleInts(values []int)
}

type randSource struct {
	r *rand.Rand
}

// NewRandom returns a Random seeded from system entropy, so two runs on the
// same input will usually differ
func NewRandom() Random {
	return &randSource{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededRandom returns a deterministic Random; the same seed and input
// always produce the same schedule
func NewSeededRandom(seed int64) Random {
	return &randSource{r: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))}
}

func (s *randSource) Float64() float64 {
	return s.r.Float64()
}

func (s *randSource) ShuffleInts(values []int) {
	s.r.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
}
