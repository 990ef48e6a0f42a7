package engine

// RNG is a PCG-32 generator with fully exported state so that save,
// load, and replay reproduce the exact same draw sequence. Ambient
// randomness (math/rand globals, crypto entropy) would break the
// determinism contract, so all stochastic draws go through here.
type RNG struct {
	State uint64 `json:"state"`
	Inc   uint64 `json:"inc"`
}

const pcgMultiplier = 6364136223846793005

// NewRNG seeds a generator. Identical seeds yield identical streams.
func NewRNG(seed int64) *RNG {
	r := &RNG{Inc: (uint64(seed) << 1) | 1}
	r.Uint32()
	r.State += uint64(seed)
	r.Uint32()
	return r
}

// Uint32 returns the next 32 bits of the stream.
func (r *RNG) Uint32() uint32 {
	old := r.State
	r.State = old*pcgMultiplier + r.Inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := uint32(old >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

// Float64 returns a draw in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Uint32()) / (1 << 32)
}

// Intn returns a draw in [0, n). n must be positive.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		panic("engine: Intn with non-positive n")
	}
	return int(r.Uint32() % uint32(n))
}
