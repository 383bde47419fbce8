package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// Source is the randomness consumed by shuffling and bot decisions.
// Float64 must return a value in [0, 1).
type Source interface {
	Float64() float64
}

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises how we derive the two 64-bit seeds required by rand/v2
// so that all call sites get reproducible sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// IntN returns a value in [0, n) drawn from src. It panics if n <= 0.
func IntN(src Source, n int) int {
	if n <= 0 {
		panic("randutil: IntN called with non-positive n")
	}
	i := int(src.Float64() * float64(n))
	// Guard against sources that round up to 1.0.
	if i >= n {
		i = n - 1
	}
	return i
}

// Reader adapts a Source to io.Reader so byte-oriented consumers (such as
// uuid generation) stay reproducible under a fixed seed.
type Reader struct {
	Src Source
}

func (r Reader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(IntN(r.Src, 256))
	}
	return len(p), nil
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
