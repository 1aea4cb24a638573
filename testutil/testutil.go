package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/particlestore/attribute"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float32 returns, as a float32, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// Bytes returns n random Byte attribute values.
func (r *RNG) Bytes(n int) []uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]uint8, n)
	for i := range out {
		out[i] = uint8(r.rand.Intn(256))
	}
	return out
}

// Integers returns n random Integer attribute values.
func (r *RNG) Integers(n int) []int32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int32, n)
	for i := range out {
		out[i] = r.rand.Int31()
	}
	return out
}

// Floats returns n random values in range [minVal, maxVal).
func (r *RNG) Floats(n int, minVal, maxVal float32) []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := maxVal - minVal
	out := make([]float32, n)
	for i := range out {
		out[i] = minVal + r.rand.Float32()*span
	}
	return out
}

// Float3s returns n random vectors with components in range [minVal, maxVal).
func (r *RNG) Float3s(n int, minVal, maxVal float32) []attribute.Float3 {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := maxVal - minVal
	out := make([]attribute.Float3, n)
	for i := range out {
		out[i] = attribute.Float3{
			X: minVal + r.rand.Float32()*span,
			Y: minVal + r.rand.Float32()*span,
			Z: minVal + r.rand.Float32()*span,
		}
	}
	return out
}

// SortedSubset returns a sorted, duplicate-free selection of [0, n) where
// each index is kept with probability p.
func (r *RNG) SortedSubset(n int, p float64) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]uint32, 0, int(float64(n)*p)+1)
	for i := range n {
		if r.rand.Float64() < p {
			out = append(out, uint32(i))
		}
	}
	return out
}

// Identity returns the trivial selection 0, 1, ..., n-1.
func Identity(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}
