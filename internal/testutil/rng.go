// Package testutil provides deterministic fixtures for numerical tests.
package testutil

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Uniform returns a value drawn uniformly from [lo, hi).
func (r *RNG) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*r.r.Float64()
}

// Field fills a new slice of length n with values in [-1, 1).
func (r *RNG) Field(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = r.Uniform(-1, 1)
	}
	return out
}

// ComplexField fills a new slice of length n with real and imaginary parts in
// [-1, 1).
func (r *RNG) ComplexField(n int) []complex128 {
	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(r.Uniform(-1, 1), r.Uniform(-1, 1))
	}
	return out
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
