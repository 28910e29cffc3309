// Package testutil provides testing utilities for forestsum.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source and generators for synthetic data
// matrices mixing discrete and continuous feature columns.
package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/forestsum"
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

// NormFloat64 returns a standard normal pseudo-random number.
func (r *RNG) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.NormFloat64()
}

// Rand exposes the underlying generator for APIs that take *rand.Rand.
// Callers must not use it concurrently with other RNG methods.
func (r *RNG) Rand() *rand.Rand {
	return r.rand
}

// Column describes one feature column of a synthetic matrix.
type Column struct {
	// Categories > 0 makes the column discrete with that category range;
	// values are uniform category draws. Otherwise the column is
	// continuous with values drawn from N(Mean, StdDev^2).
	Categories int
	Mean       float64
	StdDev     float64
}

// Matrix generates a synthetic data matrix with the given columns.
func (r *RNG) Matrix(rows int, cols ...Column) *forestsum.Dense {
	r.mu.Lock()
	defer r.mu.Unlock()

	dm := forestsum.NewDense(rows, len(cols))
	for f, col := range cols {
		if col.Categories > 0 {
			dm.MarkDiscrete(f, col.Categories)
			for row := 0; row < rows; row++ {
				dm.Set(row, f, float64(r.rand.Intn(col.Categories)))
			}
			continue
		}
		for row := 0; row < rows; row++ {
			dm.Set(row, f, col.Mean+r.rand.NormFloat64()*col.StdDev)
		}
	}
	return dm
}
