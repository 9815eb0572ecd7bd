/*
rand.go - Deterministic randomness

PURPOSE:
  A seeded pseudo-random generator producing a reproducible float stream in
  [0,1), plus FNV-1a seed derivation from stable identifier strings and a
  Fisher-Yates shuffle. Identical inputs always produce identical output
  sequences - regenerating a month is byte-identical, which is what makes
  the solver debuggable and the persistence idempotent in practice.

  This is a reproducibility mechanism, not a security primitive. math/rand
  is deliberately not used: its shuffle algorithm is unspecified across Go
  releases, and regeneration must stay stable across upgrades.

SEE ALSO:
  - context.go: Seed keys for shift/weekly-off derivation
  - solver.go: Consumes the float stream for day assignment
*/
package engine

import (
	"fmt"
	"time"
)

// =============================================================================
// SEED DERIVATION - FNV-1a over a stable identifier key
// =============================================================================

const (
	fnvOffset64 uint64 = 14695981039346656037
	fnvPrime64  uint64 = 1099511628211
)

// SeedKey builds the canonical seed key for a purpose tag.
func SeedKey(clientID ClientID, employeeID EmployeeID, month time.Month, year int, tag string) string {
	return fmt.Sprintf("%s|%s|%02d|%04d|%s", clientID, employeeID, int(month), year, tag)
}

// HashSeed hashes a key to a 64-bit seed using FNV-1a.
func HashSeed(key string) uint64 {
	h := fnvOffset64
	for i := 0; i < len(key); i++ {
		h ^= uint64(key[i])
		h *= fnvPrime64
	}
	return h
}

// =============================================================================
// RAND - splitmix64 stream
// =============================================================================

// Rand is a deterministic PRNG. Not safe for concurrent use; each solve
// attempt owns its own instance.
type Rand struct {
	state uint64
}

func NewRand(seed uint64) *Rand {
	return &Rand{state: seed}
}

func (r *Rand) next() uint64 {
	r.state += 0x9E3779B97F4A7C15
	z := r.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Float64 returns the next float in [0,1).
func (r *Rand) Float64() float64 {
	return float64(r.next()>>11) / (1 << 53)
}

// Intn returns a value in [0,n). Returns 0 when n <= 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Float64() * float64(n))
}

// Bool returns a fair coin flip.
func (r *Rand) Bool() bool {
	return r.Float64() < 0.5
}

// Shuffle permutes items in place with Fisher-Yates driven by r.
func Shuffle[T any](r *Rand, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
