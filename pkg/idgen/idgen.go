// Package idgen produces candidate numeric identifiers for professors and
// students. Candidates are uniformly random within a fixed range; actual
// uniqueness is enforced by the persistence layer on insert, and creation
// regenerates the candidate in a bounded retry loop on conflict.
// No external dependencies - uses only standard library.
package idgen

import (
	"math/rand"
	"sync"
	"time"
)

// Identifier ranges. Professors get a short human-readable handle,
// students a wider one.
const (
	ProfessorMin = 10000
	ProfessorMax = 99999

	StudentMin = 0
	StudentMax = 999999
)

// MaxAllocationAttempts bounds the regenerate-on-conflict loop during
// creation. With the ranges above a collision across even thousands of
// rows is rare, so a small bound is enough.
const MaxAllocationAttempts = 5

// Allocator produces candidate identifiers.
type Allocator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates an Allocator seeded from the current time.
func New() *Allocator {
	return &Allocator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeeded creates an Allocator with a fixed seed, for deterministic tests.
func NewSeeded(seed int64) *Allocator {
	return &Allocator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// ProfessorID returns a uniformly random candidate in [ProfessorMin, ProfessorMax].
func (a *Allocator) ProfessorID() int64 {
	return a.intn(ProfessorMin, ProfessorMax)
}

// StudentID returns a uniformly random candidate in [StudentMin, StudentMax].
func (a *Allocator) StudentID() int64 {
	return a.intn(StudentMin, StudentMax)
}

func (a *Allocator) intn(min, max int64) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return min + a.rng.Int63n(max-min+1)
}
