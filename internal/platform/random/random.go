package random

import "math/rand"

// Source abstracts randomness so game outcomes are reproducible in tests.
type Source interface {
	Intn(n int) int
	Float64() float64
}

type seeded struct {
	rng *rand.Rand
}

func NewSeeded(seed int64) Source {
	return &seeded{rng: rand.New(rand.NewSource(seed))}
}

func (s *seeded) Intn(n int) int   { return s.rng.Intn(n) }
func (s *seeded) Float64() float64 { return s.rng.Float64() }

type system struct{}

// System returns the shared math/rand source.
func System() Source { return system{} }

func (system) Intn(n int) int   { return rand.Intn(n) }
func (system) Float64() float64 { return rand.Float64() }
