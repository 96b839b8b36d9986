package service

import (
	"math/rand/v2"
	"sync"

	"github.com/lshigami/vocabtest/config"
)

// Randomizer is the source of every random choice the quiz makes.
type Randomizer interface {
	// IntN returns a uniform value in [0, n). n must be positive.
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRandomizer returns a seeded randomizer when QUIZ_RANDOM_SEED is set, else the runtime source.
func NewRandomizer(cfg *config.Config) Randomizer {
	if cfg.Quiz.RandomSeed != 0 {
		return NewSeededRandomizer(cfg.Quiz.RandomSeed)
	}
	return runtimeRandomizer{}
}

type runtimeRandomizer struct{}

func (runtimeRandomizer) IntN(n int) int { return rand.IntN(n) }

func (runtimeRandomizer) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

type seededRandomizer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSeededRandomizer(seed uint64) Randomizer {
	return &seededRandomizer{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *seededRandomizer) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.IntN(n)
}

func (r *seededRandomizer) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rnd.Shuffle(n, swap)
}

// sampleWithoutReplacement draws k distinct elements with a partial Fisher-Yates pass.
// The input slice is not modified.
func sampleWithoutReplacement[T any](rnd Randomizer, items []T, k int) []T {
	pool := make([]T, len(items))
	copy(pool, items)
	for i := 0; i < k; i++ {
		j := i + rnd.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
