package alphaspy

import (
	"math/rand"

	"github.com/timpalpant/go-cfr/sampling"
)

// Strategy chooses one of nChoices options, returning its index.
type Strategy interface {
	Select(nChoices int) int
}

// RandomStrategy selects uniformly at random among the available choices.
type RandomStrategy struct {
	rng *rand.Rand
}

func NewRandomStrategy(rng *rand.Rand) *RandomStrategy {
	return &RandomStrategy{rng: rng}
}

func (s *RandomStrategy) Select(nChoices int) int {
	if nChoices == 1 {
		return 0
	}

	return sampling.SampleOne(uniformDistribution(nChoices), s.rng.Float32())
}

func uniformDistribution(n int) []float32 {
	p := make([]float32, n)
	for i := range p {
		p[i] = 1.0 / float32(n)
	}

	return p
}
