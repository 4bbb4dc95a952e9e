package policy

import "math/rand"

// RoulettePolicy draws arms with probability proportional to cumulative
// positive reward. Weights start at 1 and never decrease, so every arm keeps
// a non-zero selection floor for the whole run.
type RoulettePolicy struct {
	weights []float64
}

func NewRoulettePolicy(arms int) *RoulettePolicy {
	weights := make([]float64, arms)
	for i := range weights {
		weights[i] = 1
	}
	return &RoulettePolicy{weights: weights}
}

func (p *RoulettePolicy) Name() string {
	return string(Roulette)
}

func (p *RoulettePolicy) Select(rng *rand.Rand) int {
	total := 0.0
	for _, w := range p.weights {
		total += w
	}
	r := rng.Float64() * total
	acc := 0.0
	for i, w := range p.weights {
		acc += w
		if acc >= r {
			return i
		}
	}
	return len(p.weights) - 1
}

func (p *RoulettePolicy) Update(arm int, reward float64) {
	if reward > 0 {
		p.weights[arm] += reward
	}
}

// Weights returns a copy of the current arm weights.
func (p *RoulettePolicy) Weights() []float64 {
	out := make([]float64, len(p.weights))
	copy(out, p.weights)
	return out
}
