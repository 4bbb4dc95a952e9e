package policy

import "math/rand"

// AdaptivePolicy composes the reinforcement credit assignment with
// epsilon-greedy selection over the learned Q-values, and tracks search
// stagnation on top. When the global best fails to improve for
// stagnationLimit consecutive iterations it signals a restart, resets its
// counter, and boosts epsilon back to its initial value.
type AdaptivePolicy struct {
	estimator *QEstimator
	chooser   *EpsilonChooser

	stagnation      int
	stagnationLimit int
}

func NewAdaptivePolicy(arms, capacity, stagnationLimit int) *AdaptivePolicy {
	if stagnationLimit <= 0 {
		stagnationLimit = defaultStagnation
	}
	return &AdaptivePolicy{
		estimator:       NewQEstimator(arms, capacity),
		chooser:         NewEpsilonChooser(),
		stagnationLimit: stagnationLimit,
	}
}

func (p *AdaptivePolicy) Name() string {
	return string(Adaptive)
}

func (p *AdaptivePolicy) Select(rng *rand.Rand) int {
	return p.chooser.Choose(rng, p.estimator.Values(), nil)
}

func (p *AdaptivePolicy) Update(arm int, reward float64) {
	p.estimator.Observe(arm, reward)
	p.chooser.Decay()
}

func (p *AdaptivePolicy) ObserveBest(improved bool) bool {
	if improved {
		p.stagnation = 0
		return false
	}
	p.stagnation++
	if p.stagnation < p.stagnationLimit {
		return false
	}
	p.stagnation = 0
	p.chooser.Boost()
	return true
}

func (p *AdaptivePolicy) Epsilon() float64 {
	return p.chooser.Epsilon()
}

// QValues returns a copy of the learned Q-values.
func (p *AdaptivePolicy) QValues() []float64 {
	q := p.estimator.Values()
	out := make([]float64, len(q))
	copy(out, q)
	return out
}
