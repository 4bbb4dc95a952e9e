package policy

import (
	"math"
	"math/rand"
)

// QEstimator is the credit-assignment half shared by the reinforcement and
// adaptive mechanisms. Raw value deltas are normalized by the instance
// capacity and clipped to [-1, 1] before the usual stateless bandit update
// Q += alpha*(r - Q).
type QEstimator struct {
	q     []float64
	alpha float64
	scale float64
}

func NewQEstimator(arms, capacity int) *QEstimator {
	scale := float64(capacity)
	if scale < 1 {
		scale = 1
	}
	return &QEstimator{
		q:     make([]float64, arms),
		alpha: defaultLearningRate,
		scale: scale,
	}
}

func (e *QEstimator) Observe(arm int, delta float64) {
	r := delta / e.scale
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	e.q[arm] += e.alpha * (r - e.q[arm])
}

// Values returns the live Q slice; callers must not mutate it.
func (e *QEstimator) Values() []float64 {
	return e.q
}

// SoftmaxPolicy is the reinforcement-learning mechanism: Q-value estimates
// with softmax sampling, temperature annealed downward each update to
// sharpen exploitation over time.
type SoftmaxPolicy struct {
	estimator   *QEstimator
	temperature float64
}

func NewSoftmaxPolicy(arms, capacity int) *SoftmaxPolicy {
	return &SoftmaxPolicy{
		estimator:   NewQEstimator(arms, capacity),
		temperature: defaultTemperature,
	}
}

func (p *SoftmaxPolicy) Name() string {
	return string(Reinforcement)
}

func (p *SoftmaxPolicy) Select(rng *rand.Rand) int {
	q := p.estimator.Values()

	// Shift by max(Q) so the exponentials stay bounded.
	maxQ := q[0]
	for _, v := range q[1:] {
		if v > maxQ {
			maxQ = v
		}
	}
	exps := make([]float64, len(q))
	total := 0.0
	for i, v := range q {
		exps[i] = math.Exp((v - maxQ) / p.temperature)
		total += exps[i]
	}

	r := rng.Float64() * total
	acc := 0.0
	for i, e := range exps {
		acc += e
		if acc >= r {
			return i
		}
	}
	return len(exps) - 1
}

func (p *SoftmaxPolicy) Update(arm int, reward float64) {
	p.estimator.Observe(arm, reward)
	p.temperature *= defaultAnnealing
	if p.temperature < defaultTemperatureMin {
		p.temperature = defaultTemperatureMin
	}
}

func (p *SoftmaxPolicy) Temperature() float64 {
	return p.temperature
}

// QValues returns a copy of the learned Q-values.
func (p *SoftmaxPolicy) QValues() []float64 {
	q := p.estimator.Values()
	out := make([]float64, len(q))
	copy(out, q)
	return out
}
