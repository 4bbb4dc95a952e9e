package policy

import "math/rand"

// EpsilonChooser is the exploration half shared by the epsilon-greedy and
// adaptive mechanisms: with probability epsilon pick a uniform arm, otherwise
// exploit the best score. Epsilon decays once per update and never leaves
// [min, initial].
type EpsilonChooser struct {
	epsilon float64
	initial float64
	decay   float64
	min     float64
}

func NewEpsilonChooser() *EpsilonChooser {
	return &EpsilonChooser{
		epsilon: defaultEpsilon,
		initial: defaultEpsilon,
		decay:   defaultEpsilonDecay,
		min:     defaultEpsilonMin,
	}
}

// Choose picks an arm over scores. When counts is non-nil, score ties break
// toward the arm with fewer applications; otherwise toward the lower index.
func (c *EpsilonChooser) Choose(rng *rand.Rand, scores []float64, counts []int) int {
	if rng.Float64() < c.epsilon {
		return rng.Intn(len(scores))
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		switch {
		case scores[i] > scores[best]:
			best = i
		case scores[i] == scores[best] && counts != nil && counts[i] < counts[best]:
			best = i
		}
	}
	return best
}

func (c *EpsilonChooser) Decay() {
	c.epsilon *= c.decay
	if c.epsilon < c.min {
		c.epsilon = c.min
	}
}

// Boost restores epsilon to its initial value to re-inject exploration after
// a restart.
func (c *EpsilonChooser) Boost() {
	c.epsilon = c.initial
}

func (c *EpsilonChooser) Epsilon() float64 {
	return c.epsilon
}

// EpsilonGreedyPolicy keeps an incremental mean reward and application count
// per arm and chooses with a decaying-epsilon strategy over the means.
type EpsilonGreedyPolicy struct {
	chooser *EpsilonChooser
	avg     []float64
	count   []int
}

func NewEpsilonGreedyPolicy(arms int) *EpsilonGreedyPolicy {
	return &EpsilonGreedyPolicy{
		chooser: NewEpsilonChooser(),
		avg:     make([]float64, arms),
		count:   make([]int, arms),
	}
}

func (p *EpsilonGreedyPolicy) Name() string {
	return string(EpsilonGreedy)
}

func (p *EpsilonGreedyPolicy) Select(rng *rand.Rand) int {
	return p.chooser.Choose(rng, p.avg, p.count)
}

func (p *EpsilonGreedyPolicy) Update(arm int, reward float64) {
	p.count[arm]++
	p.avg[arm] += (reward - p.avg[arm]) / float64(p.count[arm])
	p.chooser.Decay()
}

func (p *EpsilonGreedyPolicy) Epsilon() float64 {
	return p.chooser.Epsilon()
}

// Averages returns a copy of the per-arm mean rewards.
func (p *EpsilonGreedyPolicy) Averages() []float64 {
	out := make([]float64, len(p.avg))
	copy(out, p.avg)
	return out
}
