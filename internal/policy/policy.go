// Package policy implements the selection mechanisms that decide which
// low-level heuristic the solver applies next. Each policy owns its per-run
// learning state; a fresh policy is built for every solve and never shared.
package policy

import (
	"errors"
	"fmt"
	"math/rand"
)

type Mechanism string

const (
	Roulette      Mechanism = "roulette"
	EpsilonGreedy Mechanism = "epsilon-greedy"
	Reinforcement Mechanism = "reinforcement-learning"
	Adaptive      Mechanism = "adaptive"
)

var ErrUnknownMechanism = errors.New("unknown selection mechanism")

// Policy selects heuristic arms and learns from realized value deltas.
// Update receives the raw delta; each mechanism normalizes it as it sees
// fit. No mechanism ever discards an arm permanently.
type Policy interface {
	Name() string
	Select(rng *rand.Rand) int
	Update(arm int, reward float64)
}

// RestartSignaler is implemented by policies that track search stagnation.
// The driver reports after every iteration whether the global best improved;
// a true return asks the driver to diversify the working solution.
type RestartSignaler interface {
	ObserveBest(improved bool) bool
}

// Config carries per-run policy parameters. Zero fields fall back to the
// documented defaults.
type Config struct {
	Arms            int
	Capacity        int // reward normalization scale for the RL mechanisms
	StagnationLimit int // adaptive only
}

const (
	defaultEpsilon        = 1.0
	defaultEpsilonDecay   = 0.995
	defaultEpsilonMin     = 0.05
	defaultLearningRate   = 0.1
	defaultTemperature    = 1.0
	defaultTemperatureMin = 0.1
	defaultAnnealing      = 0.99
	defaultStagnation     = 30
)

func New(mechanism Mechanism, cfg Config) (Policy, error) {
	if cfg.Arms <= 0 {
		return nil, fmt.Errorf("policy requires at least one arm, got %d", cfg.Arms)
	}
	if cfg.StagnationLimit <= 0 {
		cfg.StagnationLimit = defaultStagnation
	}

	switch mechanism {
	case Roulette:
		return NewRoulettePolicy(cfg.Arms), nil
	case EpsilonGreedy:
		return NewEpsilonGreedyPolicy(cfg.Arms), nil
	case Reinforcement:
		return NewSoftmaxPolicy(cfg.Arms, cfg.Capacity), nil
	case Adaptive:
		return NewAdaptivePolicy(cfg.Arms, cfg.Capacity, cfg.StagnationLimit), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMechanism, mechanism)
	}
}

// Mechanisms lists every supported mechanism name in canonical order.
func Mechanisms() []Mechanism {
	return []Mechanism{Roulette, EpsilonGreedy, Reinforcement, Adaptive}
}
