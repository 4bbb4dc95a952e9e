package metaheuristic

import (
	"fmt"
	"math/rand"

	"hyperknap/internal/heuristic"
	"hyperknap/internal/knapsack"
)

type GRASPConfig struct {
	Iterations int
	Alpha      float64
	Seed       int64
}

func DefaultGRASPConfig() GRASPConfig {
	return GRASPConfig{Iterations: 100, Alpha: heuristic.DefaultAlpha}
}

// GRASP alternates a randomized-greedy construction with a local search
// phase (one-flip, two-swap, fill-remaining) and keeps the best solution
// over all iterations.
func GRASP(inst *knapsack.Instance, cfg GRASPConfig) (knapsack.Solution, error) {
	if err := inst.Validate(); err != nil {
		return knapsack.Solution{}, err
	}
	if cfg.Iterations <= 0 {
		return knapsack.Solution{}, fmt.Errorf("iterations must be > 0, got %d", cfg.Iterations)
	}
	if cfg.Alpha < 0 || cfg.Alpha > 1 {
		return knapsack.Solution{}, fmt.Errorf("alpha must be in [0, 1], got %v", cfg.Alpha)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	pool := heuristic.Pool()

	var best knapsack.Solution
	for iter := 0; iter < cfg.Iterations; iter++ {
		sol := heuristic.RandomizedGreedyBuild(inst, rng, cfg.Alpha)
		sol = pool[heuristic.OneFlip].Apply(inst, sol, rng)
		sol = pool[heuristic.TwoSwap].Apply(inst, sol, rng)
		sol = pool[heuristic.FillRemaining].Apply(inst, sol, rng)

		if iter == 0 || knapsack.Better(sol, best) {
			best = sol
		}
	}
	return best, nil
}
