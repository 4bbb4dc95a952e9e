package metaheuristic

import (
	"fmt"
	"math/rand"

	"hyperknap/internal/heuristic"
	"hyperknap/internal/knapsack"
)

type RestartClimbConfig struct {
	Restarts        int
	MaxIterPerClimb int
	Seed            int64
}

func DefaultRestartClimbConfig() RestartClimbConfig {
	return RestartClimbConfig{Restarts: 10, MaxIterPerClimb: 100}
}

// RestartHillClimb repeats a best-improvement one-flip descent from random
// feasible starting points and keeps the best local optimum found.
func RestartHillClimb(inst *knapsack.Instance, cfg RestartClimbConfig) (knapsack.Solution, error) {
	if err := inst.Validate(); err != nil {
		return knapsack.Solution{}, err
	}
	if cfg.Restarts <= 0 {
		return knapsack.Solution{}, fmt.Errorf("restarts must be > 0, got %d", cfg.Restarts)
	}
	if cfg.MaxIterPerClimb <= 0 {
		return knapsack.Solution{}, fmt.Errorf("max iterations per climb must be > 0, got %d", cfg.MaxIterPerClimb)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	pool := heuristic.Pool()
	oneFlip := pool[heuristic.OneFlip].Apply

	var best knapsack.Solution
	for restart := 0; restart < cfg.Restarts; restart++ {
		current := RandomSolution(inst, rng)
		for i := 0; i < cfg.MaxIterPerClimb; i++ {
			neighbor := oneFlip(inst, current, rng)
			if neighbor.Value <= current.Value {
				break // local optimum
			}
			current = neighbor
		}
		if restart == 0 || knapsack.Better(current, best) {
			best = current
		}
	}
	return best, nil
}

// RandomSolution shuffles the item order and adds items while they fit,
// yielding a feasible random starting point for local search.
func RandomSolution(inst *knapsack.Instance, rng *rand.Rand) knapsack.Solution {
	order := rng.Perm(inst.N())
	sol := knapsack.Empty(inst)
	for _, i := range order {
		if sol.Weight+inst.Weights[i] <= inst.Capacity {
			sol.Items[i] = true
			sol.Value += inst.Values[i]
			sol.Weight += inst.Weights[i]
		}
	}
	return sol
}
