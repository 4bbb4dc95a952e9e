// Package metaheuristic holds the standalone baseline searches the
// hyperheuristic is benchmarked against: simulated annealing, restart hill
// climbing, and GRASP. Each one is seeded, strictly sequential, and only
// ever returns feasible solutions.
package metaheuristic

import (
	"fmt"
	"math"
	"math/rand"

	"hyperknap/internal/heuristic"
	"hyperknap/internal/knapsack"
)

type AnnealingConfig struct {
	InitialTemp       float64
	CoolingRate       float64
	MinTemp           float64
	IterationsPerTemp int
	Seed              int64
}

func DefaultAnnealingConfig() AnnealingConfig {
	return AnnealingConfig{
		InitialTemp:       1000,
		CoolingRate:       0.95,
		MinTemp:           1,
		IterationsPerTemp: 50,
	}
}

// SimulatedAnnealing starts from the ratio-greedy construction and walks
// random flip/swap neighbors, accepting worsening moves with the Metropolis
// probability exp(delta/T) while the temperature cools geometrically.
func SimulatedAnnealing(inst *knapsack.Instance, cfg AnnealingConfig) (knapsack.Solution, error) {
	if err := inst.Validate(); err != nil {
		return knapsack.Solution{}, err
	}
	if cfg.InitialTemp <= 0 || cfg.MinTemp <= 0 || cfg.MinTemp > cfg.InitialTemp {
		return knapsack.Solution{}, fmt.Errorf("invalid temperature range [%v, %v]", cfg.MinTemp, cfg.InitialTemp)
	}
	if cfg.CoolingRate <= 0 || cfg.CoolingRate >= 1 {
		return knapsack.Solution{}, fmt.Errorf("cooling rate must be in (0, 1), got %v", cfg.CoolingRate)
	}
	if cfg.IterationsPerTemp <= 0 {
		return knapsack.Solution{}, fmt.Errorf("iterations per temperature must be > 0, got %d", cfg.IterationsPerTemp)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	pool := heuristic.Pool()
	current := pool[heuristic.RatioGreedy].Apply(inst, knapsack.Empty(inst), rng)
	best := current.Clone()

	for temperature := cfg.InitialTemp; temperature > cfg.MinTemp; temperature *= cfg.CoolingRate {
		for i := 0; i < cfg.IterationsPerTemp; i++ {
			neighbor := randomNeighbor(inst, current, rng)
			if !neighbor.Feasible() {
				continue
			}

			delta := neighbor.Value - current.Value
			if delta > 0 {
				current = neighbor
			} else if rng.Float64() < math.Exp(float64(delta)/temperature) {
				current = neighbor
			}

			if knapsack.Better(current, best) {
				best = current.Clone()
			}
		}
	}
	return best, nil
}

// randomNeighbor flips one random item or swaps a random included item for a
// random excluded one; the swap move is drawn twice as often.
func randomNeighbor(inst *knapsack.Instance, current knapsack.Solution, rng *rand.Rand) knapsack.Solution {
	neighbor := current.Clone()

	if rng.Intn(3) == 0 {
		flip(inst, &neighbor, rng.Intn(inst.N()))
		return neighbor
	}

	inside := neighbor.Selected()
	outside := neighbor.Unselected()
	if len(inside) == 0 || len(outside) == 0 {
		flip(inst, &neighbor, rng.Intn(inst.N()))
		return neighbor
	}

	out := inside[rng.Intn(len(inside))]
	in := outside[rng.Intn(len(outside))]
	neighbor.Items[out] = false
	neighbor.Items[in] = true
	neighbor.Value += inst.Values[in] - inst.Values[out]
	neighbor.Weight += inst.Weights[in] - inst.Weights[out]
	return neighbor
}

func flip(inst *knapsack.Instance, sol *knapsack.Solution, i int) {
	if sol.Items[i] {
		sol.Items[i] = false
		sol.Value -= inst.Values[i]
		sol.Weight -= inst.Weights[i]
	} else {
		sol.Items[i] = true
		sol.Value += inst.Values[i]
		sol.Weight += inst.Weights[i]
	}
}
