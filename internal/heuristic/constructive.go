package heuristic

import (
	"math/rand"
	"sort"

	"hyperknap/internal/knapsack"
)

// greedyBuild adds items in the given priority order while they fit. The
// current solution is ignored: constructive heuristics always start empty.
func greedyBuild(inst *knapsack.Instance, order []int) knapsack.Solution {
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

func indexOrder(n int, less func(i, j int) bool) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return less(order[a], order[b])
	})
	return order
}

func applyValueGreedy(inst *knapsack.Instance, _ knapsack.Solution, _ *rand.Rand) knapsack.Solution {
	order := indexOrder(inst.N(), func(i, j int) bool {
		return inst.Values[i] > inst.Values[j]
	})
	return greedyBuild(inst, order)
}

func applyWeightGreedy(inst *knapsack.Instance, _ knapsack.Solution, _ *rand.Rand) knapsack.Solution {
	order := indexOrder(inst.N(), func(i, j int) bool {
		return inst.Weights[i] < inst.Weights[j]
	})
	return greedyBuild(inst, order)
}

func applyRatioGreedy(inst *knapsack.Instance, _ knapsack.Solution, _ *rand.Rand) knapsack.Solution {
	order := indexOrder(inst.N(), func(i, j int) bool {
		return inst.Ratio(i) > inst.Ratio(j)
	})
	return greedyBuild(inst, order)
}

func applyRandomizedGreedy(inst *knapsack.Instance, _ knapsack.Solution, rng *rand.Rand) knapsack.Solution {
	return RandomizedGreedyBuild(inst, rng, DefaultAlpha)
}

// RandomizedGreedyBuild is the semi-greedy GRASP construction: at every step
// it builds a restricted candidate list of the excluded items whose ratio is
// within alpha of the best available ratio, then picks one uniformly. Exposed
// for the GRASP baseline, which tunes alpha.
func RandomizedGreedyBuild(inst *knapsack.Instance, rng *rand.Rand, alpha float64) knapsack.Solution {
	sol := knapsack.Empty(inst)
	remaining := make([]int, 0, inst.N())
	for i := 0; i < inst.N(); i++ {
		remaining = append(remaining, i)
	}

	for len(remaining) > 0 {
		viable := remaining[:0:0]
		for _, i := range remaining {
			if inst.Weights[i] <= sol.RemainingCapacity() {
				viable = append(viable, i)
			}
		}
		if len(viable) == 0 {
			break
		}

		maxRatio, minRatio := inst.Ratio(viable[0]), inst.Ratio(viable[0])
		for _, i := range viable[1:] {
			r := inst.Ratio(i)
			if r > maxRatio {
				maxRatio = r
			}
			if r < minRatio {
				minRatio = r
			}
		}
		threshold := maxRatio - alpha*(maxRatio-minRatio)

		rcl := viable[:0:0]
		for _, i := range viable {
			if inst.Ratio(i) >= threshold {
				rcl = append(rcl, i)
			}
		}

		chosen := rcl[rng.Intn(len(rcl))]
		sol.Items[chosen] = true
		sol.Value += inst.Values[chosen]
		sol.Weight += inst.Weights[chosen]

		next := remaining[:0]
		for _, i := range remaining {
			if i != chosen {
				next = append(next, i)
			}
		}
		remaining = next
	}
	return sol
}
