package heuristic

import (
	"math/rand"
	"sort"

	"hyperknap/internal/knapsack"
)

// applyOneFlip evaluates toggling each item once and returns the best
// feasible improving toggle, or the input unchanged if none improves.
func applyOneFlip(inst *knapsack.Instance, current knapsack.Solution, _ *rand.Rand) knapsack.Solution {
	bestFlip := -1
	bestValue, bestWeight := current.Value, current.Weight

	for i := range current.Items {
		value, weight := current.Value, current.Weight
		if current.Items[i] {
			value -= inst.Values[i]
			weight -= inst.Weights[i]
		} else {
			value += inst.Values[i]
			weight += inst.Weights[i]
		}
		if weight > inst.Capacity {
			continue
		}
		if value > current.Value && betterByValueThenWeight(value, weight, bestValue, bestWeight) {
			bestFlip = i
			bestValue, bestWeight = value, weight
		}
	}

	if bestFlip < 0 {
		return current.Clone()
	}
	result := current.Clone()
	result.Items[bestFlip] = !result.Items[bestFlip]
	result.Value = bestValue
	result.Weight = bestWeight
	return result
}

func betterByValueThenWeight(value, weight, bestValue, bestWeight int) bool {
	if value != bestValue {
		return value > bestValue
	}
	return weight < bestWeight
}

// applyTwoSwap tries every (included, excluded) exchange and returns the
// single best feasible improving swap. O(n^2).
func applyTwoSwap(inst *knapsack.Instance, current knapsack.Solution, _ *rand.Rand) knapsack.Solution {
	inside := current.Selected()
	outside := current.Unselected()

	bestOut, bestIn := -1, -1
	bestValue, bestWeight := current.Value, current.Weight

	for _, out := range inside {
		for _, in := range outside {
			value := current.Value - inst.Values[out] + inst.Values[in]
			weight := current.Weight - inst.Weights[out] + inst.Weights[in]
			if weight > inst.Capacity {
				continue
			}
			if value > current.Value && betterByValueThenWeight(value, weight, bestValue, bestWeight) {
				bestOut, bestIn = out, in
				bestValue, bestWeight = value, weight
			}
		}
	}

	if bestOut < 0 {
		return current.Clone()
	}
	result := current.Clone()
	result.Items[bestOut] = false
	result.Items[bestIn] = true
	result.Value = bestValue
	result.Weight = bestWeight
	return result
}

// applyFillRemaining greedily adds excluded items in ratio-descending order
// while they fit the slack capacity. Never worsens the solution.
func applyFillRemaining(inst *knapsack.Instance, current knapsack.Solution, _ *rand.Rand) knapsack.Solution {
	result := current.Clone()
	outside := result.Unselected()
	sort.SliceStable(outside, func(a, b int) bool {
		return inst.Ratio(outside[a]) > inst.Ratio(outside[b])
	})

	for _, i := range outside {
		if result.Weight+inst.Weights[i] <= inst.Capacity {
			result.Items[i] = true
			result.Value += inst.Values[i]
			result.Weight += inst.Weights[i]
		}
	}
	return result
}

// applyRemoveWorst drops the included item with the lowest value/weight
// ratio. Deliberately non-improving: it only exists as a diversification
// primitive for restarts.
func applyRemoveWorst(inst *knapsack.Instance, current knapsack.Solution, _ *rand.Rand) knapsack.Solution {
	worst := -1
	for i, included := range current.Items {
		if !included {
			continue
		}
		if worst < 0 || inst.Ratio(i) < inst.Ratio(worst) {
			worst = i
		}
	}
	if worst < 0 {
		return current.Clone()
	}
	result := current.Clone()
	result.Items[worst] = false
	result.Value -= inst.Values[worst]
	result.Weight -= inst.Weights[worst]
	return result
}
