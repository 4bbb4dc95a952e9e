// Package heuristic holds the closed pool of low-level knapsack heuristics
// driven by the hyperheuristic solver. Every heuristic takes a feasible
// solution and returns a feasible solution; heuristics keep no state between
// invocations, and all randomness comes from the caller's seeded stream.
package heuristic

import (
	"math/rand"

	"hyperknap/internal/knapsack"
)

type Kind string

const (
	KindConstructive Kind = "constructive"
	KindImprovement  Kind = "improvement"
)

// ID identifies one heuristic in the fixed pool.
type ID int

const (
	ValueGreedy ID = iota
	WeightGreedy
	RatioGreedy
	RandomizedGreedy
	OneFlip
	TwoSwap
	FillRemaining
	RemoveWorst
	poolSize
)

// DefaultAlpha controls the restricted candidate list width of the
// randomized-greedy construction.
const DefaultAlpha = 0.3

type ApplyFunc func(inst *knapsack.Instance, current knapsack.Solution, rng *rand.Rand) knapsack.Solution

// Descriptor binds a heuristic identity to its transformation function.
type Descriptor struct {
	ID    ID
	Name  string
	Kind  Kind
	Apply ApplyFunc
}

var pool = [poolSize]Descriptor{
	{ID: ValueGreedy, Name: "value-greedy", Kind: KindConstructive, Apply: applyValueGreedy},
	{ID: WeightGreedy, Name: "weight-greedy", Kind: KindConstructive, Apply: applyWeightGreedy},
	{ID: RatioGreedy, Name: "ratio-greedy", Kind: KindConstructive, Apply: applyRatioGreedy},
	{ID: RandomizedGreedy, Name: "randomized-greedy", Kind: KindConstructive, Apply: applyRandomizedGreedy},
	{ID: OneFlip, Name: "one-flip", Kind: KindImprovement, Apply: applyOneFlip},
	{ID: TwoSwap, Name: "two-swap", Kind: KindImprovement, Apply: applyTwoSwap},
	{ID: FillRemaining, Name: "fill-remaining", Kind: KindImprovement, Apply: applyFillRemaining},
	{ID: RemoveWorst, Name: "remove-worst", Kind: KindImprovement, Apply: applyRemoveWorst},
}

// Pool returns the full heuristic pool in its canonical order.
func Pool() []Descriptor {
	out := make([]Descriptor, poolSize)
	copy(out, pool[:])
	return out
}

func Count() int {
	return int(poolSize)
}

func (id ID) String() string {
	if id < 0 || id >= poolSize {
		return "unknown"
	}
	return pool[id].Name
}
