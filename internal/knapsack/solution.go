package knapsack

import "fmt"

// Solution is an inclusion vector bound to one instance, with its derived
// total value and weight kept in sync via Evaluate.
type Solution struct {
	inst   *Instance
	Items  []bool
	Value  int
	Weight int
}

// Empty returns the all-excluded solution for inst.
func Empty(inst *Instance) Solution {
	return Solution{inst: inst, Items: make([]bool, inst.N())}
}

func (s Solution) Instance() *Instance {
	return s.inst
}

func (s Solution) Clone() Solution {
	items := make([]bool, len(s.Items))
	copy(items, s.Items)
	return Solution{inst: s.inst, Items: items, Value: s.Value, Weight: s.Weight}
}

// Evaluate recomputes Value and Weight from Items. Call after mutating Items.
func (s *Solution) Evaluate() {
	s.Value, s.Weight, _ = Evaluate(s.inst, s.Items)
}

func (s Solution) Feasible() bool {
	return s.Weight <= s.inst.Capacity
}

func (s Solution) RemainingCapacity() int {
	return s.inst.Capacity - s.Weight
}

// Selected returns the indices of included items in ascending order.
func (s Solution) Selected() []int {
	out := make([]int, 0, len(s.Items))
	for i, included := range s.Items {
		if included {
			out = append(out, i)
		}
	}
	return out
}

// Unselected returns the indices of excluded items in ascending order.
func (s Solution) Unselected() []int {
	out := make([]int, 0, len(s.Items))
	for i, included := range s.Items {
		if !included {
			out = append(out, i)
		}
	}
	return out
}

// Gap reports the percentage shortfall below the instance's known optimal.
func (s Solution) Gap() (float64, error) {
	return s.inst.Gap(s.Value)
}

// Repair removes the included item with the lowest value/weight ratio (ties
// to the smallest index) until the solution is feasible. Terminates in at
// most n steps.
func (s *Solution) Repair() {
	for s.Weight > s.inst.Capacity {
		worst := -1
		for i, included := range s.Items {
			if !included {
				continue
			}
			if worst < 0 || s.inst.Ratio(i) < s.inst.Ratio(worst) {
				worst = i
			}
		}
		if worst < 0 {
			return
		}
		s.Items[worst] = false
		s.Value -= s.inst.Values[worst]
		s.Weight -= s.inst.Weights[worst]
	}
}

// Better reports whether a beats b: higher value wins, equal values prefer
// the lighter solution.
func Better(a, b Solution) bool {
	if a.Value != b.Value {
		return a.Value > b.Value
	}
	return a.Weight < b.Weight
}

func (s Solution) String() string {
	return fmt.Sprintf("Solution(value=%d, weight=%d/%d, items=%v)", s.Value, s.Weight, s.inst.Capacity, s.Selected())
}
