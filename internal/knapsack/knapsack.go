package knapsack

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInstance = errors.New("invalid knapsack instance")
	ErrUndefinedGap    = errors.New("gap undefined: instance has no known optimal value")
)

// Instance is a 0/1 knapsack problem: a capacity and n items, each with a
// positive value and weight. Optimal is the known optimal value when > 0 and
// unknown when 0.
type Instance struct {
	Name     string `json:"name,omitempty"`
	Capacity int    `json:"capacity"`
	Values   []int  `json:"values"`
	Weights  []int  `json:"weights"`
	Optimal  int    `json:"optimal,omitempty"`
}

func NewInstance(capacity int, values, weights []int) (*Instance, error) {
	inst := &Instance{Capacity: capacity, Values: values, Weights: weights}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (in *Instance) Validate() error {
	if in == nil {
		return fmt.Errorf("%w: nil instance", ErrInvalidInstance)
	}
	if in.Capacity < 0 {
		return fmt.Errorf("%w: negative capacity %d", ErrInvalidInstance, in.Capacity)
	}
	if len(in.Values) != len(in.Weights) {
		return fmt.Errorf("%w: %d values but %d weights", ErrInvalidInstance, len(in.Values), len(in.Weights))
	}
	for i, v := range in.Values {
		if v <= 0 {
			return fmt.Errorf("%w: non-positive value %d at item %d", ErrInvalidInstance, v, i)
		}
	}
	for i, w := range in.Weights {
		if w <= 0 {
			return fmt.Errorf("%w: non-positive weight %d at item %d", ErrInvalidInstance, w, i)
		}
	}
	return nil
}

// N returns the number of items.
func (in *Instance) N() int {
	return len(in.Values)
}

// Ratio returns the value/weight ratio of item i. Weights are validated to be
// positive before any solve, so no zero guard is needed here.
func (in *Instance) Ratio(i int) float64 {
	return float64(in.Values[i]) / float64(in.Weights[i])
}

// Gap reports how far value falls short of the known optimal, in percent.
func (in *Instance) Gap(value int) (float64, error) {
	if in.Optimal <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrUndefinedGap, in.Name)
	}
	return float64(in.Optimal-value) / float64(in.Optimal) * 100, nil
}

// Evaluate computes the total value and weight of an inclusion vector and
// whether it fits the capacity. Pure, O(n).
func Evaluate(in *Instance, items []bool) (value, weight int, feasible bool) {
	for i, included := range items {
		if included {
			value += in.Values[i]
			weight += in.Weights[i]
		}
	}
	return value, weight, weight <= in.Capacity
}
