package knapsack

import (
	"errors"
	"testing"
)

func testInstance(t *testing.T) *Instance {
	t.Helper()
	inst := &Instance{
		Name:     "tiny",
		Capacity: 10,
		Values:   []int{10, 7, 8, 9},
		Weights:  []int{5, 3, 4, 6},
		Optimal:  18,
	}
	if err := inst.Validate(); err != nil {
		t.Fatalf("test instance invalid: %v", err)
	}
	return inst
}

func TestNewInstanceValidates(t *testing.T) {
	if _, err := NewInstance(10, []int{1, 2}, []int{1, 2}); err != nil {
		t.Fatalf("valid instance rejected: %v", err)
	}

	cases := []struct {
		name     string
		capacity int
		values   []int
		weights  []int
	}{
		{"negative capacity", -1, []int{1}, []int{1}},
		{"length mismatch", 10, []int{1, 2}, []int{1}},
		{"zero value", 10, []int{0}, []int{1}},
		{"negative value", 10, []int{-3}, []int{1}},
		{"zero weight", 10, []int{1}, []int{0}},
		{"negative weight", 10, []int{1}, []int{-2}},
	}
	for _, tc := range cases {
		_, err := NewInstance(tc.capacity, tc.values, tc.weights)
		if !errors.Is(err, ErrInvalidInstance) {
			t.Fatalf("%s: want ErrInvalidInstance, got %v", tc.name, err)
		}
	}
}

func TestZeroCapacityIsValid(t *testing.T) {
	inst, err := NewInstance(0, []int{5}, []int{3})
	if err != nil {
		t.Fatalf("zero capacity rejected: %v", err)
	}
	value, weight, feasible := Evaluate(inst, []bool{false})
	if value != 0 || weight != 0 || !feasible {
		t.Fatalf("empty solution on zero-capacity instance: value=%d weight=%d feasible=%t", value, weight, feasible)
	}
}

func TestEvaluate(t *testing.T) {
	inst := testInstance(t)

	value, weight, feasible := Evaluate(inst, []bool{true, false, true, false})
	if value != 18 || weight != 9 || !feasible {
		t.Fatalf("got value=%d weight=%d feasible=%t, want 18/9/true", value, weight, feasible)
	}

	value, weight, feasible = Evaluate(inst, []bool{true, true, true, true})
	if value != 34 || weight != 18 || feasible {
		t.Fatalf("got value=%d weight=%d feasible=%t, want 34/18/false", value, weight, feasible)
	}
}

func TestRatio(t *testing.T) {
	inst := testInstance(t)
	if got := inst.Ratio(1); got != 7.0/3.0 {
		t.Fatalf("ratio(1) = %v, want %v", got, 7.0/3.0)
	}
}

func TestGap(t *testing.T) {
	inst := testInstance(t)

	gap, err := inst.Gap(17)
	if err != nil {
		t.Fatalf("gap: %v", err)
	}
	want := float64(18-17) / 18 * 100
	if gap != want {
		t.Fatalf("gap = %v, want %v", gap, want)
	}

	gap, err = inst.Gap(18)
	if err != nil || gap != 0 {
		t.Fatalf("gap at optimal = %v (%v), want 0", gap, err)
	}

	inst.Optimal = 0
	if _, err := inst.Gap(17); !errors.Is(err, ErrUndefinedGap) {
		t.Fatalf("want ErrUndefinedGap, got %v", err)
	}
}
