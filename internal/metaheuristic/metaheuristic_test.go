package metaheuristic

import (
	"math/rand"
	"testing"

	"hyperknap/internal/knapsack"
)

func testInstance(t *testing.T) *knapsack.Instance {
	t.Helper()
	inst := &knapsack.Instance{
		Name:     "tiny",
		Capacity: 10,
		Values:   []int{10, 7, 8, 9},
		Weights:  []int{5, 3, 4, 6},
		Optimal:  18,
	}
	if err := inst.Validate(); err != nil {
		t.Fatalf("test instance: %v", err)
	}
	return inst
}

func TestSimulatedAnnealing(t *testing.T) {
	inst := testInstance(t)
	cfg := DefaultAnnealingConfig()
	cfg.Seed = 1

	best, err := SimulatedAnnealing(inst, cfg)
	if err != nil {
		t.Fatalf("annealing: %v", err)
	}
	if !best.Feasible() {
		t.Fatalf("annealing returned infeasible best (weight=%d)", best.Weight)
	}
	if best.Value != inst.Optimal {
		t.Fatalf("annealing best %d, want %d", best.Value, inst.Optimal)
	}
}

func TestSimulatedAnnealingConfigValidation(t *testing.T) {
	inst := testInstance(t)
	cases := []AnnealingConfig{
		{InitialTemp: 0, CoolingRate: 0.9, MinTemp: 1, IterationsPerTemp: 10},
		{InitialTemp: 100, CoolingRate: 0.9, MinTemp: 0, IterationsPerTemp: 10},
		{InitialTemp: 100, CoolingRate: 0.9, MinTemp: 200, IterationsPerTemp: 10},
		{InitialTemp: 100, CoolingRate: 1.5, MinTemp: 1, IterationsPerTemp: 10},
		{InitialTemp: 100, CoolingRate: 0.9, MinTemp: 1, IterationsPerTemp: 0},
	}
	for i, cfg := range cases {
		if _, err := SimulatedAnnealing(inst, cfg); err == nil {
			t.Fatalf("case %d: invalid config accepted: %+v", i, cfg)
		}
	}
}

func TestRestartHillClimb(t *testing.T) {
	inst := testInstance(t)
	cfg := DefaultRestartClimbConfig()
	cfg.Seed = 1
	cfg.Restarts = 100 // enough random starts to cover the tiny search space

	best, err := RestartHillClimb(inst, cfg)
	if err != nil {
		t.Fatalf("hill climb: %v", err)
	}
	if !best.Feasible() {
		t.Fatalf("hill climb returned infeasible best (weight=%d)", best.Weight)
	}
	if best.Value != inst.Optimal {
		t.Fatalf("hill climb best %d, want %d", best.Value, inst.Optimal)
	}
}

func TestRestartHillClimbConfigValidation(t *testing.T) {
	inst := testInstance(t)
	if _, err := RestartHillClimb(inst, RestartClimbConfig{Restarts: 0, MaxIterPerClimb: 10}); err == nil {
		t.Fatal("zero restarts accepted")
	}
	if _, err := RestartHillClimb(inst, RestartClimbConfig{Restarts: 5, MaxIterPerClimb: 0}); err == nil {
		t.Fatal("zero climb iterations accepted")
	}
}

func TestGRASP(t *testing.T) {
	inst := testInstance(t)
	cfg := DefaultGRASPConfig()
	cfg.Seed = 1

	best, err := GRASP(inst, cfg)
	if err != nil {
		t.Fatalf("grasp: %v", err)
	}
	if !best.Feasible() {
		t.Fatalf("grasp returned infeasible best (weight=%d)", best.Weight)
	}
	if best.Value != inst.Optimal {
		t.Fatalf("grasp best %d, want %d", best.Value, inst.Optimal)
	}
}

func TestGRASPConfigValidation(t *testing.T) {
	inst := testInstance(t)
	if _, err := GRASP(inst, GRASPConfig{Iterations: 0, Alpha: 0.3}); err == nil {
		t.Fatal("zero iterations accepted")
	}
	if _, err := GRASP(inst, GRASPConfig{Iterations: 10, Alpha: 1.5}); err == nil {
		t.Fatal("alpha > 1 accepted")
	}
	if _, err := GRASP(inst, GRASPConfig{Iterations: 10, Alpha: -0.1}); err == nil {
		t.Fatal("negative alpha accepted")
	}
}

func TestBaselinesDeterministicPerSeed(t *testing.T) {
	inst := testInstance(t)

	runs := []func(seed int64) (knapsack.Solution, error){
		func(seed int64) (knapsack.Solution, error) {
			cfg := DefaultAnnealingConfig()
			cfg.Seed = seed
			return SimulatedAnnealing(inst, cfg)
		},
		func(seed int64) (knapsack.Solution, error) {
			cfg := DefaultRestartClimbConfig()
			cfg.Seed = seed
			return RestartHillClimb(inst, cfg)
		},
		func(seed int64) (knapsack.Solution, error) {
			cfg := DefaultGRASPConfig()
			cfg.Seed = seed
			return GRASP(inst, cfg)
		},
	}
	for i, run := range runs {
		first, err := run(42)
		if err != nil {
			t.Fatalf("baseline %d: %v", i, err)
		}
		second, err := run(42)
		if err != nil {
			t.Fatalf("baseline %d: %v", i, err)
		}
		if first.Value != second.Value || first.Weight != second.Weight {
			t.Fatalf("baseline %d diverged on the same seed: %d/%d vs %d/%d",
				i, first.Value, first.Weight, second.Value, second.Weight)
		}
	}
}

func TestRandomSolutionIsFeasible(t *testing.T) {
	inst := testInstance(t)
	for seed := int64(0); seed < 25; seed++ {
		sol := RandomSolution(inst, rand.New(rand.NewSource(seed)))
		if !sol.Feasible() {
			t.Fatalf("seed %d: infeasible random solution (weight=%d)", seed, sol.Weight)
		}
	}
}
