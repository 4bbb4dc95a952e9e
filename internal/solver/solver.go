// Package solver drives the hyperheuristic search: an iteration loop that
// asks a selection policy for the next low-level heuristic, applies it,
// feeds the realized value delta back, and tracks the best solution found.
package solver

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"hyperknap/internal/heuristic"
	"hyperknap/internal/knapsack"
	"hyperknap/internal/policy"
)

var ErrHeuristicContract = errors.New("heuristic contract violation: infeasible solution returned")

// Acceptance decides when the working solution is replaced by a candidate.
type Acceptance string

const (
	// AcceptNonWorsening replaces the working solution only when the
	// candidate is at least as valuable. Default.
	AcceptNonWorsening Acceptance = "non-worsening"
	// AcceptAlways replaces unconditionally (random-walk behavior).
	AcceptAlways Acceptance = "always"
)

type StopReason string

const (
	StopIterationBudget StopReason = "iteration-budget"
	StopTimeBudget      StopReason = "time-budget"
	StopCancelled       StopReason = "cancelled"
)

type Config struct {
	Mechanism       policy.Mechanism
	Iterations      int
	Seed            int64
	TimeBudget      time.Duration // optional wall-clock budget
	StagnationLimit int           // adaptive mechanism only; 0 means default
	Acceptance      Acceptance
}

// HeuristicUsage is the per-heuristic diagnostic record returned with every
// solve: how often the heuristic ran and what it earned on average.
type HeuristicUsage struct {
	ID            heuristic.ID `json:"id"`
	Name          string       `json:"name"`
	Kind          string       `json:"kind"`
	Count         int          `json:"count"`
	TotalReward   float64      `json:"total_reward"`
	AverageReward float64      `json:"average_reward"`
}

type Result struct {
	Best       knapsack.Solution
	Iterations int
	Restarts   int
	StopReason StopReason
	Elapsed    time.Duration
	Usage      []HeuristicUsage
	// Selected is the exact heuristic sequence of the run; identical
	// configs and seeds reproduce it bit for bit.
	Selected []heuristic.ID
	// BestTrace holds the best value after each iteration, non-decreasing.
	BestTrace []int
}

type Solver struct {
	cfg  Config
	pool []heuristic.Descriptor
}

func New(cfg Config) (*Solver, error) {
	return newWithPool(cfg, heuristic.Pool())
}

func newWithPool(cfg Config, pool []heuristic.Descriptor) (*Solver, error) {
	if cfg.Iterations <= 0 {
		return nil, fmt.Errorf("iteration budget must be > 0, got %d", cfg.Iterations)
	}
	if cfg.TimeBudget < 0 {
		return nil, fmt.Errorf("time budget must be >= 0, got %s", cfg.TimeBudget)
	}
	if cfg.StagnationLimit < 0 {
		return nil, fmt.Errorf("stagnation limit must be >= 0, got %d", cfg.StagnationLimit)
	}
	switch cfg.Acceptance {
	case "":
		cfg.Acceptance = AcceptNonWorsening
	case AcceptNonWorsening, AcceptAlways:
	default:
		return nil, fmt.Errorf("unknown acceptance policy: %s", cfg.Acceptance)
	}
	switch cfg.Mechanism {
	case "":
		cfg.Mechanism = policy.Adaptive
	case policy.Roulette, policy.EpsilonGreedy, policy.Reinforcement, policy.Adaptive:
	default:
		return nil, fmt.Errorf("%w: %s", policy.ErrUnknownMechanism, cfg.Mechanism)
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("heuristic pool is empty")
	}
	return &Solver{cfg: cfg, pool: pool}, nil
}

func (s *Solver) Config() Config {
	return s.cfg
}

// Solve runs the full INIT -> ITERATING -> TERMINATED state machine on one
// instance. Cancellation and the time budget are checked only at iteration
// boundaries; an interrupted run still returns a valid best with the stop
// reason recorded.
func (s *Solver) Solve(ctx context.Context, inst *knapsack.Instance) (Result, error) {
	if err := inst.Validate(); err != nil {
		return Result{}, err
	}

	pol, err := policy.New(s.cfg.Mechanism, policy.Config{
		Arms:            len(s.pool),
		Capacity:        inst.Capacity,
		StagnationLimit: s.cfg.StagnationLimit,
	})
	if err != nil {
		return Result{}, err
	}

	// The single seeded stream every stochastic decision of this run
	// consumes, from policy sampling to randomized construction.
	rng := rand.New(rand.NewSource(s.cfg.Seed))

	start := time.Now()
	current := s.pool[heuristic.ValueGreedy].Apply(inst, knapsack.Empty(inst), rng)
	best := current.Clone()

	counts := make([]int, len(s.pool))
	totals := make([]float64, len(s.pool))
	// Time-budgeted runs may set an effectively unbounded iteration count,
	// so cap the trace preallocation.
	hint := s.cfg.Iterations
	if hint > 1<<16 {
		hint = 1 << 16
	}
	selected := make([]heuristic.ID, 0, hint)
	trace := make([]int, 0, hint)
	restarts := 0
	stop := StopIterationBudget

	for iter := 0; iter < s.cfg.Iterations; iter++ {
		if ctx.Err() != nil {
			stop = StopCancelled
			break
		}
		if s.cfg.TimeBudget > 0 && time.Since(start) >= s.cfg.TimeBudget {
			stop = StopTimeBudget
			break
		}

		arm := pol.Select(rng)
		desc := s.pool[arm]
		candidate := desc.Apply(inst, current, rng)
		if !candidate.Feasible() {
			return Result{}, fmt.Errorf("%w: %s (weight=%d capacity=%d)",
				ErrHeuristicContract, desc.Name, candidate.Weight, inst.Capacity)
		}

		// The policy is credited with the true delta even when the
		// candidate is rejected, so it still learns which heuristics
		// underperform at this point in the search.
		delta := candidate.Value - current.Value
		pol.Update(arm, float64(delta))
		counts[arm]++
		totals[arm] += float64(delta)

		if s.cfg.Acceptance == AcceptAlways || candidate.Value >= current.Value {
			current = candidate
		}

		improved := candidate.Value > best.Value
		if improved {
			best = candidate.Clone()
		}
		if signaler, ok := pol.(policy.RestartSignaler); ok {
			if signaler.ObserveBest(improved) {
				current = s.pool[heuristic.RandomizedGreedy].Apply(inst, knapsack.Empty(inst), rng)
				restarts++
			}
		}

		selected = append(selected, desc.ID)
		trace = append(trace, best.Value)
	}

	usage := make([]HeuristicUsage, len(s.pool))
	for i, desc := range s.pool {
		avg := 0.0
		if counts[i] > 0 {
			avg = totals[i] / float64(counts[i])
		}
		usage[i] = HeuristicUsage{
			ID:            desc.ID,
			Name:          desc.Name,
			Kind:          string(desc.Kind),
			Count:         counts[i],
			TotalReward:   totals[i],
			AverageReward: avg,
		}
	}

	return Result{
		Best:       best,
		Iterations: len(selected),
		Restarts:   restarts,
		StopReason: stop,
		Elapsed:    time.Since(start),
		Usage:      usage,
		Selected:   selected,
		BestTrace:  trace,
	}, nil
}
