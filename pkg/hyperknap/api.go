// Package hyperknap is the public entry point: it wires the hyperheuristic
// solver, the baseline metaheuristics, run persistence, and result export
// behind one client.
package hyperknap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hyperknap/internal/export"
	"hyperknap/internal/knapsack"
	"hyperknap/internal/metaheuristic"
	"hyperknap/internal/model"
	"hyperknap/internal/policy"
	"hyperknap/internal/solver"
	"hyperknap/internal/stats"
	"hyperknap/internal/storage"
)

const (
	defaultDBPath     = "hyperknap.db"
	defaultExportsDir = "exports"
)

type Options struct {
	StoreKind  string
	DBPath     string
	ExportsDir string
}

type Client struct {
	store      storage.Store
	exportsDir string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(context.Background()); err != nil {
		return nil, err
	}

	return &Client{store: store, exportsDir: exportsDir}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

type SolveRequest struct {
	RunID           string
	Instance        *knapsack.Instance
	Mechanism       string
	Iterations      int
	Seed            int64
	TimeBudget      time.Duration
	StagnationLimit int
	Acceptance      string
	// SkipStore leaves the run out of the store (benchmark sweeps).
	SkipStore bool
}

type RunSummary struct {
	RunID      string
	Instance   string
	Mechanism  string
	Seed       int64
	BestValue  int
	BestWeight int
	Selected   []int
	GapPercent *float64
	Iterations int
	Restarts   int
	StopReason string
	Elapsed    time.Duration
	Heuristics []model.HeuristicStat
}

func (c *Client) Solve(ctx context.Context, req SolveRequest) (RunSummary, error) {
	if req.Instance == nil {
		return RunSummary{}, errors.New("instance is required")
	}

	runID := req.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	s, err := solver.New(solver.Config{
		Mechanism:       policy.Mechanism(req.Mechanism),
		Iterations:      req.Iterations,
		Seed:            req.Seed,
		TimeBudget:      req.TimeBudget,
		StagnationLimit: req.StagnationLimit,
		Acceptance:      solver.Acceptance(req.Acceptance),
	})
	if err != nil {
		return RunSummary{}, err
	}

	result, err := s.Solve(ctx, req.Instance)
	if err != nil {
		return RunSummary{}, err
	}

	summary := summarize(runID, req, result)
	if !req.SkipStore {
		record := buildRecord(runID, req, result, summary.GapPercent)
		if err := c.store.SaveRun(ctx, record); err != nil {
			return RunSummary{}, fmt.Errorf("save run %s: %w", runID, err)
		}
	}
	return summary, nil
}

func summarize(runID string, req SolveRequest, result solver.Result) RunSummary {
	var gap *float64
	if g, err := result.Best.Gap(); err == nil {
		gap = &g
	}

	heuristics := make([]model.HeuristicStat, 0, len(result.Usage))
	for _, usage := range result.Usage {
		heuristics = append(heuristics, model.HeuristicStat{
			Name:          usage.Name,
			Kind:          usage.Kind,
			Count:         usage.Count,
			TotalReward:   usage.TotalReward,
			AverageReward: usage.AverageReward,
		})
	}

	return RunSummary{
		RunID:      runID,
		Instance:   req.Instance.Name,
		Mechanism:  req.Mechanism,
		Seed:       req.Seed,
		BestValue:  result.Best.Value,
		BestWeight: result.Best.Weight,
		Selected:   result.Best.Selected(),
		GapPercent: gap,
		Iterations: result.Iterations,
		Restarts:   result.Restarts,
		StopReason: string(result.StopReason),
		Elapsed:    result.Elapsed,
		Heuristics: heuristics,
	}
}

func buildRecord(runID string, req SolveRequest, result solver.Result, gap *float64) model.RunRecord {
	heuristics := make([]model.HeuristicStat, 0, len(result.Usage))
	for _, usage := range result.Usage {
		heuristics = append(heuristics, model.HeuristicStat{
			Name:          usage.Name,
			Kind:          usage.Kind,
			Count:         usage.Count,
			TotalReward:   usage.TotalReward,
			AverageReward: usage.AverageReward,
		})
	}

	return model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		RunID:        runID,
		CreatedAtUTC: time.Now().UTC().Format(time.RFC3339Nano),
		InstanceName: req.Instance.Name,
		Items:        req.Instance.N(),
		Capacity:     req.Instance.Capacity,
		Mechanism:    req.Mechanism,
		Seed:         req.Seed,
		Iterations:   result.Iterations,
		Restarts:     result.Restarts,
		StopReason:   string(result.StopReason),
		BestValue:    result.Best.Value,
		BestWeight:   result.Best.Weight,
		Selected:     result.Best.Selected(),
		Optimal:      req.Instance.Optimal,
		GapPercent:   gap,
		ElapsedMS:    result.Elapsed.Milliseconds(),
		Heuristics:   heuristics,
		BestTrace:    result.BestTrace,
	}
}

func (c *Client) Runs(ctx context.Context, limit int) ([]model.RunRecord, error) {
	return c.store.ListRuns(ctx, limit)
}

// Run looks up one stored run by id.
func (c *Client) Run(ctx context.Context, runID string) (model.RunRecord, bool, error) {
	return c.store.GetRun(ctx, runID)
}

type ExportRequest struct {
	Limit  int
	OutDir string
}

type ExportSummary struct {
	Directory string
	Runs      int
}

func (c *Client) Export(ctx context.Context, req ExportRequest) (ExportSummary, error) {
	runs, err := c.store.ListRuns(ctx, req.Limit)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(runs) == 0 {
		return ExportSummary{}, errors.New("no stored runs to export")
	}

	dir := req.OutDir
	if dir == "" {
		dir = c.exportsDir
	}
	if err := export.WriteDir(dir, runs); err != nil {
		return ExportSummary{}, err
	}
	return ExportSummary{Directory: dir, Runs: len(runs)}, nil
}

type BenchmarkRequest struct {
	Instance         *knapsack.Instance
	Mechanisms       []string
	Runs             int
	BaseSeed         int64
	Iterations       int
	StagnationLimit  int
	IncludeBaselines bool
}

// AlgorithmSummary aggregates repeated seeded runs of one algorithm.
type AlgorithmSummary struct {
	Name      string
	Values    stats.Summary
	BestValue int
	MeanGap   *float64
	Elapsed   time.Duration
}

type BenchmarkSummary struct {
	Instance   string
	Runs       int
	Mechanisms []AlgorithmSummary
	Baselines  []AlgorithmSummary
}

// Benchmark runs every requested mechanism (and optionally the standalone
// metaheuristic baselines) on one instance across req.Runs seeds and
// aggregates the outcomes. Benchmark runs are not persisted.
func (c *Client) Benchmark(ctx context.Context, req BenchmarkRequest) (BenchmarkSummary, error) {
	if req.Instance == nil {
		return BenchmarkSummary{}, errors.New("instance is required")
	}
	if req.Runs <= 0 {
		return BenchmarkSummary{}, fmt.Errorf("runs must be > 0, got %d", req.Runs)
	}
	mechanisms := req.Mechanisms
	if len(mechanisms) == 0 {
		for _, m := range policy.Mechanisms() {
			mechanisms = append(mechanisms, string(m))
		}
	}

	summary := BenchmarkSummary{Instance: req.Instance.Name, Runs: req.Runs}

	for _, mechanism := range mechanisms {
		values := make([]int, 0, req.Runs)
		start := time.Now()
		for run := 0; run < req.Runs; run++ {
			if err := ctx.Err(); err != nil {
				return BenchmarkSummary{}, err
			}
			out, err := c.Solve(ctx, SolveRequest{
				Instance:        req.Instance,
				Mechanism:       mechanism,
				Iterations:      req.Iterations,
				Seed:            req.BaseSeed + int64(run),
				StagnationLimit: req.StagnationLimit,
				SkipStore:       true,
			})
			if err != nil {
				return BenchmarkSummary{}, fmt.Errorf("mechanism %s: %w", mechanism, err)
			}
			values = append(values, out.BestValue)
		}
		summary.Mechanisms = append(summary.Mechanisms, aggregate(mechanism, req.Instance, values, time.Since(start)))
	}

	if req.IncludeBaselines {
		baselines, err := c.runBaselines(ctx, req)
		if err != nil {
			return BenchmarkSummary{}, err
		}
		summary.Baselines = baselines
	}
	return summary, nil
}

func (c *Client) runBaselines(ctx context.Context, req BenchmarkRequest) ([]AlgorithmSummary, error) {
	type baseline struct {
		name string
		run  func(seed int64) (knapsack.Solution, error)
	}
	baselines := []baseline{
		{name: "simulated-annealing", run: func(seed int64) (knapsack.Solution, error) {
			cfg := metaheuristic.DefaultAnnealingConfig()
			cfg.Seed = seed
			return metaheuristic.SimulatedAnnealing(req.Instance, cfg)
		}},
		{name: "restart-hill-climbing", run: func(seed int64) (knapsack.Solution, error) {
			cfg := metaheuristic.DefaultRestartClimbConfig()
			cfg.Seed = seed
			return metaheuristic.RestartHillClimb(req.Instance, cfg)
		}},
		{name: "grasp", run: func(seed int64) (knapsack.Solution, error) {
			cfg := metaheuristic.DefaultGRASPConfig()
			cfg.Seed = seed
			return metaheuristic.GRASP(req.Instance, cfg)
		}},
	}

	out := make([]AlgorithmSummary, 0, len(baselines))
	for _, b := range baselines {
		values := make([]int, 0, req.Runs)
		start := time.Now()
		for run := 0; run < req.Runs; run++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			sol, err := b.run(req.BaseSeed + int64(run))
			if err != nil {
				return nil, fmt.Errorf("baseline %s: %w", b.name, err)
			}
			values = append(values, sol.Value)
		}
		out = append(out, aggregate(b.name, req.Instance, values, time.Since(start)))
	}
	return out, nil
}

func aggregate(name string, inst *knapsack.Instance, values []int, elapsed time.Duration) AlgorithmSummary {
	item := AlgorithmSummary{
		Name:    name,
		Values:  stats.Summarize(stats.Ints(values)),
		Elapsed: elapsed,
	}
	for _, v := range values {
		if v > item.BestValue {
			item.BestValue = v
		}
	}
	if inst.Optimal > 0 {
		gaps := make([]float64, 0, len(values))
		for _, v := range values {
			if g, err := inst.Gap(v); err == nil {
				gaps = append(gaps, g)
			}
		}
		meanGap := stats.Summarize(gaps).Mean
		item.MeanGap = &meanGap
	}
	return item
}
