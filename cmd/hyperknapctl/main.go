package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"hyperknap/internal/instance"
	"hyperknap/internal/knapsack"
	"hyperknap/internal/model"
	"hyperknap/internal/policy"
	"hyperknap/internal/storage"
	knapapi "hyperknap/pkg/hyperknap"
)

const exportsDir = "exports"

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "solve":
		return runSolve(ctx, args[1:])
	case "benchmark":
		return runBenchmark(ctx, args[1:])
	case "generate":
		return runGenerate(ctx, args[1:])
	case "inspect":
		return runInspect(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runSolve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional solve config JSON path")
	instancePath := fs.String("instance", "", "knapsack instance file path")
	runID := fs.String("run-id", "", "explicit run id (optional)")
	mechanism := fs.String("mechanism", string(policy.Adaptive), "selection mechanism: roulette|epsilon-greedy|reinforcement-learning|adaptive")
	iterations := fs.Int("iterations", 1000, "iteration budget")
	seed := fs.Int64("seed", 1, "rng seed")
	timeBudgetMS := fs.Int("time-budget-ms", 0, "wall clock budget in milliseconds (0 disables)")
	stagnationLimit := fs.Int("stagnation-limit", 0, "iterations without improvement before a restart (0 uses default)")
	acceptance := fs.String("acceptance", "", "move acceptance rule: non-worsening|always")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "hyperknap.db", "sqlite database path")
	jsonOut := fs.Bool("json", false, "emit run summary as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	req := knapapi.SolveRequest{
		RunID:           *runID,
		Mechanism:       *mechanism,
		Iterations:      *iterations,
		Seed:            *seed,
		TimeBudget:      time.Duration(*timeBudgetMS) * time.Millisecond,
		StagnationLimit: *stagnationLimit,
		Acceptance:      *acceptance,
	}
	instFile := *instancePath
	if *configPath != "" {
		loaded, loadedInstance, err := loadSolveConfig(*configPath)
		if err != nil {
			return err
		}
		overrideSolveFromFlags(&loaded, setFlags, req)
		req = loaded
		if !setFlags["instance"] && loadedInstance != "" {
			instFile = loadedInstance
		}
	}
	if instFile == "" {
		return errors.New("solve requires --instance (or an instance path in --config)")
	}

	inst, err := instance.ReadFile(instFile)
	if err != nil {
		return err
	}
	req.Instance = inst

	client, err := knapapi.New(knapapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Solve(ctx, req)
	if err != nil {
		return err
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Printf("run completed run_id=%s instance=%s mechanism=%s seed=%d\n",
		summary.RunID, summary.Instance, summary.Mechanism, summary.Seed)
	fmt.Printf("best_value=%s best_weight=%s capacity=%s items_selected=%d/%d\n",
		humanize.Comma(int64(summary.BestValue)),
		humanize.Comma(int64(summary.BestWeight)),
		humanize.Comma(int64(inst.Capacity)),
		len(summary.Selected), inst.N(),
	)
	if summary.GapPercent != nil {
		fmt.Printf("optimal=%s gap=%.4f%%\n", humanize.Comma(int64(inst.Optimal)), *summary.GapPercent)
	}
	fmt.Printf("iterations=%d restarts=%d stop_reason=%s elapsed=%s\n",
		summary.Iterations, summary.Restarts, summary.StopReason, summary.Elapsed)
	for _, h := range summary.Heuristics {
		fmt.Printf("heuristic=%s kind=%s count=%d total_reward=%.1f avg_reward=%.4f\n",
			h.Name, h.Kind, h.Count, h.TotalReward, h.AverageReward)
	}
	return nil
}

func runBenchmark(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("benchmark", flag.ContinueOnError)
	suitePath := fs.String("suite", "", "optional benchmark suite YAML path")
	instancePath := fs.String("instance", "", "knapsack instance file path")
	instancesDir := fs.String("instances-dir", "", "directory of instance files (all .txt files)")
	mechanismList := fs.String("mechanisms", "", "comma separated mechanisms (default: all)")
	runs := fs.Int("runs", 10, "runs per algorithm")
	baseSeed := fs.Int64("base-seed", 1, "base rng seed; run i uses base-seed+i")
	iterations := fs.Int("iterations", 1000, "iteration budget per run")
	stagnationLimit := fs.Int("stagnation-limit", 0, "iterations without improvement before a restart (0 uses default)")
	baselines := fs.Bool("baselines", false, "include standalone metaheuristic baselines")
	jsonOut := fs.Bool("json", false, "emit benchmark summaries as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var suites []benchmarkJob
	switch {
	case *suitePath != "":
		loaded, err := loadBenchmarkSuite(*suitePath)
		if err != nil {
			return err
		}
		suites = loaded
	case *instancePath != "":
		inst, err := instance.ReadFile(*instancePath)
		if err != nil {
			return err
		}
		suites = append(suites, benchmarkJob{
			instance: inst,
			request: knapapi.BenchmarkRequest{
				Mechanisms:       splitMechanisms(*mechanismList),
				Runs:             *runs,
				BaseSeed:         *baseSeed,
				Iterations:       *iterations,
				StagnationLimit:  *stagnationLimit,
				IncludeBaselines: *baselines,
			},
		})
	case *instancesDir != "":
		instances, err := instance.LoadDir(*instancesDir)
		if err != nil {
			return err
		}
		if len(instances) == 0 {
			return fmt.Errorf("no instance files found in %s", *instancesDir)
		}
		for _, inst := range instances {
			suites = append(suites, benchmarkJob{
				instance: inst,
				request: knapapi.BenchmarkRequest{
					Mechanisms:       splitMechanisms(*mechanismList),
					Runs:             *runs,
					BaseSeed:         *baseSeed,
					Iterations:       *iterations,
					StagnationLimit:  *stagnationLimit,
					IncludeBaselines: *baselines,
				},
			})
		}
	default:
		return errors.New("benchmark requires --suite, --instance, or --instances-dir")
	}

	client, err := knapapi.New(knapapi.Options{StoreKind: "memory"})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	var summaries []knapapi.BenchmarkSummary
	for _, job := range suites {
		job.request.Instance = job.instance
		summary, err := client.Benchmark(ctx, job.request)
		if err != nil {
			return err
		}
		summaries = append(summaries, summary)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	for _, summary := range summaries {
		fmt.Printf("instance=%s runs=%d\n", summary.Instance, summary.Runs)
		printAlgorithmRows(summary.Mechanisms)
		printAlgorithmRows(summary.Baselines)
	}
	return nil
}

func printAlgorithmRows(rows []knapapi.AlgorithmSummary) {
	for _, row := range rows {
		gapDisplay := "n/a"
		if row.MeanGap != nil {
			gapDisplay = fmt.Sprintf("%.4f%%", *row.MeanGap)
		}
		fmt.Printf("algorithm=%s best=%s mean=%.2f stddev=%.2f min=%.0f max=%.0f mean_gap=%s elapsed=%s\n",
			row.Name,
			humanize.Comma(int64(row.BestValue)),
			row.Values.Mean,
			row.Values.StdDev,
			row.Values.Min,
			row.Values.Max,
			gapDisplay,
			row.Elapsed,
		)
	}
}

func runGenerate(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	out := fs.String("out", "", "output instance file path")
	items := fs.Int("items", 50, "item count")
	capacityRatio := fs.Float64("capacity-ratio", 0.5, "capacity as a fraction of total item weight, in (0, 1]")
	correlated := fs.Bool("correlated", false, "correlate values with weights")
	seed := fs.Int64("seed", 1, "rng seed")
	name := fs.String("name", "", "instance name (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return errors.New("generate requires --out")
	}

	inst, err := instance.Generate(instance.GeneratorConfig{
		Items:         *items,
		CapacityRatio: *capacityRatio,
		Correlated:    *correlated,
		Seed:          *seed,
		Name:          *name,
	})
	if err != nil {
		return err
	}
	if err := instance.WriteFile(*out, inst); err != nil {
		return err
	}

	fmt.Printf("generated instance=%s items=%d capacity=%s path=%s\n",
		inst.Name, inst.N(), humanize.Comma(int64(inst.Capacity)), *out)
	return nil
}

func runInspect(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	instancePath := fs.String("instance", "", "knapsack instance file path")
	jsonOut := fs.Bool("json", false, "emit instance statistics as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *instancePath == "" {
		return errors.New("inspect requires --instance")
	}

	inst, err := instance.ReadFile(*instancePath)
	if err != nil {
		return err
	}
	summary := instance.Summarize(inst)

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Printf("instance=%s items=%d capacity=%s total_weight=%s total_value=%s\n",
		inst.Name, inst.N(),
		humanize.Comma(int64(inst.Capacity)),
		humanize.Comma(int64(summary.TotalWeight)),
		humanize.Comma(int64(summary.TotalValue)),
	)
	fmt.Printf("ratio min=%.4f avg=%.4f max=%.4f capacity_ratio=%.4f\n",
		summary.MinRatio, summary.AvgRatio, summary.MaxRatio, summary.CapacityRatio)
	if inst.Optimal > 0 {
		fmt.Printf("optimal=%s\n", humanize.Comma(int64(inst.Optimal)))
	}
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max runs to list")
	runID := fs.String("run-id", "", "show one run by id")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "hyperknap.db", "sqlite database path")
	jsonOut := fs.Bool("json", false, "emit runs list as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	client, err := knapapi.New(knapapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	var runs []model.RunRecord
	if *runID != "" {
		record, ok, err := client.Run(ctx, *runID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("run %s not found", *runID)
		}
		runs = []model.RunRecord{record}
	} else {
		runs, err = client.Runs(ctx, *limit)
		if err != nil {
			return err
		}
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	for _, r := range runs {
		gapDisplay := "n/a"
		if r.GapPercent != nil {
			gapDisplay = fmt.Sprintf("%.4f%%", *r.GapPercent)
		}
		fmt.Printf("run_id=%s created_at=%s instance=%s mechanism=%s seed=%d best_value=%s gap=%s stop_reason=%s\n",
			r.RunID,
			r.CreatedAtUTC,
			r.InstanceName,
			r.Mechanism,
			r.Seed,
			humanize.Comma(int64(r.BestValue)),
			gapDisplay,
			r.StopReason,
		)
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	limit := fs.Int("limit", 0, "max runs to export (<=0 for all)")
	outDir := fs.String("out", exportsDir, "export output directory")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "hyperknap.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := knapapi.New(knapapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Export(ctx, knapapi.ExportRequest{
		Limit:  *limit,
		OutDir: *outDir,
	})
	if err != nil {
		return err
	}

	fmt.Printf("exported runs=%d dir=%s\n", summary.Runs, summary.Directory)
	return nil
}

func splitMechanisms(list string) []string {
	if list == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

type benchmarkJob struct {
	instance *knapsack.Instance
	request  knapapi.BenchmarkRequest
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: hyperknapctl <solve|benchmark|generate|inspect|runs|export> [flags]", msg)
}
