package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"hyperknap/internal/instance"
	"hyperknap/internal/knapsack"
	knapapi "hyperknap/pkg/hyperknap"
)

// loadSolveConfig reads a solve request from a JSON config file. The second
// return value is the instance path named by the config, if any.
func loadSolveConfig(path string) (knapapi.SolveRequest, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return knapapi.SolveRequest{}, "", err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return knapapi.SolveRequest{}, "", fmt.Errorf("load config: %w", err)
	}

	var req knapapi.SolveRequest
	var instancePath string
	if v, ok := asString(raw["run_id"]); ok {
		req.RunID = v
	}
	if v, ok := asString(raw["instance"]); ok {
		instancePath = v
	}
	if v, ok := asString(raw["mechanism"]); ok {
		req.Mechanism = v
	}
	if v, ok := asInt(raw["iterations"]); ok {
		req.Iterations = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	if v, ok := asInt(raw["time_budget_ms"]); ok {
		req.TimeBudget = time.Duration(v) * time.Millisecond
	}
	if v, ok := asInt(raw["stagnation_limit"]); ok {
		req.StagnationLimit = v
	}
	if v, ok := asString(raw["acceptance"]); ok {
		req.Acceptance = v
	}
	return req, instancePath, nil
}

// overrideSolveFromFlags copies the values of explicitly set flags over a
// config-loaded request, so flags win over the config file.
func overrideSolveFromFlags(req *knapapi.SolveRequest, set map[string]bool, flags knapapi.SolveRequest) {
	if set["run-id"] {
		req.RunID = flags.RunID
	}
	if set["mechanism"] {
		req.Mechanism = flags.Mechanism
	}
	if set["iterations"] {
		req.Iterations = flags.Iterations
	}
	if set["seed"] {
		req.Seed = flags.Seed
	}
	if set["time-budget-ms"] {
		req.TimeBudget = flags.TimeBudget
	}
	if set["stagnation-limit"] {
		req.StagnationLimit = flags.StagnationLimit
	}
	if set["acceptance"] {
		req.Acceptance = flags.Acceptance
	}
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

type suiteInstance struct {
	Path     string              `yaml:"path"`
	Generate *suiteGeneratorSpec `yaml:"generate"`
}

type suiteGeneratorSpec struct {
	Items         int     `yaml:"items"`
	CapacityRatio float64 `yaml:"capacity_ratio"`
	Correlated    bool    `yaml:"correlated"`
	Seed          int64   `yaml:"seed"`
	Name          string  `yaml:"name"`
}

type suiteConfig struct {
	Instances        []suiteInstance `yaml:"instances"`
	Mechanisms       []string        `yaml:"mechanisms"`
	Runs             int             `yaml:"runs"`
	BaseSeed         int64           `yaml:"base_seed"`
	Iterations       int             `yaml:"iterations"`
	StagnationLimit  int             `yaml:"stagnation_limit"`
	IncludeBaselines bool            `yaml:"include_baselines"`
}

// loadBenchmarkSuite reads a YAML suite file describing one benchmark job
// per instance. Instances are either loaded from disk or generated in place.
func loadBenchmarkSuite(path string) ([]benchmarkJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var suite suiteConfig
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("load suite: %w", err)
	}
	if len(suite.Instances) == 0 {
		return nil, fmt.Errorf("suite %s names no instances", path)
	}
	if suite.Runs <= 0 {
		suite.Runs = 10
	}
	if suite.Iterations <= 0 {
		suite.Iterations = 1000
	}
	if suite.BaseSeed == 0 {
		suite.BaseSeed = 1
	}

	jobs := make([]benchmarkJob, 0, len(suite.Instances))
	for i, item := range suite.Instances {
		inst, err := resolveSuiteInstance(item)
		if err != nil {
			return nil, fmt.Errorf("suite instance %d: %w", i, err)
		}
		jobs = append(jobs, benchmarkJob{
			instance: inst,
			request: knapapi.BenchmarkRequest{
				Mechanisms:       suite.Mechanisms,
				Runs:             suite.Runs,
				BaseSeed:         suite.BaseSeed,
				Iterations:       suite.Iterations,
				StagnationLimit:  suite.StagnationLimit,
				IncludeBaselines: suite.IncludeBaselines,
			},
		})
	}
	return jobs, nil
}

func resolveSuiteInstance(item suiteInstance) (*knapsack.Instance, error) {
	switch {
	case item.Path != "" && item.Generate != nil:
		return nil, fmt.Errorf("use either path or generate, not both")
	case item.Path != "":
		return instance.ReadFile(item.Path)
	case item.Generate != nil:
		cfg := instance.DefaultGeneratorConfig()
		if item.Generate.Items > 0 {
			cfg.Items = item.Generate.Items
		}
		if item.Generate.CapacityRatio > 0 {
			cfg.CapacityRatio = item.Generate.CapacityRatio
		}
		cfg.Correlated = item.Generate.Correlated
		cfg.Seed = item.Generate.Seed
		cfg.Name = item.Generate.Name
		return instance.Generate(cfg)
	default:
		return nil, fmt.Errorf("instance entry needs a path or a generate block")
	}
}
