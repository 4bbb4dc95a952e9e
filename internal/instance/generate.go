package instance

import (
	"fmt"
	"math/rand"

	"hyperknap/internal/knapsack"
)

type GeneratorConfig struct {
	Items         int
	CapacityRatio float64 // capacity as a fraction of the total item weight
	Correlated    bool    // value tracks weight plus small noise
	Seed          int64
	Name          string
}

func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{Items: 50, CapacityRatio: 0.5}
}

const (
	maxItemValue     = 100
	maxItemWeight    = 100
	correlationNoise = 10
)

// Generate builds a synthetic instance. The uncorrelated variant draws
// values and weights uniformly from [1, 100]; the correlated variant sets
// value to weight plus noise in [-10, 10], clamped to stay positive, which
// yields harder instances.
func Generate(cfg GeneratorConfig) (*knapsack.Instance, error) {
	if cfg.Items <= 0 {
		return nil, fmt.Errorf("item count must be > 0, got %d", cfg.Items)
	}
	if cfg.CapacityRatio <= 0 || cfg.CapacityRatio > 1 {
		return nil, fmt.Errorf("capacity ratio must be in (0, 1], got %v", cfg.CapacityRatio)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	values := make([]int, cfg.Items)
	weights := make([]int, cfg.Items)
	totalWeight := 0

	for i := 0; i < cfg.Items; i++ {
		weights[i] = 1 + rng.Intn(maxItemWeight)
		totalWeight += weights[i]
		if cfg.Correlated {
			values[i] = weights[i] + rng.Intn(2*correlationNoise+1) - correlationNoise
			if values[i] < 1 {
				values[i] = 1
			}
		} else {
			values[i] = 1 + rng.Intn(maxItemValue)
		}
	}

	name := cfg.Name
	if name == "" {
		kind := "random"
		if cfg.Correlated {
			kind = "correlated"
		}
		name = fmt.Sprintf("%s-n%d-s%d", kind, cfg.Items, cfg.Seed)
	}

	inst := &knapsack.Instance{
		Name:     name,
		Capacity: int(float64(totalWeight) * cfg.CapacityRatio),
		Values:   values,
		Weights:  weights,
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}
