package instance

import "hyperknap/internal/knapsack"

// Statistics summarizes the shape of one instance for inspection output.
type Statistics struct {
	Name          string  `json:"name"`
	Items         int     `json:"items"`
	Capacity      int     `json:"capacity"`
	Optimal       int     `json:"optimal,omitempty"`
	TotalValue    int     `json:"total_value"`
	TotalWeight   int     `json:"total_weight"`
	AvgValue      float64 `json:"avg_value"`
	AvgWeight     float64 `json:"avg_weight"`
	AvgRatio      float64 `json:"avg_ratio"`
	MinRatio      float64 `json:"min_ratio"`
	MaxRatio      float64 `json:"max_ratio"`
	CapacityRatio float64 `json:"capacity_ratio"`
}

func Summarize(inst *knapsack.Instance) Statistics {
	n := inst.N()
	stats := Statistics{
		Name:     inst.Name,
		Items:    n,
		Capacity: inst.Capacity,
		Optimal:  inst.Optimal,
	}
	if n == 0 {
		return stats
	}

	ratioSum := 0.0
	stats.MinRatio = inst.Ratio(0)
	stats.MaxRatio = inst.Ratio(0)
	for i := 0; i < n; i++ {
		stats.TotalValue += inst.Values[i]
		stats.TotalWeight += inst.Weights[i]
		r := inst.Ratio(i)
		ratioSum += r
		if r < stats.MinRatio {
			stats.MinRatio = r
		}
		if r > stats.MaxRatio {
			stats.MaxRatio = r
		}
	}
	stats.AvgValue = float64(stats.TotalValue) / float64(n)
	stats.AvgWeight = float64(stats.TotalWeight) / float64(n)
	stats.AvgRatio = ratioSum / float64(n)
	if stats.TotalWeight > 0 {
		stats.CapacityRatio = float64(inst.Capacity) / float64(stats.TotalWeight)
	}
	return stats
}
