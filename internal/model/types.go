package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// HeuristicStat is the stored per-heuristic diagnostic of one run.
type HeuristicStat struct {
	Name          string  `json:"name"`
	Kind          string  `json:"kind"`
	Count         int     `json:"count"`
	TotalReward   float64 `json:"total_reward"`
	AverageReward float64 `json:"average_reward"`
}

// RunRecord is the persisted outcome of one hyperheuristic solve.
type RunRecord struct {
	VersionedRecord
	RunID        string          `json:"run_id"`
	CreatedAtUTC string          `json:"created_at_utc"`
	InstanceName string          `json:"instance_name"`
	Items        int             `json:"items"`
	Capacity     int             `json:"capacity"`
	Mechanism    string          `json:"mechanism"`
	Seed         int64           `json:"seed"`
	Iterations   int             `json:"iterations"`
	Restarts     int             `json:"restarts"`
	StopReason   string          `json:"stop_reason"`
	BestValue    int             `json:"best_value"`
	BestWeight   int             `json:"best_weight"`
	Selected     []int           `json:"selected_items,omitempty"`
	Optimal      int             `json:"optimal,omitempty"`
	GapPercent   *float64        `json:"gap_percent,omitempty"`
	ElapsedMS    int64           `json:"elapsed_ms"`
	Heuristics   []HeuristicStat `json:"heuristics"`
	BestTrace    []int           `json:"best_trace,omitempty"`
}
