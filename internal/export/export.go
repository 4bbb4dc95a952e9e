// Package export writes stored run records as tabular CSV and structured
// JSON dumps for offline analysis.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"hyperknap/internal/model"
)

var csvHeader = []string{
	"run_id", "created_at_utc", "instance", "items", "capacity",
	"mechanism", "seed", "iterations", "restarts", "stop_reason",
	"best_value", "best_weight", "optimal", "gap_percent", "elapsed_ms",
}

func WriteCSV(w io.Writer, runs []model.RunRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, run := range runs {
		optimal := ""
		if run.Optimal > 0 {
			optimal = strconv.Itoa(run.Optimal)
		}
		gap := ""
		if run.GapPercent != nil {
			gap = strconv.FormatFloat(*run.GapPercent, 'f', 4, 64)
		}
		record := []string{
			run.RunID,
			run.CreatedAtUTC,
			run.InstanceName,
			strconv.Itoa(run.Items),
			strconv.Itoa(run.Capacity),
			run.Mechanism,
			strconv.FormatInt(run.Seed, 10),
			strconv.Itoa(run.Iterations),
			strconv.Itoa(run.Restarts),
			run.StopReason,
			strconv.Itoa(run.BestValue),
			strconv.Itoa(run.BestWeight),
			optimal,
			gap,
			strconv.FormatInt(run.ElapsedMS, 10),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteJSON(w io.Writer, runs []model.RunRecord) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(runs)
}

// WriteDir dumps runs.csv and runs.json under dir, creating it if needed.
func WriteDir(dir string, runs []model.RunRecord) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, "runs.csv"), runs, WriteCSV); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, "runs.json"), runs, WriteJSON)
}

func writeFile(path string, runs []model.RunRecord, write func(io.Writer, []model.RunRecord) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, runs); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
