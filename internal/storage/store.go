package storage

import (
	"context"

	"hyperknap/internal/model"
)

// Store persists run records. Implementations must be safe for concurrent
// use: independent solves may save their results from separate goroutines.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, runID string) (model.RunRecord, bool, error)
	// ListRuns returns up to limit records, newest first; limit <= 0 means all.
	ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error)
}
