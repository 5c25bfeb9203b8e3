package storage

import (
	"context"

	"sweeplab/internal/model"
)

// Store defines persistence operations for completed sweep outputs.
// Intermediate run state is never persisted, only summaries and report
// tables.
type Store interface {
	Init(ctx context.Context) error
	SaveSweep(ctx context.Context, summary model.SweepSummary) error
	GetSweep(ctx context.Context, id string) (model.SweepSummary, bool, error)
	ListSweeps(ctx context.Context) ([]model.SweepSummary, error)
	SaveTable(ctx context.Context, table model.ReportTable) error
	GetTable(ctx context.Context, sweepID, name string) (model.ReportTable, bool, error)
}
