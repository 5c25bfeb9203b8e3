package storage

import (
	"context"
	"sort"
	"sync"

	"sweeplab/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	sweeps      map[string]model.SweepSummary
	tables      map[string]model.ReportTable
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.sweeps = make(map[string]model.SweepSummary)
	s.tables = make(map[string]model.ReportTable)
	return nil
}

func (s *MemoryStore) SaveSweep(_ context.Context, summary model.SweepSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := summary
	copied.ParamNames = append([]string(nil), summary.ParamNames...)
	s.sweeps[summary.ID] = copied
	return nil
}

func (s *MemoryStore) GetSweep(_ context.Context, id string) (model.SweepSummary, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary, ok := s.sweeps[id]
	if !ok {
		return model.SweepSummary{}, false, nil
	}
	copied := summary
	copied.ParamNames = append([]string(nil), summary.ParamNames...)
	return copied, true, nil
}

func (s *MemoryStore) ListSweeps(_ context.Context) ([]model.SweepSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.SweepSummary, 0, len(s.sweeps))
	for _, summary := range s.sweeps {
		copied := summary
		copied.ParamNames = append([]string(nil), summary.ParamNames...)
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool {
		switch {
		case out[i].StartedAtUTC == out[j].StartedAtUTC:
			return out[i].ID < out[j].ID
		case out[i].StartedAtUTC == "":
			return false
		case out[j].StartedAtUTC == "":
			return true
		default:
			return out[i].StartedAtUTC > out[j].StartedAtUTC
		}
	})
	return out, nil
}

func (s *MemoryStore) SaveTable(_ context.Context, table model.ReportTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables[tableKey(table.SweepID, table.Name)] = copyTable(table)
	return nil
}

func (s *MemoryStore) GetTable(_ context.Context, sweepID, name string) (model.ReportTable, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table, ok := s.tables[tableKey(sweepID, name)]
	if !ok {
		return model.ReportTable{}, false, nil
	}
	return copyTable(table), true, nil
}

func tableKey(sweepID, name string) string {
	return sweepID + "\x00" + name
}

func copyTable(table model.ReportTable) model.ReportTable {
	copied := table
	copied.Columns = append([]string(nil), table.Columns...)
	copied.Rows = make([][]any, len(table.Rows))
	for i, row := range table.Rows {
		copied.Rows[i] = append([]any(nil), row...)
	}
	return copied
}
