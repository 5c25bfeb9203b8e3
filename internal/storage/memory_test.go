package storage

import (
	"context"
	"testing"

	"sweeplab/internal/model"
)

func TestMemoryStoreSweepRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	summary := model.SweepSummary{
		VersionedRecord: Stamp(),
		ID:              "sweep-1",
		Model:           "gossip",
		ParamNames:      []string{"agents", "spread"},
		Configurations:  4,
		Iterations:      3,
		MaxSteps:        100,
		Runs:            12,
	}
	if err := store.SaveSweep(ctx, summary); err != nil {
		t.Fatalf("save sweep: %v", err)
	}

	loaded, ok, err := store.GetSweep(ctx, "sweep-1")
	if err != nil {
		t.Fatalf("get sweep: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted sweep")
	}
	if loaded.Model != "gossip" || loaded.Runs != 12 {
		t.Fatalf("unexpected sweep: %+v", loaded)
	}

	loaded.ParamNames[0] = "mutated"
	again, _, err := store.GetSweep(ctx, "sweep-1")
	if err != nil {
		t.Fatalf("get sweep: %v", err)
	}
	if again.ParamNames[0] != "agents" {
		t.Fatalf("store must hand out copies: %+v", again)
	}
}

func TestMemoryStoreGetMissingSweep(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	_, ok, err := store.GetSweep(ctx, "nope")
	if err != nil {
		t.Fatalf("get sweep: %v", err)
	}
	if ok {
		t.Fatal("expected missing sweep")
	}
}

func TestMemoryStoreListSweepsOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	for _, summary := range []model.SweepSummary{
		{VersionedRecord: Stamp(), ID: "b", StartedAtUTC: "2026-08-25T10:00:00Z"},
		{VersionedRecord: Stamp(), ID: "a", StartedAtUTC: "2026-08-25T12:00:00Z"},
		{VersionedRecord: Stamp(), ID: "c"},
	} {
		if err := store.SaveSweep(ctx, summary); err != nil {
			t.Fatalf("save sweep: %v", err)
		}
	}

	sweeps, err := store.ListSweeps(ctx)
	if err != nil {
		t.Fatalf("list sweeps: %v", err)
	}
	if len(sweeps) != 3 {
		t.Fatalf("expected 3 sweeps, got %d", len(sweeps))
	}
	if sweeps[0].ID != "a" || sweeps[1].ID != "b" || sweeps[2].ID != "c" {
		t.Fatalf("unexpected order: %s %s %s", sweeps[0].ID, sweeps[1].ID, sweeps[2].ID)
	}
}

func TestMemoryStoreTableRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	table := model.ReportTable{
		VersionedRecord: Stamp(),
		SweepID:         "sweep-1",
		Name:            "model",
		Columns:         []string{"agents", "Run", "informed"},
		Rows:            [][]any{{10, 0, 7}},
	}
	if err := store.SaveTable(ctx, table); err != nil {
		t.Fatalf("save table: %v", err)
	}

	loaded, ok, err := store.GetTable(ctx, "sweep-1", "model")
	if err != nil {
		t.Fatalf("get table: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted table")
	}
	if len(loaded.Rows) != 1 || loaded.Columns[2] != "informed" {
		t.Fatalf("unexpected table: %+v", loaded)
	}

	_, ok, err = store.GetTable(ctx, "sweep-1", "agent")
	if err != nil {
		t.Fatalf("get table: %v", err)
	}
	if ok {
		t.Fatal("expected missing agent table")
	}
}
