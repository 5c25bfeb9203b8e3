package collect

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sweeplab/internal/sim"
)

type stubAgent struct {
	id     string
	wealth int
}

func (a stubAgent) ID() string { return a.id }

type stubModel struct {
	steps  int
	agents []sim.Agent
}

func (m *stubModel) Running() bool { return false }

func (m *stubModel) Steps() int { return m.steps }

func (m *stubModel) Step(context.Context) error { m.steps++; return nil }

func (m *stubModel) Agents() []sim.Agent { return m.agents }

func TestCollectRunAssignsMonotonicRunNumbers(t *testing.T) {
	res := NewResults([]string{"a"})
	c := &Collector{
		ModelReporters: map[string]ModelReporter{
			"steps": func(m sim.Model) (any, error) { return m.Steps(), nil },
		},
	}
	m := &stubModel{steps: 7}

	for want := 0; want < 3; want++ {
		run, err := c.CollectRun(res, []any{1}, m)
		if err != nil {
			t.Fatalf("collect run: %v", err)
		}
		if run != want {
			t.Fatalf("expected run %d, got %d", want, run)
		}
	}

	records := res.ModelRecords()
	if len(records) != 3 {
		t.Fatalf("expected 3 model records, got %d", len(records))
	}
	for i, record := range records {
		if record.Key.Run != i {
			t.Fatalf("record %d has run %d", i, record.Key.Run)
		}
		if record.Values["steps"] != 7 {
			t.Fatalf("record %d values: %v", i, record.Values)
		}
	}
}

func TestCollectRunAgentRecords(t *testing.T) {
	res := NewResults([]string{"a"})
	c := &Collector{
		AgentReporters: map[string]AgentReporter{
			"wealth": func(a sim.Agent) (any, error) { return a.(stubAgent).wealth, nil },
		},
	}
	m := &stubModel{agents: []sim.Agent{
		stubAgent{id: "agent-0", wealth: 3},
		stubAgent{id: "agent-1", wealth: 5},
	}}

	if _, err := c.CollectRun(res, []any{2}, m); err != nil {
		t.Fatalf("collect run: %v", err)
	}
	records := res.AgentRecords()
	if len(records) != 2 {
		t.Fatalf("expected 2 agent records, got %d", len(records))
	}
	if records[0].Key.AgentID != "agent-0" || records[1].Key.AgentID != "agent-1" {
		t.Fatalf("unexpected agent ids: %+v", records)
	}
	if records[1].Values["wealth"] != 5 {
		t.Fatalf("unexpected agent values: %v", records[1].Values)
	}
	if len(res.ModelRecords()) != 0 {
		t.Fatalf("no model reporters were supplied, store must stay empty")
	}
}

func TestCollectRunReporterErrorCommitsNothing(t *testing.T) {
	res := NewResults([]string{"a"})
	boom := errors.New("boom")
	c := &Collector{
		ModelReporters: map[string]ModelReporter{
			"ok":   func(sim.Model) (any, error) { return 1, nil },
			"oops": func(sim.Model) (any, error) { return nil, boom },
		},
	}

	_, err := c.CollectRun(res, []any{1}, &stubModel{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected reporter error, got %v", err)
	}
	if !strings.Contains(err.Error(), `"oops"`) {
		t.Fatalf("error must name the reporter: %v", err)
	}
	if len(res.ModelRecords()) != 0 {
		t.Fatalf("failed run must not commit records")
	}
	if res.NextRun() != 0 {
		t.Fatalf("failed run must not consume a run number")
	}
}

func TestResultsCheckParamNames(t *testing.T) {
	res := NewResults([]string{"a", "b"})
	if err := res.CheckParamNames([]string{"a", "b"}); err != nil {
		t.Fatalf("matching names rejected: %v", err)
	}
	if err := res.CheckParamNames([]string{"b", "a"}); err == nil {
		t.Fatalf("expected mismatch error")
	}
}
