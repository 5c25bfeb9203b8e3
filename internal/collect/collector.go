package collect

import (
	"fmt"
	"sort"

	"sweeplab/internal/sim"
)

// ModelReporter observes one value from a completed model run.
type ModelReporter func(m sim.Model) (any, error)

// AgentReporter observes one value from a single agent after a run.
type AgentReporter func(a sim.Agent) (any, error)

// Collector invokes reporters against a finished run and commits the
// resulting records. Reporters are opaque: return values are stored as-is
// and an error aborts the sweep with nothing recorded for the failing
// run.
type Collector struct {
	ModelReporters map[string]ModelReporter
	AgentReporters map[string]AgentReporter
}

// CollectRun observes one completed run and appends its records to the
// accumulator, returning the run number it consumed.
func (c *Collector) CollectRun(res *Results, paramValues []any, m sim.Model) (int, error) {
	run := res.NextRun()
	key := RecordKey{ParamValues: append([]any(nil), paramValues...), Run: run}

	var modelRecords []Record
	if len(c.ModelReporters) > 0 {
		values := make(map[string]any, len(c.ModelReporters))
		for _, name := range sortedKeys(c.ModelReporters) {
			v, err := c.ModelReporters[name](m)
			if err != nil {
				return 0, fmt.Errorf("model reporter %q at run %d: %w", name, run, err)
			}
			values[name] = v
		}
		modelRecords = []Record{{Key: key, Values: values}}
	}

	var agentRecords []Record
	if len(c.AgentReporters) > 0 {
		agents := m.Agents()
		agentRecords = make([]Record, 0, len(agents))
		names := sortedKeys(c.AgentReporters)
		for _, agent := range agents {
			values := make(map[string]any, len(names))
			for _, name := range names {
				v, err := c.AgentReporters[name](agent)
				if err != nil {
					return 0, fmt.Errorf("agent reporter %q for agent %s at run %d: %w", name, agent.ID(), run, err)
				}
				values[name] = v
			}
			agentKey := key
			agentKey.AgentID = agent.ID()
			agentRecords = append(agentRecords, Record{Key: agentKey, Values: values})
		}
	}

	res.commit(modelRecords, agentRecords)
	return run, nil
}

func sortedKeys[V any](in map[string]V) []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
