package collect

import (
	"fmt"
	"reflect"
)

// RecordKey identifies one observation row: the chosen parameter values in
// declared order, the sweep-global run number, and, for agent-level
// records, the agent's identifier.
type RecordKey struct {
	ParamValues []any
	Run         int
	AgentID     string
}

// Record is one keyed observation: reporter name → observed value.
type Record struct {
	Key    RecordKey
	Values map[string]any
}

// Results is a caller-owned accumulator for sweep observations. Records
// only ever append, and the run counter is monotonic across every sweep
// invocation that writes into the same accumulator. A Results value is
// mutated by a single sweep at a time.
type Results struct {
	paramNames   []string
	nextRun      int
	modelRecords []Record
	agentRecords []Record
}

// NewResults prepares an empty accumulator for sweeps over the given
// parameter names.
func NewResults(paramNames []string) *Results {
	return &Results{paramNames: append([]string(nil), paramNames...)}
}

// ParamNames returns the parameter names the accumulator was built for.
func (r *Results) ParamNames() []string {
	return append([]string(nil), r.paramNames...)
}

// CheckParamNames rejects a sweep whose parameter names do not match the
// accumulator's. Mixing differently-shaped record keys in one accumulator
// would corrupt every derived table.
func (r *Results) CheckParamNames(names []string) error {
	if !reflect.DeepEqual(r.paramNames, names) {
		return fmt.Errorf("accumulator parameters %v do not match sweep parameters %v", r.paramNames, names)
	}
	return nil
}

// NextRun returns the run number the next completed run will take.
func (r *Results) NextRun() int { return r.nextRun }

// RunCount reports how many runs have committed records or advanced the
// counter.
func (r *Results) RunCount() int { return r.nextRun }

// ModelRecords returns the model-level record log in insertion order.
func (r *Results) ModelRecords() []Record {
	return append([]Record(nil), r.modelRecords...)
}

// AgentRecords returns the agent-level record log in insertion order.
func (r *Results) AgentRecords() []Record {
	return append([]Record(nil), r.agentRecords...)
}

// commit appends one completed run's records and consumes its run number.
// Nothing is appended until the whole run has been observed, so an
// aborted run leaves the accumulator exactly as it was.
func (r *Results) commit(model []Record, agent []Record) {
	r.modelRecords = append(r.modelRecords, model...)
	r.agentRecords = append(r.agentRecords, agent...)
	r.nextRun++
}
