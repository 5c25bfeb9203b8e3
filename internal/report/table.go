package report

import (
	"sort"

	"sweeplab/internal/collect"
)

// Column names injected after the declared parameter columns.
const (
	RunColumn   = "Run"
	AgentColumn = "AgentID"
)

// Table is the tabular materialization of a record log: ordered column
// names and one row per record. Cells for reporters a record never
// produced are nil, not errors.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// ModelTable builds the model-level report: parameter columns in declared
// order, then Run, then the union of reporter names sorted
// lexicographically. Rows are ordered by Run ascending.
func ModelTable(paramNames []string, records []collect.Record) Table {
	index := append(append([]string(nil), paramNames...), RunColumn)
	return build(index, records, false)
}

// AgentTable builds the agent-level report; the agent identifier column
// sits between Run and the reporter columns.
func AgentTable(paramNames []string, records []collect.Record) Table {
	index := append(append([]string(nil), paramNames...), RunColumn, AgentColumn)
	return build(index, records, true)
}

func build(indexColumns []string, records []collect.Record, withAgent bool) Table {
	valueColumns := collectValueColumns(records)
	table := Table{
		Columns: append(append([]string(nil), indexColumns...), valueColumns...),
		Rows:    make([][]any, 0, len(records)),
	}

	ordered := append([]collect.Record(nil), records...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Key.Run < ordered[j].Key.Run
	})

	for _, record := range ordered {
		row := make([]any, 0, len(table.Columns))
		row = append(row, record.Key.ParamValues...)
		row = append(row, record.Key.Run)
		if withAgent {
			row = append(row, record.Key.AgentID)
		}
		for _, name := range valueColumns {
			value, ok := record.Values[name]
			if !ok {
				row = append(row, nil)
				continue
			}
			row = append(row, value)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func collectValueColumns(records []collect.Record) []string {
	seen := make(map[string]bool)
	for _, record := range records {
		for name := range record.Values {
			seen[name] = true
		}
	}
	columns := make([]string, 0, len(seen))
	for name := range seen {
		columns = append(columns, name)
	}
	sort.Strings(columns)
	return columns
}
