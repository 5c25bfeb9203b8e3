package report

import "math"

// ColumnSummary aggregates the numeric cells of one table column.
type ColumnSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize computes per-column statistics over a table. Columns without
// any numeric cell are omitted; non-numeric cells inside a numeric column
// are skipped.
func Summarize(t Table) []ColumnSummary {
	summaries := make([]ColumnSummary, 0, len(t.Columns))
	for i, column := range t.Columns {
		values := make([]float64, 0, len(t.Rows))
		for _, row := range t.Rows {
			if i >= len(row) {
				continue
			}
			if v, ok := asNumber(row[i]); ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		summaries = append(summaries, summarizeValues(column, values))
	}
	return summaries
}

func summarizeValues(column string, values []float64) ColumnSummary {
	s := ColumnSummary{Column: column, Count: len(values), Min: values[0], Max: values[0]}
	sum := 0.0
	for _, v := range values {
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = sum / float64(len(values))
	variance := 0.0
	for _, v := range values {
		d := v - s.Mean
		variance += d * d
	}
	s.Std = math.Sqrt(variance / float64(len(values)))
	return s
}

func asNumber(cell any) (float64, bool) {
	switch v := cell.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}
