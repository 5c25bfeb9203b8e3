package report

import (
	"math"
	"testing"
)

func TestSummarizeNumericColumns(t *testing.T) {
	table := Table{
		Columns: []string{"n", "Run", "label", "score"},
		Rows: [][]any{
			{1, 0, "a", 2.0},
			{1, 1, "b", 4.0},
			{2, 2, "c", 6.0},
		},
	}
	summaries := Summarize(table)
	if len(summaries) != 3 {
		t.Fatalf("expected 3 numeric columns, got %d: %+v", len(summaries), summaries)
	}

	score := summaries[2]
	if score.Column != "score" || score.Count != 3 {
		t.Fatalf("unexpected score summary: %+v", score)
	}
	if score.Mean != 4 || score.Min != 2 || score.Max != 6 {
		t.Fatalf("unexpected score aggregates: %+v", score)
	}
	want := math.Sqrt(8.0 / 3.0)
	if math.Abs(score.Std-want) > 1e-12 {
		t.Fatalf("unexpected score std: got %g want %g", score.Std, want)
	}
}

func TestSummarizeSkipsNonNumericCells(t *testing.T) {
	table := Table{
		Columns: []string{"v"},
		Rows:    [][]any{{1}, {nil}, {"x"}, {3}},
	}
	summaries := Summarize(table)
	if len(summaries) != 1 || summaries[0].Count != 2 {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
	if summaries[0].Mean != 2 {
		t.Fatalf("unexpected mean: %+v", summaries[0])
	}
}

func TestSummarizeEmptyTable(t *testing.T) {
	if got := Summarize(Table{Columns: []string{"a"}}); len(got) != 0 {
		t.Fatalf("expected no summaries, got %+v", got)
	}
}
