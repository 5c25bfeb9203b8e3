package params

import (
	"errors"
	"reflect"
	"testing"
)

func TestCandidatesCoercion(t *testing.T) {
	if got := Candidates(5); !reflect.DeepEqual(got, []any{5}) {
		t.Fatalf("scalar coercion: %v", got)
	}
	if got := Candidates("x"); !reflect.DeepEqual(got, []any{"x"}) {
		t.Fatalf("string must stay whole: %v", got)
	}
	if got := Candidates([]int{1, 5, 10}); !reflect.DeepEqual(got, []any{1, 5, 10}) {
		t.Fatalf("slice passthrough: %v", got)
	}
	if got := Candidates([]any{1, "a"}); !reflect.DeepEqual(got, []any{1, "a"}) {
		t.Fatalf("any slice passthrough: %v", got)
	}
	if got := Candidates(nil); !reflect.DeepEqual(got, []any{nil}) {
		t.Fatalf("nil coercion: %v", got)
	}
}

func TestExpandProductOrder(t *testing.T) {
	space, err := NewSpace(
		Value("a", []int{1, 2}),
		Value("b", []int{10}),
	)
	if err != nil {
		t.Fatalf("new space: %v", err)
	}
	got := space.Expand()
	want := [][]any{{1, 10}, {2, 10}}
	if len(got) != len(want) {
		t.Fatalf("expected %d assignments, got %d", len(want), len(got))
	}
	for i, assignment := range got {
		if !reflect.DeepEqual(assignment.Values, want[i]) {
			t.Fatalf("assignment %d: got %v want %v", i, assignment.Values, want[i])
		}
		if !reflect.DeepEqual(assignment.Names, []string{"a", "b"}) {
			t.Fatalf("assignment %d names: %v", i, assignment.Names)
		}
	}
}

func TestExpandLastParamVariesFastest(t *testing.T) {
	space, err := NewSpace(
		Value("a", []int{1, 2}),
		Value("b", []string{"x", "y", "z"}),
	)
	if err != nil {
		t.Fatalf("new space: %v", err)
	}
	got := space.Expand()
	if len(got) != 6 {
		t.Fatalf("expected 6 assignments, got %d", len(got))
	}
	want := [][]any{
		{1, "x"}, {1, "y"}, {1, "z"},
		{2, "x"}, {2, "y"}, {2, "z"},
	}
	for i := range want {
		if !reflect.DeepEqual(got[i].Values, want[i]) {
			t.Fatalf("assignment %d: got %v want %v", i, got[i].Values, want[i])
		}
	}
}

func TestExpandEmptyCandidatesYieldsNothing(t *testing.T) {
	space, err := NewSpace(
		Value("a", []int{1, 2}),
		Param{Name: "b"},
	)
	if err != nil {
		t.Fatalf("new space: %v", err)
	}
	if got := space.Expand(); len(got) != 0 {
		t.Fatalf("expected empty product, got %d assignments", len(got))
	}
}

func TestAssignmentMap(t *testing.T) {
	a := Assignment{Names: []string{"a", "b"}, Values: []any{1, "x"}}
	got := a.Map()
	if !reflect.DeepEqual(got, map[string]any{"a": 1, "b": "x"}) {
		t.Fatalf("assignment map: %v", got)
	}
}

func TestNewSpaceRejectsDuplicates(t *testing.T) {
	_, err := NewSpace(Value("a", 1), Value("a", 2))
	if !errors.Is(err, ErrDuplicateParam) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestCheckDisjoint(t *testing.T) {
	space, err := NewSpace(Value("a", []int{1, 2}))
	if err != nil {
		t.Fatalf("new space: %v", err)
	}
	if err := space.CheckDisjoint(Fixed{"c": 7}); err != nil {
		t.Fatalf("disjoint fixed rejected: %v", err)
	}
	if err := space.CheckDisjoint(Fixed{"a": 7}); !errors.Is(err, ErrOverlappingKeys) {
		t.Fatalf("expected overlap error, got %v", err)
	}
}
