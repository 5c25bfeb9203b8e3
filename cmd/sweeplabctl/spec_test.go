package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeSpecFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	return path
}

func TestLoadSweepSpecKeepsParameterOrder(t *testing.T) {
	path := writeSpecFile(t, `
model: gossip
iterations: 2
max_steps: 50
parameters:
  zeta: [1, 2]
  alpha: [3]
  mu: 0.5
fixed:
  seed: 7
`)
	spec, err := loadSweepSpec(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Model != "gossip" || spec.Iterations != 2 || spec.MaxSteps != 50 {
		t.Fatalf("unexpected spec: %+v", spec)
	}
	if spec.Fixed["seed"] != 7 {
		t.Fatalf("unexpected fixed params: %v", spec.Fixed)
	}

	space, err := spec.space()
	if err != nil {
		t.Fatalf("space: %v", err)
	}
	// Declaration order, not lexical order.
	if got := space.Names(); !reflect.DeepEqual(got, []string{"zeta", "alpha", "mu"}) {
		t.Fatalf("parameter order must follow the file: %v", got)
	}
	if values, _ := space.Values("zeta"); !reflect.DeepEqual(values, []any{1, 2}) {
		t.Fatalf("unexpected zeta candidates: %v", values)
	}
	if values, _ := space.Values("mu"); !reflect.DeepEqual(values, []any{0.5}) {
		t.Fatalf("scalar parameters must stay whole: %v", values)
	}
}

func TestLoadSweepSpecRequiresModel(t *testing.T) {
	path := writeSpecFile(t, "parameters:\n  a: [1]\n")
	if _, err := loadSweepSpec(path); err == nil {
		t.Fatal("expected missing model error")
	}
}

func TestSweepSpecRejectsNonMappingParameters(t *testing.T) {
	path := writeSpecFile(t, "model: gossip\nparameters: [1, 2]\n")
	spec, err := loadSweepSpec(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := spec.space(); err == nil {
		t.Fatal("expected mapping error")
	}
}

func TestSweepSpecWithoutParameters(t *testing.T) {
	path := writeSpecFile(t, "model: gossip\n")
	spec, err := loadSweepSpec(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	space, err := spec.space()
	if err != nil {
		t.Fatalf("space: %v", err)
	}
	if space.Len() != 0 {
		t.Fatalf("expected empty space, got %d params", space.Len())
	}
}
