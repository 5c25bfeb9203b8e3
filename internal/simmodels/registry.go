package simmodels

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"sweeplab/internal/collect"
	"sweeplab/internal/sim"
)

var (
	ErrModelExists   = errors.New("model already registered")
	ErrModelNotFound = errors.New("model not found")
)

// Spec declares one runnable model: a fresh-config allocator, a builder,
// and the canned reporters a sweep over this model collects.
type Spec struct {
	Name           string
	Description    string
	NewConfig      func() any
	Build          func(cfg any) (sim.Model, error)
	ModelReporters map[string]collect.ModelReporter
	AgentReporters map[string]collect.AgentReporter
}

type Registry struct {
	mu    sync.RWMutex
	specs map[string]Spec
}

func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]Spec)}
}

func (r *Registry) Register(spec Spec) error {
	if spec.Name == "" {
		return errors.New("model name is required")
	}
	if spec.NewConfig == nil || spec.Build == nil {
		return fmt.Errorf("model %s requires NewConfig and Build", spec.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.specs[spec.Name]; ok {
		return fmt.Errorf("%w: %s", ErrModelExists, spec.Name)
	}
	r.specs[spec.Name] = spec
	return nil
}

func (r *Registry) Lookup(name string) (Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, ok := r.specs[name]
	return spec, ok
}

// Names lists registered model names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.specs))
	for name := range r.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin returns a registry holding the bundled demo models.
func Builtin() *Registry {
	r := NewRegistry()
	mustRegister(r, gossipSpec())
	mustRegister(r, walkersSpec())
	return r
}

func mustRegister(r *Registry, spec Spec) {
	if err := r.Register(spec); err != nil {
		panic(err)
	}
}
