package simmodels

import (
	"context"
	"fmt"
	"math/rand"

	"sweeplab/internal/collect"
	"sweeplab/internal/sim"
)

// WalkersConfig parameterizes the walkers model. Extra is a residual
// options bundle: fixed parameters that match no named field land here.
// Recognized extras: "drift" (float in [-1,1], bias toward the right
// edge).
type WalkersConfig struct {
	Walkers int            `sweep:"walkers"`
	Width   int            `sweep:"width"`
	Seed    int64          `sweep:"seed"`
	Extra   map[string]any `sweep:",remain"`
}

type walker struct {
	id       string
	position int
}

func (w *walker) ID() string { return w.id }

// Walkers is a herd of random walkers on a line of Width cells, all
// starting at the center. Each step every walker moves one cell left or
// right; the model stops once any walker reaches either edge.
type Walkers struct {
	cfg     WalkersConfig
	drift   float64
	rng     *rand.Rand
	steps   int
	walkers []*walker
	escaped bool
}

func NewWalkers(cfg WalkersConfig) (*Walkers, error) {
	if cfg.Walkers <= 0 {
		return nil, fmt.Errorf("walkers requires walkers > 0, got %d", cfg.Walkers)
	}
	if cfg.Width < 3 {
		return nil, fmt.Errorf("walkers requires width >= 3, got %d", cfg.Width)
	}
	drift, err := driftOption(cfg.Extra)
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}

	m := &Walkers{
		cfg:     cfg,
		drift:   drift,
		rng:     rand.New(rand.NewSource(seed)),
		walkers: make([]*walker, cfg.Walkers),
	}
	for i := range m.walkers {
		m.walkers[i] = &walker{
			id:       fmt.Sprintf("walker-%03d", i),
			position: cfg.Width / 2,
		}
	}
	return m, nil
}

func (m *Walkers) Running() bool { return !m.escaped }

func (m *Walkers) Steps() int { return m.steps }

func (m *Walkers) Step(_ context.Context) error {
	rightBias := 0.5 + m.drift/2
	for _, w := range m.walkers {
		if m.rng.Float64() < rightBias {
			w.position++
		} else {
			w.position--
		}
		if w.position <= 0 || w.position >= m.cfg.Width-1 {
			m.escaped = true
		}
	}
	m.steps++
	return nil
}

func (m *Walkers) Agents() []sim.Agent {
	out := make([]sim.Agent, len(m.walkers))
	for i, w := range m.walkers {
		out[i] = w
	}
	return out
}

// Escaped reports whether any walker has reached an edge.
func (m *Walkers) Escaped() bool { return m.escaped }

func driftOption(extra map[string]any) (float64, error) {
	raw, ok := extra["drift"]
	if !ok {
		return 0, nil
	}
	drift, ok := asFloat64(raw)
	if !ok {
		return 0, fmt.Errorf("walkers drift option must be numeric, got %T", raw)
	}
	if drift < -1 || drift > 1 {
		return 0, fmt.Errorf("walkers drift must be in [-1,1], got %g", drift)
	}
	return drift, nil
}

func asFloat64(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	default:
		return 0, false
	}
}

func walkersSpec() Spec {
	return Spec{
		Name:        "walkers",
		Description: "random walkers on a bounded line, stopping at the first escape",
		NewConfig:   func() any { return &WalkersConfig{} },
		Build: func(cfg any) (sim.Model, error) {
			c, ok := cfg.(*WalkersConfig)
			if !ok {
				return nil, fmt.Errorf("walkers config has type %T", cfg)
			}
			return NewWalkers(*c)
		},
		ModelReporters: map[string]collect.ModelReporter{
			"escaped": func(m sim.Model) (any, error) {
				return m.(*Walkers).Escaped(), nil
			},
			"steps": func(m sim.Model) (any, error) {
				return m.Steps(), nil
			},
		},
		AgentReporters: map[string]collect.AgentReporter{
			"position": func(a sim.Agent) (any, error) {
				return a.(*walker).position, nil
			},
		},
	}
}
