package simmodels

import (
	"context"
	"fmt"
	"math/rand"

	"sweeplab/internal/collect"
	"sweeplab/internal/sim"
)

// GossipConfig parameterizes the gossip model. A zero seed falls back to
// a fixed default so unseeded sweeps stay reproducible.
type GossipConfig struct {
	Agents int     `sweep:"agents"`
	Spread float64 `sweep:"spread"`
	Seed   int64   `sweep:"seed"`
}

type gossiper struct {
	id       string
	informed bool
	heard    int
}

func (g *gossiper) ID() string { return g.id }

// Gossip spreads a rumor through a fully-mixed population: each step,
// every informed agent tells one random peer, who becomes informed with
// probability Spread. The model stops once everyone has heard it.
type Gossip struct {
	cfg    GossipConfig
	rng    *rand.Rand
	steps  int
	agents []*gossiper
}

func NewGossip(cfg GossipConfig) (*Gossip, error) {
	if cfg.Agents <= 0 {
		return nil, fmt.Errorf("gossip requires agents > 0, got %d", cfg.Agents)
	}
	if cfg.Spread < 0 || cfg.Spread > 1 {
		return nil, fmt.Errorf("gossip spread must be in [0,1], got %g", cfg.Spread)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}

	m := &Gossip{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		agents: make([]*gossiper, cfg.Agents),
	}
	for i := range m.agents {
		m.agents[i] = &gossiper{id: fmt.Sprintf("agent-%03d", i)}
	}
	m.agents[0].informed = true
	return m, nil
}

func (m *Gossip) Running() bool {
	return m.InformedCount() < len(m.agents)
}

func (m *Gossip) Steps() int { return m.steps }

func (m *Gossip) Step(_ context.Context) error {
	for _, agent := range m.agents {
		if !agent.informed {
			continue
		}
		target := m.agents[m.rng.Intn(len(m.agents))]
		if target == agent {
			continue
		}
		target.heard++
		if !target.informed && m.rng.Float64() < m.cfg.Spread {
			target.informed = true
		}
	}
	m.steps++
	return nil
}

func (m *Gossip) Agents() []sim.Agent {
	out := make([]sim.Agent, len(m.agents))
	for i, agent := range m.agents {
		out[i] = agent
	}
	return out
}

// InformedCount reports how many agents have heard and accepted the rumor.
func (m *Gossip) InformedCount() int {
	count := 0
	for _, agent := range m.agents {
		if agent.informed {
			count++
		}
	}
	return count
}

func gossipSpec() Spec {
	return Spec{
		Name:        "gossip",
		Description: "rumor spread through a fully-mixed population",
		NewConfig:   func() any { return &GossipConfig{} },
		Build: func(cfg any) (sim.Model, error) {
			c, ok := cfg.(*GossipConfig)
			if !ok {
				return nil, fmt.Errorf("gossip config has type %T", cfg)
			}
			return NewGossip(*c)
		},
		ModelReporters: map[string]collect.ModelReporter{
			"informed": func(m sim.Model) (any, error) {
				return m.(*Gossip).InformedCount(), nil
			},
			"steps": func(m sim.Model) (any, error) {
				return m.Steps(), nil
			},
		},
		AgentReporters: map[string]collect.AgentReporter{
			"heard": func(a sim.Agent) (any, error) {
				return a.(*gossiper).heard, nil
			},
			"informed": func(a sim.Agent) (any, error) {
				return a.(*gossiper).informed, nil
			},
		},
	}
}
