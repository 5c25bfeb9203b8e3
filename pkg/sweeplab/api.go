// Package sweeplab orchestrates batch runs of step-based simulation
// models across the Cartesian product of a parameter space and collects
// per-run and per-agent observations into tabular reports.
package sweeplab

import (
	"context"
	"errors"
	"fmt"

	"sweeplab/internal/collect"
	"sweeplab/internal/construct"
	"sweeplab/internal/params"
	"sweeplab/internal/progress"
	"sweeplab/internal/report"
	"sweeplab/internal/sim"
)

const (
	DefaultIterations = 1
	DefaultMaxSteps   = 1000
)

// Re-exported collaborator types so callers only import this package.
type (
	Model         = sim.Model
	Agent         = sim.Agent
	ModelReporter = collect.ModelReporter
	AgentReporter = collect.AgentReporter
	Results       = collect.Results
	Table         = report.Table
	Param         = params.Param
	Fixed         = params.Fixed
)

// Value declares a swept parameter from a raw value; slices expand into
// candidate sequences, scalars and strings stay whole.
func Value(name string, raw any) Param { return params.Value(name, raw) }

// NewSpace builds an ordered parameter space.
func NewSpace(in ...Param) (*params.Space, error) { return params.NewSpace(in...) }

// Config describes one sweep.
type Config struct {
	// Space is the swept parameter space; required.
	Space *params.Space
	// Fixed parameters are merged into every model configuration. Keys
	// overlapping the space are rejected at construction.
	Fixed Fixed

	// NewConfig allocates a fresh configuration struct pointer for one
	// model build; Build turns the bound configuration into a model.
	// Both are required.
	NewConfig func() any
	Build     func(cfg any) (Model, error)

	// Iterations is how many times each configuration runs
	// (DefaultIterations when zero). MaxSteps bounds each run
	// (DefaultMaxSteps when zero).
	Iterations int
	MaxSteps   int

	ModelReporters map[string]ModelReporter
	AgentReporters map[string]AgentReporter

	// Progress observes the sweep; nil means no feedback.
	Progress progress.Reporter

	// ShareModelAcrossIterations reuses one model instance for every
	// iteration of a configuration instead of rebuilding per iteration.
	// A model that retains state between runs will leak it across
	// iterations; leave this off unless the model resets itself.
	ShareModelAcrossIterations bool
}

// Runner executes sweeps for one validated configuration.
type Runner struct {
	cfg       Config
	binder    *construct.Binder
	collector collect.Collector
	progress  progress.Reporter
}

// NewRunner validates the configuration: the space and builder must be
// present, fixed parameters must not shadow swept ones, and the model's
// configuration struct must be bindable.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Space == nil {
		return nil, errors.New("sweep config requires a parameter space")
	}
	if cfg.NewConfig == nil || cfg.Build == nil {
		return nil, errors.New("sweep config requires NewConfig and Build")
	}
	if err := cfg.Space.CheckDisjoint(cfg.Fixed); err != nil {
		return nil, err
	}
	binder, err := construct.NewBinder(cfg.NewConfig())
	if err != nil {
		return nil, err
	}

	if cfg.Iterations <= 0 {
		cfg.Iterations = DefaultIterations
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	reporter := cfg.Progress
	if reporter == nil {
		reporter = progress.Noop{}
	}

	return &Runner{
		cfg:    cfg,
		binder: binder,
		collector: collect.Collector{
			ModelReporters: cfg.ModelReporters,
			AgentReporters: cfg.AgentReporters,
		},
		progress: reporter,
	}, nil
}

// Iterations reports the per-configuration repetition count in effect.
func (r *Runner) Iterations() int { return r.cfg.Iterations }

// MaxSteps reports the per-run step ceiling in effect.
func (r *Runner) MaxSteps() int { return r.cfg.MaxSteps }

// RunAll executes the whole sweep into a fresh accumulator. The
// accumulator is returned even on failure, holding exactly the records
// of the runs that completed before the abort.
func (r *Runner) RunAll(ctx context.Context) (*Results, error) {
	res := collect.NewResults(r.cfg.Space.Names())
	err := r.RunAllInto(ctx, res)
	return res, err
}

// RunAllInto executes the whole sweep into a caller-owned accumulator,
// continuing its run numbering. Repeated invocations against the same
// accumulator append rather than replace.
func (r *Runner) RunAllInto(ctx context.Context, res *Results) error {
	if err := res.CheckParamNames(r.cfg.Space.Names()); err != nil {
		return err
	}

	assignments := r.cfg.Space.Expand()
	r.progress.Start(len(assignments) * r.cfg.Iterations)

	for _, assignment := range assignments {
		var shared Model
		if r.cfg.ShareModelAcrossIterations {
			m, err := r.buildModel(assignment)
			if err != nil {
				return err
			}
			shared = m
		}

		for i := 0; i < r.cfg.Iterations; i++ {
			m := shared
			if m == nil {
				built, err := r.buildModel(assignment)
				if err != nil {
					return err
				}
				m = built
			}
			if err := sim.Drive(ctx, m, r.cfg.MaxSteps); err != nil {
				return fmt.Errorf("run %d with params %v: %w", res.NextRun(), assignment.Map(), err)
			}
			if _, err := r.collector.CollectRun(res, assignment.Values, m); err != nil {
				return err
			}
			r.progress.Advance()
		}
	}

	r.progress.Done()
	return nil
}

func (r *Runner) buildModel(assignment params.Assignment) (Model, error) {
	cfg := r.cfg.NewConfig()
	if err := r.binder.Bind(assignment.Map(), r.cfg.Fixed, cfg); err != nil {
		return nil, err
	}
	m, err := r.cfg.Build(cfg)
	if err != nil {
		return nil, &construct.ConfigurationError{
			Variable: assignment.Map(),
			Fixed:    r.cfg.Fixed,
			Reason:   err,
		}
	}
	return m, nil
}

// ModelTable materializes the model-level report for an accumulator.
func ModelTable(res *Results) Table {
	return report.ModelTable(res.ParamNames(), res.ModelRecords())
}

// AgentTable materializes the agent-level report for an accumulator.
func AgentTable(res *Results) Table {
	return report.AgentTable(res.ParamNames(), res.AgentRecords())
}
