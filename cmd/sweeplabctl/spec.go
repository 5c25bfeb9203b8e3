package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"sweeplab/internal/params"
)

// sweepSpec is the on-disk description of one sweep. Parameters stays a
// yaml.Node so that declaration order survives decoding; a plain map
// would scramble it and with it the run ordering.
type sweepSpec struct {
	ID         string         `yaml:"id"`
	Model      string         `yaml:"model"`
	Iterations int            `yaml:"iterations"`
	MaxSteps   int            `yaml:"max_steps"`
	Parameters yaml.Node      `yaml:"parameters"`
	Fixed      map[string]any `yaml:"fixed"`
	ShareModel bool           `yaml:"share_model"`
	Notes      string         `yaml:"notes"`
}

func loadSweepSpec(path string) (sweepSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sweepSpec{}, fmt.Errorf("read sweep spec: %w", err)
	}
	var spec sweepSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return sweepSpec{}, fmt.Errorf("parse sweep spec %s: %w", path, err)
	}
	if strings.TrimSpace(spec.Model) == "" {
		return sweepSpec{}, fmt.Errorf("sweep spec %s: model is required", path)
	}
	return spec, nil
}

// space expands the parameters mapping into an ordered parameter space,
// keeping the keys in the order they were written.
func (s sweepSpec) space() (*params.Space, error) {
	if s.Parameters.Kind == 0 {
		return params.NewSpace()
	}
	if s.Parameters.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parameters must be a mapping, got yaml kind %d", s.Parameters.Kind)
	}

	declared := make([]params.Param, 0, len(s.Parameters.Content)/2)
	for i := 0; i+1 < len(s.Parameters.Content); i += 2 {
		key := s.Parameters.Content[i]
		value := s.Parameters.Content[i+1]

		var raw any
		if err := value.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parameter %q: %w", key.Value, err)
		}
		declared = append(declared, params.Value(key.Value, raw))
	}
	return params.NewSpace(declared...)
}
