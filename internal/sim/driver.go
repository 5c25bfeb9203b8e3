package sim

import (
	"context"
	"fmt"
)

// Drive runs a model to completion: one Step per loop pass until the
// model stops running or its step counter reaches maxSteps, whichever
// comes first. The ceiling bounds the loop even when the running flag
// never clears.
func Drive(ctx context.Context, m Model, maxSteps int) error {
	for m.Running() && m.Steps() < maxSteps {
		if err := m.Step(ctx); err != nil {
			return fmt.Errorf("model step %d: %w", m.Steps(), err)
		}
	}
	return nil
}
