package sim

import "context"

// Agent is one entity inside a model, with a stable identifier that is
// used verbatim as a table key.
type Agent interface {
	ID() string
}

// Model is the object under sweep. A model advances one time unit per
// Step call, reports whether it is still running, counts the steps it has
// taken, and enumerates its agents.
type Model interface {
	Running() bool
	Steps() int
	Step(ctx context.Context) error
	Agents() []Agent
}
