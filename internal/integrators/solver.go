package integrators

import (
	"context"

	"github.com/san-kum/odefit/internal/dynamo"
)

// Options controls tolerances and budgets for a single integration.
type Options struct {
	AbsTol      float64
	RelTol      float64
	InitialStep float64
	MinStep     float64
	MaxSteps    int
}

// LooseOptions are tuned for the inner optimizer loop, where the loss is
// evaluated thousands of times and speed matters more than precision.
func LooseOptions() Options {
	return Options{
		AbsTol:   1e-6,
		RelTol:   1e-4,
		MinStep:  1e-10,
		MaxSteps: 50000,
	}
}

// TightOptions are used for the final refinement pass and for scoring.
func TightOptions() Options {
	return Options{
		AbsTol:   1e-10,
		RelTol:   1e-8,
		MinStep:  1e-12,
		MaxSteps: 500000,
	}
}

// Solver integrates a parameterized system over a span, returning the state
// at each requested sample point. Sample points must be strictly increasing;
// the first sample point is the start of the span.
type Solver interface {
	Solve(ctx context.Context, sys dynamo.System, u0 dynamo.State, p dynamo.Params, at []float64, opts Options) ([]dynamo.State, error)
	Name() string
}
