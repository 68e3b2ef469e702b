package optim

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoBounds indicates an empty or missing search space.
	ErrNoBounds = errors.New("optim: no bounds given")

	// ErrInvalidBound indicates a bound pair with low > high.
	ErrInvalidBound = errors.New("optim: bound low exceeds high")
)

// Objective is a scalar loss over a parameter vector. It must be cheap to
// call repeatedly and must never panic; failures are encoded as large
// finite values by the caller.
type Objective func(x []float64) float64

// Bound is an inclusive search interval for one parameter.
type Bound struct {
	Low  float64
	High float64
}

// Problem describes a bounded minimization with iteration and wall-clock
// budgets. A fixed Seed makes the search reproducible.
type Problem struct {
	Objective  Objective
	Bounds     []Bound
	MaxIter    int
	TimeBudget time.Duration
	Seed       int64
}

// Result is the best candidate found when the budget expired.
type Result struct {
	X           []float64
	F           float64
	Iterations  int
	Evaluations int
}

// Minimizer is a derivative-free global minimizer. Implementations return
// their best-so-far candidate when either budget runs out; they do not
// guarantee a global optimum.
type Minimizer interface {
	Minimize(ctx context.Context, prob Problem) (Result, error)
	Name() string
}

func validate(prob Problem) error {
	if len(prob.Bounds) == 0 {
		return ErrNoBounds
	}
	for _, b := range prob.Bounds {
		if b.Low > b.High {
			return ErrInvalidBound
		}
	}
	return nil
}
