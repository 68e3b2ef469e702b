package dataset

import (
	"context"
	"math/rand"

	"github.com/san-kum/odefit/internal/dynamo"
	"github.com/san-kum/odefit/internal/integrators"
)

// Sample integrates a model at known parameters and returns the first state
// component at the given times as a dataset. Optional Gaussian noise with
// standard deviation sigma is added using the seeded source.
func Sample(ctx context.Context, name string, sys dynamo.System, p dynamo.Params, u0 dynamo.State, times []float64, sigma float64, seed int64) (Dataset, error) {
	solver := integrators.NewRK45()
	states, err := solver.Solve(ctx, sys, u0, p, times, integrators.TightOptions())
	if err != nil {
		return Dataset{}, err
	}

	y := make([]float64, len(times))
	for i, s := range states {
		y[i] = s[0]
	}

	if sigma > 0 {
		rng := rand.New(rand.NewSource(seed))
		for i := range y {
			y[i] += rng.NormFloat64() * sigma
		}
	}

	x := append([]float64(nil), times...)
	return New(name, x, y)
}

// UniformTimes returns n evenly spaced sample times over [t0, t1].
func UniformTimes(t0, t1 float64, n int) []float64 {
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = t0 + (t1-t0)*float64(i)/float64(n-1)
	}
	return ts
}
