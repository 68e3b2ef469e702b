package integrators

import (
	"context"
	"math"

	"github.com/san-kum/odefit/internal/dynamo"
)

// RK4 is a fixed-step classical Runge-Kutta solver. Each interval between
// consecutive sample points is covered with substeps of at most Step.
type RK4 struct {
	step float64
}

func NewRK4() *RK4 {
	return &RK4{step: 0.01}
}

func NewRK4WithStep(step float64) *RK4 {
	return &RK4{step: step}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) Solve(ctx context.Context, sys dynamo.System, u0 dynamo.State, p dynamo.Params, at []float64, opts Options) ([]dynamo.State, error) {
	if len(at) == 0 {
		return nil, dynamo.ErrDimensionMismatch
	}
	if len(u0) != sys.StateDim() || len(p) != sys.NParams() {
		return nil, dynamo.ErrDimensionMismatch
	}

	out := make([]dynamo.State, 0, len(at))
	out = append(out, u0.Clone())

	x := u0.Clone()
	t := at[0]
	steps := 0

	for _, target := range at[1:] {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		span := target - t
		nSub := int(math.Ceil(span / r.step))
		if nSub < 1 {
			nSub = 1
		}
		h := span / float64(nSub)

		for i := 0; i < nSub; i++ {
			if steps >= opts.MaxSteps {
				return nil, &dynamo.IntegrationError{Time: t, Step: steps, Wrapped: dynamo.ErrMaxSteps}
			}
			steps++

			x = r.stepOnce(sys, x, p, t, h)
			t += h

			if !x.IsValid() {
				return nil, &dynamo.IntegrationError{Time: t, Step: steps, Wrapped: dynamo.ErrInvalidState}
			}
			if x.Norm() > divergenceLimit {
				return nil, &dynamo.IntegrationError{Time: t, Step: steps, Wrapped: dynamo.ErrUnstable}
			}
		}

		out = append(out, x.Clone())
		t = target
	}

	return out, nil
}

func (r *RK4) stepOnce(sys dynamo.System, x dynamo.State, p dynamo.Params, t, dt float64) dynamo.State {
	n := len(x)

	k1 := sys.Derive(x, p, t)

	x2 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x2[i] = x[i] + dt/2*k1[i]
	}
	k2 := sys.Derive(x2, p, t+dt/2)

	x3 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x3[i] = x[i] + dt/2*k2[i]
	}
	k3 := sys.Derive(x3, p, t+dt/2)

	x4 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x4[i] = x[i] + dt*k3[i]
	}
	k4 := sys.Derive(x4, p, t+dt)

	xNew := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		xNew[i] = x[i] + dt/6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return xNew
}
