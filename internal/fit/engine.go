package fit

import (
	"context"
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/odefit/internal/dataset"
	"github.com/san-kum/odefit/internal/dynamo"
	"github.com/san-kum/odefit/internal/integrators"
	"github.com/san-kum/odefit/internal/optim"
)

// failurePenalty stands in for the loss when integration of a candidate
// blows up, so the population search keeps moving instead of aborting.
const failurePenalty = 1e12

// Spec describes one fit unit: a model plus guess and bounds, with optional
// pinned parameters (1-based index into the full vector) and optional
// per-spec solver and minimizer overrides. Guess and Bounds are always
// full-length, one entry per model parameter in declaration order, fixed
// entries included; the engine reduces both to the free subspace through
// the mask before the search runs.
type Spec struct {
	Model  dynamo.System
	Guess  []float64
	Bounds []optim.Bound
	Fixed  map[int]float64

	Solver    integrators.Solver // nil means the engine default
	Minimizer optim.Minimizer    // nil means the engine default
}

// Result is an immutable fit outcome: best free parameters, scores, and a
// densely sampled predicted curve over the data span.
type Result struct {
	Params dynamo.Params
	Names  []string
	BIC    float64
	SSR    float64
	Curve  []dynamo.Point
}

// Config holds the search budgets shared by every fit an engine runs.
type Config struct {
	MaxIter     int
	TimeBudget  time.Duration
	Seed        int64
	DensePoints int
}

func DefaultConfig() Config {
	return Config{
		MaxIter:     300,
		TimeBudget:  30 * time.Second,
		Seed:        1,
		DensePoints: 1000,
	}
}

// Engine runs the global-search-then-refine fitting pipeline.
type Engine struct {
	cfg        Config
	solver     integrators.Solver
	minimizer  optim.Minimizer
	searchOpts integrators.Options
	refineOpts integrators.Options
}

func NewEngine(cfg Config) *Engine {
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = DefaultConfig().MaxIter
	}
	if cfg.DensePoints < 2 {
		cfg.DensePoints = DefaultConfig().DensePoints
	}
	return &Engine{
		cfg:        cfg,
		solver:     integrators.NewRK45(),
		minimizer:  optim.NewDifferentialEvolution(),
		searchOpts: integrators.LooseOptions(),
		refineOpts: integrators.TightOptions(),
	}
}

// Fit searches the bounded free-parameter space for the least-squares
// optimum, then re-integrates the winner at tight tolerances for a smooth
// predicted curve and scores it against the sample points.
func (e *Engine) Fit(ctx context.Context, spec Spec, ds dataset.Dataset) (*Result, error) {
	adapter, bounds, err := e.prepare(spec, ds)
	if err != nil {
		return nil, err
	}

	solver := spec.Solver
	if solver == nil {
		solver = e.solver
	}
	minimizer := spec.Minimizer
	if minimizer == nil {
		minimizer = e.minimizer
	}

	u0 := initialState(adapter, ds)
	loss := func(x []float64) float64 {
		states, err := solver.Solve(ctx, adapter, u0, dynamo.Params(x), ds.X, e.searchOpts)
		if err != nil {
			return failurePenalty
		}
		ssr := 0.0
		for i, st := range states {
			r := ds.Y[i] - st[0]
			ssr += r * r
		}
		return ssr
	}

	res, err := minimizer.Minimize(ctx, optim.Problem{
		Objective:  loss,
		Bounds:     bounds,
		MaxIter:    e.cfg.MaxIter,
		TimeBudget: e.cfg.TimeBudget,
		Seed:       e.cfg.Seed,
	})
	if err != nil {
		return nil, &ConfigError{Wrapped: err}
	}

	best := dynamo.Params(res.X)

	lo, hi := ds.Span()
	dense := make([]float64, e.cfg.DensePoints)
	floats.Span(dense, lo, hi)
	states, err := solver.Solve(ctx, adapter, u0, best, dense, e.refineOpts)
	if err != nil {
		return nil, &FitError{Wrapped: fmt.Errorf("%w: %v", ErrRefineFailed, err)}
	}

	curve := make([]dynamo.Point, len(dense))
	for i, st := range states {
		curve[i] = dynamo.Point{T: dense[i], Y: st[0]}
	}

	scorer := NewScorer(solver, e.refineOpts)
	bic, ssr, err := scorer.Score(ctx, adapter, ds, best)
	if err != nil {
		return nil, err
	}

	return &Result{
		Params: best.Clone(),
		Names:  adapter.ParamNames(),
		BIC:    bic,
		SSR:    ssr,
		Curve:  curve,
	}, nil
}

// prepare validates the spec against the dataset and reduces the guess and
// bounds to the free-parameter space. All configuration problems are caught
// here, before any integration or optimization work starts.
func (e *Engine) prepare(spec Spec, ds dataset.Dataset) (*Adapter, []optim.Bound, error) {
	if spec.Model == nil {
		return nil, nil, &ConfigError{Wrapped: fmt.Errorf("nil model")}
	}
	if err := ds.Validate(); err != nil {
		return nil, nil, &ConfigError{Wrapped: err}
	}

	n := spec.Model.NParams()
	mask, err := NewMask(n, spec.Fixed)
	if err != nil {
		return nil, nil, err
	}

	if len(spec.Guess) != n {
		return nil, nil, &ConfigError{Wrapped: fmt.Errorf("%w: got %d, want %d", ErrGuessLength, len(spec.Guess), n)}
	}
	if len(spec.Bounds) != n {
		return nil, nil, &ConfigError{Wrapped: fmt.Errorf("%w: got %d, want %d", ErrBoundsLength, len(spec.Bounds), n)}
	}

	guess, err := mask.Reduce(spec.Guess)
	if err != nil {
		return nil, nil, err
	}
	bounds, err := mask.ReduceBounds(spec.Bounds)
	if err != nil {
		return nil, nil, err
	}
	if mask.FreeCount() == 0 {
		return nil, nil, &ConfigError{Wrapped: fmt.Errorf("no free parameters to fit")}
	}

	for i, b := range bounds {
		if b.Low > b.High {
			return nil, nil, &ConfigError{Wrapped: fmt.Errorf("%w at %d: [%g, %g]", optim.ErrInvalidBound, i, b.Low, b.High)}
		}
	}

	// A search space pinched to a single point the guess does not satisfy
	// cannot be searched.
	allDegenerate := true
	guessInside := true
	for i, b := range bounds {
		if b.Low != b.High {
			allDegenerate = false
			break
		}
		if guess[i] != b.Low {
			guessInside = false
		}
	}
	if allDegenerate && !guessInside {
		return nil, nil, &ConfigError{Wrapped: ErrDegenerateSpace}
	}

	return NewAdapter(spec.Model, mask), bounds, nil
}
