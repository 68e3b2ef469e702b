package optim

import (
	"context"
	"math"
)

// GridSearch evaluates the objective on a regular lattice over the bounded
// search space. Fully deterministic; useful as a baseline and for smoke
// tests, but cost grows exponentially with dimension.
type GridSearch struct {
	points int
}

func NewGridSearch(pointsPerDim int) *GridSearch {
	if pointsPerDim < 2 {
		pointsPerDim = 2
	}
	return &GridSearch{points: pointsPerDim}
}

func (g *GridSearch) Name() string { return "grid" }

func (g *GridSearch) Minimize(ctx context.Context, prob Problem) (Result, error) {
	if err := validate(prob); err != nil {
		return Result{}, err
	}

	best := math.Inf(1)
	var bestX []float64
	evals := 0

	current := make([]float64, len(prob.Bounds))
	g.searchRecursive(ctx, prob, 0, current, &best, &bestX, &evals)

	if bestX == nil {
		bestX = make([]float64, len(prob.Bounds))
		for i, b := range prob.Bounds {
			bestX[i] = b.Low
		}
		best = prob.Objective(bestX)
		evals++
	}

	return Result{X: bestX, F: best, Iterations: 1, Evaluations: evals}, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, prob Problem, depth int, current []float64, best *float64, bestX *[]float64, evals *int) {
	select {
	case <-ctx.Done():
		return
	default:
	}

	if depth == len(prob.Bounds) {
		val := prob.Objective(current)
		*evals++
		if val < *best {
			*best = val
			*bestX = append([]float64(nil), current...)
		}
		return
	}

	b := prob.Bounds[depth]
	hi := b.High
	if math.IsInf(hi, 1) {
		hi = b.Low + 1e3
	}
	for i := 0; i < g.points; i++ {
		current[depth] = b.Low + float64(i)*(hi-b.Low)/float64(g.points-1)
		g.searchRecursive(ctx, prob, depth+1, current, best, bestX, evals)
	}
}
