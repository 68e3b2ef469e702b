package optim

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// DifferentialEvolution is a population-based global minimizer using the
// DE/rand/1/bin strategy with bound clamping.
type DifferentialEvolution struct {
	popFactor int
	minPop    int
	weight    float64
	crossover float64
}

func NewDifferentialEvolution() *DifferentialEvolution {
	return &DifferentialEvolution{
		popFactor: 10,
		minPop:    20,
		weight:    0.8,
		crossover: 0.9,
	}
}

func (d *DifferentialEvolution) Name() string { return "de" }

func (d *DifferentialEvolution) Minimize(ctx context.Context, prob Problem) (Result, error) {
	if err := validate(prob); err != nil {
		return Result{}, err
	}

	dim := len(prob.Bounds)
	np := d.popFactor * dim
	if np < d.minPop {
		np = d.minPop
	}

	rng := rand.New(rand.NewSource(prob.Seed))

	pop := make([][]float64, np)
	cost := make([]float64, np)
	evals := 0
	for i := range pop {
		pop[i] = d.sample(rng, prob.Bounds)
		cost[i] = prob.Objective(pop[i])
		evals++
	}

	bestIdx := 0
	for i := 1; i < np; i++ {
		if cost[i] < cost[bestIdx] {
			bestIdx = i
		}
	}
	best := append([]float64(nil), pop[bestIdx]...)
	bestCost := cost[bestIdx]

	start := time.Now()
	maxIter := prob.MaxIter
	if maxIter <= 0 {
		maxIter = 200
	}

	iter := 0
	trial := make([]float64, dim)
	for ; iter < maxIter; iter++ {
		select {
		case <-ctx.Done():
			return Result{X: best, F: bestCost, Iterations: iter, Evaluations: evals}, nil
		default:
		}
		if prob.TimeBudget > 0 && time.Since(start) > prob.TimeBudget {
			break
		}

		for i := 0; i < np; i++ {
			r1, r2, r3 := d.pickThree(rng, np, i)

			jRand := rng.Intn(dim)
			for j := 0; j < dim; j++ {
				if j == jRand || rng.Float64() < d.crossover {
					trial[j] = pop[r1][j] + d.weight*(pop[r2][j]-pop[r3][j])
				} else {
					trial[j] = pop[i][j]
				}
				trial[j] = clamp(trial[j], prob.Bounds[j])
			}

			c := prob.Objective(trial)
			evals++
			if c <= cost[i] {
				copy(pop[i], trial)
				cost[i] = c
				if c < bestCost {
					bestCost = c
					copy(best, trial)
				}
			}
		}
	}

	return Result{X: best, F: bestCost, Iterations: iter, Evaluations: evals}, nil
}

func (d *DifferentialEvolution) sample(rng *rand.Rand, bounds []Bound) []float64 {
	x := make([]float64, len(bounds))
	for i, b := range bounds {
		lo, hi := b.Low, b.High
		if math.IsInf(hi, 1) {
			// Unbounded above: sample a finite window above the lower bound.
			hi = lo + 1e3
		}
		x[i] = lo + rng.Float64()*(hi-lo)
	}
	return x
}

func (d *DifferentialEvolution) pickThree(rng *rand.Rand, np, exclude int) (int, int, int) {
	pick := func(taken ...int) int {
		for {
			k := rng.Intn(np)
			ok := k != exclude
			for _, t := range taken {
				if k == t {
					ok = false
				}
			}
			if ok {
				return k
			}
		}
	}
	r1 := pick()
	r2 := pick(r1)
	r3 := pick(r1, r2)
	return r1, r2, r3
}

func clamp(v float64, b Bound) float64 {
	if v < b.Low {
		return b.Low
	}
	if v > b.High {
		return b.High
	}
	return v
}
