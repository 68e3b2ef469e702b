package fit

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/odefit/internal/dataset"
	"github.com/san-kum/odefit/internal/dynamo"
	"github.com/san-kum/odefit/internal/integrators"
)

// line is du/dt = a, so u(t) = y0 + a·t.
var line = dynamo.Func{
	Fn: func(x dynamo.State, p dynamo.Params, _ float64) dynamo.State {
		return dynamo.State{p[0]}
	},
	Dim:   1,
	Count: 1,
	Names: []string{"a"},
}

// twoRate is du/dt = a - b·u; swapping a and b changes the trajectory.
var twoRate = dynamo.Func{
	Fn: func(x dynamo.State, p dynamo.Params, _ float64) dynamo.State {
		return dynamo.State{p[0] - p[1]*x[0]}
	},
	Dim:   1,
	Count: 2,
	Names: []string{"a", "b"},
}

func newScorer() *Scorer {
	return NewScorer(integrators.NewRK45(), integrators.TightOptions())
}

func TestScorePerfectFit(t *testing.T) {
	// Data generated exactly by u(t) = 1 + 2t.
	ds, err := dataset.New("exact", []float64{0, 1, 2}, []float64{1, 3, 5})
	if err != nil {
		t.Fatal(err)
	}

	bic, ssr, err := newScorer().Score(context.Background(), line, ds, dynamo.Params{2.0})
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if ssr > 1e-12 {
		t.Errorf("expected near-zero ssr, got %g", ssr)
	}
	if math.IsNaN(bic) || math.IsInf(bic, 0) {
		t.Errorf("expected finite bic for perfect fit, got %f", bic)
	}
	if ssr == 0 && bic != BICPerfectFit {
		t.Errorf("expected sentinel bic %g, got %g", BICPerfectFit, bic)
	}
}

func TestScoreFormula(t *testing.T) {
	ds, err := dataset.New("off", []float64{0, 1, 2, 3}, []float64{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}

	// Slope 0.5 against unit-slope data: residuals 0, 0.5, 1.0, 1.5.
	bic, ssr, err := newScorer().Score(context.Background(), line, ds, dynamo.Params{0.5})
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}

	wantSSR := 0.25 + 1.0 + 2.25
	if math.Abs(ssr-wantSSR) > 1e-8 {
		t.Errorf("expected ssr %.4f, got %.4f", wantSSR, ssr)
	}

	n, k := 4.0, 1.0
	wantBIC := n*math.Log(wantSSR/n) + k*math.Log(n)
	if math.Abs(bic-wantBIC) > 1e-6 {
		t.Errorf("expected bic %.6f, got %.6f", wantBIC, bic)
	}
}

func TestScoreOrderSensitive(t *testing.T) {
	ds, err := dataset.New("d", []float64{0, 0.5, 1, 1.5, 2}, []float64{1, 1.5, 1.8, 2.0, 2.1})
	if err != nil {
		t.Fatal(err)
	}

	s := newScorer()
	_, ssrAB, err := s.Score(context.Background(), twoRate, ds, dynamo.Params{2.0, 0.5})
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	_, ssrBA, err := s.Score(context.Background(), twoRate, ds, dynamo.Params{0.5, 2.0})
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}

	if ssrAB == ssrBA {
		t.Error("swapping distinct parameter values should change the residual")
	}
}

func TestScoreBadDataset(t *testing.T) {
	ds := dataset.Dataset{X: []float64{0, 1}, Y: []float64{1}}
	_, _, err := newScorer().Score(context.Background(), line, ds, dynamo.Params{1})
	if err == nil {
		t.Fatal("expected error for malformed dataset")
	}
}
