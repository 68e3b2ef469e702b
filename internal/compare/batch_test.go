package compare

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/odefit/internal/dynamo"
	"github.com/san-kum/odefit/internal/fit"
)

func ok(idx int, params []float64, ssr float64) Outcome {
	return Outcome{
		Index:  idx,
		Result: &fit.Result{Params: dynamo.Params(params), SSR: ssr},
	}
}

func failed(idx int) Outcome {
	return Outcome{Index: idx, Err: errors.New("integration diverged")}
}

func TestAggregateMixedOutcomes(t *testing.T) {
	s := Aggregate([]Outcome{
		ok(0, []float64{1.0, 10.0}, 0.4),
		failed(1),
		ok(2, []float64{3.0, 14.0}, 0.6),
	})

	if s.NTotal != 3 || s.NSuccess != 2 {
		t.Errorf("expected 2/3 successes, got %d/%d", s.NSuccess, s.NTotal)
	}
	if math.Abs(s.MeanParams[0]-2.0) > 1e-12 || math.Abs(s.MeanParams[1]-12.0) > 1e-12 {
		t.Errorf("expected means [2 12], got %v", s.MeanParams)
	}
	// Sample standard deviation of {1, 3} and {10, 14}.
	if math.Abs(s.StdParams[0]-math.Sqrt2) > 1e-12 {
		t.Errorf("expected std sqrt(2), got %f", s.StdParams[0])
	}
	if math.Abs(s.StdParams[1]-2*math.Sqrt2) > 1e-12 {
		t.Errorf("expected std 2*sqrt(2), got %f", s.StdParams[1])
	}
	if math.Abs(s.MeanSSR-0.5) > 1e-12 {
		t.Errorf("expected mean ssr 0.5, got %f", s.MeanSSR)
	}
}

func TestAggregateAllFailed(t *testing.T) {
	s := Aggregate([]Outcome{failed(0), failed(1)})

	if s.NSuccess != 0 {
		t.Errorf("expected 0 successes, got %d", s.NSuccess)
	}
	if len(s.MeanParams) != 0 || len(s.StdParams) != 0 {
		t.Errorf("expected empty statistics, got %v / %v", s.MeanParams, s.StdParams)
	}
	if !math.IsInf(s.MeanSSR, 1) {
		t.Errorf("expected +Inf mean ssr, got %f", s.MeanSSR)
	}
	if math.IsNaN(s.MeanSSR) {
		t.Error("mean ssr must not be NaN")
	}
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)
	if s.NTotal != 0 || s.NSuccess != 0 {
		t.Errorf("expected zero counts, got %d/%d", s.NSuccess, s.NTotal)
	}
	if !math.IsInf(s.MeanSSR, 1) {
		t.Errorf("expected +Inf mean ssr, got %f", s.MeanSSR)
	}
}

func TestAggregateLengthMismatchIsPerUnitFailure(t *testing.T) {
	s := Aggregate([]Outcome{
		ok(0, []float64{1.0, 2.0}, 0.1),
		ok(1, []float64{5.0}, 0.2), // wrong arity
		ok(2, []float64{3.0, 4.0}, 0.3),
	})

	if s.NSuccess != 2 {
		t.Errorf("expected mismatched vector to fail, got %d successes", s.NSuccess)
	}
	if s.Outcomes[1].OK() {
		t.Error("expected an error recorded for the mismatched outcome")
	}
	if math.Abs(s.MeanParams[0]-2.0) > 1e-12 {
		t.Errorf("expected mean over remaining fits, got %v", s.MeanParams)
	}
}

func TestAggregateSingleSuccessZeroStd(t *testing.T) {
	s := Aggregate([]Outcome{ok(0, []float64{4.0}, 1.5)})

	if s.StdParams[0] != 0 {
		t.Errorf("expected zero std for a single fit, got %f", s.StdParams[0])
	}
	if s.MeanParams[0] != 4.0 {
		t.Errorf("expected mean 4, got %f", s.MeanParams[0])
	}
	if s.MeanSSR != 1.5 {
		t.Errorf("expected mean ssr 1.5, got %f", s.MeanSSR)
	}
}
