package storage

import (
	"errors"
	"testing"

	"github.com/san-kum/odefit/internal/compare"
	"github.com/san-kum/odefit/internal/dynamo"
	"github.com/san-kum/odefit/internal/fit"
)

func testComparison() *compare.Comparison {
	return &compare.Comparison{
		Units: []compare.Unit{
			{
				Label: "logistic",
				Result: &fit.Result{
					Params: dynamo.Params{0.8, 12.0},
					Names:  []string{"r", "K"},
					BIC:    -20.5,
					SSR:    0.003,
					Curve:  []dynamo.Point{{T: 0, Y: 1}, {T: 1, Y: 2}},
				},
			},
			{Label: "gompertz", Err: errors.New("integration diverged")},
		},
		Best: 0,
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := s.Save("models", "growth", 42, testComparison())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := s.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Kind != "models" || meta.Dataset != "growth" || meta.Seed != 42 {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.Best != "logistic" {
		t.Errorf("expected best logistic, got %s", meta.Best)
	}
	if len(meta.Units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(meta.Units))
	}
	if meta.Units[1].Error == "" {
		t.Error("expected failure recorded for second unit")
	}
}

func TestList(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := s.Save("models", "a", 1, testComparison()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestListMissingDir(t *testing.T) {
	s := New("/nonexistent/odefit-test")
	runs, err := s.List()
	if err != nil {
		t.Fatalf("list should tolerate a missing dir: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
