package dynamo

import (
	"math"
	"testing"
)

func TestStateClone(t *testing.T) {
	s := State{1.0, 2.0, 3.0}
	c := s.Clone()

	c[0] = 99.0
	if s[0] != 1.0 {
		t.Errorf("clone should not alias original, got %f", s[0])
	}
}

func TestStateIsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"finite", State{1.0, -2.5}, true},
		{"empty", State{}, true},
		{"nan", State{1.0, math.NaN()}, false},
		{"pos inf", State{math.Inf(1)}, false},
		{"neg inf", State{math.Inf(-1), 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("expected valid=%v, got %v", tt.valid, got)
			}
		})
	}
}

func TestStateNorm(t *testing.T) {
	s := State{3.0, 4.0}
	if got := s.Norm(); math.Abs(got-5.0) > 1e-12 {
		t.Errorf("expected norm 5, got %f", got)
	}
}

func TestFuncParamNames(t *testing.T) {
	f := Func{Count: 2}
	names := f.ParamNames()
	if len(names) != 2 || names[0] != "p1" || names[1] != "p2" {
		t.Errorf("expected generated names [p1 p2], got %v", names)
	}

	f.Names = []string{"r", "K"}
	names = f.ParamNames()
	if names[0] != "r" || names[1] != "K" {
		t.Errorf("expected explicit names [r K], got %v", names)
	}
}
