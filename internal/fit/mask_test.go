package fit

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/odefit/internal/dynamo"
	"github.com/san-kum/odefit/internal/optim"
)

func TestMaskFreeIndices(t *testing.T) {
	m, err := NewMask(5, map[int]float64{2: 1.5, 4: -3.0})
	if err != nil {
		t.Fatalf("new mask failed: %v", err)
	}

	want := []int{1, 3, 5}
	got := m.FreeIndices()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
	if m.FreeCount() != 3 {
		t.Errorf("expected 3 free params, got %d", m.FreeCount())
	}
}

func TestMaskExpandReduceRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		nTotal int
		fixed  map[int]float64
		full   []float64
	}{
		{"no fixed", 3, nil, []float64{1, 2, 3}},
		{"one fixed", 3, map[int]float64{2: 9}, []float64{1, 2, 3}},
		{"edges fixed", 4, map[int]float64{1: -1, 4: 7}, []float64{10, 20, 30, 40}},
		{"all fixed", 2, map[int]float64{1: 5, 2: 6}, []float64{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMask(tt.nTotal, tt.fixed)
			if err != nil {
				t.Fatalf("new mask failed: %v", err)
			}

			free, err := m.Reduce(tt.full)
			if err != nil {
				t.Fatalf("reduce failed: %v", err)
			}
			full, err := m.Expand(free)
			if err != nil {
				t.Fatalf("expand failed: %v", err)
			}

			for i := 1; i <= tt.nTotal; i++ {
				if pinned, ok := tt.fixed[i]; ok {
					if full[i-1] != pinned {
						t.Errorf("index %d: expected pinned %g, got %g", i, pinned, full[i-1])
					}
				} else if full[i-1] != tt.full[i-1] {
					t.Errorf("index %d: expected %g, got %g", i, tt.full[i-1], full[i-1])
				}
			}
		})
	}
}

func TestMaskExpandOverwritesFixed(t *testing.T) {
	m, err := NewMask(3, map[int]float64{2: 42})
	if err != nil {
		t.Fatalf("new mask failed: %v", err)
	}

	// Whatever the full vector held at the fixed position, expand pins it.
	free, err := m.Reduce([]float64{1, 999, 3})
	if err != nil {
		t.Fatalf("reduce failed: %v", err)
	}
	full, err := m.Expand(free)
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	if full[1] != 42 {
		t.Errorf("expected pinned 42 at fixed index, got %g", full[1])
	}
}

func TestMaskIndexOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		idx   int
		total int
	}{
		{"zero", 0, 3},
		{"negative", -1, 3},
		{"past end", 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMask(tt.total, map[int]float64{tt.idx: 1.0})
			if err == nil {
				t.Fatal("expected error for out-of-range index")
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected ConfigError, got %T", err)
			}
			if !errors.Is(err, ErrFixedIndexRange) {
				t.Errorf("expected ErrFixedIndexRange, got %v", err)
			}
		})
	}
}

func TestMaskExpandLengthMismatch(t *testing.T) {
	m, err := NewMask(3, map[int]float64{1: 0})
	if err != nil {
		t.Fatalf("new mask failed: %v", err)
	}
	if _, err := m.Expand([]float64{1, 2, 3}); !errors.Is(err, ErrFreeLength) {
		t.Errorf("expected ErrFreeLength, got %v", err)
	}
}

func TestMaskReduceBounds(t *testing.T) {
	m, err := NewMask(3, map[int]float64{2: 5})
	if err != nil {
		t.Fatalf("new mask failed: %v", err)
	}

	all := []optim.Bound{{Low: 0, High: 1}, {Low: -9, High: 9}, {Low: 2, High: 3}}
	free, err := m.ReduceBounds(all)
	if err != nil {
		t.Fatalf("reduce bounds failed: %v", err)
	}
	if len(free) != 2 || free[0] != all[0] || free[1] != all[2] {
		t.Errorf("expected bounds at free indices, got %v", free)
	}
}

func TestAdapterExpandsPerCall(t *testing.T) {
	var seen []float64
	sys := dynamo.Func{
		Fn: func(x dynamo.State, p dynamo.Params, _ float64) dynamo.State {
			seen = append([]float64(nil), p...)
			return dynamo.State{p[0]*x[0] + p[1] + p[2]}
		},
		Dim:   1,
		Count: 3,
		Names: []string{"a", "b", "c"},
	}

	m, err := NewMask(3, map[int]float64{2: 7})
	if err != nil {
		t.Fatalf("new mask failed: %v", err)
	}
	ad := NewAdapter(sys, m)

	if ad.NParams() != 2 {
		t.Errorf("expected 2 free params, got %d", ad.NParams())
	}
	names := ad.ParamNames()
	if names[0] != "a" || names[1] != "c" {
		t.Errorf("expected masked names [a c], got %v", names)
	}

	ad.Derive(dynamo.State{1}, dynamo.Params{2, 3}, 0)
	if len(seen) != 3 || seen[0] != 2 || seen[1] != 7 || seen[2] != 3 {
		t.Errorf("expected expanded params [2 7 3], got %v", seen)
	}
}

func TestAdapterBadFreeVector(t *testing.T) {
	sys := dynamo.Func{
		Fn: func(x dynamo.State, p dynamo.Params, _ float64) dynamo.State {
			return dynamo.State{p[0]}
		},
		Dim:   1,
		Count: 2,
	}
	m, err := NewMask(2, nil)
	if err != nil {
		t.Fatalf("new mask failed: %v", err)
	}
	ad := NewAdapter(sys, m)

	d := ad.Derive(dynamo.State{1}, dynamo.Params{1, 2, 3}, 0)
	if !math.IsNaN(d[0]) {
		t.Errorf("expected NaN state for malformed free vector, got %v", d)
	}
}
