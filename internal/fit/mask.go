package fit

import (
	"fmt"
	"sort"

	"github.com/san-kum/odefit/internal/optim"
)

// Mask splits a full parameter vector into free and fixed parts. Fixed
// parameters are addressed by 1-based index into the full vector.
type Mask struct {
	nTotal  int
	fixed   map[int]float64
	freeIdx []int
}

// NewMask validates the fixed indices against [1, nTotal] and precomputes
// the ascending free-index order.
func NewMask(nTotal int, fixed map[int]float64) (*Mask, error) {
	for idx := range fixed {
		if idx < 1 || idx > nTotal {
			return nil, &ConfigError{Wrapped: fmt.Errorf("%w: %d not in [1, %d]", ErrFixedIndexRange, idx, nTotal)}
		}
	}

	freeIdx := make([]int, 0, nTotal-len(fixed))
	for i := 1; i <= nTotal; i++ {
		if _, ok := fixed[i]; !ok {
			freeIdx = append(freeIdx, i)
		}
	}
	sort.Ints(freeIdx)

	m := &Mask{
		nTotal:  nTotal,
		fixed:   make(map[int]float64, len(fixed)),
		freeIdx: freeIdx,
	}
	for k, v := range fixed {
		m.fixed[k] = v
	}
	return m, nil
}

func (m *Mask) Total() int { return m.nTotal }

func (m *Mask) FreeCount() int { return len(m.freeIdx) }

// FreeIndices returns the 1-based indices of the free parameters, ascending.
func (m *Mask) FreeIndices() []int {
	return append([]int(nil), m.freeIdx...)
}

// Reduce selects the entries of a full-length vector at the free positions.
func (m *Mask) Reduce(full []float64) ([]float64, error) {
	if len(full) != m.nTotal {
		return nil, &ConfigError{Wrapped: fmt.Errorf("%w: got %d, want %d", ErrFreeLength, len(full), m.nTotal)}
	}
	free := make([]float64, len(m.freeIdx))
	for i, idx := range m.freeIdx {
		free[i] = full[idx-1]
	}
	return free, nil
}

// ReduceBounds selects the bound pairs at the free positions.
func (m *Mask) ReduceBounds(full []optim.Bound) ([]optim.Bound, error) {
	if len(full) != m.nTotal {
		return nil, &ConfigError{Wrapped: fmt.Errorf("%w: got %d, want %d", ErrBoundsLength, len(full), m.nTotal)}
	}
	free := make([]optim.Bound, len(m.freeIdx))
	for i, idx := range m.freeIdx {
		free[i] = full[idx-1]
	}
	return free, nil
}

// Expand rebuilds a full-length vector: fixed positions take their pinned
// value, free positions consume the free vector in ascending index order.
func (m *Mask) Expand(free []float64) ([]float64, error) {
	if len(free) != len(m.freeIdx) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFreeLength, len(free), len(m.freeIdx))
	}
	full := make([]float64, m.nTotal)
	next := 0
	for i := 1; i <= m.nTotal; i++ {
		if v, ok := m.fixed[i]; ok {
			full[i-1] = v
		} else {
			full[i-1] = free[next]
			next++
		}
	}
	return full, nil
}
