package compare

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/odefit/internal/fit"
)

// Outcome is the tagged result of one fit attempt in a batch.
type Outcome struct {
	Index  int
	Result *fit.Result
	Err    error
}

func (o Outcome) OK() bool { return o.Err == nil && o.Result != nil }

// Summary aggregates a batch of fit outcomes. Statistics cover successful
// fits only; with zero successes the vectors are empty and MeanSSR is +Inf.
type Summary struct {
	Outcomes   []Outcome
	MeanParams []float64
	StdParams  []float64
	MeanSSR    float64
	NSuccess   int
	NTotal     int
}

// Aggregate computes element-wise mean and standard deviation of the fitted
// parameter vectors and the mean SSR over successes. A parameter vector
// whose length disagrees with the first success is downgraded to a failure
// for that index rather than aborting the batch.
func Aggregate(outcomes []Outcome) *Summary {
	s := &Summary{
		Outcomes: outcomes,
		MeanSSR:  math.Inf(1),
		NTotal:   len(outcomes),
	}

	dim := -1
	for i := range outcomes {
		if !outcomes[i].OK() {
			continue
		}
		if dim < 0 {
			dim = len(outcomes[i].Result.Params)
		} else if len(outcomes[i].Result.Params) != dim {
			outcomes[i] = Outcome{
				Index: outcomes[i].Index,
				Err:   fmt.Errorf("compare: parameter length %d, expected %d", len(outcomes[i].Result.Params), dim),
			}
		}
	}

	var columns [][]float64
	var ssrs []float64
	for _, o := range outcomes {
		if !o.OK() {
			continue
		}
		if columns == nil {
			columns = make([][]float64, dim)
		}
		for j, v := range o.Result.Params {
			columns[j] = append(columns[j], v)
		}
		ssrs = append(ssrs, o.Result.SSR)
	}

	s.NSuccess = len(ssrs)
	if s.NSuccess == 0 {
		s.MeanParams = []float64{}
		s.StdParams = []float64{}
		return s
	}

	s.MeanParams = make([]float64, dim)
	s.StdParams = make([]float64, dim)
	for j, col := range columns {
		s.MeanParams[j] = stat.Mean(col, nil)
		if len(col) > 1 {
			s.StdParams[j] = stat.StdDev(col, nil)
		}
	}
	s.MeanSSR = stat.Mean(ssrs, nil)
	return s
}
