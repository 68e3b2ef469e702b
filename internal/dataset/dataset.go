package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch indicates x and y have different lengths.
	ErrLengthMismatch = errors.New("dataset: x and y length mismatch")

	// ErrTooFewPoints indicates fewer than two samples.
	ErrTooFewPoints = errors.New("dataset: need at least two samples")

	// ErrNotIncreasing indicates x values that are not strictly increasing.
	ErrNotIncreasing = errors.New("dataset: x values must be strictly increasing")
)

// Dataset is an ordered series of (x, y) observations.
type Dataset struct {
	Name string
	X    []float64
	Y    []float64
}

func New(name string, x, y []float64) (Dataset, error) {
	d := Dataset{Name: name, X: x, Y: y}
	if err := d.Validate(); err != nil {
		return Dataset{}, err
	}
	return d, nil
}

func (d Dataset) Validate() error {
	if len(d.X) != len(d.Y) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(d.X), len(d.Y))
	}
	if len(d.X) < 2 {
		return ErrTooFewPoints
	}
	for i := 1; i < len(d.X); i++ {
		if d.X[i] <= d.X[i-1] {
			return fmt.Errorf("%w: x[%d]=%g after x[%d]=%g", ErrNotIncreasing, i, d.X[i], i-1, d.X[i-1])
		}
	}
	return nil
}

func (d Dataset) Len() int { return len(d.X) }

// Span is the time range covered by the samples.
func (d Dataset) Span() (float64, float64) {
	return d.X[0], d.X[len(d.X)-1]
}
