package fit

import "errors"

var (
	// ErrFixedIndexRange indicates a fixed-parameter index outside [1, n].
	ErrFixedIndexRange = errors.New("fit: fixed parameter index out of range")

	// ErrFreeLength indicates a free vector whose length does not match the
	// mask's free-parameter count.
	ErrFreeLength = errors.New("fit: free vector length mismatch")

	// ErrBoundsLength indicates bounds whose length does not match the
	// free-parameter count.
	ErrBoundsLength = errors.New("fit: bounds length mismatch")

	// ErrGuessLength indicates a guess whose length does not match the
	// free-parameter count.
	ErrGuessLength = errors.New("fit: guess length mismatch")

	// ErrDegenerateSpace indicates a search space collapsed to a single
	// point that the guess does not satisfy.
	ErrDegenerateSpace = errors.New("fit: degenerate search space excludes guess")

	// ErrRefineFailed indicates the final integration with the winning
	// parameters failed; the unit has no usable result.
	ErrRefineFailed = errors.New("fit: refinement integration failed")
)

// ConfigError marks input validation failures that are detected before any
// integration or optimization work starts.
type ConfigError struct {
	Wrapped error
}

func (e *ConfigError) Error() string { return "fit: bad configuration: " + e.Wrapped.Error() }
func (e *ConfigError) Unwrap() error { return e.Wrapped }

// FitError marks a unit whose fit did not produce a usable result. Batch
// callers isolate it; single-unit callers surface it.
type FitError struct {
	Unit    string
	Wrapped error
}

func (e *FitError) Error() string {
	if e.Unit == "" {
		return e.Wrapped.Error()
	}
	return e.Unit + ": " + e.Wrapped.Error()
}

func (e *FitError) Unwrap() error { return e.Wrapped }
