package dynamo

import "errors"

// Domain errors shared across integration and fitting.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrUnstable indicates the integration became numerically unstable.
	ErrUnstable = errors.New("dynamo: integration unstable (state diverged)")

	// ErrStepTooSmall indicates the adaptive timestep collapsed below minimum.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")

	// ErrMaxSteps indicates the step budget ran out before the span end.
	ErrMaxSteps = errors.New("dynamo: step limit exceeded before end of span")

	// ErrDimensionMismatch indicates mismatched state/parameter dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch")
)

// IntegrationError wraps an integration failure with position context.
type IntegrationError struct {
	Time    float64
	Step    int
	Wrapped error
}

func (e *IntegrationError) Error() string {
	return e.Wrapped.Error()
}

func (e *IntegrationError) Unwrap() error {
	return e.Wrapped
}
