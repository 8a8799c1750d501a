package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidAction indicates an action outside {0, 1}.
	ErrInvalidAction = errors.New("dynamo: invalid action")

	// ErrInvalidConfig indicates a non-positive time step or step limit.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrContractViolation indicates the bounce solver was entered with no real contact time.
	ErrContractViolation = errors.New("dynamo: contract violation")

	// ErrEpisodeDone indicates a step was requested after termination or truncation.
	ErrEpisodeDone = errors.New("dynamo: episode already finished, call Reset")

	// ErrContextCanceled indicates the episode was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
