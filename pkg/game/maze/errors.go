package maze

import (
	"errors"
	"fmt"
)

var (
	// ErrGenerationFailed is matched by every error Generate returns after
	// running out of attempts.
	ErrGenerationFailed = errors.New("could not produce a valid maze")

	// ErrRepairExhausted means the repair loop ran out of removable
	// obstacles or iterations with the exit still unreachable.
	ErrRepairExhausted = errors.New("repair exhausted")

	// ErrNoPath means the exit is disconnected from the start on the raw grid
	ErrNoPath = errors.New("exit disconnected from start")
)

// GenerationError is returned when every generation attempt failed
type GenerationError struct {
	Attempts int
	Last     error
}

// [GenerationError] implements [error]
func (e *GenerationError) Error() string {
	if e.Last == nil {
		return fmt.Sprintf("%s after %d attempts", ErrGenerationFailed, e.Attempts)
	}
	return fmt.Sprintf("%s after %d attempts: %v", ErrGenerationFailed, e.Attempts, e.Last)
}

// Unwrap exposes both ErrGenerationFailed and the last attempt's cause
func (e *GenerationError) Unwrap() []error {
	if e.Last == nil {
		return []error{ErrGenerationFailed}
	}
	return []error{ErrGenerationFailed, e.Last}
}
