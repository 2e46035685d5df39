package service

import (
	"errors"
	"fmt"
)

// --- Error Definitions ---
var (
	// ErrValidation is wrapped by every input error; the message names the field.
	ErrValidation = errors.New("validation failed")

	ErrProfileNotFound      = errors.New("user not found")
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrRoutineNotFound      = errors.New("routine not found")
	ErrExerciseNotInRoutine = errors.New("exercise not found in routine")
	ErrMediaUnavailable     = errors.New("media uploads are not configured")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
