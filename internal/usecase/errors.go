package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both a truly absent entity and a caller probing
	// one they do not own: resolution lookups are filtered to the
	// caller's records first, so the error never reveals whether the
	// entity exists for someone else.
	ErrNotFound = errors.New("not found")

	ErrNotAllowed = errors.New("not allowed")

	// ErrConflict is returned when the acceptance CAS loses: the job
	// already left the open state.
	ErrConflict = errors.New("job already resolved")

	ErrStorage = errors.New("storage failure")
)

// ValidationError carries the specific failing constraint back to the
// caller verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
