package services

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package either wraps one of these
// or is an internal storage failure.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

var (
	ErrChallengeNotFound   = fmt.Errorf("%w: challenge not found", ErrNotFound)
	ErrParticipantNotFound = fmt.Errorf("%w: participant not found", ErrUnauthorized)
	ErrSessionInvalid      = fmt.Errorf("%w: invalid session token", ErrUnauthorized)
	ErrGoalNotFound        = fmt.Errorf("%w: goal not found", ErrNotFound)
	ErrOwnGoalPoints       = fmt.Errorf("%w: cannot modify points for your own goal", ErrForbidden)
	ErrNotGoalOwner        = fmt.Errorf("%w: only the goal owner can log achievements", ErrForbidden)
	ErrTitleRequired       = fmt.Errorf("%w: title is required", ErrInvalidInput)
	ErrNameRequired        = fmt.Errorf("%w: invite code and name are required", ErrInvalidInput)
	ErrDescriptionRequired = fmt.Errorf("%w: description is required", ErrInvalidInput)
	ErrInvalidPoints       = fmt.Errorf("%w: points out of range", ErrInvalidInput)
	ErrInvalidDate         = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
)

// IsDomainError reports whether err carries one of the error kinds above.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden)
}
