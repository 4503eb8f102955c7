package services

import (
	"errors"
	"fmt"
)

// Domain errors returned by the lifecycle services. Handlers map these to
// HTTP statuses; nothing here is transport-specific.
var (
	ErrNotFound               = errors.New("resource not found")
	ErrUnauthorized           = errors.New("actor is not a party to this resource")
	ErrAlreadyReviewed        = errors.New("booking already reviewed")
	ErrNotCompleted           = errors.New("booking is not completed")
	ErrConsultantUnavailable  = errors.New("consultant is not available for booking")
	ErrDuplicateBookingNumber = errors.New("could not allocate a unique booking number")
	ErrReasonRequired         = errors.New("cancellation requires a reason")
	ErrAlreadyApplied         = errors.New("consultant application already exists")
)

// InvalidTransitionError reports a rejected state change, identifying the
// current and requested states.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s transition from %q to %q", e.Entity, e.From, e.To)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var ite *InvalidTransitionError
	return errors.As(err, &ite)
}
