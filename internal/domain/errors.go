package domain

import "errors"

// Domain errors
var (
	// Purchase validation errors
	ErrNoSeatsAvailable        = errors.New("no seats available for booking")
	ErrMissingJourneyDetails   = errors.New("boarding and destination station details not provided")
	ErrMissingPassengerDetails = errors.New("passenger first name, last name and email address are mandatory")
	ErrInvalidEmailFormat      = errors.New("email address is not in a valid format")
	ErrDuplicatePassenger      = errors.New("passenger with the same name already holds a ticket with the same email address")
	ErrUnknownJourney          = errors.New("no fare found for the requested journey")

	// Booking lookup errors
	ErrBookingNotFound = errors.New("no booking found for the given booking id")
	ErrEmailMismatch   = errors.New("email address does not match the booking's passenger")

	// Seat change errors
	ErrNoSeatForChange = errors.New("no seats available for seat change")
)

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrUnknownJourney) ||
		errors.Is(err, ErrNoSeatsAvailable) ||
		errors.Is(err, ErrNoSeatForChange)
}

// IsValidationError checks if the error is a request validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingJourneyDetails) ||
		errors.Is(err, ErrMissingPassengerDetails) ||
		errors.Is(err, ErrInvalidEmailFormat)
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return errors.Is(err, ErrDuplicatePassenger)
}
