package reservation

import "errors"

var (
	// ErrMissingDetails is the local pre-flight failure raised before any
	// network call when required draft fields are absent.
	ErrMissingDetails = errors.New("Missing reservation details")

	ErrSubmissionInFlight = errors.New("a submission is already in progress")

	ErrInvalidFacility  = errors.New("unknown facility")
	ErrFacilityRequired = errors.New("choose a facility first")
	ErrDateRequired     = errors.New("choose a date first")
	ErrPastDate         = errors.New("date cannot be in the past")
	ErrSlotUnavailable  = errors.New("that time slot is already reserved")
	ErrSlotInvalid      = errors.New("slot times do not fall on the chosen date")
	ErrNotEventVenue    = errors.New("amenities apply to the event place only")
	ErrNotReady         = errors.New("reservation is not ready for submission")
)
