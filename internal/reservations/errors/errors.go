package errors

import "errors"

var (
	ErrNotFound = errors.New("reservation not found")

	ErrInvalidID = errors.New("invalid reservation ID format")

	ErrDateConflict = errors.New("reservation dates conflict with an existing reservation")

	ErrInvalidDateRange = errors.New("end date must be after start date")
)
