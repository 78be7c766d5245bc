package errors

import "errors"

var (
	ErrNotFound = errors.New("account not found")

	ErrInvalidID = errors.New("invalid account ID format")

	ErrDuplicateEmail = errors.New("email already registered for this role")

	ErrUnknownRole = errors.New("unknown account role")
)
