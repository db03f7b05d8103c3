package domain

import "errors"

// Sentinel errors shared across services. Controllers match these with
// errors.Is to pick the HTTP status.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")

	ErrEventNotAvailable    = errors.New("event is not available for registration")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyCancelled     = errors.New("registration is already cancelled")

	ErrInvalidAccessCode = errors.New("invalid access code")
	ErrDomainNotAllowed  = errors.New("email domain not allowed for this event")

	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
