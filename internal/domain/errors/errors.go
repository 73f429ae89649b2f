package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAuthorizationDenied is returned when a mutation violates ownership,
	// role, or protected-field rules. The whole mutation is rolled back.
	ErrAuthorizationDenied = errors.New("authorization denied")

	// ErrInvalidStatus is returned when an order is not in a state that
	// permits the requested transition.
	ErrInvalidStatus = errors.New("invalid order status for operation")

	// ErrConfirmationIncomplete is returned when the client submits the PO
	// confirmation without accepting both confirmations.
	ErrConfirmationIncomplete = errors.New("both confirmations are required")

	// ErrSubmitInFlight is returned when a duplicate submit arrives while a
	// confirmation write for the same order is still in flight.
	ErrSubmitInFlight = errors.New("submission already in flight")
)
