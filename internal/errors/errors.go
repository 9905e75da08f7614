package errors

import "errors"

// Centralized sentinel errors for the application. Services return these
// (usually wrapped with fmt.Errorf and %w) instead of HTTP status codes;
// the API layer maps them with errors.Is. This keeps business logic free of
// transport concerns.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that client input failed business rule
	// validation. Mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation conflicts with the current
	// state of a resource. A send while another request is already in flight
	// for the same conversation lands here. Mapped to 409 Conflict.
	ErrConflict = errors.New("resource conflict")

	// ErrPermission signifies that the caller is not allowed to perform the
	// requested action, e.g. a developer route without the passcode.
	// Mapped to 403 Forbidden.
	ErrPermission = errors.New("permission denied")

	// ErrInternal signifies an unexpected server-side failure. Mapped to 500
	// without leaking implementation details to the client.
	ErrInternal = errors.New("internal server error")
)
