package errors

import (
	"net/http"

	"authgate/internal/errors"
)

// AppError defines the interface for application-specific errors.
// The HTTP delivery layer translates these into the fixed status/body pairs
// of the auth contract.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-facing error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-facing error message.
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *BaseError) Details() string {
	return e.details
}

// Predefined error types. The messages are part of the wire contract and
// must not be reworded.
var (
	// ErrUsernameTaken is returned by the registration pre-check and by the
	// storage-level unique constraint fallback alike.
	ErrUsernameTaken = NewBaseError(
		http.StatusUnprocessableEntity,
		"USERNAME_TAKEN",
		"Username taken",
		"",
	)

	// ErrPasswordTooShort rejects passwords of three characters or fewer
	// during registration.
	ErrPasswordTooShort = NewBaseError(
		http.StatusUnprocessableEntity,
		"PASSWORD_TOO_SHORT",
		"Password must be longer than 3 chars",
		"",
	)

	// ErrInvalidCredentials covers unknown username, short password and
	// wrong password uniformly; login never reveals which check failed.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid credentials",
		"",
	)

	// ErrSessionDestroyFailed is the only 5xx the auth contract defines.
	ErrSessionDestroyFailed = NewBaseError(
		http.StatusInternalServerError,
		"SESSION_DESTROY_FAILED",
		"Error logging out",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// RegistrationError surfaces an underlying hashing or storage failure as the
// 422 the registration contract requires, carrying the raw error text.
type RegistrationError struct {
	err error
}

// NewRegistrationError wraps err into the registration failure contract.
func NewRegistrationError(err error) AppError {
	return &RegistrationError{err: err}
}

// Error implements the error interface.
func (e *RegistrationError) Error() string {
	return e.err.Error()
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *RegistrationError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code.
func (e *RegistrationError) HTTPCode() int {
	return http.StatusUnprocessableEntity
}

// ErrorCode returns the business error code.
func (e *RegistrationError) ErrorCode() string {
	return "REGISTRATION_FAILED"
}

// Message returns the raw underlying error text, mirroring the storage-level
// rejection path of the contract.
func (e *RegistrationError) Message() string {
	return e.err.Error()
}

// Details returns detailed error information.
func (e *RegistrationError) Details() string {
	return ""
}
