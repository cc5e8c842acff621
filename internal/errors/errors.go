package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrPropertyNotFound is returned when a property does not exist.
	ErrPropertyNotFound = errors.New("Property not found")
	// ErrUtilityNotFound is returned when a utility bill does not exist.
	ErrUtilityNotFound = errors.New("Utility bill not found")
	// ErrEmailTaken is returned when signing up with a registered email.
	ErrEmailTaken = errors.New("Email already registered")
	// ErrUsernameTaken is returned when signing up with a registered username.
	ErrUsernameTaken = errors.New("Username already taken")
	// ErrInvalidCredentials is returned for an unknown identifier and for a wrong password alike.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrAuthenticationFailed is returned by the token gate.
	ErrAuthenticationFailed = errors.New("Authentication failed")
	// ErrInsufficientPermissions is returned by the role gate.
	ErrInsufficientPermissions = errors.New("Insufficient permissions")
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Status:     "error",
		StatusCode: e.StatusCode,
		Message:    e.Message,
	}
}

// ValidationError collects every rule an input violated.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, ", ")
}

// NewValidationError builds a ValidationError from one or more messages.
func NewValidationError(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unclassified
// becomes a 500 with a generic message.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return NewHTTPError(http.StatusBadRequest, validationErr.Error())
	}

	switch {
	case errors.Is(err, ErrPropertyNotFound), errors.Is(err, ErrUtilityNotFound):
		return NewHTTPError(http.StatusNotFound, rootMessage(err))
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, rootMessage(err))
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrAuthenticationFailed):
		return NewHTTPError(http.StatusUnauthorized, rootMessage(err))
	case errors.Is(err, ErrInsufficientPermissions):
		return NewHTTPError(http.StatusForbidden, rootMessage(err))
	default:
		return NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// rootMessage returns the sentinel text without any wrapping context.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		ErrPropertyNotFound, ErrUtilityNotFound, ErrEmailTaken, ErrUsernameTaken,
		ErrInvalidCredentials, ErrAuthenticationFailed, ErrInsufficientPermissions,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
