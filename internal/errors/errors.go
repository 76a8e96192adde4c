package errors

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrUnauthorized is returned when a session token is missing, malformed, expired, revoked or foreign.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailRegistered is returned when registering an email that already has an account.
	ErrEmailRegistered = errors.New("email already registered")
	// ErrUserNotFound is returned when the token's user no longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrProductNotFound is returned when a product id does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrAlreadySubscribed is returned when an active subscriber subscribes again.
	ErrAlreadySubscribed = errors.New("email already subscribed")
	// ErrSubscriberNotFound is returned when unsubscribing an email that was never subscribed.
	ErrSubscriberNotFound = errors.New("email not found in subscribers list")
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
	Message string       `json:"message,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Details    []FieldError
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause, e.g. a context deadline.
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// BadRequest creates a 400 error without field details.
func BadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message)
}

// NotFound creates a 404 error.
func NotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

// Internal creates a 500 error. The cause is only shown to callers in development.
func Internal(message string, err error) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusInternalServerError,
		Message:    message,
		Err:        err,
	}
}

// Validation creates a 400 error carrying field-level details.
func Validation(details ...FieldError) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusBadRequest,
		Message:    "Validation error",
		Details:    details,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse(development bool) ErrorResponse {
	resp := ErrorResponse{
		Error:   e.Message,
		Details: e.Details,
	}
	if development && e.Err != nil {
		resp.Message = e.Err.Error()
	}
	return resp
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unknown becomes a 500
// with the given fallback message.
func MapErrorToHTTP(err error, fallback string) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return Unauthorized("Invalid token")
	case errors.Is(err, ErrInvalidCredentials):
		return Unauthorized("Invalid credentials")
	case errors.Is(err, ErrEmailRegistered):
		return BadRequest("Email already registered")
	case errors.Is(err, ErrUserNotFound):
		return NotFound("User not found")
	case errors.Is(err, ErrProductNotFound):
		return NotFound("Product not found")
	case errors.Is(err, ErrAlreadySubscribed):
		return BadRequest("Email already subscribed")
	case errors.Is(err, ErrSubscriberNotFound):
		return NotFound("Email not found in subscribers list")
	default:
		return Internal(fallback, err)
	}
}

// FromValidation turns validator output into a 400 with one detail per failing field.
// Errors of any other type are reported as a single body-level detail.
func FromValidation(err error) *HTTPError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Validation(FieldError{Field: "body", Message: err.Error()})
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Field:   fe.Field(),
			Message: describe(fe),
		})
	}
	return Validation(details...)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		if isString(fe) {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if isString(fe) {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return fmt.Sprintf("failed %s validation", strings.ReplaceAll(fe.Tag(), "_", " "))
	}
}

func isString(fe validator.FieldError) bool {
	return fe.Kind() == reflect.String
}
