package errors

import "errors"

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Failure taxonomy for the gateway. InvalidToken and NetworkFailure are
// terminal for a session; a ValidationFailure is recovered by the caller
// as inline field errors; NotFound is tolerated where the booking flow
// tolerates it (quote resolution drops unknown service ids).
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrNetworkFailure = errors.New("upstream unreachable")
	ErrNotFound       = errors.New("not found")
)

// ValidationFailure carries per-field messages so forms render inline
// errors instead of a fatal failure.
type ValidationFailure struct {
	Fields map[string]string
}

func (e *ValidationFailure) Error() string {
	return "validation failed"
}

func NewValidationFailure() *ValidationFailure {
	return &ValidationFailure{Fields: make(map[string]string)}
}

func (e *ValidationFailure) Add(field, msg string) {
	e.Fields[field] = msg
}

func (e *ValidationFailure) Empty() bool {
	return len(e.Fields) == 0
}
