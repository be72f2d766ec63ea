package results

import "net/http"

// ErrorDetails describes a failed operation: a stable message, the HTTP
// status the transport layer should answer with, and optional structured
// data (e.g. the list of stock violations).
type ErrorDetails struct {
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Data       any    `json:"details,omitempty"`
}

// Result is the success-or-failure envelope returned by every service
// operation. A successful Result carries a value; a failed one carries
// ErrorDetails. Services never let domain errors escape as raw errors
// past this envelope.
type Result[T any] struct {
	Value T
	Error *ErrorDetails
}

// Success wraps a value in a successful Result.
func Success[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

// Failure builds a failed Result with a message and HTTP status code.
func Failure[T any](message string, statusCode int) Result[T] {
	return Result[T]{Error: &ErrorDetails{Message: message, StatusCode: statusCode}}
}

// FailureWithData builds a failed Result carrying structured error data.
func FailureWithData[T any](message string, statusCode int, data any) Result[T] {
	return Result[T]{Error: &ErrorDetails{Message: message, StatusCode: statusCode, Data: data}}
}

// NotFound builds a failed Result with a 404 status.
func NotFound[T any](message string) Result[T] {
	return Failure[T](message, http.StatusNotFound)
}

// IsSuccess reports whether the Result carries a value.
func (r Result[T]) IsSuccess() bool {
	return r.Error == nil
}
