package apierr

import (
	"fmt"
	"maps"
)

// Error is a structured API error: a machine-readable code, a message for
// people, the HTTP status, optional details naming what the request was
// about, and an optional cause that is logged but never serialized.
type Error struct {
	code    Code
	message string
	status  int
	details map[string]string
	cause   error
}

// New creates an Error without a cause.
func New(code Code, status int, message string) *Error {
	return &Error{code: code, message: message, status: status}
}

// Wrap creates an Error that wraps a cause for logging/unwrapping.
func Wrap(code Code, status int, message string, cause error) *Error {
	return &Error{code: code, message: message, status: status, cause: cause}
}

// With returns a copy of e carrying one more detail.
func (e *Error) With(key, value string) *Error {
	c := *e
	c.details = maps.Clone(e.details)
	if c.details == nil {
		c.details = make(map[string]string, 1)
	}
	c.details[key] = value
	return &c
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Code() Code { return e.code }

func (e *Error) Message() string { return e.message }

func (e *Error) Status() int { return e.status }

// Detail returns one detail value, or "".
func (e *Error) Detail(key string) string { return e.details[key] }

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Response returns the wire form; the cause is left out.
func (e *Error) Response() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:    e.code,
			Message: e.message,
			Details: e.details,
		},
	}
}
