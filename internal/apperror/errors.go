// Package apperror defines the error taxonomy returned by the HTTP API.
package apperror

import (
	"errors"
	"net/http"
)

const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeUnprocessable = "UNPROCESSABLE"
	CodeRateLimited   = "RATE_LIMITED"
	CodeInternal      = "INTERNAL_ERROR"
	CodeUpstream      = "UPSTREAM_ERROR"
)

// FieldError describes one invalid request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is an error with a stable code and the HTTP status it maps to
type Error struct {
	Code    string
	Message string
	Status  int
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code, message string, status int, err error) *Error {
	return &Error{Code: code, Message: message, Status: status, Err: err}
}

func Validation(message string, fields ...FieldError) *Error {
	return &Error{Code: CodeValidation, Message: message, Status: http.StatusBadRequest, Fields: fields}
}

func Unauthorized(message string) *Error {
	return New(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message, http.StatusNotFound, nil)
}

func Conflict(message string, err error) *Error {
	return New(CodeConflict, message, http.StatusConflict, err)
}

func Unprocessable(message string, err error) *Error {
	return New(CodeUnprocessable, message, http.StatusUnprocessableEntity, err)
}

func Upstream(message string, err error) *Error {
	return New(CodeUpstream, message, http.StatusBadGateway, err)
}

func Internal(err error) *Error {
	return New(CodeInternal, "An unexpected error occurred", http.StatusInternalServerError, err)
}

// As returns err as an *Error, wrapping anything unrecognised as an internal error
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// Body is the JSON payload of an error response
type Body struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
	Details string       `json:"details,omitempty"`
}

// Response is the JSON envelope of an error response
type Response struct {
	Error Body `json:"error"`
}

// Response renders the error for a client. The wrapped error text is only
// included when debug is set.
func (e *Error) Response(debug bool) Response {
	body := Body{Code: e.Code, Message: e.Message, Fields: e.Fields}
	if debug && e.Err != nil {
		body.Details = e.Err.Error()
	}
	return Response{Error: body}
}
