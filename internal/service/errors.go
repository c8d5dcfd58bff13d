// Package service holds the use cases the HTTP layer calls into.
//
// Every operation takes the repository explicitly so one request can run
// against a request-scoped session. Failures the caller should present to
// the user are *Error values; match them with errors.Is:
//
//	if errors.Is(err, service.ErrUnknownUser) {
//	    c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
//	}
package service

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeNameNotUnique  Code = "NAME_NOT_UNIQUE"
	CodeUnknownUser    Code = "UNKNOWN_USER"
	CodeAuthentication Code = "AUTHENTICATION_FAILED"
	CodeGameNotFound   Code = "GAME_NOT_FOUND"
	CodeInvalidReview  Code = "INVALID_REVIEW"
	CodeValidation     Code = "VALIDATION"
	CodeInternal       Code = "INTERNAL"
)

// HTTPStatus returns the HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNameNotUnique:
		return http.StatusConflict
	case CodeUnknownUser, CodeGameNotFound:
		return http.StatusNotFound
	case CodeAuthentication:
		return http.StatusUnauthorized
	case CodeInvalidReview, CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code and message.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, cause: err}
}

// Sentinel errors.
var (
	ErrNameNotUnique  = &Error{Code: CodeNameNotUnique, Message: "username is already taken"}
	ErrUnknownUser    = &Error{Code: CodeUnknownUser, Message: "unknown user"}
	ErrAuthentication = &Error{Code: CodeAuthentication, Message: "username or password is incorrect"}
	ErrGameNotFound   = &Error{Code: CodeGameNotFound, Message: "game not found"}
	ErrInvalidReview  = &Error{Code: CodeInvalidReview, Message: "invalid review"}
)

// Validation creates a validation error with a custom message.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// StatusOf returns the HTTP status for err, 500 for anything that is not an *Error.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus()
	}
	return http.StatusInternalServerError
}
