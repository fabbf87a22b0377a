// Package apperr carries the error taxonomy the HTTP layer maps onto status
// codes. Anything that is not an *apperr.Error is treated as unexpected and
// answered with a generic 500.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func Invalid(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Unauthenticated(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// InsufficientStock reports how many units remain. The count in the message
// is part of the contract.
func InsufficientStock(available int) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf("Only %d units available", available)}
}

func Unexpected(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message}
}

// StatusOf resolves the HTTP status for err, defaulting to 500.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the caller-safe message for err. Non-taxonomy errors get
// a generic message so internal detail never leaks.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Server error"
}
