package client

import (
	"errors"
	"fmt"
	"net/http"
)

// SessionExpiredMessage is what the operator is told after a 401.
const SessionExpiredMessage = "Session expired. Please login again."

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrSessionExpired = errors.New("session expired")
	ErrMissingTotal   = errors.New("listing response carries no total count")
)

const (
	genericLoginFailure   = "Login failed"
	genericRequestFailure = "request failed"
)

// AuthError reports a rejected login or an unusable token.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// RequestError is a non-2xx, non-401 answer.
type RequestError struct {
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Detail, e.Status)
}

// IsNotFound reports whether err is a 404 RequestError.
func IsNotFound(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Status == http.StatusNotFound
}
