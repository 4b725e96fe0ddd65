package server

import (
	"fmt"
	"net/http"
)

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrResumeNotFound indicates no resume is stored for the caller.
type ErrResumeNotFound struct{}

func (e *ErrResumeNotFound) Error() string {
	return "resume not found"
}

// ErrTrialExhausted indicates the free attempt cap is spent.
type ErrTrialExhausted struct{}

func (e *ErrTrialExhausted) Error() string {
	return "trial limit reached"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrResumeNotFound:
		return http.StatusNotFound
	case *ErrTrialExhausted:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
