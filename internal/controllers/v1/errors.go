package v1

import (
	"errors"
	"net/http"

	"github.com/pocketfolio/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrCredentialsInvalid) {
		return http.StatusUnauthorized
	}

	return http.StatusBadRequest
}

// Auth errors
var (
	errPasswordTooShort = errors.New("the password must be at least 8 characters long")
	errEmailNotSet      = errors.New("the email parameter must be set")
)

// Upload errors
var (
	errNoFilePost      = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix = errors.New("this endpoint only supports files of the following types")
)

// Report errors
var (
	errMonthsOutOfRange = errors.New("the months parameter must be between 1 and 60")
)
