package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/crackats/internal/db"
	"github.com/jonathan/crackats/internal/scrape"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrInvalidCredentials indicates a failed login attempt
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid password"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if errors.Is(err, db.ErrNotFound) {
		return http.StatusNotFound
	}

	var (
		validationErr *ErrValidation
		credsErr      *ErrInvalidCredentials
		authWallErr   *scrape.AuthWallError
		captchaErr    *scrape.CaptchaError
		noDataErr     *scrape.NoDataError
		fetchErr      *scrape.FetchError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &credsErr):
		return http.StatusUnauthorized
	case errors.As(err, &authWallErr), errors.As(err, &captchaErr), errors.As(err, &noDataErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
