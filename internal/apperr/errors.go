package apperr

import (
	"errors"
	"net/http"
)

var (

	// common errors
	ErrorValidation = errors.New("validation error")
	ErrorNotFound   = errors.New("not found")
	ErrorConflict   = errors.New("conflict")
	ErrorInternal   = errors.New("internal error")

	// auth-specific errors
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorInvalidToken = errors.New("invalid token")

	// cashout-specific errors
	ErrorAlreadyCashedOut    = errors.New("already cashed out")
	ErrorInvalidAmount       = errors.New("invalid cashout amount")
	ErrorInsufficientBalance = errors.New("insufficient balance")
)

// StatusOf maps an error to its HTTP status code. Unknown errors are treated
// as internal failures.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrorValidation),
		errors.Is(err, ErrorInvalidAmount),
		errors.Is(err, ErrorInsufficientBalance):
		return http.StatusBadRequest
	case errors.Is(err, ErrorUnauthorized), errors.Is(err, ErrorInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrorForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrorConflict), errors.Is(err, ErrorAlreadyCashedOut):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
