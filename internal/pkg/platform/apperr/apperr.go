// Package apperr defines the error kinds shared by every bounded context and
// their HTTP mapping. Domain packages wrap these kinds so controllers only
// need errors.Is to choose a status code.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-wedding/internal/logging"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrPersistence  = errors.New("persistence error")
	ErrUnavailable  = errors.New("upstream unavailable")
)

// Validation returns an ErrValidation carrying msg.
func Validation(msg string) error {
	return &kindError{kind: ErrValidation, msg: msg}
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...any) error {
	return Validation(fmt.Sprintf(format, args...))
}

// New returns an error of the given kind whose message is msg alone.
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Persistence wraps an infrastructure failure.
func Persistence(err error) error {
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}

// FromRepository passes classified errors through untouched and wraps
// everything else as ErrPersistence. Use cases call it on repository results.
func FromRepository(err error) error {
	if err == nil || Classified(err) {
		return err
	}
	return Persistence(err)
}

// Classified reports whether err already carries one of the kinds above.
func Classified(err error) bool {
	for _, k := range []error{ErrNotFound, ErrForbidden, ErrUnauthorized, ErrConflict, ErrValidation, ErrPersistence, ErrUnavailable} {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// Status maps an error to the HTTP status code the API answers with.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// Respond writes {"error": ...} with the mapped status. Server-side failures are
// logged with their cause and answered with a generic message.
func Respond(c *gin.Context, err error) {
	status := Status(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		logging.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		msg = http.StatusText(status)
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": msg})
}
