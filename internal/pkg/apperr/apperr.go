// Package apperr defines domain error sentinels and maps them onto HTTP responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/database"
	"github.com/portfolio-space/core/internal/pkg/response"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrMissingFields   = errors.New("all fields are required")
	ErrInvalidChoice   = errors.New("invalid choice")
	ErrSlugTaken       = errors.New("slug already in use")
	ErrNotIndex        = errors.New("parent is not a blog index")
	ErrSingletonDelete = errors.New("this object cannot be deleted")
)

// FieldError reports an invalid field. It matches ErrValidation and its Kind.
type FieldError struct {
	Field   string
	Message string
	Kind    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() []error {
	if e.Kind != nil {
		return []error{ErrValidation, e.Kind}
	}
	return []error{ErrValidation}
}

// Invalid returns a generic validation error for field.
func Invalid(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// Required reports a missing required field.
func Required(field string) error {
	return &FieldError{Field: field, Message: "this field is required", Kind: ErrMissingFields}
}

// Choice reports a value outside its allowed set.
func Choice(field, value string, choices []string) error {
	return &FieldError{
		Field:   field,
		Message: fmt.Sprintf("%q is not a valid choice (%s)", value, strings.Join(choices, ", ")),
		Kind:    ErrInvalidChoice,
	}
}

// Status maps err onto an HTTP status.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrSingletonDelete):
		return http.StatusForbidden
	case errors.Is(err, ErrSlugTaken), database.IsDuplicate(err):
		return http.StatusConflict
	case errors.Is(err, ErrValidation), errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrInvalidChoice), errors.Is(err, ErrNotIndex):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Respond writes err using the standard error body.
// Internal errors are logged through the gin context, never echoed.
func Respond(c *gin.Context, err error) {
	status := Status(err)
	switch status {
	case http.StatusInternalServerError:
		response.InternalError(c, err)
	case http.StatusConflict:
		msg := err.Error()
		if database.IsDuplicate(err) && !errors.Is(err, ErrSlugTaken) {
			msg = "An object with this value already exists."
		}
		response.Conflict(c, msg)
	default:
		response.Error(c, status, err.Error())
	}
}
