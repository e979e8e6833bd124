package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/tasktrack/tasktrack-api/internal/api/shared"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/service/auth"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors. Absent and not-owned tasks share one code to
	// prevent enumeration of other users' task IDs.
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Duplicate registration is a client error on this API, not a conflict.
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusBadRequest

	// Bad request errors. The specific validation sentinels (invalid date,
	// priority, email) all wrap ErrValidation.
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return "Invalid " + vErr.Field
		}
		return "Validation error"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps an error to a status code and sanitized message and
// writes the failure envelope. Domain validation errors become per-field
// responses. When overrideMessage is non-empty it replaces the derived
// message (typically to keep 500s endpoint-specific).
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, overrideMessage string) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		shared.RespondWithValidationErrors(w, r, []shared.FieldError{
			{Field: vErr.Field, Message: vErr.Message},
		})
		return
	}

	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if overrideMessage != "" {
		message = overrideMessage
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// ValidationFieldErrors converts a validator.ValidationErrors into the
// per-field error list of the response envelope. Field names come from the
// request's JSON tags.
func ValidationFieldErrors(err error) []shared.FieldError {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return []shared.FieldError{{Field: "body", Message: "is invalid"}}
	}

	fieldErrors := make([]shared.FieldError, 0, len(vErrs))
	for _, fe := range vErrs {
		fieldErrors = append(fieldErrors, shared.FieldError{
			Field:   fe.Field(),
			Message: validationTagMessage(fe.Tag()),
		})
	}
	return fieldErrors
}

// validationTagMessage maps validation tags to user-friendly error messages.
func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "is not a valid email address"
	case "min":
		return "is too short"
	case "max":
		return "is too long"
	case "oneof":
		return "is not an allowed value"
	default:
		return "is invalid"
	}
}
