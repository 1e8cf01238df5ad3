package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/lingo/internal/api/shared"
	"github.com/phrazzld/lingo/internal/domain"
	"github.com/phrazzld/lingo/internal/lesson"
)

var (
	// ErrInvalidSessionID is returned when a path does not carry a session UUID.
	ErrInvalidSessionID = errors.New("invalid session id")

	// ErrInvalidOption is returned when a selected option is not one of the
	// current question's options.
	ErrInvalidOption = errors.New("option is not part of the current question")
)

// MapErrorToStatusCode maps internal errors to HTTP status codes so that
// internal error types never decide the response on their own.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, lesson.ErrSessionNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrUnknownLanguage),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, ErrInvalidSessionID),
		errors.Is(err, ErrInvalidOption),
		errors.Is(err, shared.ErrInvalidJSON),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, lesson.ErrSessionNotFound):
		return "Lesson not found"
	case errors.Is(err, domain.ErrUnknownLanguage):
		return "Unknown language"
	case errors.Is(err, ErrInvalidSessionID):
		return "Invalid lesson id"
	case errors.Is(err, ErrInvalidOption):
		return "Invalid option"
	case errors.Is(err, shared.ErrInvalidJSON):
		return "Invalid request format"
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)
	case errors.Is(err, domain.ErrValidation):
		return "Validation error"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a short message naming
// the first offending field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fe := validationErrs[0]
	return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the JSON error response for err. fallbackMsg replaces
// the generic message for server errors when not empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallbackMsg != "" {
		message = fallbackMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
