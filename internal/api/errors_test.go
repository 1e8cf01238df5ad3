package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/lingo/internal/api/shared"
	"github.com/phrazzld/lingo/internal/domain"
	"github.com/phrazzld/lingo/internal/lesson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	validationErr := shared.ValidateRequest(&StartLessonRequest{})
	require.Error(t, validationErr)

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"session not found", fmt.Errorf("%w: abc", lesson.ErrSessionNotFound), http.StatusNotFound, "Lesson not found"},
		{"unknown language", fmt.Errorf("%w: %q", domain.ErrUnknownLanguage, "x"), http.StatusBadRequest, "Unknown language"},
		{"invalid id", ErrInvalidSessionID, http.StatusBadRequest, "Invalid lesson id"},
		{"invalid option", ErrInvalidOption, http.StatusBadRequest, "Invalid option"},
		{"invalid json", fmt.Errorf("%w: eof", shared.ErrInvalidJSON), http.StatusBadRequest, "Invalid request format"},
		{"validator", validationErr, http.StatusBadRequest, "Invalid language: required field"},
		{"domain validation", domain.ErrValidation, http.StatusBadRequest, "Validation error"},
		{"unknown", errors.New("database is on fire"), http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.message, GetSafeErrorMessage(tc.err))
		})
	}

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestSanitizeValidationError(t *testing.T) {
	err := shared.ValidateRequest(&SelectAnswerRequest{Option: string(make([]byte, 300))})
	require.Error(t, err)
	assert.Equal(t, "Invalid option: too long", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("plain")))
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		status   int
		message  string
	}{
		{"client error ignores fallback", lesson.ErrSessionNotFound, "Failed", http.StatusNotFound, "Lesson not found"},
		{"server error uses fallback", errors.New("boom"), "Failed to start lesson", http.StatusInternalServerError, "Failed to start lesson"},
		{"server error without fallback", errors.New("boom"), "", http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/lessons/x", nil)
			w := httptest.NewRecorder()

			HandleAPIError(w, r, tc.err, tc.fallback)

			assert.Equal(t, tc.status, w.Code)
			var resp shared.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.message, resp.Error)
			assert.NotContains(t, w.Body.String(), "boom")
		})
	}
}
