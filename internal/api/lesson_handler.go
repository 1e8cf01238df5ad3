package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo/internal/api/shared"
	"github.com/phrazzld/lingo/internal/domain"
	"github.com/phrazzld/lingo/internal/lesson"
	"github.com/phrazzld/lingo/internal/platform/logger"
	"github.com/samber/lo"
)

// SessionManager is the subset of lesson.Manager the handlers use.
type SessionManager interface {
	Start(language string) (*lesson.Session, error)
	Get(id uuid.UUID) (*lesson.Session, error)
	Restart(id uuid.UUID) (*lesson.Session, error)
	End(id uuid.UUID) error
}

var _ SessionManager = (*lesson.Manager)(nil)

// LessonHandler serves the JSON lesson API.
type LessonHandler struct {
	sessions SessionManager
	logger   *slog.Logger
}

// NewLessonHandler creates a new LessonHandler
func NewLessonHandler(sessions SessionManager, logger *slog.Logger) *LessonHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for LessonHandler")
	}

	return &LessonHandler{
		sessions: sessions,
		logger:   logger.With(slog.String("component", "lesson_handler")),
	}
}

// ListLanguages handles GET /api/languages
func (h *LessonHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, lo.Map(domain.Languages(), func(l domain.Language, _ int) LanguageResponse {
		return toLanguageResponse(l)
	}))
}

// StartLesson handles POST /api/lessons
// It binds a new session to the requested language and starts loading its
// lesson. The response is sent before the lesson is ready.
func (h *LessonHandler) StartLesson(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req StartLessonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	session, err := h.sessions.Start(req.Language)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start lesson")
		return
	}

	log.Info("lesson started",
		slog.String("session_id", session.ID().String()),
		slog.String("language", session.Language().Name))

	shared.RespondWithJSON(w, r, http.StatusAccepted, toLessonResponse(session.Snapshot()))
}

// GetLesson handles GET /api/lessons/{id}
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toLessonResponse(session.Snapshot()))
}

// SelectAnswer handles POST /api/lessons/{id}/select
// Selecting while no question is shown leaves the session unchanged; an
// option that does not belong to the current question is rejected.
func (h *LessonHandler) SelectAnswer(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SelectAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := selectOption(session, req.Option); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toLessonResponse(session.Snapshot()))
}

// CheckAnswer handles POST /api/lessons/{id}/check
func (h *LessonHandler) CheckAnswer(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	session.CheckAnswer()
	shared.RespondWithJSON(w, r, http.StatusOK, toLessonResponse(session.Snapshot()))
}

// NextQuestion handles POST /api/lessons/{id}/next
func (h *LessonHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	session.NextQuestion()
	shared.RespondWithJSON(w, r, http.StatusOK, toLessonResponse(session.Snapshot()))
}

// RestartLesson handles POST /api/lessons/{id}/restart
func (h *LessonHandler) RestartLesson(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	session, err := h.sessions.Restart(id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to restart lesson")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("lesson restarted", slog.String("session_id", id.String()))

	shared.RespondWithJSON(w, r, http.StatusAccepted, toLessonResponse(session.Snapshot()))
}

// EndLesson handles DELETE /api/lessons/{id}
// It discards the session and cancels its outstanding requests.
func (h *LessonHandler) EndLesson(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.sessions.End(id); err != nil {
		HandleAPIError(w, r, err, "Failed to end lesson")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// session resolves the {id} path parameter, writing the error response when
// it cannot.
func (h *LessonHandler) session(w http.ResponseWriter, r *http.Request) (*lesson.Session, bool) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Warn("invalid lesson id in path", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return nil, false
	}

	session, err := h.sessions.Get(id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}
	return session, true
}

// selectOption applies option to the session's current question.
func selectOption(session *lesson.Session, option string) error {
	q := session.Snapshot().Question
	if q == nil {
		return nil
	}
	if !q.HasOption(option) {
		return ErrInvalidOption
	}
	session.SelectAnswer(option)
	return nil
}
