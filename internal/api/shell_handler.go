package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo/internal/domain"
	"github.com/phrazzld/lingo/internal/lesson"
	"github.com/phrazzld/lingo/internal/platform/logger"
	"github.com/phrazzld/lingo/internal/redact"
)

// DefaultRefreshSeconds is how often a lesson page reloads while content is
// still being generated.
const DefaultRefreshSeconds = 2

// pageData is the data passed to every HTML page.
type pageData struct {
	Title          string
	Heading        string
	Error          string
	Refresh        bool
	RefreshSeconds int
	Languages      []domain.Language
	View           lesson.View
}

// ShellHandler serves the server-rendered lesson screens. Every form post
// redirects back to a GET page.
type ShellHandler struct {
	sessions       SessionManager
	tmpl           *TemplateRenderer
	logger         *slog.Logger
	refreshSeconds int
}

// NewShellHandler creates a new ShellHandler
func NewShellHandler(sessions SessionManager, tmpl *TemplateRenderer, logger *slog.Logger) *ShellHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ShellHandler")
	}
	if tmpl == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("template renderer cannot be nil for ShellHandler")
	}

	return &ShellHandler{
		sessions:       sessions,
		tmpl:           tmpl,
		logger:         logger.With(slog.String("component", "shell_handler")),
		refreshSeconds: DefaultRefreshSeconds,
	}
}

// Home handles GET /
func (h *ShellHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageLanguages, pageData{Languages: domain.Languages()})
}

// StartLesson handles POST /lessons
func (h *ShellHandler) StartLesson(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := r.ParseForm(); err != nil {
		h.renderLanguagesError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	session, err := h.sessions.Start(r.PostFormValue("language"))
	if err != nil {
		status := MapErrorToStatusCode(err)
		if status >= http.StatusInternalServerError {
			log.Error("failed to start lesson", slog.String("error", redact.Error(err)))
		}
		h.renderLanguagesError(w, r, status, GetSafeErrorMessage(err))
		return
	}

	log.Info("lesson started",
		slog.String("session_id", session.ID().String()),
		slog.String("language", session.Language().Name))

	http.Redirect(w, r, lessonPath(session.ID()), http.StatusSeeOther)
}

// ShowLesson handles GET /lessons/{id}
// The page refreshes itself while the lesson or the current image is loading.
func (h *ShellHandler) ShowLesson(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	view := session.Snapshot()
	data := pageData{
		Title:          view.Title,
		View:           view,
		RefreshSeconds: h.refreshSeconds,
	}
	data.Refresh = view.Phase == lesson.PhaseLoading ||
		(view.Question != nil && view.Question.ImageLoading)

	h.render(w, r, http.StatusOK, pageLesson, data)
}

// SelectAnswer handles POST /lessons/{id}/select
func (h *ShellHandler) SelectAnswer(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := selectOption(session, r.PostFormValue("option")); err != nil {
		h.renderError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	http.Redirect(w, r, lessonPath(session.ID()), http.StatusSeeOther)
}

// CheckAnswer handles POST /lessons/{id}/check
func (h *ShellHandler) CheckAnswer(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(s *lesson.Session) { s.CheckAnswer() })
}

// NextQuestion handles POST /lessons/{id}/next
func (h *ShellHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(s *lesson.Session) { s.NextQuestion() })
}

// RestartLesson handles POST /lessons/{id}/restart
func (h *ShellHandler) RestartLesson(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		h.renderError(w, r, http.StatusNotFound, "Lesson not found")
		return
	}

	if _, err := h.sessions.Restart(id); err != nil {
		h.renderError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	http.Redirect(w, r, lessonPath(id), http.StatusSeeOther)
}

// GoHome handles POST /lessons/{id}/home
// The session is discarded and the learner returns to language selection.
// An already discarded session is not an error.
func (h *ShellHandler) GoHome(w http.ResponseWriter, r *http.Request) {
	if id, err := getPathUUID(r, "id"); err == nil {
		if err := h.sessions.End(id); err != nil && !errors.Is(err, lesson.ErrSessionNotFound) {
			logger.FromContextOrDefault(r.Context(), h.logger).
				Error("failed to end lesson", slog.String("error", redact.Error(err)))
		}
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *ShellHandler) apply(w http.ResponseWriter, r *http.Request, op func(*lesson.Session)) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	op(session)
	http.Redirect(w, r, lessonPath(session.ID()), http.StatusSeeOther)
}

// session resolves the {id} path parameter. Malformed and unknown ids both
// render the not-found page.
func (h *ShellHandler) session(w http.ResponseWriter, r *http.Request) (*lesson.Session, bool) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		h.renderError(w, r, http.StatusNotFound, "Lesson not found")
		return nil, false
	}

	session, err := h.sessions.Get(id)
	if err != nil {
		h.renderError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return nil, false
	}
	return session, true
}

func (h *ShellHandler) renderLanguagesError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, pageLanguages, pageData{
		Languages: domain.Languages(),
		Error:     message,
	})
}

func (h *ShellHandler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	heading := "Something went wrong"
	if status == http.StatusNotFound {
		heading = "Not found"
	}
	h.render(w, r, status, pageError, pageData{Heading: heading, Error: message})
}

func (h *ShellHandler) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	if err := h.tmpl.Render(w, status, page, data); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Error("failed to render page", slog.String("page", page), slog.String("error", err.Error()))
		http.Error(w, "An unexpected error occurred", http.StatusInternalServerError)
	}
}

func lessonPath(id uuid.UUID) string {
	return "/lessons/" + id.String()
}
