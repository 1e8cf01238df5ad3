package api

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the HTML shell on r.
func (h *ShellHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Home)
	r.Post("/lessons", h.StartLesson)
	r.Route("/lessons/{id}", func(r chi.Router) {
		r.Get("/", h.ShowLesson)
		r.Post("/select", h.SelectAnswer)
		r.Post("/check", h.CheckAnswer)
		r.Post("/next", h.NextQuestion)
		r.Post("/restart", h.RestartLesson)
		r.Post("/home", h.GoHome)
	})
}

// RegisterRoutes mounts the JSON API on r, normally under /api.
func (h *LessonHandler) RegisterRoutes(r chi.Router) {
	r.Get("/languages", h.ListLanguages)
	r.Post("/lessons", h.StartLesson)
	r.Route("/lessons/{id}", func(r chi.Router) {
		r.Get("/", h.GetLesson)
		r.Delete("/", h.EndLesson)
		r.Post("/select", h.SelectAnswer)
		r.Post("/check", h.CheckAnswer)
		r.Post("/next", h.NextQuestion)
		r.Post("/restart", h.RestartLesson)
	})
}
