package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "templates/layout.html"

// Page templates rendered inside the layout.
const (
	pageLanguages = "languages.html"
	pageLesson    = "lesson.html"
	pageError     = "error.html"
)

// TemplateRenderer renders the HTML shell pages.
type TemplateRenderer struct {
	templates map[string]*template.Template
}

// NewTemplateRenderer parses every page together with the shared layout.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"optionLetter": func(i int) string {
			return string(rune('A' + i))
		},
		"percent": func(f float64) string {
			return fmt.Sprintf("%.0f", f)
		},
		"imageURL": imageURL,
	}

	templates := make(map[string]*template.Template)
	for _, page := range []string{pageLanguages, pageLesson, pageError} {
		tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, layoutTemplate, "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		templates[page] = tmpl
	}

	return &TemplateRenderer{templates: templates}, nil
}

// Render executes the named page into a buffer and writes it with status.
// Nothing is written to w when execution fails.
func (t *TemplateRenderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	tmpl, ok := t.templates[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// imageURL admits generated data URIs and https URLs as image sources.
// Anything else renders as an empty source.
func imageURL(ref string) template.URL {
	if strings.HasPrefix(ref, "data:image/") || strings.HasPrefix(ref, "https://") {
		return template.URL(ref)
	}
	return ""
}
