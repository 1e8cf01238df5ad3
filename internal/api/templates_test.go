package api

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageURL(t *testing.T) {
	tests := []struct {
		ref  string
		want template.URL
	}{
		{ref: "data:image/jpeg;base64,/9j/4AAQ", want: "data:image/jpeg;base64,/9j/4AAQ"},
		{ref: "https://picsum.photos/512", want: "https://picsum.photos/512"},
		{ref: "http://example.com/a.png", want: ""},
		{ref: "javascript:alert(1)", want: ""},
		{ref: "data:text/html;base64,PHNjcmlwdD4=", want: ""},
		{ref: "", want: ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, imageURL(tc.ref), tc.ref)
	}
}

func TestTemplateRenderer_UnknownPage(t *testing.T) {
	tmpl, err := NewTemplateRenderer()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	err = tmpl.Render(w, http.StatusOK, "missing.html", pageData{})
	assert.Error(t, err)
	assert.Zero(t, w.Body.Len())
}

func TestTemplateRenderer_EscapesContent(t *testing.T) {
	tmpl, err := NewTemplateRenderer()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, tmpl.Render(w, http.StatusTeapot, pageError, pageData{
		Heading: "Oops",
		Error:   "<script>alert(1)</script>",
	}))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.NotContains(t, w.Body.String(), "<script>alert(1)</script>")
	assert.Contains(t, w.Body.String(), "&lt;script&gt;")
}
