package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/lingo/internal/domain"
	"github.com/phrazzld/lingo/internal/lesson"
	"github.com/phrazzld/lingo/internal/mocks"
	"github.com/phrazzld/lingo/internal/testutils"
	"github.com/stretchr/testify/require"
)

// acceptScheduler accepts every image request and never delivers a result,
// leaving images loading.
var acceptScheduler = lesson.SchedulerFunc(func(context.Context, lesson.ImageRequest) error {
	return nil
})

// rejectScheduler rejects every image request, so questions fall back to the
// placeholder image immediately.
var rejectScheduler = lesson.SchedulerFunc(func(context.Context, lesson.ImageRequest) error {
	return errors.New("queue full")
})

type testServer struct {
	router   chi.Router
	manager  *lesson.Manager
	provider *mocks.MockContentProvider
}

func newTestServer(t *testing.T, provider *mocks.MockContentProvider, images lesson.ImageScheduler) *testServer {
	t.Helper()

	manager := lesson.NewManager(context.Background(), provider, images, lesson.DefaultManagerConfig(), testutils.DiscardLogger())
	t.Cleanup(manager.Shutdown)

	tmpl, err := NewTemplateRenderer()
	require.NoError(t, err)

	r := chi.NewRouter()
	NewShellHandler(manager, tmpl, testutils.DiscardLogger()).RegisterRoutes(r)
	r.Route("/api", NewLessonHandler(manager, testutils.DiscardLogger()).RegisterRoutes)

	return &testServer{router: r, manager: manager, provider: provider}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) getLesson(t *testing.T, id string) LessonResponse {
	t.Helper()

	w := s.do(t, http.MethodGet, "/api/lessons/"+id, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeLesson(t, w)
}

func (s *testServer) waitForPhase(t *testing.T, id string, phase lesson.Phase) LessonResponse {
	t.Helper()

	var resp LessonResponse
	testutils.WaitFor(t, func() bool {
		resp = s.getLesson(t, id)
		return resp.Phase == string(phase)
	})
	return resp
}

func decodeLesson(t *testing.T, w *httptest.ResponseRecorder) LessonResponse {
	t.Helper()

	var resp LessonResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Error
}

// blockingProvider returns a provider whose lesson calls block until release
// is closed or the request is cancelled.
func blockingProvider(release <-chan struct{}) *mocks.MockContentProvider {
	provider := &mocks.MockContentProvider{}
	provider.GenerateLessonFn = func(ctx context.Context, language string) (*domain.Lesson, error) {
		select {
		case <-release:
			return mocks.SampleLesson(5), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return provider
}
