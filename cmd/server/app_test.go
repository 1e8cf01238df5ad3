package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/lingo/internal/config"
	"github.com/phrazzld/lingo/internal/mocks"
	"github.com/phrazzld/lingo/internal/task"
	"github.com/phrazzld/lingo/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "info", ShutdownTimeoutSeconds: 5},
		LLM: config.LLMConfig{
			GeminiAPIKey: "test-key",
			TextModel:    "gemini-2.5-flash",
			ImageModel:   "imagen-3.0-generate-002",
		},
		Session: config.SessionConfig{IdleTTLMinutes: 60, JanitorIntervalSeconds: 60},
		Task:    config.TaskConfig{WorkerCount: 2, QueueSize: 10},
	}
}

func newTestApp(t *testing.T, provider *mocks.MockContentProvider) *application {
	t.Helper()

	app, err := newApplication(context.Background(), testConfig(), testutils.DiscardLogger(), provider)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, mocks.NewMockContentProviderWithLesson(mocks.SampleLesson(5)))

	w := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRouter_TraceHeader(t *testing.T) {
	app := newTestApp(t, mocks.NewMockContentProviderWithLesson(mocks.SampleLesson(5)))

	w := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/languages", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
}

// TestImageBackfillPipeline drives a lesson through the real event emitter
// and task runner and waits for the generated image to reach the session.
func TestImageBackfillPipeline(t *testing.T) {
	provider := mocks.NewMockContentProviderWithLesson(mocks.SampleLesson(3))
	provider.ImageURL = "data:image/jpeg;base64,/9j/AAAA"
	app := newTestApp(t, provider)
	router := app.setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/lessons", strings.NewReader(`{"language":"Spanish"}`)))
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var started struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &started))

	type question struct {
		ImageURL     string `json:"image_url"`
		ImageLoading bool   `json:"image_loading"`
	}
	var view struct {
		Phase    string    `json:"phase"`
		Question *question `json:"question"`
	}

	testutils.WaitFor(t, func() bool {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/lessons/"+started.ID, nil))
		if rec.Code != http.StatusOK {
			return false
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
			return false
		}
		return view.Question != nil && !view.Question.ImageLoading
	})

	assert.Equal(t, "ready", view.Phase)
	assert.Equal(t, "data:image/jpeg;base64,/9j/AAAA", view.Question.ImageURL)
	assert.Equal(t, []string{"image-0"}, provider.ImagePrompts())
}

func TestCleanup_StopsWorkers(t *testing.T) {
	logger, logs := testutils.NewCaptureLogger()
	app, err := newApplication(context.Background(), testConfig(), logger,
		mocks.NewMockContentProviderWithLesson(mocks.SampleLesson(5)))
	require.NoError(t, err)

	entry, ok := logs.Find("Application initialized successfully")
	require.True(t, ok)
	assert.Equal(t, int64(2), entry["worker_count"])

	_, err = app.sessions.Start("French")
	require.NoError(t, err)

	app.cleanup()
	assert.Equal(t, 0, app.sessions.Count())
	_, ok = logs.Find("Application shutdown completed")
	assert.True(t, ok)
	err = app.taskRunner.Submit(task.NewMockTask(func(context.Context) error { return nil }))
	assert.ErrorIs(t, err, task.ErrQueueClosed)
}
