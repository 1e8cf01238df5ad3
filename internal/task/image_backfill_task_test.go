package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo/internal/generation"
	"github.com/phrazzld/lingo/internal/lesson"
	"github.com/phrazzld/lingo/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() lesson.ImageRequest {
	return lesson.ImageRequest{
		SessionID: uuid.New(),
		Epoch:     3,
		Index:     2,
		Prompt:    "A glass of milk",
	}
}

func TestNewImageBackfillTask_Validation(t *testing.T) {
	provider := &mocks.MockContentProvider{}
	sink := &recordingSink{}

	_, err := NewImageBackfillTask(context.Background(), testRequest(), nil, sink, testLogger())
	assert.Error(t, err)

	_, err = NewImageBackfillTask(context.Background(), testRequest(), provider, nil, testLogger())
	assert.Error(t, err)

	req := testRequest()
	req.SessionID = uuid.Nil
	_, err = NewImageBackfillTask(context.Background(), req, provider, sink, testLogger())
	assert.Error(t, err)

	task, err := NewImageBackfillTask(context.Background(), testRequest(), provider, sink, testLogger())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, task.ID())
	assert.Equal(t, TaskTypeImageBackfill, task.Type())
}

func TestImageBackfillTask_Execute(t *testing.T) {
	provider := &mocks.MockContentProvider{ImageURL: "data:image/jpeg;base64,AA=="}
	sink := &recordingSink{}
	req := testRequest()

	task, err := NewImageBackfillTask(context.Background(), req, provider, sink, testLogger())
	require.NoError(t, err)
	require.NoError(t, task.Execute(context.Background()))

	assert.Equal(t, []string{"A glass of milk"}, provider.ImagePrompts())
	assert.Equal(t, []appliedImage{{req.SessionID, 3, 2, "data:image/jpeg;base64,AA=="}}, sink.images())
	assert.Equal(t, req, task.Request())
}

func TestImageBackfillTask_FallbackIsApplied(t *testing.T) {
	provider := &mocks.MockContentProvider{}
	sink := &recordingSink{}

	task, err := NewImageBackfillTask(context.Background(), testRequest(), provider, sink, testLogger())
	require.NoError(t, err)
	require.NoError(t, task.Execute(context.Background()))

	require.Len(t, sink.images(), 1)
	assert.Equal(t, generation.FallbackImageURL, sink.images()[0].ref)
}

func TestImageBackfillTask_CancelledRequestIsSkipped(t *testing.T) {
	provider := &mocks.MockContentProvider{}
	sink := &recordingSink{}

	reqCtx, cancel := context.WithCancel(context.Background())
	task, err := NewImageBackfillTask(reqCtx, testRequest(), provider, sink, testLogger())
	require.NoError(t, err)
	cancel()

	err = task.Execute(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, provider.ImageCallCount())
	assert.Empty(t, sink.images())
}

func TestImageBackfillTask_RunnerCancellationReachesProvider(t *testing.T) {
	runnerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cancelledInFlight := false
	provider := &mocks.MockContentProvider{
		GenerateImageFn: func(ctx context.Context, _ string) string {
			cancel()
			select {
			case <-ctx.Done():
				cancelledInFlight = true
			case <-time.After(time.Second):
			}
			return generation.FallbackImageURL
		},
	}

	task, err := NewImageBackfillTask(context.Background(), testRequest(), provider, &recordingSink{}, testLogger())
	require.NoError(t, err)
	require.NoError(t, task.Execute(runnerCtx))
	assert.True(t, cancelledInFlight, "stopping the runner must cancel the image call")
}

func TestImageBackfillTask_SupersededSessionIsNotAnError(t *testing.T) {
	for _, sinkErr := range []error{lesson.ErrStaleResult, lesson.ErrSessionNotFound} {
		sink := &recordingSink{err: sinkErr}
		task, err := NewImageBackfillTask(context.Background(), testRequest(), &mocks.MockContentProvider{}, sink, testLogger())
		require.NoError(t, err)
		assert.NoError(t, task.Execute(context.Background()))
	}

	sink := &recordingSink{err: errors.New("unexpected")}
	task, err := NewImageBackfillTask(context.Background(), testRequest(), &mocks.MockContentProvider{}, sink, testLogger())
	require.NoError(t, err)
	assert.Error(t, task.Execute(context.Background()))
}
