package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo/internal/generation"
	"github.com/phrazzld/lingo/internal/lesson"
)

// ImageBackfillTask generates the image for one question and reports it to
// the owning session.
type ImageBackfillTask struct {
	id  uuid.UUID
	req lesson.ImageRequest

	// reqCtx is the session epoch's context, cancelled when the session
	// restarts or is closed.
	reqCtx context.Context

	provider generation.ContentProvider
	sink     lesson.ImageSink
	logger   *slog.Logger
}

var _ Task = (*ImageBackfillTask)(nil)

// NewImageBackfillTask creates a task for req. reqCtx is the context the
// request was scheduled with.
func NewImageBackfillTask(
	reqCtx context.Context,
	req lesson.ImageRequest,
	provider generation.ContentProvider,
	sink lesson.ImageSink,
	logger *slog.Logger,
) (*ImageBackfillTask, error) {
	if provider == nil {
		return nil, errors.New("content provider cannot be nil")
	}
	if sink == nil {
		return nil, errors.New("image sink cannot be nil")
	}
	if req.SessionID == uuid.Nil {
		return nil, errors.New("session ID cannot be empty")
	}

	id := uuid.New()
	return &ImageBackfillTask{
		id:       id,
		req:      req,
		reqCtx:   reqCtx,
		provider: provider,
		sink:     sink,
		logger: logger.With(
			"task_id", id.String(),
			"session_id", req.SessionID.String(),
			"epoch", req.Epoch,
			"index", req.Index,
		),
	}, nil
}

// ID returns the task's unique identifier
func (t *ImageBackfillTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *ImageBackfillTask) Type() string {
	return TaskTypeImageBackfill
}

// Request returns the image request the task serves.
func (t *ImageBackfillTask) Request() lesson.ImageRequest {
	return t.req
}

// Execute generates the image and applies it. The generation call is
// cancelled when either the runner's ctx or the request context is done.
// A session that has moved on is not an error.
func (t *ImageBackfillTask) Execute(ctx context.Context) error {
	if err := t.reqCtx.Err(); err != nil {
		return fmt.Errorf("image back-fill skipped: %w", err)
	}

	callCtx, cancel := context.WithCancel(t.reqCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	ref := t.provider.GenerateImage(callCtx, t.req.Prompt)

	if err := t.sink.ApplyImage(t.req.SessionID, t.req.Epoch, t.req.Index, ref); err != nil {
		if errors.Is(err, lesson.ErrStaleResult) || errors.Is(err, lesson.ErrSessionNotFound) {
			t.logger.DebugContext(ctx, "Discarding image for superseded session state", "reason", err)
			return nil
		}
		return fmt.Errorf("failed to apply image: %w", err)
	}

	t.logger.DebugContext(ctx, "Image applied", "fallback", ref == generation.FallbackImageURL)
	return nil
}
