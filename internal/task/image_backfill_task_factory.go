package task

import (
	"context"
	"log/slog"

	"github.com/phrazzld/lingo/internal/generation"
	"github.com/phrazzld/lingo/internal/lesson"
)

// ImageBackfillTaskFactory creates ImageBackfillTask instances with their
// shared dependencies.
type ImageBackfillTaskFactory struct {
	provider generation.ContentProvider
	sink     lesson.ImageSink
	logger   *slog.Logger
}

// NewImageBackfillTaskFactory creates a new factory.
func NewImageBackfillTaskFactory(
	provider generation.ContentProvider,
	sink lesson.ImageSink,
	logger *slog.Logger,
) *ImageBackfillTaskFactory {
	return &ImageBackfillTaskFactory{
		provider: provider,
		sink:     sink,
		logger:   logger.With("component", "image_backfill_task"),
	}
}

// CreateTask creates a task for req, bound to the request context reqCtx.
func (f *ImageBackfillTaskFactory) CreateTask(reqCtx context.Context, req lesson.ImageRequest) (Task, error) {
	return NewImageBackfillTask(reqCtx, req, f.provider, f.sink, f.logger)
}
