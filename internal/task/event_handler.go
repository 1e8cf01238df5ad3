package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lingo/internal/events"
	"github.com/phrazzld/lingo/internal/lesson"
)

// TaskCreator builds a task for an image request.
type TaskCreator interface {
	CreateTask(reqCtx context.Context, req lesson.ImageRequest) (Task, error)
}

// TaskSubmitter accepts tasks for background execution.
type TaskSubmitter interface {
	Submit(task Task) error
}

// ImageTaskEventHandler implements events.EventHandler. It turns image
// back-fill events into tasks and submits them to a runner.
type ImageTaskEventHandler struct {
	factory TaskCreator
	runner  TaskSubmitter
	logger  *slog.Logger
}

var _ events.EventHandler = (*ImageTaskEventHandler)(nil)

// NewImageTaskEventHandler creates a new event handler that uses the given
// factory to create tasks and submits them to runner.
func NewImageTaskEventHandler(factory TaskCreator, runner TaskSubmitter, logger *slog.Logger) *ImageTaskEventHandler {
	return &ImageTaskEventHandler{
		factory: factory,
		runner:  runner,
		logger:  logger.With("component", "image_task_event_handler"),
	}
}

// HandleEvent decodes the image request, creates the task and submits it.
// ctx is the publishing session's epoch context and becomes the task's
// request context. Events of other types are ignored.
func (h *ImageTaskEventHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != TaskTypeImageBackfill {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var req lesson.ImageRequest
	if err := event.UnmarshalPayload(&req); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	task, err := h.factory.CreateTask(ctx, req)
	if err != nil {
		h.logger.Error("failed to create task",
			"error", err,
			"session_id", req.SessionID,
			"event_id", event.ID)
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.runner.Submit(task); err != nil {
		h.logger.Error("failed to submit task",
			"error", err,
			"task_id", task.ID(),
			"session_id", req.SessionID,
			"event_id", event.ID)
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Debug("task created and submitted",
		"task_id", task.ID(),
		"session_id", req.SessionID,
		"index", req.Index,
		"event_id", event.ID)
	return nil
}
