package task

import (
	"context"
	"fmt"

	"github.com/phrazzld/lingo/internal/events"
	"github.com/phrazzld/lingo/internal/lesson"
)

// EventImageScheduler implements lesson.ImageScheduler by publishing each
// request as an image back-fill event.
type EventImageScheduler struct {
	emitter events.EventEmitter
}

var _ lesson.ImageScheduler = (*EventImageScheduler)(nil)

// NewEventImageScheduler creates a scheduler publishing to emitter.
func NewEventImageScheduler(emitter events.EventEmitter) *EventImageScheduler {
	return &EventImageScheduler{emitter: emitter}
}

// ScheduleImage publishes req. ctx is handed to the event handlers.
func (s *EventImageScheduler) ScheduleImage(ctx context.Context, req lesson.ImageRequest) error {
	event, err := events.NewEvent(TaskTypeImageBackfill, req.SessionID.String(), req)
	if err != nil {
		return fmt.Errorf("failed to create image event: %w", err)
	}
	return s.emitter.EmitEvent(ctx, event)
}
