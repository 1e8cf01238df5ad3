package lesson

import (
	"context"

	"github.com/google/uuid"
)

// ImageRequest asks for the illustration of one question. Epoch and Index
// identify the slot the result belongs to; the request carries no reference
// to the lesson itself.
type ImageRequest struct {
	SessionID uuid.UUID `json:"session_id"`
	Epoch     uint64    `json:"epoch"`
	Index     int       `json:"index"`
	Prompt    string    `json:"prompt"`
}

// ImageScheduler starts the back-fill for a question image. The context is
// cancelled when the session moves to a new epoch or is closed.
//
// Implementations must not block on image generation and must not call back
// into the session synchronously while holding their own locks. A non-nil
// error means the request was not accepted; the session then uses the
// fallback image.
type ImageScheduler interface {
	ScheduleImage(ctx context.Context, req ImageRequest) error
}

// SchedulerFunc adapts a function to ImageScheduler.
type SchedulerFunc func(ctx context.Context, req ImageRequest) error

// ScheduleImage calls f(ctx, req).
func (f SchedulerFunc) ScheduleImage(ctx context.Context, req ImageRequest) error {
	return f(ctx, req)
}

// ImageSink receives finished image back-fills.
type ImageSink interface {
	ApplyImage(sessionID uuid.UUID, epoch uint64, index int, ref string) error
}
