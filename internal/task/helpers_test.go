package task

import (
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo/internal/lesson"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type appliedImage struct {
	sessionID uuid.UUID
	epoch     uint64
	index     int
	ref       string
}

// recordingSink implements lesson.ImageSink.
type recordingSink struct {
	mu      sync.Mutex
	applied []appliedImage
	err     error
}

var _ lesson.ImageSink = (*recordingSink)(nil)

func (s *recordingSink) ApplyImage(sessionID uuid.UUID, epoch uint64, index int, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = append(s.applied, appliedImage{sessionID, epoch, index, ref})
	return s.err
}

func (s *recordingSink) images() []appliedImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]appliedImage(nil), s.applied...)
}
