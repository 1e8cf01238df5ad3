package lesson

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo/internal/domain"
	"github.com/phrazzld/lingo/internal/generation"
)

// ManagerConfig holds configuration for the session manager
type ManagerConfig struct {
	// IdleTTL is how long a session may go without learner activity before
	// the janitor removes it
	IdleTTL time.Duration

	// JanitorInterval defines how often idle sessions are swept
	JanitorInterval time.Duration
}

// DefaultManagerConfig returns a ManagerConfig with reasonable defaults
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		IdleTTL:         time.Hour,
		JanitorInterval: time.Minute,
	}
}

// Manager keeps the live sessions of the application.
type Manager struct {
	ctx      context.Context
	provider generation.ContentProvider
	images   ImageScheduler
	config   ManagerConfig
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// Compile-time check that Manager can receive image results.
var _ ImageSink = (*Manager)(nil)

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerClock replaces time.Now for the manager and its sessions.
func WithManagerClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager. ctx bounds the requests of every session it
// creates; cancelling it cancels all outstanding lesson and image requests.
func NewManager(
	ctx context.Context,
	provider generation.ContentProvider,
	images ImageScheduler,
	config ManagerConfig,
	logger *slog.Logger,
	opts ...ManagerOption,
) *Manager {
	defaults := DefaultManagerConfig()
	if config.IdleTTL <= 0 {
		config.IdleTTL = defaults.IdleTTL
	}
	if config.JanitorInterval <= 0 {
		config.JanitorInterval = defaults.JanitorInterval
	}

	m := &Manager{
		ctx:      ctx,
		provider: provider,
		images:   images,
		config:   config,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = logger.With("component", "lesson_manager")
	return m
}

// Start creates a session for the named language and begins loading its
// lesson in the background. Unknown languages yield domain.ErrUnknownLanguage.
func (m *Manager) Start(language string) (*Session, error) {
	lang, err := domain.LookupLanguage(language)
	if err != nil {
		return nil, err
	}

	s := NewSession(m.ctx, lang, m.provider, m.images, m.logger, WithClock(m.now))

	m.mu.Lock()
	m.sessions[s.ID()] = s
	count := len(m.sessions)
	m.mu.Unlock()

	m.logger.Info("Session started",
		"session_id", s.ID().String(),
		"language", lang.Name,
		"session_count", count)

	s.LoadLesson()
	return s, nil
}

// Get returns the session with the given id.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Restart restarts the lesson of the given session.
func (m *Manager) Restart(id uuid.UUID) (*Session, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	s.RestartLesson()
	return s, nil
}

// End removes the session and closes it, discarding all its state.
func (m *Manager) End(id uuid.UUID) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	s.Close()
	m.logger.Info("Session ended", "session_id", id.String())
	return nil
}

// ApplyImage routes an image result to its session.
func (m *Manager) ApplyImage(sessionID uuid.UUID, epoch uint64, index int, ref string) error {
	s, err := m.Get(sessionID)
	if err != nil {
		return err
	}
	if !s.ApplyImage(epoch, index, ref) {
		return fmt.Errorf("%w: session %s epoch %d index %d", ErrStaleResult, sessionID, epoch, index)
	}
	return nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep closes and removes every session idle for longer than IdleTTL at now.
// It returns the number of sessions removed.
func (m *Manager) Sweep(now time.Time) int {
	var idle []*Session

	m.mu.Lock()
	for id, s := range m.sessions {
		if now.Sub(s.LastActive()) > m.config.IdleTTL {
			idle = append(idle, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range idle {
		s.Close()
	}

	if len(idle) > 0 {
		m.logger.Info("Removed idle sessions", "count", len(idle))
	}
	return len(idle)
}

// RunJanitor sweeps idle sessions every JanitorInterval until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context) {
	ticker := time.NewTicker(m.config.JanitorInterval)
	defer ticker.Stop()

	m.logger.Debug("Session janitor started",
		"interval", m.config.JanitorInterval,
		"idle_ttl", m.config.IdleTTL)

	for {
		select {
		case <-ctx.Done():
			m.logger.Debug("Session janitor stopped")
			return
		case <-ticker.C:
			m.Sweep(m.now())
		}
	}
}

// Shutdown closes every session.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[uuid.UUID]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	m.logger.Info("All sessions closed", "count", len(sessions))
}
