package lesson

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo/internal/domain"
	"github.com/phrazzld/lingo/internal/generation"
	"github.com/phrazzld/lingo/internal/redact"
	"github.com/samber/lo"
)

// unknownErrorMessage is shown when a load fails with an error that carries
// no learner-facing message.
const unknownErrorMessage = "An unknown error occurred."

// Session is one lesson attempt for one language. All methods are safe for
// concurrent use.
type Session struct {
	id       uuid.UUID
	language domain.Language
	provider generation.ContentProvider
	images   ImageScheduler
	logger   *slog.Logger
	baseCtx  context.Context
	now      func() time.Time

	mu sync.Mutex

	epoch    uint64
	epochCtx context.Context
	cancel   context.CancelFunc

	// requested holds the question indexes already sent for back-fill in
	// the current epoch.
	requested map[int]struct{}

	loading  bool
	errMsg   string
	lesson   *domain.Lesson
	index    int
	selected string
	state    domain.AnswerState
	score    int

	closed     bool
	lastActive time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock replaces time.Now for activity tracking.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession creates a session bound to language. The language cannot change
// for the session's lifetime. ctx bounds every request the session makes.
// The session starts in PhaseLoading; call LoadLesson to fetch the lesson.
func NewSession(
	ctx context.Context,
	language domain.Language,
	provider generation.ContentProvider,
	images ImageScheduler,
	logger *slog.Logger,
	opts ...SessionOption,
) *Session {
	s := &Session{
		id:        uuid.New(),
		language:  language,
		provider:  provider,
		images:    images,
		baseCtx:   ctx,
		now:       time.Now,
		loading:   true,
		state:     domain.AnswerUnanswered,
		requested: make(map[int]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logger.With(
		"component", "lesson_session",
		"session_id", s.id.String(),
		"language", language.Name,
	)
	s.epochCtx, s.cancel = context.WithCancel(ctx)
	s.lastActive = s.now()
	return s
}

// ID returns the session's identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Language returns the language the session was created for.
func (s *Session) Language() domain.Language {
	return s.language
}

// LastActive returns the time of the last learner operation.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// LoadLesson enters the loading phase, clears any previous error and requests
// a new lesson in the background. The returned channel is closed once the
// result has been applied or discarded.
func (s *Session) LoadLesson() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLoadLocked()
}

// RestartLesson resets progress and score, drops the current lesson and loads
// a new one. Outstanding requests of the previous lesson are cancelled and
// their results ignored.
func (s *Session) RestartLesson() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return closedChan()
	}

	s.index = 0
	s.score = 0
	s.state = domain.AnswerUnanswered
	s.selected = ""
	s.lesson = nil

	s.logger.Info("Restarting lesson")
	return s.startLoadLocked()
}

func (s *Session) startLoadLocked() <-chan struct{} {
	if s.closed {
		return closedChan()
	}

	epoch, ctx := s.beginEpochLocked()
	s.loading = true
	s.errMsg = ""
	s.touchLocked()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.load(ctx, epoch)
	}()
	return done
}

// beginEpochLocked cancels the running epoch and starts a new one.
func (s *Session) beginEpochLocked() (uint64, context.Context) {
	s.cancel()
	s.epoch++
	s.epochCtx, s.cancel = context.WithCancel(s.baseCtx)
	s.requested = make(map[int]struct{})
	return s.epoch, s.epochCtx
}

func (s *Session) load(ctx context.Context, epoch uint64) {
	s.logger.DebugContext(ctx, "Requesting lesson", "epoch", epoch)

	lesson, err := s.provider.GenerateLesson(ctx, s.language.Name)
	if err == nil && (lesson == nil || len(lesson.Questions) == 0) {
		err = generation.ErrGenerationFailed
	}

	s.mu.Lock()
	if s.closed || epoch != s.epoch {
		s.mu.Unlock()
		s.logger.DebugContext(ctx, "Discarding superseded lesson result", "epoch", epoch)
		return
	}

	s.loading = false
	if err != nil {
		s.lesson = nil
		s.errMsg = errorMessage(err)
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "Lesson load failed", "epoch", epoch, "error", redact.Error(err))
		return
	}

	s.lesson = lesson
	s.index = 0
	req, ok := s.pendingImageLocked()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Lesson ready",
		"epoch", epoch,
		"title", lesson.Title,
		"question_count", len(lesson.Questions))

	if ok {
		s.dispatchImage(ctx, req)
	}
}

// errorMessage converts a load error into the message shown to the learner.
func errorMessage(err error) string {
	if errors.Is(err, generation.ErrGenerationFailed) {
		return generation.ErrGenerationFailed.Error()
	}
	if msg := err.Error(); msg != "" {
		return redact.String(msg)
	}
	return unknownErrorMessage
}

// SelectAnswer records option as the learner's choice for the current
// question. It has no effect once the question has been evaluated, when there
// is no current question, or when option is empty. A later call before
// evaluation replaces the earlier choice.
func (s *Session) SelectAnswer(option string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if option == "" || s.currentLocked() == nil || s.state.Answered() {
		return false
	}

	s.selected = option
	s.touchLocked()
	return true
}

// CheckAnswer evaluates the selected option against the current question's
// correct answer. A correct answer increments the score by one. Each question
// is evaluated at most once; without a current question or a selection the
// call does nothing.
func (s *Session) CheckAnswer() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.currentLocked()
	if q == nil || s.selected == "" || s.state.Answered() {
		return false
	}

	if s.selected == q.CorrectAnswer {
		s.state = domain.AnswerCorrect
		s.score++
	} else {
		s.state = domain.AnswerIncorrect
	}
	s.touchLocked()

	s.logger.Debug("Answer checked",
		"index", s.index,
		"state", s.state,
		"score", s.score)
	return true
}

// NextQuestion clears the answer state and selection and advances to the
// next question. Advancing past the last question finishes the lesson; once
// finished the call does nothing.
func (s *Session) NextQuestion() bool {
	s.mu.Lock()

	if s.currentLocked() == nil {
		s.mu.Unlock()
		return false
	}

	s.state = domain.AnswerUnanswered
	s.selected = ""
	s.index++
	s.touchLocked()

	req, ok := s.pendingImageLocked()
	ctx := s.epochCtx
	s.mu.Unlock()

	if ok {
		s.dispatchImage(ctx, req)
	}
	return true
}

// ApplyImage stores a resolved image for the question at index. It reports
// false when the result belongs to an earlier epoch, the session is closed,
// or index is out of range. An empty ref is replaced by the fallback image.
func (s *Session) ApplyImage(epoch uint64, index int, ref string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || epoch != s.epoch || s.lesson == nil {
		return false
	}
	if index < 0 || index >= len(s.lesson.Questions) {
		return false
	}

	if ref == "" {
		ref = generation.FallbackImageURL
	}

	q := s.lesson.Questions[index]
	q.ImageURL = ref
	q.ImageLoading = false
	return true
}

// Close ends the session. Outstanding requests are cancelled, later results
// are ignored and every further operation is a no-op.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
	s.epoch++
	s.loading = false
	s.logger.Info("Session closed")
}

// Snapshot returns the current state of the session.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:          s.id,
		Language:    s.language,
		Phase:       s.phaseLocked(),
		Epoch:       s.epoch,
		Index:       s.index,
		Score:       s.score,
		AnswerState: s.state,
		Selected:    s.selected,
		Error:       s.errMsg,
	}

	if s.lesson != nil && !s.loading {
		v.HasLesson = true
		v.Title = s.lesson.Title
		v.Total = len(s.lesson.Questions)
		v.Progress = float64(s.index) / float64(v.Total) * 100
		v.Finished = s.index >= v.Total
	}

	if q := s.currentLocked(); q != nil {
		v.Question = s.questionViewLocked(q)
	}

	return v
}

func (s *Session) questionViewLocked(q *domain.Question) *QuestionView {
	qv := &QuestionView{
		Number:       s.index + 1,
		Text:         q.QuestionInTargetLanguage,
		ImageURL:     q.ImageURL,
		ImageLoading: q.ImageLoading,
		Options: lo.Map(q.Options, func(option string, _ int) OptionView {
			return OptionView{
				Text:  option,
				Style: domain.OptionStyleFor(s.state, s.selected, q.CorrectAnswer, option),
			}
		}),
	}
	if s.state.Answered() {
		qv.CorrectAnswer = q.CorrectAnswer
	}
	return qv
}

func (s *Session) phaseLocked() Phase {
	switch {
	case s.closed:
		return PhaseClosed
	case s.loading:
		return PhaseLoading
	case s.errMsg != "":
		return PhaseError
	case s.lesson == nil:
		return PhaseLoading
	case s.index >= len(s.lesson.Questions):
		return PhaseFinished
	default:
		return PhaseReady
	}
}

// currentLocked returns the question being shown, or nil while loading, after
// an error, once finished, or after Close.
func (s *Session) currentLocked() *domain.Question {
	if s.closed || s.loading || s.lesson == nil {
		return nil
	}
	if s.index < 0 || s.index >= len(s.lesson.Questions) {
		return nil
	}
	return s.lesson.Questions[s.index]
}

// pendingImageLocked returns a back-fill request for the current question if
// it has no image and none was requested for its index in this epoch.
func (s *Session) pendingImageLocked() (ImageRequest, bool) {
	q := s.currentLocked()
	if q == nil || q.ImageURL != "" {
		return ImageRequest{}, false
	}
	if _, ok := s.requested[s.index]; ok {
		return ImageRequest{}, false
	}

	s.requested[s.index] = struct{}{}
	return ImageRequest{
		SessionID: s.id,
		Epoch:     s.epoch,
		Index:     s.index,
		Prompt:    q.ImagePrompt,
	}, true
}

// dispatchImage hands req to the scheduler. It must be called without s.mu held.
func (s *Session) dispatchImage(ctx context.Context, req ImageRequest) {
	err := s.images.ScheduleImage(ctx, req)
	if err == nil {
		s.logger.DebugContext(ctx, "Image back-fill scheduled",
			"epoch", req.Epoch,
			"index", req.Index)
		return
	}

	s.logger.WarnContext(ctx, "Image back-fill not scheduled, using fallback",
		"epoch", req.Epoch,
		"index", req.Index,
		"error", err)
	s.ApplyImage(req.Epoch, req.Index, generation.FallbackImageURL)
}

func (s *Session) touchLocked() {
	s.lastActive = s.now()
}

func closedChan() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
