package lesson

import (
	"github.com/google/uuid"
	"github.com/phrazzld/lingo/internal/domain"
	"github.com/samber/lo"
)

// Phase is the coarse state of a session, as shown to the learner.
type Phase string

const (
	PhaseLoading  Phase = "loading"
	PhaseError    Phase = "error"
	PhaseReady    Phase = "ready"
	PhaseFinished Phase = "finished"
	PhaseClosed   Phase = "closed"
)

// View is an immutable snapshot of a session.
type View struct {
	ID       uuid.UUID
	Language domain.Language
	Phase    Phase
	Epoch    uint64

	// HasLesson is false while loading and after a failed load.
	HasLesson bool
	Title     string

	Index    int
	Total    int
	Score    int
	Progress float64
	Finished bool

	AnswerState domain.AnswerState
	Selected    string

	// Question is nil unless the phase is PhaseReady.
	Question *QuestionView

	// Error is the learner-facing message of a failed load.
	Error string
}

// QuestionView is the current question with per-option presentation.
type QuestionView struct {
	// Number is the 1-based position in the lesson.
	Number int
	Text   string

	Options []OptionView

	// CorrectAnswer is only revealed once the question has been evaluated.
	CorrectAnswer string

	ImageURL     string
	ImageLoading bool
}

// OptionView is one answer option and how to present it.
type OptionView struct {
	Text  string
	Style domain.OptionStyle
}

// HasOption reports whether text is one of the question's options.
func (q *QuestionView) HasOption(text string) bool {
	return lo.ContainsBy(q.Options, func(o OptionView) bool {
		return o.Text == text
	})
}
