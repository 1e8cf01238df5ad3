package domain

import (
	"fmt"

	"github.com/samber/lo"
)

// OptionCount is the number of answer options shown for every question.
const OptionCount = 4

// Question is one multiple-choice item of a lesson.
type Question struct {
	// QuestionInTargetLanguage is the prompt word in the language being learned.
	QuestionInTargetLanguage string `json:"questionInTargetLanguage"`

	// Options holds the correct answer and the distractors in shuffled order.
	Options []string `json:"options"`

	// CorrectAnswer is the English translation the user has to pick.
	CorrectAnswer string `json:"correctAnswer"`

	// ImagePrompt describes the illustration to generate for this question.
	ImagePrompt string `json:"imagePrompt"`

	// ImageURL is set once the illustration has been resolved.
	ImageURL string `json:"imageUrl,omitempty"`

	// ImageLoading stays true until ImageURL has been resolved.
	ImageLoading bool `json:"imageIsLoading"`
}

// NewQuestion builds a question whose options are the correct answer followed
// by the incorrect answers, shuffled. The image is marked as still loading.
func NewQuestion(
	prompt string,
	correctAnswer string,
	incorrectAnswers []string,
	imagePrompt string,
	shuffler *Shuffler,
) (*Question, error) {
	options := make([]string, 0, len(incorrectAnswers)+1)
	options = append(options, correctAnswer)
	options = append(options, incorrectAnswers...)
	shuffler.Shuffle(options)

	q := &Question{
		QuestionInTargetLanguage: prompt,
		Options:                  options,
		CorrectAnswer:            correctAnswer,
		ImagePrompt:              imagePrompt,
		ImageLoading:             true,
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Validate checks the question's required fields and that the correct answer
// is one of its options. Duplicate options are not rejected.
func (q *Question) Validate() error {
	if q.QuestionInTargetLanguage == "" {
		return fmt.Errorf("%w: question text", ErrEmptyContent)
	}
	if q.CorrectAnswer == "" {
		return fmt.Errorf("%w: correct answer", ErrEmptyContent)
	}
	if q.ImagePrompt == "" {
		return fmt.Errorf("%w: image prompt", ErrEmptyContent)
	}
	if !lo.Contains(q.Options, q.CorrectAnswer) {
		return ErrCorrectAnswerMissing
	}
	return nil
}

// HasOption reports whether option is one of the question's options.
func (q *Question) HasOption(option string) bool {
	return lo.Contains(q.Options, option)
}

// Lesson is a titled, ordered sequence of questions.
type Lesson struct {
	Title     string      `json:"title"`
	Questions []*Question `json:"questions"`
}

// Validate checks that the lesson has a title and at least one valid question.
func (l *Lesson) Validate() error {
	if l.Title == "" {
		return fmt.Errorf("%w: lesson title", ErrEmptyContent)
	}
	if len(l.Questions) == 0 {
		return fmt.Errorf("%w: lesson has no questions", ErrValidation)
	}
	for i, q := range l.Questions {
		if q == nil {
			return fmt.Errorf("%w: question %d is nil", ErrValidation, i)
		}
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

// Clone returns a deep copy of the question.
func (q *Question) Clone() *Question {
	if q == nil {
		return nil
	}
	c := *q
	c.Options = append([]string(nil), q.Options...)
	return &c
}

// Clone returns a deep copy of the lesson.
func (l *Lesson) Clone() *Lesson {
	if l == nil {
		return nil
	}
	c := &Lesson{
		Title:     l.Title,
		Questions: make([]*Question, len(l.Questions)),
	}
	for i, q := range l.Questions {
		c.Questions[i] = q.Clone()
	}
	return c
}
