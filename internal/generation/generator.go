package generation

import (
	"context"

	"github.com/phrazzld/lingo/internal/domain"
)

// Lesson shape requested from the model.
const (
	// LessonTopic is the theme every generated lesson covers.
	LessonTopic = "Common Foods"

	// QuestionsPerLesson is the number of questions requested per lesson.
	QuestionsPerLesson = 5

	// IncorrectAnswersPerQuestion is the number of distractors per question.
	IncorrectAnswersPerQuestion = domain.OptionCount - 1
)

// Image generation constants.
const (
	// ImageStyleSuffix is appended to every image prompt.
	ImageStyleSuffix = ", vibrant, simple illustration, cartoon style"

	// FallbackImageURL is substituted when image generation fails.
	FallbackImageURL = "https://picsum.photos/512"
)

// ContentProvider is the boundary to the generative AI service.
type ContentProvider interface {
	// GenerateLesson creates a beginner lesson for the named language.
	// Every returned question has its options shuffled and its image marked
	// as loading. Failures wrap ErrGenerationFailed.
	GenerateLesson(ctx context.Context, language string) (*domain.Lesson, error)

	// GenerateImage returns a displayable image reference for the prompt.
	// It never fails: on any error it returns FallbackImageURL.
	GenerateImage(ctx context.Context, prompt string) string
}
