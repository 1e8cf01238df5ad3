package gemini

import (
	"context"

	"google.golang.org/genai"
)

// modelsClient is the subset of *genai.Models used by the Generator.
type modelsClient interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)

	GenerateImages(
		ctx context.Context,
		model string,
		prompt string,
		config *genai.GenerateImagesConfig,
	) (*genai.GenerateImagesResponse, error)
}

// promptData represents the data passed to the prompt template
type promptData struct {
	Language             string
	Topic                string
	QuestionCount        int
	IncorrectAnswerCount int
}

// LessonSchema represents the lesson structure requested from the text model
type LessonSchema struct {
	// Title is a short heading for the lesson
	Title string `json:"title"`

	// Questions are the multiple-choice items, in display order
	Questions []QuestionSchema `json:"questions"`
}

// QuestionSchema represents a single question in the API response
type QuestionSchema struct {
	// QuestionInTargetLanguage is the word being tested, in the learner's target language
	QuestionInTargetLanguage string `json:"questionInTargetLanguage"`

	// CorrectAnswer is the English translation
	CorrectAnswer string `json:"correctAnswer"`

	// IncorrectAnswers are plausible wrong English translations
	IncorrectAnswers []string `json:"incorrectAnswers"`

	// ImagePrompt describes an illustration of the word
	ImagePrompt string `json:"imagePrompt"`
}
