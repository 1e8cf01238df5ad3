package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/phrazzld/lingo/internal/config"
	"github.com/phrazzld/lingo/internal/domain"
	"github.com/phrazzld/lingo/internal/generation"
	"github.com/phrazzld/lingo/internal/redact"
	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/genai"
)

// Image request parameters.
const (
	imageMIMEType    = "image/jpeg"
	imageAspectRatio = "1:1"
)

// Generator implements generation.ContentProvider using the Gemini API.
type Generator struct {
	logger         *slog.Logger
	config         config.LLMConfig
	promptTemplate *template.Template
	models         modelsClient
	shuffler       *domain.Shuffler
}

// Compile-time check that Generator satisfies the provider boundary.
var _ generation.ContentProvider = (*Generator)(nil)

// NewGenerator creates a Generator backed by a real genai client.
//
// A missing API key is reported as generation.ErrInvalidConfig; callers treat
// it as fatal at startup.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if err := validateConfig(ctx, logger, cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, redact.Error(err))
	}

	return newGenerator(logger, cfg, client.Models, domain.NewShuffler())
}

// newGenerator wires a Generator around any models client.
func newGenerator(
	logger *slog.Logger,
	cfg config.LLMConfig,
	models modelsClient,
	shuffler *domain.Shuffler,
) (*Generator, error) {
	promptTemplate, err := loadPromptTemplate(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	return &Generator{
		logger:         logger.With("component", "gemini_generator"),
		config:         cfg,
		promptTemplate: promptTemplate,
		models:         models,
		shuffler:       shuffler,
	}, nil
}

// GenerateLesson asks the text model for a lesson in the given language.
// Every failure is logged and returned wrapped in generation.ErrGenerationFailed.
func (g *Generator) GenerateLesson(ctx context.Context, language string) (*domain.Lesson, error) {
	lesson, err := g.generateLesson(ctx, language)
	if err != nil {
		g.logger.ErrorContext(ctx, "Lesson generation failed",
			"language", language,
			"error", redact.Error(err))
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	g.logger.InfoContext(ctx, "Lesson generated",
		"language", language,
		"title", lesson.Title,
		"question_count", len(lesson.Questions))
	return lesson, nil
}

func (g *Generator) generateLesson(ctx context.Context, language string) (*domain.Lesson, error) {
	prompt, err := g.createPrompt(ctx, language)
	if err != nil {
		return nil, err
	}

	text, err := g.callTextModel(ctx, prompt)
	if err != nil {
		return nil, err
	}

	response, err := decodeLesson(text)
	if err != nil {
		return nil, err
	}

	return g.parseResponse(ctx, response)
}

// callTextModel makes a single structured-output request and returns the
// concatenated text of the first candidate.
func (g *Generator) callTextModel(ctx context.Context, prompt string) (string, error) {
	g.logger.DebugContext(ctx, "Making Gemini API call", "model", g.config.TextModel)

	resp, err := g.models.GenerateContent(ctx, g.config.TextModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   lessonResponseSchema(),
	})
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: empty text in response", generation.ErrInvalidResponse)
	}
	return text, nil
}

// decodeLesson validates the raw model output against lessonJSONSchema and
// decodes it.
func decodeLesson(text string) (*LessonSchema, error) {
	result, err := compiledLessonSchema.Validate(gojsonschema.NewStringLoader(text))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}

	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			messages = append(messages, e.String())
		}
		return nil, fmt.Errorf("%w: schema validation failed: %s",
			generation.ErrInvalidResponse, strings.Join(messages, "; "))
	}

	var lesson LessonSchema
	if err := json.Unmarshal([]byte(text), &lesson); err != nil {
		return nil, fmt.Errorf("%w: failed to decode lesson: %v", generation.ErrInvalidResponse, err)
	}
	return &lesson, nil
}

// parseResponse converts the decoded response into a domain lesson, shuffling
// each question's options.
func (g *Generator) parseResponse(ctx context.Context, response *LessonSchema) (*domain.Lesson, error) {
	if response == nil {
		return nil, fmt.Errorf("%w: response is nil", generation.ErrInvalidResponse)
	}

	if len(response.Questions) != generation.QuestionsPerLesson {
		g.logger.WarnContext(ctx, "Unexpected question count",
			"expected", generation.QuestionsPerLesson,
			"actual", len(response.Questions))
	}

	lesson := &domain.Lesson{
		Title:     response.Title,
		Questions: make([]*domain.Question, 0, len(response.Questions)),
	}

	for i, qs := range response.Questions {
		if len(qs.IncorrectAnswers) != generation.IncorrectAnswersPerQuestion {
			return nil, fmt.Errorf("%w: question %d has %d incorrect answers",
				generation.ErrInvalidResponse, i, len(qs.IncorrectAnswers))
		}

		q, err := domain.NewQuestion(
			qs.QuestionInTargetLanguage,
			qs.CorrectAnswer,
			qs.IncorrectAnswers,
			qs.ImagePrompt,
			g.shuffler,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", generation.ErrInvalidResponse, i, err)
		}

		lesson.Questions = append(lesson.Questions, q)
	}

	if err := lesson.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}
	return lesson, nil
}

// GenerateImage asks the image model for one square illustration and returns
// it as a data URI. It never fails: any error yields generation.FallbackImageURL.
func (g *Generator) GenerateImage(ctx context.Context, prompt string) string {
	ref, err := g.generateImage(ctx, prompt)
	if err != nil {
		g.logger.WarnContext(ctx, "Image generation failed, using fallback",
			"error", redact.Error(err),
			"fallback", generation.FallbackImageURL)
		return generation.FallbackImageURL
	}
	return ref
}

func (g *Generator) generateImage(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyImagePrompt
	}

	resp, err := g.models.GenerateImages(ctx, g.config.ImageModel, prompt+generation.ImageStyleSuffix,
		&genai.GenerateImagesConfig{
			NumberOfImages: 1,
			OutputMIMEType: imageMIMEType,
			AspectRatio:    imageAspectRatio,
		})
	if err != nil {
		return "", fmt.Errorf("image API call failed: %w", err)
	}

	if resp == nil || len(resp.GeneratedImages) == 0 {
		return "", ErrNoImage
	}

	generated := resp.GeneratedImages[0]
	if generated == nil || generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
		return "", ErrNoImage
	}

	mimeType := generated.Image.MIMEType
	if mimeType == "" {
		mimeType = imageMIMEType
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(generated.Image.ImageBytes), nil
}
