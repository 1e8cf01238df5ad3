package gemini

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/phrazzld/lingo/internal/config"
	"github.com/phrazzld/lingo/internal/domain"
	"github.com/phrazzld/lingo/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeModels records calls and returns canned responses.
type fakeModels struct {
	mu sync.Mutex

	contentResp *genai.GenerateContentResponse
	contentErr  error
	imagesResp  *genai.GenerateImagesResponse
	imagesErr   error

	contentCalls []contentCall
	imageCalls   []imageCall
}

type contentCall struct {
	model  string
	prompt string
	config *genai.GenerateContentConfig
}

type imageCall struct {
	model  string
	prompt string
	config *genai.GenerateImagesConfig
}

func (f *fakeModels) GenerateContent(
	_ context.Context,
	model string,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var prompt strings.Builder
	for _, c := range contents {
		for _, p := range c.Parts {
			prompt.WriteString(p.Text)
		}
	}
	f.contentCalls = append(f.contentCalls, contentCall{model: model, prompt: prompt.String(), config: cfg})
	return f.contentResp, f.contentErr
}

func (f *fakeModels) GenerateImages(
	_ context.Context,
	model string,
	prompt string,
	cfg *genai.GenerateImagesConfig,
) (*genai.GenerateImagesResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.imageCalls = append(f.imageCalls, imageCall{model: model, prompt: prompt, config: cfg})
	return f.imagesResp, f.imagesErr
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []*genai.Part{{Text: text}}},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

const validLessonJSON = `{
  "title": "Comidas comunes",
  "questions": [
    {"questionInTargetLanguage": "manzana", "correctAnswer": "apple",
     "incorrectAnswers": ["pear", "orange", "grape"], "imagePrompt": "A single red apple"},
    {"questionInTargetLanguage": "pan", "correctAnswer": "bread",
     "incorrectAnswers": ["cake", "rice", "cheese"], "imagePrompt": "A loaf of bread"},
    {"questionInTargetLanguage": "leche", "correctAnswer": "milk",
     "incorrectAnswers": ["water", "juice", "coffee"], "imagePrompt": "A glass of milk"},
    {"questionInTargetLanguage": "queso", "correctAnswer": "cheese",
     "incorrectAnswers": ["butter", "egg", "ham"], "imagePrompt": "A wedge of cheese"},
    {"questionInTargetLanguage": "huevo", "correctAnswer": "egg",
     "incorrectAnswers": ["chicken", "bean", "potato"], "imagePrompt": "A white egg"}
  ]
}`

func testConfig() config.LLMConfig {
	return config.LLMConfig{
		GeminiAPIKey: "test-key",
		TextModel:    "text-model",
		ImageModel:   "image-model",
	}
}

func newTestGenerator(t *testing.T, models *fakeModels) *Generator {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	g, err := newGenerator(logger, testConfig(), models, domain.NewSeededShuffler(42))
	require.NoError(t, err)
	return g
}

func TestGenerateLesson_Success(t *testing.T) {
	models := &fakeModels{contentResp: textResponse(validLessonJSON)}
	g := newTestGenerator(t, models)

	lesson, err := g.GenerateLesson(context.Background(), "Spanish")
	require.NoError(t, err)

	assert.Equal(t, "Comidas comunes", lesson.Title)
	require.Len(t, lesson.Questions, 5)

	for _, q := range lesson.Questions {
		assert.Len(t, q.Options, domain.OptionCount)
		count := 0
		for _, o := range q.Options {
			if o == q.CorrectAnswer {
				count++
			}
		}
		assert.Equal(t, 1, count, "correct answer must appear exactly once")
		assert.True(t, q.ImageLoading)
		assert.Empty(t, q.ImageURL)
	}
	assert.Equal(t, "manzana", lesson.Questions[0].QuestionInTargetLanguage)
	assert.ElementsMatch(t, []string{"apple", "pear", "orange", "grape"}, lesson.Questions[0].Options)

	require.Len(t, models.contentCalls, 1)
	call := models.contentCalls[0]
	assert.Equal(t, "text-model", call.model)
	assert.Contains(t, call.prompt, "learning Spanish")
	assert.Contains(t, call.prompt, "'Common Foods'")
	assert.Contains(t, call.prompt, "5 multiple-choice questions")
	assert.Equal(t, "application/json", call.config.ResponseMIMEType)
	require.NotNil(t, call.config.ResponseSchema)
	assert.ElementsMatch(t, []string{"title", "questions"}, call.config.ResponseSchema.Required)
}

func TestGenerateLesson_Failures(t *testing.T) {
	tests := []struct {
		name    string
		models  *fakeModels
		wantErr error
	}{
		{
			name:    "API error",
			models:  &fakeModels{contentErr: errors.New("connection reset")},
			wantErr: nil,
		},
		{
			name:    "nil response",
			models:  &fakeModels{},
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name:    "no candidates",
			models:  &fakeModels{contentResp: &genai.GenerateContentResponse{}},
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name: "blocked by safety filters",
			models: &fakeModels{contentResp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			}},
			wantErr: generation.ErrContentBlocked,
		},
		{
			name:    "not JSON",
			models:  &fakeModels{contentResp: textResponse("here is your lesson!")},
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name:    "missing questions",
			models:  &fakeModels{contentResp: textResponse(`{"title": "Foods"}`)},
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name: "missing image prompt",
			models: &fakeModels{contentResp: textResponse(`{"title": "Foods", "questions": [
				{"questionInTargetLanguage": "pan", "correctAnswer": "bread",
				 "incorrectAnswers": ["cake", "rice", "cheese"]}]}`)},
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name: "wrong number of incorrect answers",
			models: &fakeModels{contentResp: textResponse(`{"title": "Foods", "questions": [
				{"questionInTargetLanguage": "pan", "correctAnswer": "bread",
				 "incorrectAnswers": ["cake"], "imagePrompt": "bread"}]}`)},
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name:    "empty text",
			models:  &fakeModels{contentResp: textResponse("   ")},
			wantErr: generation.ErrInvalidResponse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGenerator(t, tc.models)

			lesson, err := g.GenerateLesson(context.Background(), "French")
			require.Error(t, err)
			assert.Nil(t, lesson)
			assert.ErrorIs(t, err, generation.ErrGenerationFailed)
			assert.True(t, strings.HasPrefix(err.Error(), "failed to generate lesson content"))
			if tc.wantErr != nil {
				assert.Contains(t, err.Error(), tc.wantErr.Error())
			}
		})
	}
}

func TestGenerateLesson_EmptyLanguage(t *testing.T) {
	models := &fakeModels{contentResp: textResponse(validLessonJSON)}
	g := newTestGenerator(t, models)

	_, err := g.GenerateLesson(context.Background(), "")
	assert.ErrorIs(t, err, generation.ErrGenerationFailed)
	assert.Empty(t, models.contentCalls)
}

func TestGenerateImage_Success(t *testing.T) {
	models := &fakeModels{imagesResp: &genai.GenerateImagesResponse{
		GeneratedImages: []*genai.GeneratedImage{{
			Image: &genai.Image{ImageBytes: []byte{0xff, 0xd8, 0xff}, MIMEType: "image/jpeg"},
		}},
	}}
	g := newTestGenerator(t, models)

	ref := g.GenerateImage(context.Background(), "A single red apple")
	assert.Equal(t, "data:image/jpeg;base64,/9j/", ref)

	require.Len(t, models.imageCalls, 1)
	call := models.imageCalls[0]
	assert.Equal(t, "image-model", call.model)
	assert.Equal(t, "A single red apple, vibrant, simple illustration, cartoon style", call.prompt)
	assert.EqualValues(t, 1, call.config.NumberOfImages)
	assert.Equal(t, "image/jpeg", call.config.OutputMIMEType)
	assert.Equal(t, "1:1", call.config.AspectRatio)
}

func TestGenerateImage_Fallback(t *testing.T) {
	tests := []struct {
		name   string
		models *fakeModels
		prompt string
	}{
		{
			name:   "API error",
			models: &fakeModels{imagesErr: errors.New("quota exceeded")},
			prompt: "bread",
		},
		{
			name:   "nil response",
			models: &fakeModels{},
			prompt: "bread",
		},
		{
			name:   "empty result set",
			models: &fakeModels{imagesResp: &genai.GenerateImagesResponse{}},
			prompt: "bread",
		},
		{
			name: "empty bytes",
			models: &fakeModels{imagesResp: &genai.GenerateImagesResponse{
				GeneratedImages: []*genai.GeneratedImage{{Image: &genai.Image{}}},
			}},
			prompt: "bread",
		},
		{
			name:   "empty prompt",
			models: &fakeModels{},
			prompt: " ",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGenerator(t, tc.models)
			assert.Equal(t, generation.FallbackImageURL, g.GenerateImage(context.Background(), tc.prompt))
		})
	}
}

func TestNewGenerator_MissingAPIKey(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testConfig()
	cfg.GeminiAPIKey = ""

	g, err := NewGenerator(context.Background(), logger, cfg)
	assert.Nil(t, g)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestNewGenerator_NilLogger(t *testing.T) {
	g, err := NewGenerator(context.Background(), nil, testConfig())
	assert.Nil(t, g)
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		mutate  func(*config.LLMConfig)
		wantErr bool
	}{
		{name: "valid", mutate: func(*config.LLMConfig) {}},
		{name: "missing key", mutate: func(c *config.LLMConfig) { c.GeminiAPIKey = "" }, wantErr: true},
		{name: "missing text model", mutate: func(c *config.LLMConfig) { c.TextModel = "" }, wantErr: true},
		{name: "missing image model", mutate: func(c *config.LLMConfig) { c.ImageModel = "" }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(&cfg)
			err := validateConfig(context.Background(), logger, cfg)
			if tc.wantErr {
				assert.ErrorIs(t, err, generation.ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPromptTemplateOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompt.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("Teach {{.Language}} about {{.Topic}}"), 0o600))

	models := &fakeModels{contentResp: textResponse(validLessonJSON)}
	cfg := testConfig()
	cfg.PromptTemplatePath = path

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	g, err := newGenerator(logger, cfg, models, domain.NewSeededShuffler(1))
	require.NoError(t, err)

	_, err = g.GenerateLesson(context.Background(), "Korean")
	require.NoError(t, err)
	assert.Equal(t, "Teach Korean about Common Foods", models.contentCalls[0].prompt)
}

func TestPromptTemplateErrors(t *testing.T) {
	_, err := loadPromptTemplate(filepath.Join(t.TempDir(), "missing.tmpl"))
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	path := filepath.Join(t.TempDir(), "broken.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{.Language"), 0o600))
	_, err = loadPromptTemplate(path)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestDefaultPromptMentionsEveryField(t *testing.T) {
	tmpl, err := loadPromptTemplate("")
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, tmpl.Execute(&sb, promptData{
		Language:             "Italian",
		Topic:                generation.LessonTopic,
		QuestionCount:        generation.QuestionsPerLesson,
		IncorrectAnswerCount: generation.IncorrectAnswersPerQuestion,
	}))

	prompt := sb.String()
	for _, field := range []string{"title", "questionInTargetLanguage", "correctAnswer", "incorrectAnswers", "imagePrompt"} {
		assert.Contains(t, prompt, field)
	}
	assert.Contains(t, prompt, "3 plausible but incorrect")
}
