package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/phrazzld/lingo/internal/domain"
	"github.com/phrazzld/lingo/internal/generation"
)

// MockContentProvider implements generation.ContentProvider for testing.
type MockContentProvider struct {
	// GenerateLessonFn allows test cases to mock the GenerateLesson behavior
	GenerateLessonFn func(ctx context.Context, language string) (*domain.Lesson, error)

	// GenerateImageFn allows test cases to mock the GenerateImage behavior
	GenerateImageFn func(ctx context.Context, prompt string) string

	// Default response values. Lesson is cloned on every call so each caller
	// owns its copy.
	Lesson   *domain.Lesson
	Err      error
	ImageURL string

	mu           sync.Mutex
	lessonCalls  []string
	lessonCtxs   []context.Context
	imagePrompts []string
}

var _ generation.ContentProvider = (*MockContentProvider)(nil)

// GenerateLesson implements the generation.ContentProvider interface
func (m *MockContentProvider) GenerateLesson(ctx context.Context, language string) (*domain.Lesson, error) {
	m.mu.Lock()
	m.lessonCalls = append(m.lessonCalls, language)
	m.lessonCtxs = append(m.lessonCtxs, ctx)
	m.mu.Unlock()

	if m.GenerateLessonFn != nil {
		return m.GenerateLessonFn(ctx, language)
	}

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Lesson.Clone(), nil
}

// GenerateImage implements the generation.ContentProvider interface
func (m *MockContentProvider) GenerateImage(ctx context.Context, prompt string) string {
	m.mu.Lock()
	m.imagePrompts = append(m.imagePrompts, prompt)
	m.mu.Unlock()

	if m.GenerateImageFn != nil {
		return m.GenerateImageFn(ctx, prompt)
	}

	if m.ImageURL == "" {
		return generation.FallbackImageURL
	}
	return m.ImageURL
}

// LessonCallCount returns how many times GenerateLesson was called.
func (m *MockContentProvider) LessonCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lessonCalls)
}

// LessonLanguages returns the languages passed to GenerateLesson, in call order.
func (m *MockContentProvider) LessonLanguages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lessonCalls...)
}

// LessonContexts returns the contexts passed to GenerateLesson, in call order.
func (m *MockContentProvider) LessonContexts() []context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]context.Context(nil), m.lessonCtxs...)
}

// ImageCallCount returns how many times GenerateImage was called.
func (m *MockContentProvider) ImageCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.imagePrompts)
}

// ImagePrompts returns the prompts passed to GenerateImage, in call order.
func (m *MockContentProvider) ImagePrompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.imagePrompts...)
}

// NewMockContentProviderWithLesson creates a provider that returns copies of lesson.
func NewMockContentProviderWithLesson(lesson *domain.Lesson) *MockContentProvider {
	return &MockContentProvider{Lesson: lesson}
}

// NewMockContentProviderWithError creates a provider whose lesson calls fail with err.
func NewMockContentProviderWithError(err error) *MockContentProvider {
	return &MockContentProvider{Err: err}
}

// SampleLesson builds a lesson of n questions. Question i has prompt "word-i",
// correct answer "answer-i" and image prompt "image-i"; options are unshuffled
// with the correct answer first.
func SampleLesson(n int) *domain.Lesson {
	lesson := &domain.Lesson{
		Title:     "Sample Lesson",
		Questions: make([]*domain.Question, 0, n),
	}
	for i := 0; i < n; i++ {
		correct := fmt.Sprintf("answer-%d", i)
		lesson.Questions = append(lesson.Questions, &domain.Question{
			QuestionInTargetLanguage: fmt.Sprintf("word-%d", i),
			Options: []string{
				correct,
				fmt.Sprintf("wrong-%d-a", i),
				fmt.Sprintf("wrong-%d-b", i),
				fmt.Sprintf("wrong-%d-c", i),
			},
			CorrectAnswer: correct,
			ImagePrompt:   fmt.Sprintf("image-%d", i),
			ImageLoading:  true,
		})
	}
	return lesson
}
