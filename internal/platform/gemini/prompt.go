package gemini

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"github.com/phrazzld/lingo/internal/generation"
)

//go:embed prompt.tmpl
var defaultPromptTemplate string

// loadPromptTemplate parses the template at path, or the embedded default
// when path is empty.
func loadPromptTemplate(path string) (*template.Template, error) {
	source := defaultPromptTemplate
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template: %v",
				generation.ErrInvalidConfig, err)
		}
		source = string(content)
	}

	tmpl, err := template.New("lesson").Option("missingkey=error").Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}
	return tmpl, nil
}

// createPrompt renders the lesson prompt for the given language.
func (g *Generator) createPrompt(ctx context.Context, language string) (string, error) {
	if language == "" {
		return "", ErrEmptyLanguage
	}

	data := promptData{
		Language:             language,
		Topic:                generation.LessonTopic,
		QuestionCount:        generation.QuestionsPerLesson,
		IncorrectAnswerCount: generation.IncorrectAnswersPerQuestion,
	}

	var buf bytes.Buffer
	if err := g.promptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	prompt := buf.String()
	g.logger.DebugContext(ctx, "Prompt generated",
		"language", language,
		"prompt_length", len(prompt))

	return prompt, nil
}
