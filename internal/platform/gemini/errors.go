package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyLanguage is returned when a lesson is requested without a language.
	ErrEmptyLanguage = errors.New("language cannot be empty")

	// ErrEmptyImagePrompt is returned when an image is requested without a prompt.
	ErrEmptyImagePrompt = errors.New("image prompt cannot be empty")

	// ErrNoImage is returned when the image model answers without image bytes.
	ErrNoImage = errors.New("no image in response")
)
