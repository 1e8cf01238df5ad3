package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when lesson generation fails for any reason.
	// It is the only condition callers are expected to react to; the underlying
	// cause is logged by the provider.
	ErrGenerationFailed = errors.New("failed to generate lesson content")

	// ErrInvalidResponse is returned when the model response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the provider configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
