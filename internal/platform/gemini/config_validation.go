package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lingo/internal/config"
	"github.com/phrazzld/lingo/internal/generation"
)

// validateConfig checks the settings the Generator cannot run without.
func validateConfig(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		logger.ErrorContext(ctx, "Missing Gemini API key", "env", config.APIKeyEnv)
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.TextModel == "" {
		return fmt.Errorf("%w: text model cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ImageModel == "" {
		return fmt.Errorf("%w: image model cannot be empty", generation.ErrInvalidConfig)
	}

	return nil
}
