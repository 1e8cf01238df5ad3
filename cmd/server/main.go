// Package main implements the entry point for the Lingo server, which serves
// generated multiple-choice vocabulary lessons over HTML and JSON.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/phrazzld/lingo/internal/config"
	"github.com/phrazzld/lingo/internal/platform/gemini"
	"github.com/phrazzld/lingo/internal/platform/logger"
)

func main() {
	ctx := context.Background()

	app, err := initializeApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging and the Gemini client,
// and wires the application. A missing API key fails here.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("text_model", cfg.LLM.TextModel),
		slog.String("image_model", cfg.LLM.ImageModel))

	generator, err := gemini.NewGenerator(ctx, l.With("component", "llm_generator"), cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	l.Info("LLM generator initialized successfully")

	return newApplication(ctx, cfg, l, generator)
}
