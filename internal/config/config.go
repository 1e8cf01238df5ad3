package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm"     validate:"required"`
	Session SessionConfig `mapstructure:"session" validate:"required"`
	Task    TaskConfig    `mapstructure:"task"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// LLMConfig contains all Gemini integration settings.
type LLMConfig struct {
	// GeminiAPIKey is the only required credential. It is read from API_KEY.
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`

	TextModel  string `mapstructure:"text_model"  validate:"required"`
	ImageModel string `mapstructure:"image_model" validate:"required"`

	// PromptTemplatePath optionally overrides the embedded lesson prompt.
	PromptTemplatePath string `mapstructure:"prompt_template_path"`
}

// SessionConfig controls how long abandoned lesson sessions are kept.
type SessionConfig struct {
	IdleTTLMinutes         int `mapstructure:"idle_ttl_minutes"         validate:"gte=1"`
	JanitorIntervalSeconds int `mapstructure:"janitor_interval_seconds" validate:"gte=1"`
}

// TaskConfig sizes the image back-fill worker pool.
type TaskConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"gte=1,lte=64"`
	QueueSize   int `mapstructure:"queue_size"   validate:"gte=1"`
}
