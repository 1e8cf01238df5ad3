// Package config loads and validates application configuration.
//
// Values come from built-in defaults, an optional config.yaml (./config or the
// working directory), an optional .env file, and environment variables with
// the LINGO_ prefix (nested keys use underscores, e.g. LINGO_SERVER_PORT).
// The Gemini credential is read from API_KEY; without it Load fails.
package config
