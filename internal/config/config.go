package config

import (
	"os"
	"strconv"
)

// Config is the process-wide configuration, read once at startup and passed
// by reference into the pipeline. Nothing reads the environment mid-request.
type Config struct {
	Port string

	// Generation service
	OpenAIAPIKey string // required at request time; missing fails every request
	Model        string // chat completions model, default gpt-4o-mini

	// LicenseKeys is an optional comma-separated allowlist. Empty disables
	// the access gate.
	LicenseKeys string

	// StrictOutput enables post-parse validation of model output against the
	// response schema. Off by default: constrained decoding is trusted and
	// only JSON syntax is checked.
	StrictOutput bool

	LogLevel string
}

func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	strict, _ := strconv.ParseBool(os.Getenv("STRICT_OUTPUT_VALIDATION"))

	return &Config{
		Port:         port,
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		Model:        model,
		LicenseKeys:  os.Getenv("LICENSE_KEYS"),
		StrictOutput: strict,
		LogLevel:     logLevel,
	}
}
