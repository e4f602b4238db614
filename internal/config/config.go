// Package config loads and validates application configuration from
// environment variables. Missing provider credentials are reported at
// startup rather than on the first user action.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
)

// Provider identifiers accepted in TEXT_PROVIDER / IMAGE_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderGemini = "gemini"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig
	Providers ProviderConfig
	Content   ContentConfig

	// LayoutFile optionally points to a YAML file overriding compositor
	// layout defaults. Empty means compiled-in defaults.
	LayoutFile string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// ShutdownTimeout bounds graceful shutdown on SIGTERM.
	ShutdownTimeout time.Duration
}

// ProviderConfig holds credentials and model selection for the external AI
// providers.
type ProviderConfig struct {
	// OpenAIKey authenticates both chat completions and image generation.
	// Required.
	OpenAIKey string

	// GeminiKey authenticates the alternate image-generation provider.
	// Required.
	GeminiKey string

	// AnthropicKey authenticates the alternate text provider. Only required
	// when TextProvider is "claude".
	AnthropicKey string

	// TextProvider selects the summarization backend: "openai" or "claude".
	TextProvider string

	// ImageProvider selects the background generator: "openai" or "gemini".
	ImageProvider string

	// TextModel is the chat model identifier for the OpenAI text provider.
	TextModel string

	// ClaudeModel is the model identifier for the Claude text provider.
	ClaudeModel string

	// ImageModel is the OpenAI image model identifier.
	ImageModel string
}

// ContentConfig holds the sidebar defaults for generation parameters.
type ContentConfig struct {
	// BulletWords is the default word budget per bullet. Range 5-15.
	BulletWords int

	// DescriptionWords is the default word budget for the description.
	DescriptionWords int

	// HashtagCount is the default number of hashtags. Range 0-10.
	HashtagCount int

	// Language is the default content language code ("en" or "fr").
	Language string
}

// Load reads configuration from the environment. A local .env file is
// loaded first when present so development setups need no exported vars.
func Load() Config {
	// Ignore the error: a missing .env simply means the environment is
	// already populated.
	_ = godotenv.Load()

	return Config{
		Server: ServerConfig{
			Addr:            getEnvString("SERVER_ADDR", ":8080"),
			ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Providers: ProviderConfig{
			OpenAIKey:     getEnvString("OPENAI_API_KEY", ""),
			GeminiKey:     getEnvString("GEMINI_API_KEY", ""),
			AnthropicKey:  getEnvString("ANTHROPIC_API_KEY", ""),
			TextProvider:  getEnvString("TEXT_PROVIDER", ProviderOpenAI),
			ImageProvider: getEnvString("IMAGE_PROVIDER", ProviderOpenAI),
			TextModel:     getEnvString("TEXT_MODEL", "gpt-4o"),
			ClaudeModel:   getEnvString("CLAUDE_MODEL", "claude-sonnet-4-5-20250929"),
			ImageModel:    getEnvString("IMAGE_MODEL", "dall-e-3"),
		},
		Content: ContentConfig{
			BulletWords:      getEnvInt("DEFAULT_BULLET_WORDS", 10),
			DescriptionWords: getEnvInt("DEFAULT_DESCRIPTION_WORDS", 50),
			HashtagCount:     getEnvInt("DEFAULT_HASHTAG_COUNT", 5),
			Language:         getEnvString("DEFAULT_LANGUAGE", "en"),
		},
		LayoutFile: getEnvString("LAYOUT_FILE", ""),
	}
}

// Validate checks the configuration and returns an error wrapping
// entity.ErrConfig when the application cannot start with it.
func (c Config) Validate() error {
	if c.Providers.OpenAIKey == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY is required", entity.ErrConfig)
	}
	if c.Providers.GeminiKey == "" {
		return fmt.Errorf("%w: GEMINI_API_KEY is required", entity.ErrConfig)
	}

	switch c.Providers.TextProvider {
	case ProviderOpenAI:
	case ProviderClaude:
		if c.Providers.AnthropicKey == "" {
			return fmt.Errorf("%w: ANTHROPIC_API_KEY is required when TEXT_PROVIDER=claude", entity.ErrConfig)
		}
	default:
		return fmt.Errorf("%w: unknown TEXT_PROVIDER %q", entity.ErrConfig, c.Providers.TextProvider)
	}

	switch c.Providers.ImageProvider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("%w: unknown IMAGE_PROVIDER %q", entity.ErrConfig, c.Providers.ImageProvider)
	}

	if c.Content.BulletWords < 5 || c.Content.BulletWords > 15 {
		return fmt.Errorf("%w: DEFAULT_BULLET_WORDS must be in [5, 15], got %d", entity.ErrConfig, c.Content.BulletWords)
	}
	if c.Content.DescriptionWords < 20 || c.Content.DescriptionWords > 70 {
		return fmt.Errorf("%w: DEFAULT_DESCRIPTION_WORDS must be in [20, 70], got %d", entity.ErrConfig, c.Content.DescriptionWords)
	}
	if c.Content.HashtagCount < 0 || c.Content.HashtagCount > 10 {
		return fmt.Errorf("%w: DEFAULT_HASHTAG_COUNT must be in [0, 10], got %d", entity.ErrConfig, c.Content.HashtagCount)
	}
	if c.Content.Language != "en" && c.Content.Language != "fr" {
		return fmt.Errorf("%w: DEFAULT_LANGUAGE must be \"en\" or \"fr\", got %q", entity.ErrConfig, c.Content.Language)
	}

	return nil
}
