package ai

import (
	"errors"

	"github.com/hrygo/officehours/internal/profile"
)

// Config represents AI configuration.
type Config struct {
	Embedding EmbeddingConfig
	LLM       LLMConfig
}

// EmbeddingConfig represents vector embedding configuration.
type EmbeddingConfig struct {
	Provider   string // upstage, openai
	Model      string // passage model used for stored documents
	QueryModel string // query model used for search keys; falls back to Model
	Dimensions int    // reported dimension; 0 leaves it to the provider
	APIKey     string
	BaseURL    string
}

// LLMConfig represents LLM configuration.
type LLMConfig struct {
	Provider    string // upstage, openai
	Model       string // solar-pro2
	APIKey      string
	BaseURL     string
	MaxTokens   int     // default: 300
	Temperature float32 // default: 0.2
}

// NewConfigFromProfile creates AI config from profile.
func NewConfigFromProfile(p *profile.Profile) *Config {
	cfg := &Config{}

	cfg.Embedding = EmbeddingConfig{
		Provider:   p.AIEmbeddingProvider,
		Model:      p.AIEmbeddingModel,
		QueryModel: p.AIEmbeddingQueryModel,
		Dimensions: 4096,
		APIKey:     p.EmbeddingAPIKey(),
	}
	switch p.AIEmbeddingProvider {
	case "upstage":
		cfg.Embedding.BaseURL = p.AIUpstageBaseURL
	case "openai":
		cfg.Embedding.BaseURL = p.AIOpenAIBaseURL
		cfg.Embedding.Dimensions = 1536
	}

	cfg.LLM = LLMConfig{
		Provider:    p.AILLMProvider,
		Model:       p.AILLMModel,
		APIKey:      p.LLMAPIKey(),
		MaxTokens:   300,
		Temperature: 0.2,
	}
	switch p.AILLMProvider {
	case "upstage":
		cfg.LLM.BaseURL = p.AIUpstageBaseURL
	case "openai":
		cfg.LLM.BaseURL = p.AIOpenAIBaseURL
	}

	return cfg
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Embedding.Provider == "" {
		return errors.New("embedding provider is required")
	}
	if c.Embedding.APIKey == "" {
		return errors.New("embedding API key is required")
	}
	if c.Embedding.Model == "" {
		return errors.New("embedding model is required")
	}
	if c.LLM.Provider == "" {
		return errors.New("LLM provider is required")
	}
	if c.LLM.APIKey == "" {
		return errors.New("LLM API key is required")
	}
	return nil
}
