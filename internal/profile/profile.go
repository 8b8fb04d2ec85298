package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidConfig marks a configuration the service cannot start with.
var ErrInvalidConfig = errors.New("invalid configuration")

// Profile is the configuration to start the officehours server.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory, used by the sqlite driver
	Data string
	// Driver is the knowledge store driver (memory, sqlite or postgres)
	Driver string
	// DSN points to the knowledge store database
	DSN string
	// Version is the current version of server
	Version string

	// AI Configuration
	AIEmbeddingProvider   string // OFFICEHOURS_AI_EMBEDDING_PROVIDER (default: upstage)
	AILLMProvider         string // OFFICEHOURS_AI_LLM_PROVIDER (default: upstage)
	AIUpstageAPIKey       string // OFFICEHOURS_AI_UPSTAGE_API_KEY (legacy: UPSTAGE_API_KEY)
	AIUpstageBaseURL      string // OFFICEHOURS_AI_UPSTAGE_BASE_URL (default: https://api.upstage.ai/v1)
	AIOpenAIAPIKey        string // OFFICEHOURS_AI_OPENAI_API_KEY (legacy: OPENAI_API_KEY)
	AIOpenAIBaseURL       string // OFFICEHOURS_AI_OPENAI_BASE_URL (default: https://api.openai.com/v1)
	AIEmbeddingModel      string // OFFICEHOURS_AI_EMBEDDING_MODEL (default: embedding-passage)
	AIEmbeddingQueryModel string // OFFICEHOURS_AI_EMBEDDING_QUERY_MODEL (default: embedding-query)
	AILLMModel            string // OFFICEHOURS_AI_LLM_MODEL (default: solar-pro2)

	// Time lookup
	TimeProvider     string // OFFICEHOURS_TIME_PROVIDER (default: timezonedb)
	TimeZoneDBAPIKey string // OFFICEHOURS_TIME_API_KEY (legacy: TIME_API_KEY)

	// Embedding cache; Redis is optional
	CacheRedisAddr string // OFFICEHOURS_CACHE_REDIS_ADDR

	// Per-client request rate limit on the HTTP API
	RateLimitPerSecond float64 // OFFICEHOURS_RATE_LIMIT_RPS (default: 10)
	RateLimitBurst     int     // OFFICEHOURS_RATE_LIMIT_BURST (default: 20)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads AI, time and cache configuration from environment variables.
// Supports both OFFICEHOURS_* and the bare legacy names such as UPSTAGE_API_KEY.
func (p *Profile) FromEnv() {
	getEnvWithFallback := func(newKey, legacyKey string) string {
		if val := os.Getenv(newKey); val != "" {
			return val
		}
		return os.Getenv(legacyKey)
	}

	p.AIEmbeddingProvider = getEnvOrDefault("OFFICEHOURS_AI_EMBEDDING_PROVIDER", "upstage")
	p.AILLMProvider = getEnvOrDefault("OFFICEHOURS_AI_LLM_PROVIDER", "upstage")
	p.AIUpstageAPIKey = getEnvWithFallback("OFFICEHOURS_AI_UPSTAGE_API_KEY", "UPSTAGE_API_KEY")
	p.AIUpstageBaseURL = getEnvOrDefault("OFFICEHOURS_AI_UPSTAGE_BASE_URL", "https://api.upstage.ai/v1")
	p.AIOpenAIAPIKey = getEnvWithFallback("OFFICEHOURS_AI_OPENAI_API_KEY", "OPENAI_API_KEY")
	p.AIOpenAIBaseURL = getEnvOrDefault("OFFICEHOURS_AI_OPENAI_BASE_URL", "https://api.openai.com/v1")
	p.AIEmbeddingModel = getEnvOrDefault("OFFICEHOURS_AI_EMBEDDING_MODEL", "embedding-passage")
	p.AIEmbeddingQueryModel = getEnvOrDefault("OFFICEHOURS_AI_EMBEDDING_QUERY_MODEL", "embedding-query")
	p.AILLMModel = getEnvOrDefault("OFFICEHOURS_AI_LLM_MODEL", "solar-pro2")

	p.TimeProvider = getEnvOrDefault("OFFICEHOURS_TIME_PROVIDER", "timezonedb")
	p.TimeZoneDBAPIKey = getEnvWithFallback("OFFICEHOURS_TIME_API_KEY", "TIME_API_KEY")

	p.CacheRedisAddr = os.Getenv("OFFICEHOURS_CACHE_REDIS_ADDR")

	p.RateLimitPerSecond = 10
	if v, err := strconv.ParseFloat(os.Getenv("OFFICEHOURS_RATE_LIMIT_RPS"), 64); err == nil && v > 0 {
		p.RateLimitPerSecond = v
	}
	p.RateLimitBurst = 20
	if v, err := strconv.Atoi(os.Getenv("OFFICEHOURS_RATE_LIMIT_BURST")); err == nil && v > 0 {
		p.RateLimitBurst = v
	}
}

// LLMAPIKey returns the API key of the configured LLM provider.
func (p *Profile) LLMAPIKey() string {
	if p.AILLMProvider == "openai" {
		return p.AIOpenAIAPIKey
	}
	return p.AIUpstageAPIKey
}

// EmbeddingAPIKey returns the API key of the configured embedding provider.
func (p *Profile) EmbeddingAPIKey() string {
	if p.AIEmbeddingProvider == "openai" {
		return p.AIOpenAIAPIKey
	}
	return p.AIUpstageAPIKey
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		absDir, err := filepath.Abs(dataDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func invalid(format string, args ...any) error {
	return errors.Wrap(ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate normalizes the profile and reports settings the server cannot start without.
// Every returned error wraps ErrInvalidConfig.
func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}
	if p.Driver == "" {
		p.Driver = "memory"
	}

	switch p.Driver {
	case "memory":
	case "sqlite":
		if p.Data == "" {
			p.Data = "."
		}
		dataDir, err := checkDataDir(p.Data)
		if err != nil {
			slog.Error("failed to check data dir", slog.String("data", p.Data), slog.String("error", err.Error()))
			return errors.Wrap(ErrInvalidConfig, err.Error())
		}
		p.Data = dataDir
		if p.DSN == "" {
			p.DSN = filepath.Join(dataDir, fmt.Sprintf("officehours_%s.db", p.Mode))
		}
	case "postgres":
		if p.DSN == "" {
			return invalid("dsn is required for the postgres driver")
		}
	default:
		return invalid("unknown driver %q: only memory, sqlite and postgres are supported", p.Driver)
	}

	for _, provider := range []string{p.AIEmbeddingProvider, p.AILLMProvider} {
		if provider != "upstage" && provider != "openai" {
			return invalid("unsupported AI provider %q", provider)
		}
	}
	if p.LLMAPIKey() == "" {
		return invalid("%s API key is required for the LLM provider", p.AILLMProvider)
	}
	if p.EmbeddingAPIKey() == "" {
		return invalid("%s API key is required for the embedding provider", p.AIEmbeddingProvider)
	}

	switch p.TimeProvider {
	case "timezonedb":
		if p.TimeZoneDBAPIKey == "" {
			return invalid("TIME_API_KEY is required for the timezonedb time provider")
		}
	case "system":
	default:
		return invalid("unknown time provider %q", p.TimeProvider)
	}

	return nil
}
