package profile

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"OFFICEHOURS_AI_EMBEDDING_PROVIDER",
	"OFFICEHOURS_AI_LLM_PROVIDER",
	"OFFICEHOURS_AI_UPSTAGE_API_KEY",
	"UPSTAGE_API_KEY",
	"OFFICEHOURS_AI_UPSTAGE_BASE_URL",
	"OFFICEHOURS_AI_OPENAI_API_KEY",
	"OPENAI_API_KEY",
	"OFFICEHOURS_AI_OPENAI_BASE_URL",
	"OFFICEHOURS_AI_EMBEDDING_MODEL",
	"OFFICEHOURS_AI_EMBEDDING_QUERY_MODEL",
	"OFFICEHOURS_AI_LLM_MODEL",
	"OFFICEHOURS_TIME_PROVIDER",
	"OFFICEHOURS_TIME_API_KEY",
	"TIME_API_KEY",
	"OFFICEHOURS_CACHE_REDIS_ADDR",
	"OFFICEHOURS_RATE_LIMIT_RPS",
	"OFFICEHOURS_RATE_LIMIT_BURST",
}

// clearEnv blanks every variable FromEnv reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	p := &Profile{}
	p.FromEnv()

	assert.Equal(t, "upstage", p.AIEmbeddingProvider)
	assert.Equal(t, "upstage", p.AILLMProvider)
	assert.Equal(t, "https://api.upstage.ai/v1", p.AIUpstageBaseURL)
	assert.Equal(t, "https://api.openai.com/v1", p.AIOpenAIBaseURL)
	assert.Equal(t, "embedding-passage", p.AIEmbeddingModel)
	assert.Equal(t, "embedding-query", p.AIEmbeddingQueryModel)
	assert.Equal(t, "solar-pro2", p.AILLMModel)
	assert.Equal(t, "timezonedb", p.TimeProvider)
	assert.Empty(t, p.CacheRedisAddr)
	assert.Equal(t, 10.0, p.RateLimitPerSecond)
	assert.Equal(t, 20, p.RateLimitBurst)
}

func TestFromEnv_LegacyKeys(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPSTAGE_API_KEY", "legacy-upstage")
	t.Setenv("TIME_API_KEY", "legacy-time")

	p := &Profile{}
	p.FromEnv()

	assert.Equal(t, "legacy-upstage", p.AIUpstageAPIKey)
	assert.Equal(t, "legacy-time", p.TimeZoneDBAPIKey)
}

func TestFromEnv_NewKeysWin(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPSTAGE_API_KEY", "legacy-upstage")
	t.Setenv("OFFICEHOURS_AI_UPSTAGE_API_KEY", "new-upstage")
	t.Setenv("OFFICEHOURS_RATE_LIMIT_RPS", "2.5")
	t.Setenv("OFFICEHOURS_RATE_LIMIT_BURST", "bogus")

	p := &Profile{}
	p.FromEnv()

	assert.Equal(t, "new-upstage", p.AIUpstageAPIKey)
	assert.Equal(t, 2.5, p.RateLimitPerSecond)
	assert.Equal(t, 20, p.RateLimitBurst)
}

func validProfile() *Profile {
	return &Profile{
		Mode:                "dev",
		Driver:              "memory",
		AIEmbeddingProvider: "upstage",
		AILLMProvider:       "upstage",
		AIUpstageAPIKey:     "up-key",
		TimeProvider:        "timezonedb",
		TimeZoneDBAPIKey:    "tz-key",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Profile)
		wantErr bool
	}{
		{name: "valid", mutate: func(p *Profile) {}},
		{name: "system time provider needs no key", mutate: func(p *Profile) {
			p.TimeProvider = "system"
			p.TimeZoneDBAPIKey = ""
		}},
		{name: "missing LLM key", mutate: func(p *Profile) { p.AIUpstageAPIKey = "" }, wantErr: true},
		{name: "openai LLM without openai key", mutate: func(p *Profile) { p.AILLMProvider = "openai" }, wantErr: true},
		{name: "missing time key", mutate: func(p *Profile) { p.TimeZoneDBAPIKey = "" }, wantErr: true},
		{name: "unknown time provider", mutate: func(p *Profile) { p.TimeProvider = "sundial" }, wantErr: true},
		{name: "unknown AI provider", mutate: func(p *Profile) { p.AILLMProvider = "ollama" }, wantErr: true},
		{name: "postgres without dsn", mutate: func(p *Profile) { p.Driver = "postgres" }, wantErr: true},
		{name: "unknown driver", mutate: func(p *Profile) { p.Driver = "mysql" }, wantErr: true},
		{name: "sqlite with missing data dir", mutate: func(p *Profile) {
			p.Driver = "sqlite"
			p.Data = "/definitely/not/here"
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(p)

			err := p.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfig))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidate_SqliteDefaultsDSN(t *testing.T) {
	p := validProfile()
	p.Driver = "sqlite"
	p.Data = t.TempDir()
	p.Mode = "weird"

	require.NoError(t, p.Validate())
	assert.Equal(t, "dev", p.Mode)
	assert.Contains(t, p.DSN, "officehours_dev.db")
}
