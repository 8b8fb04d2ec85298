package server

import (
	"context"
	"log/slog"

	"github.com/hrygo/officehours/internal/profile"
	"github.com/hrygo/officehours/plugin/ai"
	"github.com/hrygo/officehours/plugin/ai/aitime"
	"github.com/hrygo/officehours/plugin/ai/cache"
	"github.com/hrygo/officehours/plugin/ai/vector"
	aierrors "github.com/hrygo/officehours/server/internal/errors"
	"github.com/hrygo/officehours/server/internal/observability"
	"github.com/hrygo/officehours/server/retrieval"
	"github.com/hrygo/officehours/server/service/office"
	"github.com/hrygo/officehours/server/timezone"
	"github.com/hrygo/officehours/store"
	"github.com/hrygo/officehours/store/db"
)

// Components holds the collaborators shared by the HTTP server and the CLI.
type Components struct {
	Profile  *profile.Profile
	Office   *office.Service
	Resolver *timezone.Resolver
	Metrics  *observability.Metrics

	cache *cache.Service
	store *store.Store
}

// NewComponents validates the profile and builds the office service from it.
// Every failure is a CONFIGURATION_ERROR.
func NewComponents(ctx context.Context, profile *profile.Profile) (*Components, error) {
	if err := profile.Validate(); err != nil {
		return nil, aierrors.Configuration("invalid profile", err)
	}

	aiConfig := ai.NewConfigFromProfile(profile)
	if err := aiConfig.Validate(); err != nil {
		return nil, aierrors.Configuration("invalid AI configuration", err)
	}
	embedder, err := ai.NewEmbeddingService(&aiConfig.Embedding)
	if err != nil {
		return nil, aierrors.Configuration("failed to create embedding service", err)
	}
	llm, err := ai.NewLLMService(&aiConfig.LLM)
	if err != nil {
		return nil, aierrors.Configuration("failed to create LLM service", err)
	}

	timeService, err := newTimeService(profile)
	if err != nil {
		return nil, aierrors.Configuration("failed to create time service", err)
	}

	c := &Components{
		Profile:  profile,
		Resolver: timezone.NewDefaultResolver(),
		Metrics:  observability.NewMetrics(),
	}

	cacheConfig := cache.DefaultServiceConfig()
	cacheConfig.RedisAddr = profile.CacheRedisAddr
	c.cache = cache.NewService(cacheConfig)
	queryModel := aiConfig.Embedding.QueryModel
	if queryModel == "" {
		queryModel = aiConfig.Embedding.Model
	}
	embedder = ai.NewCachedEmbeddingService(embedder, c.cache, aiConfig.Embedding.Provider+"/"+queryModel, ai.DefaultEmbeddingCacheTTL)

	knowledge, err := c.newKnowledgeStore(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}

	retriever := retrieval.NewRetriever(embedder, knowledge, retrieval.DefaultTopK)
	c.Office, err = office.NewService(office.Config{
		Resolver:  c.Resolver,
		Retriever: retriever,
		Time:      timeService,
		Narrator:  office.NewLLMNarrator(llm),
		Embedder:  embedder,
		Store:     knowledge,
		Metrics:   c.Metrics,
	})
	if err != nil {
		c.Close()
		return nil, err
	}

	slog.Info("office service ready",
		slog.String("driver", profile.Driver),
		slog.Int("top_k", retriever.TopK()),
		slog.String("llm", aiConfig.LLM.Provider+"/"+aiConfig.LLM.Model),
		slog.String("embedding", aiConfig.Embedding.Provider+"/"+aiConfig.Embedding.Model),
		slog.String("time", profile.TimeProvider),
		slog.Bool("redis", profile.CacheRedisAddr != ""),
	)
	return c, nil
}

func newTimeService(profile *profile.Profile) (aitime.TimeService, error) {
	if profile.TimeProvider == "system" {
		return aitime.NewSystemService(), nil
	}
	return aitime.NewTimeZoneDBService(aitime.TimeZoneDBConfig{APIKey: profile.TimeZoneDBAPIKey})
}

// newKnowledgeStore opens the configured knowledge store and migrates it.
func (c *Components) newKnowledgeStore(ctx context.Context) (vector.Store, error) {
	if c.Profile.Driver == "memory" {
		return vector.NewMemoryStore(), nil
	}

	driver, err := db.NewDBDriver(c.Profile)
	if err != nil {
		return nil, aierrors.Configuration("failed to open knowledge store", err)
	}
	c.store = store.New(driver, c.Profile)
	if err := c.store.Migrate(ctx); err != nil {
		return nil, aierrors.Configuration("failed to migrate knowledge store", err)
	}
	return c.store, nil
}

// Close releases the database and cache connections.
func (c *Components) Close() error {
	var firstErr error
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			firstErr = err
		}
	}
	if c.cache != nil {
		if err := c.cache.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
