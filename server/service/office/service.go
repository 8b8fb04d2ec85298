package office

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/hrygo/officehours/plugin/ai"
	"github.com/hrygo/officehours/plugin/ai/aitime"
	"github.com/hrygo/officehours/plugin/ai/availability"
	"github.com/hrygo/officehours/plugin/ai/vector"
	aierrors "github.com/hrygo/officehours/server/internal/errors"
	"github.com/hrygo/officehours/server/internal/observability"
	"github.com/hrygo/officehours/server/retrieval"
	"github.com/hrygo/officehours/server/timezone"
)

// narrationErrorPrefix starts the message returned in place of a narration
// when the LLM call fails.
const narrationErrorPrefix = "Error generating response: "

// Retriever finds the rule documents for a search key.
type Retriever interface {
	Retrieve(ctx context.Context, key string) ([]vector.RetrievedDocument, error)
}

// Config wires the collaborators of a Service.
type Config struct {
	Resolver  *timezone.Resolver
	Retriever Retriever
	Time      aitime.TimeService
	Engine    *availability.Engine
	Narrator  Narrator

	// Ingestion side.
	Embedder ai.EmbeddingService
	Store    vector.Store

	// Metrics is optional.
	Metrics *observability.Metrics
}

// Service implements OfficeService.
type Service struct {
	resolver  *timezone.Resolver
	retriever Retriever
	time      aitime.TimeService
	engine    *availability.Engine
	narrator  Narrator
	embedder  ai.EmbeddingService
	store     vector.Store
	metrics   *observability.Metrics
}

// NewService creates a Service. Resolver and Engine default to the built-in
// region table and the Korean rule format.
func NewService(cfg Config) (*Service, error) {
	if cfg.Retriever == nil || cfg.Time == nil || cfg.Narrator == nil || cfg.Embedder == nil || cfg.Store == nil {
		return nil, aierrors.Configuration("office service is missing a collaborator", nil)
	}
	if cfg.Resolver == nil {
		cfg.Resolver = timezone.NewDefaultResolver()
	}
	if cfg.Engine == nil {
		cfg.Engine = availability.NewKoreanEngine()
	}

	return &Service{
		resolver:  cfg.Resolver,
		retriever: cfg.Retriever,
		time:      cfg.Time,
		engine:    cfg.Engine,
		narrator:  cfg.Narrator,
		embedder:  cfg.Embedder,
		store:     cfg.Store,
		metrics:   cfg.Metrics,
	}, nil
}

// Answer runs one query end to end. Only a retrieval failure fails the call:
// a failed time lookup degrades to an undetermined decision, and a failed
// narration is reported inside the message.
// A caller abort does not cancel the remote calls; each adapter bounds its
// own call with a timeout.
func (s *Service) Answer(ctx context.Context, query string) (*Answer, error) {
	reqCtx := observability.FromContextOrNew(ctx, "query")
	start := time.Now()
	ctx = context.WithoutCancel(ctx)

	tz, found := s.resolver.ResolveTimezone(query)
	searchKey := query
	if found {
		searchKey = tz
	} else if s.metrics != nil {
		s.metrics.UnresolvedRegions.Inc()
	}

	docs, err := s.retriever.Retrieve(ctx, searchKey)
	if err != nil {
		reqCtx.Error("retrieval failed", err,
			slog.String(observability.LogFieldErrorCode, string(aierrors.GetCodeFromError(err, aierrors.ErrCodeRetrieval))))
		s.recordQuery(observability.OutcomeError, start)
		return nil, err
	}
	contextText := retrieval.BuildContext(docs)

	var (
		timeInfo *aitime.TimeInfo
		decision availability.Decision
		outcome  string
	)
	if found {
		var local time.Time
		timeInfo, local, err = s.lookupTime(ctx, tz)
		if err != nil {
			reqCtx.Warn("time lookup failed, answering without local time",
				slog.String(observability.LogFieldTimezone, tz),
				slog.String("error", err.Error()))
			if s.metrics != nil {
				s.metrics.TimeLookupFailures.Inc()
			}
		} else {
			decision = s.engine.Decide(contextText, local)
		}
	}
	if timeInfo == nil {
		decision = s.engine.Undetermined()
		outcome = observability.OutcomeUndetermined
	} else if decision.Available {
		outcome = observability.OutcomeAvailable
	} else {
		outcome = observability.OutcomeUnavailable
	}

	message, err := s.narrator.Narrate(ctx, &NarrationRequest{
		Query:    query,
		Context:  contextText,
		TimeInfo: timeInfo,
		Decision: decision,
	})
	if err != nil {
		reqCtx.Error("narration failed", aierrors.Narration(err))
		if s.metrics != nil {
			s.metrics.NarrationFailures.Inc()
		}
		message = narrationErrorPrefix + err.Error()
	}

	reqCtx.Info("query answered",
		slog.Int(observability.LogFieldQueryLen, utf8.RuneCountInString(query)),
		slog.String(observability.LogFieldTimezone, tz),
		slog.Int("documents", len(docs)),
		slog.Bool("available", decision.Available),
		slog.Int64(observability.LogFieldDuration, time.Since(start).Milliseconds()),
	)
	s.recordQuery(outcome, start)

	return &Answer{
		AIMessage: message,
		Decision:  decision,
		TimeInfo:  timeInfo,
	}, nil
}

// lookupTime fetches the current local time of tz. The returned error is a
// TIME_PROVIDER_ERROR.
func (s *Service) lookupTime(ctx context.Context, tz string) (*aitime.TimeInfo, time.Time, error) {
	current, err := s.time.Now(ctx, tz)
	if err != nil {
		return nil, time.Time{}, aierrors.TimeProvider(tz, err)
	}
	local, err := current.Local()
	if err != nil {
		return nil, time.Time{}, aierrors.TimeProvider(tz, err)
	}
	return &aitime.TimeInfo{
		Region:   s.resolver.DisplayName(tz),
		Timezone: tz,
		Datetime: current.Datetime,
	}, local, nil
}

func (s *Service) recordQuery(outcome string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordQuery(outcome, time.Since(start).Seconds())
	}
}

// Ingest embeds and stores every item in one batch and returns the number
// stored. Identical items are stored again.
func (s *Service) Ingest(ctx context.Context, items []KnowledgeItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	reqCtx := observability.FromContextOrNew(ctx, "ingest")

	docs := make([]string, len(items))
	metas := make([]vector.DocumentMetadata, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return 0, aierrors.InvalidArgument(fmt.Sprintf("item %d: %v", i, err))
		}
		docs[i] = item.Document()
		metas[i] = item.Metadata()
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, docs)
	if err != nil {
		reqCtx.Error("embedding knowledge failed", err)
		return 0, aierrors.Wrap(err, aierrors.ErrCodeRetrieval, "embed knowledge")
	}

	if err := s.store.Add(ctx, docs, embeddings, metas); err != nil {
		reqCtx.Error("storing knowledge failed", err)
		return 0, aierrors.Wrap(err, aierrors.ErrCodeRetrieval, "store knowledge")
	}

	if s.metrics != nil {
		s.metrics.IngestedDocuments.Add(float64(len(docs)))
	}
	reqCtx.Info("knowledge ingested", slog.Int("count", len(docs)))
	return len(docs), nil
}

// Stats reports the knowledge store contents.
func (s *Service) Stats(ctx context.Context) (*vector.Stats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, aierrors.Wrap(err, aierrors.ErrCodeRetrieval, "read knowledge store stats")
	}
	return stats, nil
}

// Regions returns the configured region table.
func (s *Service) Regions() []timezone.Region {
	return s.resolver.Regions()
}

var _ OfficeService = (*Service)(nil)
