package retrieval

import (
	"context"
	"log/slog"
	"time"

	"github.com/hrygo/officehours/plugin/ai"
	"github.com/hrygo/officehours/plugin/ai/vector"
	aierrors "github.com/hrygo/officehours/server/internal/errors"
)

// DefaultTopK is the number of documents retrieved per query.
const DefaultTopK = 3

// Retriever embeds a search key and looks it up in the knowledge store.
type Retriever struct {
	embedder ai.EmbeddingService
	store    vector.Store
	topK     int
}

// NewRetriever creates a Retriever. A non-positive topK uses DefaultTopK.
func NewRetriever(embedder ai.EmbeddingService, store vector.Store, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{
		embedder: embedder,
		store:    store,
		topK:     topK,
	}
}

// TopK returns the configured result size.
func (r *Retriever) TopK() int {
	return r.topK
}

// Retrieve returns the documents most similar to key.
// Failures are returned as RETRIEVAL_ERROR.
func (r *Retriever) Retrieve(ctx context.Context, key string) ([]vector.RetrievedDocument, error) {
	start := time.Now()

	embedding, err := r.embedder.Embed(ctx, key)
	if err != nil {
		return nil, aierrors.Wrap(err, aierrors.ErrCodeRetrieval, "embed search key")
	}

	docs, err := r.store.Query(ctx, embedding, r.topK)
	if err != nil {
		return nil, aierrors.Wrap(err, aierrors.ErrCodeRetrieval, "query knowledge store")
	}

	slog.Debug("retrieved office documents",
		slog.String("key", key),
		slog.Int("count", len(docs)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return docs, nil
}
