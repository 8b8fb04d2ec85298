// Package vector defines the knowledge store contract used for retrieval.
package vector

import (
	"context"
	"errors"
)

// ErrLengthMismatch is returned by Add when docs, embeddings and metadata
// do not line up one to one.
var ErrLengthMismatch = errors.New("documents, embeddings and metadata must have the same length")

// Store is an append-only similarity store of office rule documents.
type Store interface {
	// Add stores documents with their embeddings and metadata. All or nothing.
	Add(ctx context.Context, docs []string, embeddings [][]float32, metas []DocumentMetadata) error

	// Query returns at most topK documents ordered by similarity, most similar first.
	Query(ctx context.Context, embedding []float32, topK int) ([]RetrievedDocument, error)

	// Stats reports the store size.
	Stats(ctx context.Context) (*Stats, error)
}

// DocumentMetadata is the office attached to a stored document.
type DocumentMetadata struct {
	OfficeName string `json:"office_name"`
	Timezone   string `json:"timezone"`
	Country    string `json:"country"`
}

// RetrievedDocument is a query hit.
type RetrievedDocument struct {
	Text     string           `json:"text"`
	Metadata DocumentMetadata `json:"metadata"`
	Score    float32          `json:"score"` // cosine similarity
}

// Stats describes store contents.
type Stats struct {
	Documents  int    `json:"documents"`
	Dimensions int    `json:"dimensions"` // 0 when empty
	Driver     string `json:"driver"`
}

// CheckBatch validates Add arguments.
func CheckBatch(docs []string, embeddings [][]float32, metas []DocumentMetadata) error {
	if len(docs) != len(embeddings) || len(docs) != len(metas) {
		return ErrLengthMismatch
	}
	return nil
}
