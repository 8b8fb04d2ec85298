package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/hrygo/officehours/internal/profile"
	"github.com/hrygo/officehours/plugin/ai/vector"
)

// Store provides database access to all raw objects.
// It satisfies vector.Store for the sqlite and postgres drivers.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) Close() error {
	return s.driver.Close()
}

// Add stores documents in one transaction. Every document gets a fresh id,
// so the same text ingested twice is stored twice.
func (s *Store) Add(ctx context.Context, docs []string, embeddings [][]float32, metas []vector.DocumentMetadata) error {
	if err := vector.CheckBatch(docs, embeddings, metas); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}

	now := time.Now().Unix()
	creates := make([]*OfficeDocument, len(docs))
	for i := range docs {
		creates[i] = &OfficeDocument{
			ID:         uuid.NewString(),
			Content:    docs[i],
			OfficeName: metas[i].OfficeName,
			Timezone:   metas[i].Timezone,
			Country:    metas[i].Country,
			Embedding:  embeddings[i],
			CreatedTs:  now,
		}
	}

	if err := s.driver.CreateOfficeDocuments(ctx, creates); err != nil {
		return errors.Wrap(err, "failed to add office documents")
	}
	return nil
}

// Query returns the topK documents closest to embedding.
func (s *Store) Query(ctx context.Context, embedding []float32, topK int) ([]vector.RetrievedDocument, error) {
	if topK <= 0 {
		return []vector.RetrievedDocument{}, nil
	}

	hits, err := s.driver.SearchOfficeDocuments(ctx, &SearchOfficeDocument{
		Vector: embedding,
		Limit:  topK,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to query office documents")
	}

	results := make([]vector.RetrievedDocument, 0, len(hits))
	for _, hit := range hits {
		results = append(results, vector.RetrievedDocument{
			Text: hit.Document.Content,
			Metadata: vector.DocumentMetadata{
				OfficeName: hit.Document.OfficeName,
				Timezone:   hit.Document.Timezone,
				Country:    hit.Document.Country,
			},
			Score: hit.Score,
		})
	}
	return results, nil
}

// Stats reports the number of stored documents.
func (s *Store) Stats(ctx context.Context) (*vector.Stats, error) {
	stats, err := s.driver.GetOfficeDocumentStats(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get office document stats")
	}
	return &vector.Stats{
		Documents:  stats.Count,
		Dimensions: stats.Dimensions,
		Driver:     s.profile.Driver,
	}, nil
}

// Ensure Store implements vector.Store
var _ vector.Store = (*Store)(nil)
