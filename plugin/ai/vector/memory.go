package vector

import (
	"context"
	"math"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store. Contents are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []memoryEntry
}

type memoryEntry struct {
	text     string
	vector   []float32
	metadata DocumentMetadata
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Add appends documents. Identical documents are kept as separate entries.
func (m *MemoryStore) Add(ctx context.Context, docs []string, embeddings [][]float32, metas []DocumentMetadata) error {
	if err := CheckBatch(docs, embeddings, metas); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range docs {
		vec := make([]float32, len(embeddings[i]))
		copy(vec, embeddings[i])
		m.entries = append(m.entries, memoryEntry{
			text:     docs[i],
			vector:   vec,
			metadata: metas[i],
		})
	}
	return nil
}

// Query performs brute-force cosine similarity search.
func (m *MemoryStore) Query(ctx context.Context, embedding []float32, topK int) ([]RetrievedDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]RetrievedDocument, 0, len(m.entries))
	for _, e := range m.entries {
		results = append(results, RetrievedDocument{
			Text:     e.text,
			Metadata: e.metadata,
			Score:    CosineSimilarity(embedding, e.vector),
		})
	}

	return TopK(results, topK), nil
}

// Stats reports the number of stored documents.
func (m *MemoryStore) Stats(ctx context.Context) (*Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &Stats{Documents: len(m.entries), Driver: "memory"}
	if len(m.entries) > 0 {
		stats.Dimensions = len(m.entries[0].vector)
	}
	return stats, nil
}

// TopK sorts results by score descending, keeping insertion order among ties,
// and truncates to k. A non-positive k returns nothing.
func TopK(results []RetrievedDocument, k int) []RetrievedDocument {
	if k <= 0 {
		return []RetrievedDocument{}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if k < len(results) {
		results = results[:k]
	}
	return results
}

// CosineSimilarity calculates the cosine similarity between two vectors.
// Vectors of different length or zero norm score 0.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return float32(dotProduct / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
