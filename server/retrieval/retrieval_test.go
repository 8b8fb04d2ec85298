package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/officehours/plugin/ai/vector"
	aierrors "github.com/hrygo/officehours/server/internal/errors"
)

func TestBuildContext(t *testing.T) {
	tests := []struct {
		name string
		docs []vector.RetrievedDocument
		want string
	}{
		{
			name: "empty",
			docs: nil,
			want: "",
		},
		{
			name: "single document",
			docs: []vector.RetrievedDocument{{
				Text:     "서울 지사의 근무 규정:\n근무 시간: 09:00~18:00",
				Metadata: vector.DocumentMetadata{OfficeName: "서울 지사", Country: "South Korea", Timezone: "Asia/Seoul"},
			}},
			want: "[서울 지사 | South Korea | Asia/Seoul]\n서울 지사의 근무 규정:\n근무 시간: 09:00~18:00",
		},
		{
			name: "missing metadata",
			docs: []vector.RetrievedDocument{{Text: "rules"}},
			want: "[Unknown Office |  | ]\nrules",
		},
		{
			name: "order preserved and duplicates kept",
			docs: []vector.RetrievedDocument{
				{Text: "b", Metadata: vector.DocumentMetadata{OfficeName: "B"}},
				{Text: "a", Metadata: vector.DocumentMetadata{OfficeName: "A"}},
				{Text: "a", Metadata: vector.DocumentMetadata{OfficeName: "A"}},
			},
			want: "[B |  | ]\nb\n\n[A |  | ]\na\n\n[A |  | ]\na",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildContext(tt.docs))
		})
	}
}

type stubEmbedder struct {
	err  error
	keys []string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.keys = append(s.keys, text)
	if s.err != nil {
		return nil, s.err
	}
	if text == "Asia/Seoul" {
		return []float32{1, 0}, nil
	}
	return []float32{0, 1}, nil
}

func (s *stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	return nil, errors.New("not used")
}

func (s *stubEmbedder) Dimensions() int { return 2 }

type failingStore struct{ vector.Store }

func (failingStore) Query(context.Context, []float32, int) ([]vector.RetrievedDocument, error) {
	return nil, errors.New("connection reset")
}

func seededStore(t *testing.T) *vector.MemoryStore {
	t.Helper()
	store := vector.NewMemoryStore()
	metas := make([]vector.DocumentMetadata, 5)
	docs := make([]string, 5)
	vecs := make([][]float32, 5)
	for i := range docs {
		docs[i] = "doc"
		vecs[i] = []float32{1, float32(i) / 10}
		metas[i] = vector.DocumentMetadata{OfficeName: "서울 지사", Timezone: "Asia/Seoul"}
	}
	require.NoError(t, store.Add(context.Background(), docs, vecs, metas))
	return store
}

func TestRetriever_Retrieve(t *testing.T) {
	embedder := &stubEmbedder{}
	r := NewRetriever(embedder, seededStore(t), 0)
	assert.Equal(t, DefaultTopK, r.TopK())

	docs, err := r.Retrieve(context.Background(), "Asia/Seoul")
	require.NoError(t, err)
	assert.Len(t, docs, 3)
	assert.Equal(t, []string{"Asia/Seoul"}, embedder.keys)
}

func TestRetriever_EmbedError(t *testing.T) {
	r := NewRetriever(&stubEmbedder{err: errors.New("401 unauthorized")}, seededStore(t), 3)

	_, err := r.Retrieve(context.Background(), "Asia/Seoul")
	require.Error(t, err)
	assert.True(t, aierrors.IsCode(err, aierrors.ErrCodeRetrieval))
}

func TestRetriever_StoreError(t *testing.T) {
	r := NewRetriever(&stubEmbedder{}, failingStore{}, 3)

	_, err := r.Retrieve(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, aierrors.IsCode(err, aierrors.ErrCodeRetrieval))
	assert.Contains(t, err.Error(), "connection reset")
}
