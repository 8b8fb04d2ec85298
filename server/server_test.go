package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/officehours/internal/profile"
	"github.com/hrygo/officehours/plugin/ai/aitime"
	"github.com/hrygo/officehours/plugin/ai/vector"
	aierrors "github.com/hrygo/officehours/server/internal/errors"
	"github.com/hrygo/officehours/server/internal/observability"
	"github.com/hrygo/officehours/server/retrieval"
	"github.com/hrygo/officehours/server/service/office"
	"github.com/hrygo/officehours/server/timezone"
)

type constEmbedder struct{}

func (constEmbedder) Embed(context.Context, string) ([]float32, error) { return []float32{1, 0}, nil }

func (constEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

func (constEmbedder) Dimensions() int { return 2 }

type echoNarrator struct{}

func (echoNarrator) Narrate(_ context.Context, req *office.NarrationRequest) (string, error) {
	return req.Decision.Reason, nil
}

func newTestServer(t *testing.T, rps float64, burst int) *Server {
	t.Helper()

	prof := &profile.Profile{Mode: "dev", Driver: "memory", RateLimitPerSecond: rps, RateLimitBurst: burst}
	knowledge := vector.NewMemoryStore()
	times := aitime.NewMockTimeService()
	times.Times["Asia/Seoul"] = &aitime.CurrentTime{Datetime: "2026-10-19 10:00:00", Timezone: "Asia/Seoul", UTCOffset: 9 * 3600}

	components := &Components{
		Profile:  prof,
		Resolver: timezone.NewDefaultResolver(),
		Metrics:  observability.NewMetrics(),
	}
	svc, err := office.NewService(office.Config{
		Resolver:  components.Resolver,
		Retriever: retrieval.NewRetriever(constEmbedder{}, knowledge, 0),
		Time:      times,
		Narrator:  echoNarrator{},
		Embedder:  constEmbedder{},
		Store:     knowledge,
		Metrics:   components.Metrics,
	})
	require.NoError(t, err)
	components.Office = svc

	s, err := NewServer(context.Background(), prof, components)
	require.NoError(t, err)
	return s
}

func serve(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestServer_IngestThenQuery(t *testing.T) {
	s := newTestServer(t, 100, 100)

	rec := serve(s, http.MethodPost, "/knowledge",
		`[{"office_name":"서울 지사","timezone":"Asia/Seoul","country":"South Korea","description":"근무 시간: 09:00~18:00\n점심시간: 12:00~13:00"}]`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"status":"success","count":1}`, rec.Body.String())

	rec = serve(s, http.MethodPost, "/query", `{"query":"서울 지사에 지금 전화해도 돼?"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"ai_message":"근무 시간 내이며 점심시간이 아닙니다."}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = serve(s, http.MethodGet, "/debug/vector", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"vector ok","documents":1,"dimensions":2,"driver":"memory"}`, rec.Body.String())

	rec = serve(s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `officehours_queries_total{outcome="available"} 1`)
	assert.Contains(t, rec.Body.String(), "officehours_ingested_documents_total 1")
}

func TestServer_RateLimit(t *testing.T) {
	s := newTestServer(t, 0.001, 1)

	rec := serve(s, http.MethodPost, "/query", `{"query":"본사"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(s, http.MethodPost, "/query", `{"query":"본사"}`)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), string(aierrors.ErrCodeRateLimitExceeded))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/health", "").Code)
		assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/metrics", "").Code)
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	s := newTestServer(t, 100, 100)
	s.Profile.Addr = "127.0.0.1"
	s.Profile.Port = 0

	require.NoError(t, s.Start(context.Background()))
	addr := s.echoServer.Listener.Addr().String()

	resp, err := http.Get("http://" + addr + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	s.Shutdown(context.Background())
	_, err = http.Get("http://" + addr + "/health")
	assert.Error(t, err)
}

func TestNewComponents_InvalidProfile(t *testing.T) {
	_, err := NewComponents(context.Background(), &profile.Profile{Driver: "postgres"})
	require.Error(t, err)
	assert.True(t, aierrors.IsCode(err, aierrors.ErrCodeConfiguration))
}
