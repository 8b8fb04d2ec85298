package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestContext_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	reqCtx := NewRequestContextWithID(logger, "req-1", "query")
	reqCtx.Info("answered", slog.Int(LogFieldQueryLen, 12))
	reqCtx.Error("narration failed", errors.New("upstream 502"))

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"operation":"query"`)
	assert.Contains(t, out, `"query_length":12`)
	assert.Contains(t, out, `"error":"upstream 502"`)
}

func TestRequestContext_GeneratedID(t *testing.T) {
	reqCtx := NewRequestContextWithID(nil, "", "ingest")
	assert.NotEmpty(t, reqCtx.RequestID)
	assert.NotNil(t, reqCtx.Logger)
	assert.GreaterOrEqual(t, reqCtx.DurationMs(), int64(0))
}

func TestRequestContext_Context(t *testing.T) {
	reqCtx := NewRequestContext(slog.Default(), "query")
	ctx := WithRequestContext(context.Background(), reqCtx)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, reqCtx, got)

	assert.Same(t, reqCtx, FromContextOrNew(ctx, "other"))
	assert.Equal(t, "other", FromContextOrNew(context.Background(), "other").Operation)
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	m.RecordQuery(OutcomeAvailable, 0.3)
	m.RecordQuery(OutcomeAvailable, 0.2)
	m.RecordQuery(OutcomeUndetermined, 1.1)
	m.TimeLookupFailures.Inc()
	m.IngestedDocuments.Add(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Queries.WithLabelValues(OutcomeAvailable)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Queries.WithLabelValues(OutcomeUndetermined)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TimeLookupFailures))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.IngestedDocuments))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "officehours_queries_total")
	assert.Contains(t, rec.Body.String(), "officehours_query_duration_seconds")
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()
	a.NarrationFailures.Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.NarrationFailures))
}
