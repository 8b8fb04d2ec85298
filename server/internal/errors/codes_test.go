package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAIError_Error(t *testing.T) {
	cause := stderrors.New("connection refused")

	err := Retrieval("query knowledge store", cause)
	assert.Equal(t, "[RETRIEVAL_ERROR] query knowledge store: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	err = InvalidArgument("query is required")
	assert.Equal(t, "[INVALID_ARGUMENT] query is required", err.Error())
}

func TestIsCode_Wrapped(t *testing.T) {
	err := fmt.Errorf("answer: %w", TimeProvider("Asia/Seoul", stderrors.New("status FAILED")))

	assert.True(t, IsCode(err, ErrCodeTimeProvider))
	assert.False(t, IsCode(err, ErrCodeRetrieval))
	assert.False(t, IsCode(stderrors.New("plain"), ErrCodeRetrieval))
}

func TestTimeProvider_CarriesTimezone(t *testing.T) {
	err := TimeProvider("Asia/Tokyo", stderrors.New("dial tcp: i/o timeout"))
	assert.Equal(t, "Asia/Tokyo", err.Context["timezone"])
	assert.Equal(t, "[TIME_PROVIDER_ERROR] time lookup failed for Asia/Tokyo: dial tcp: i/o timeout", err.Error())
}

func TestWrap_ContextErrors(t *testing.T) {
	assert.Equal(t, ErrCodeContextCanceled, Wrap(context.Canceled, ErrCodeRetrieval, "x").Code)
	assert.Equal(t, ErrCodeTimeout, Wrap(fmt.Errorf("embed: %w", context.DeadlineExceeded), ErrCodeRetrieval, "x").Code)
	assert.Equal(t, ErrCodeRetrieval, Wrap(stderrors.New("boom"), ErrCodeRetrieval, "x").Code)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{InvalidArgument("bad"), http.StatusBadRequest},
		{RateLimitExceeded("slow down"), http.StatusTooManyRequests},
		{Retrieval("store", nil), http.StatusInternalServerError},
		{Configuration("missing key", nil), http.StatusInternalServerError},
		{Wrap(context.DeadlineExceeded, ErrCodeRetrieval, "x"), http.StatusGatewayTimeout},
		{Wrap(context.Canceled, ErrCodeRetrieval, "x"), 499},
		{stderrors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}
