package ai

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLLMService tests service creation.
func TestNewLLMService(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *LLMConfig
		expectError bool
	}{
		{
			name: "Upstage config",
			cfg: &LLMConfig{
				Provider:    "upstage",
				Model:       "solar-pro2",
				APIKey:      "test-key",
				BaseURL:     "https://api.upstage.ai/v1",
				MaxTokens:   300,
				Temperature: 0.2,
			},
		},
		{
			name: "OpenAI config",
			cfg: &LLMConfig{
				Provider: "openai",
				Model:    "gpt-4o-mini",
				APIKey:   "test-key",
			},
		},
		{
			name:        "Unsupported provider",
			cfg:         &LLMConfig{Provider: "deepseek"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLLMService(tt.cfg)
			if (err != nil) != tt.expectError {
				t.Errorf("NewLLMService() error = %v, expectError %v", err, tt.expectError)
			}
		})
	}
}

func TestLLMService_Chat(t *testing.T) {
	fake, srv := newFakeOpenAI(t)
	svc, err := NewLLMService(&LLMConfig{
		Provider:    "upstage",
		Model:       "solar-pro2",
		APIKey:      "test-key",
		BaseURL:     srv.URL,
		MaxTokens:   300,
		Temperature: 0.2,
	})
	require.NoError(t, err)

	reply, err := svc.Chat(context.Background(), FormatMessages("system", "질문"))
	require.NoError(t, err)
	assert.Equal(t, "근무 중입니다.", reply)

	assert.Equal(t, "solar-pro2", fake.lastChat["model"])
	assert.EqualValues(t, 300, fake.lastChat["max_tokens"])
	assert.InDelta(t, 0.2, fake.lastChat["temperature"], 1e-6)
	msgs, ok := fake.lastChat["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, msgs, 2)
}

func TestLLMService_ChatError(t *testing.T) {
	fake, srv := newFakeOpenAI(t)
	fake.failStatus = http.StatusBadGateway
	svc, err := NewLLMService(&LLMConfig{Provider: "upstage", Model: "solar-pro2", APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = svc.Chat(context.Background(), FormatMessages("", "hi"))
	assert.Error(t, err)
}

func TestFormatMessages(t *testing.T) {
	msgs := FormatMessages("", "hello")
	require.Len(t, msgs, 1)
	assert.Equal(t, "user", msgs[0].Role)

	msgs = FormatMessages("sys", "hello")
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Equal(t, "hello", msgs[1].Content)
}
