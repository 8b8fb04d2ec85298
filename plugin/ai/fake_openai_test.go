package ai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeOpenAI is an OpenAI-compatible server covering the embeddings and
// chat completion endpoints.
type fakeOpenAI struct {
	mu          sync.Mutex
	embedCalls  int
	lastModel   string
	lastChat    map[string]any
	chatReply   string
	failStatus  int
	reverseData bool
}

func newFakeOpenAI(t *testing.T) (*fakeOpenAI, *httptest.Server) {
	t.Helper()
	f := &fakeOpenAI{chatReply: "근무 중입니다."}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeOpenAI) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failStatus != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.failStatus)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream failure","type":"server_error"}}`))
		return
	}

	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Path {
	case "/embeddings":
		f.embedCalls++
		f.lastModel, _ = body["model"].(string)
		inputs, _ := body["input"].([]any)
		data := make([]map[string]any, len(inputs))
		for i := range inputs {
			idx := i
			if f.reverseData {
				idx = len(inputs) - 1 - i
			}
			data[i] = map[string]any{
				"object":    "embedding",
				"index":     idx,
				"embedding": []float32{float32(idx), 1},
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  f.lastModel,
		})
	case "/chat/completions":
		f.lastChat = body
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": f.chatReply},
				"finish_reason": "stop",
			}},
		})
	default:
		http.NotFound(w, r)
	}
}
