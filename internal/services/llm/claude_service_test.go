package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognita/internal/common"
)

func newClaudeTestService(t *testing.T, handler http.HandlerFunc) *ClaudeService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewClaudeService(common.ClaudeConfig{
		APIKey:    "test-key",
		BaseURL:   server.URL,
		Model:     "claude-haiku-3-5-20241022",
		MaxTokens: 1024,
	}, arbor.NewLogger())
	require.NoError(t, err)
	return svc
}

func TestClaudeComplete(t *testing.T) {
	svc := newClaudeTestService(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "claude-haiku-3-5-20241022", payload["model"])
		assert.Equal(t, float64(0), payload["temperature"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"model":       "claude-haiku-3-5-20241022",
			"stop_reason": "end_turn",
			"content": []map[string]interface{}{
				{"type": "text", "text": "Both are mammals."},
			},
			"usage": map[string]interface{}{"input_tokens": 10, "output_tokens": 5},
		})
	})

	answer, err := svc.Complete(context.Background(), "are cats mammals?")
	require.NoError(t, err)
	assert.Equal(t, "Both are mammals.", answer)
}

func TestClaudeComplete_SkipsNonTextBlocks(t *testing.T) {
	svc := newClaudeTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"model":       "claude-haiku-3-5-20241022",
			"stop_reason": "end_turn",
			"content": []map[string]interface{}{
				{"type": "thinking", "thinking": "internal notes"},
				{"type": "text", "text": "Final answer."},
			},
			"usage": map[string]interface{}{"input_tokens": 10, "output_tokens": 5},
		})
	})

	answer, err := svc.Complete(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "Final answer.", answer)
}

func TestClaudeComplete_EmptyContent(t *testing.T) {
	svc := newClaudeTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"model":       "claude-haiku-3-5-20241022",
			"stop_reason": "end_turn",
			"content":     []map[string]interface{}{},
			"usage":       map[string]interface{}{"input_tokens": 10, "output_tokens": 0},
		})
	})

	_, err := svc.Complete(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response")
}

func TestNewClaudeService_RequiresKey(t *testing.T) {
	_, err := NewClaudeService(common.ClaudeConfig{}, arbor.NewLogger())
	assert.Error(t, err)
}
