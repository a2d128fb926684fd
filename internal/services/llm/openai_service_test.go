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

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAIService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewOpenAIService(common.OpenAIConfig{
		APIKey:          "test-key",
		BaseURL:         server.URL,
		CompletionModel: "gpt-4o-mini",
	}, arbor.NewLogger())
	require.NoError(t, err)
	return svc
}

func TestComplete(t *testing.T) {
	svc := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.Zero(t, req.Temperature)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "grounded answer"}},
			},
		})
	})

	answer, err := svc.Complete(context.Background(), "What happened?")
	require.NoError(t, err)
	assert.Equal(t, "grounded answer", answer)
}

func TestComplete_APIError(t *testing.T) {
	svc := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "rate limited", "type": "rate_limit_error"},
		})
	})

	_, err := svc.Complete(context.Background(), "query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestComplete_NoChoices(t *testing.T) {
	svc := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	})

	_, err := svc.Complete(context.Background(), "query")
	assert.Error(t, err)
}

func TestNewOpenAIService_RequiresKey(t *testing.T) {
	_, err := NewOpenAIService(common.OpenAIConfig{}, arbor.NewLogger())
	assert.Error(t, err)
}

func TestNewService_Factory(t *testing.T) {
	cfg := common.NewDefaultConfig()
	cfg.OpenAI.APIKey = "sk-test"

	svc, err := NewService(cfg, arbor.NewLogger())
	require.NoError(t, err)
	assert.Equal(t, "openai", svc.ProviderName())

	cfg.LLM.DefaultProvider = "bogus"
	_, err = NewService(cfg, arbor.NewLogger())
	assert.Error(t, err)
}
