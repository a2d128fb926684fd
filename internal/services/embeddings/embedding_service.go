package embeddings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/cognita/internal/common"
	"github.com/ternarybob/cognita/internal/interfaces"
	"github.com/ternarybob/cognita/internal/models"
)

const (
	// DefaultBaseURL is the OpenAI API base URL.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultRateLimit is the default request rate to the embeddings
	// endpoint (requests per second).
	DefaultRateLimit = 10
)

// Service generates embeddings via the OpenAI embeddings API.
// Repeated identical text re-embeds; there is no local cache.
type Service struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	dimension  int
	limiter    *rate.Limiter
	logger     arbor.ILogger
}

// embeddingRequest is the OpenAI API request format
type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

// embeddingResponse is the OpenAI API response format
type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewService creates a new OpenAI embedding service
func NewService(cfg common.OpenAIConfig, logger arbor.ILogger) interfaces.EmbeddingService {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := common.DurationOrDefault(cfg.Timeout, 60*time.Second)

	return &Service{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.EmbeddingModel,
		dimension:  cfg.Dimension,
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:     logger,
	}
}

// GenerateEmbedding creates a vector embedding for text. Network, auth,
// rate-limit and oversize failures all surface as one error class; the
// caller decides whether to retry.
func (s *Service) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("embed: %w", models.ErrEmptyContent)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}

	reqBody, err := json.Marshal(embeddingRequest{
		Model: s.model,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("embed: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/embeddings", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("embed: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embed: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("embed: read response: %w", err)
	}

	var embedResp embeddingResponse
	if err := json.Unmarshal(body, &embedResp); err != nil {
		return nil, fmt.Errorf("embed: decode response (status %d): %w", resp.StatusCode, err)
	}

	if embedResp.Error != nil {
		return nil, fmt.Errorf("embed: api error: %s", embedResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embed: api returned status %d: %s", resp.StatusCode, string(body))
	}
	if len(embedResp.Data) == 0 {
		return nil, fmt.Errorf("embed: no embedding returned")
	}

	embedding := embedResp.Data[0].Embedding
	if err := models.ValidateVector(embedding, s.dimension); err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}

	s.logger.Debug().
		Str("model", s.model).
		Int("embedding_dim", len(embedding)).
		Int("text_length", len(text)).
		Dur("duration", time.Since(start)).
		Msg("Generated embedding")

	return embedding, nil
}

// ModelName returns the embedding model name
func (s *Service) ModelName() string {
	return s.model
}

// Dimension returns the embedding dimension
func (s *Service) Dimension() int {
	return s.dimension
}
