package interfaces

import (
	"context"
)

// EmbeddingService generates vector embeddings for text
type EmbeddingService interface {
	// Generate embedding for raw text. Any network, auth, rate-limit or
	// input failure collapses to a single error class; callers decide
	// their own retry policy.
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)

	// Get model information
	ModelName() string
	Dimension() int
}
