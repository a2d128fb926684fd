package interfaces

import (
	"context"
)

// LLMService generates text completions. Temperature is pinned to zero by
// implementations; output is deterministic-enough but not guaranteed
// reproducible across model versions.
type LLMService interface {
	// Complete submits a single prompt and returns the model's raw text.
	Complete(ctx context.Context, prompt string) (string, error)

	// ProviderName identifies the backing provider ("openai", "claude").
	ProviderName() string
}
