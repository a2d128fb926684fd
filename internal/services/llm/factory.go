package llm

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognita/internal/common"
	"github.com/ternarybob/cognita/internal/interfaces"
)

// NewService creates the completion service selected by config. The default
// provider is OpenAI; Claude is available as an alternate.
func NewService(cfg *common.Config, logger arbor.ILogger) (interfaces.LLMService, error) {
	provider := cfg.LLM.DefaultProvider
	if provider == "" {
		provider = common.LLMProviderOpenAI
	}

	switch provider {
	case common.LLMProviderOpenAI:
		return NewOpenAIService(cfg.OpenAI, logger)
	case common.LLMProviderClaude:
		return NewClaudeService(cfg.Claude, logger)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}
