// Package rag composes grounded answers: retrieve the most similar stored
// documents for a question, then ask the completion model to answer from
// that context only.
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognita/internal/common"
	"github.com/ternarybob/cognita/internal/interfaces"
	"github.com/ternarybob/cognita/internal/models"
)

const answerTemplate = `Using the following information, answer the question.

%s

Question: %s

Answer based only on the information above. If the information is not
sufficient to answer, say so.`

// Service is the retrieval-augmented answer composer.
type Service struct {
	storage interfaces.DocumentStorage
	llm     interfaces.LLMService
	cfg     common.RAGConfig
	logger  arbor.ILogger
}

// NewService creates a RAG service
func NewService(storage interfaces.DocumentStorage, llm interfaces.LLMService, cfg common.RAGConfig, logger arbor.ILogger) interfaces.RAGService {
	return &Service{
		storage: storage,
		llm:     llm,
		cfg:     cfg,
		logger:  logger,
	}
}

// Answer retrieves up to limit similar documents for the query and produces
// a completion grounded in them. Returns models.ErrNoResults when retrieval
// yields nothing; no completion call is made in that case. A non-positive
// limit falls back to the configured retrieval default.
func (s *Service) Answer(ctx context.Context, query string, limit int) (*models.RAGAnswer, error) {
	if limit <= 0 {
		limit = s.cfg.MaxDocuments
	}

	var threshold *float64
	if s.cfg.MinSimilarity > 0 {
		threshold = &s.cfg.MinSimilarity
	}

	docs, err := s.storage.SearchSimilar(ctx, query, limit, threshold)
	if err != nil {
		return nil, fmt.Errorf("rag: search: %w", err)
	}
	if len(docs) == 0 {
		return nil, models.ErrNoResults
	}

	prompt := fmt.Sprintf(answerTemplate, buildContext(docs), query)

	answer, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("rag: complete: %w", err)
	}

	s.logger.Debug().
		Str("provider", s.llm.ProviderName()).
		Int("sources", len(docs)).
		Msg("RAG answer composed")

	return &models.RAGAnswer{
		Answer:  answer,
		Sources: docs,
	}, nil
}

// buildContext renders the retrieved documents as a numbered context block.
func buildContext(docs []models.ScoredDocument) string {
	var b strings.Builder
	for i, doc := range docs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Document %d:\n%s", i+1, doc.Content)
	}
	return b.String()
}
