package interfaces

import (
	"context"

	"github.com/ternarybob/cognita/internal/models"
)

// RAGService answers a query by retrieving similar documents and
// conditioning a language model on them.
type RAGService interface {
	// Answer retrieves up to limit similar documents and generates a
	// grounded answer. Returns models.ErrNoResults when retrieval yields
	// nothing; there is no silent empty-answer path.
	Answer(ctx context.Context, query string, limit int) (*models.RAGAnswer, error)
}
