package interfaces

import (
	"context"

	"github.com/ternarybob/cognita/internal/models"
)

// ImportService pulls articles from a news source and feeds them through the
// document store's ingestion path.
type ImportService interface {
	// ImportNews fetches articles per opts and stores each one. A per-item
	// embedding failure skips that item; a source fetch failure fails the
	// call. Zero fetched items is a non-error "nothing imported" outcome.
	ImportNews(ctx context.Context, opts models.ImportOptions) (*models.ImportResult, error)
}
