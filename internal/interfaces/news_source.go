package interfaces

import (
	"context"

	"github.com/ternarybob/cognita/internal/models"
)

// NewsSource is the boundary to a news provider. The live API client and the
// deterministic sample-data source are two implementations selected by
// configuration.
type NewsSource interface {
	// SearchNews returns up to limit articles matching a free-text query.
	SearchNews(ctx context.Context, query string, limit int) ([]models.NewsArticle, error)

	// NewsByCategory returns up to limit articles in a category.
	NewsByCategory(ctx context.Context, category string, limit int) ([]models.NewsArticle, error)

	// RecentNews returns the source's most recent listing.
	RecentNews(ctx context.Context, limit int) ([]models.NewsArticle, error)

	// NewsByID returns a single article, or models.ErrNotFound.
	NewsByID(ctx context.Context, id string) (*models.NewsArticle, error)

	// Categories lists the categories the source knows about.
	Categories(ctx context.Context) ([]string, error)
}
