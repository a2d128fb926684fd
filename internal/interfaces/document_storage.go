package interfaces

import (
	"context"

	"github.com/ternarybob/cognita/internal/models"
)

// DocumentStorage owns the durable mapping from document identity to
// content, metadata and embedding, and answers similarity queries over it.
type DocumentStorage interface {
	// Connect establishes the backing connection pool and ensures the
	// schema exists. Operations on an unconnected store attempt one
	// implicit Connect before failing.
	Connect(ctx context.Context) error

	// AddDocument derives the embedding for content and atomically inserts
	// (content, metadata, embedding), returning the assigned ID. If the
	// embedding cannot be produced nothing is written.
	AddDocument(ctx context.Context, content string, metadata map[string]interface{}) (int64, error)

	// GetDocument returns the stored content and metadata for an ID.
	// Returns models.ErrNotFound for an absent ID.
	GetDocument(ctx context.Context, id int64) (*models.Document, error)

	// DeleteDocument removes a document. Returns models.ErrNotFound when
	// the ID does not exist, including on a repeated delete.
	DeleteDocument(ctx context.Context, id int64) error

	// SearchSimilar embeds the query text and returns up to limit documents
	// ordered by descending similarity (ties broken by ascending ID). When
	// threshold is non-nil, results scoring below it are removed after
	// ranking. An empty collection yields an empty slice, not an error.
	SearchSimilar(ctx context.Context, query string, limit int, threshold *float64) ([]models.ScoredDocument, error)

	// Clear removes every document in the collection.
	Clear(ctx context.Context) error

	// Stats reports collection-level statistics.
	Stats(ctx context.Context) (*models.DocumentStats, error)

	// Close releases the connection pool.
	Close() error
}
