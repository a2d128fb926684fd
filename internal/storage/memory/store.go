// Package memory implements the document store in process memory with
// brute-force cosine similarity. It mirrors the Postgres store's semantics
// (ordering, tie-break by ascending ID, NotFound behavior) and backs
// development runs and unit tests.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognita/internal/interfaces"
	"github.com/ternarybob/cognita/internal/models"
)

var _ interfaces.DocumentStorage = (*Store)(nil)

// Store is an in-memory document store
type Store struct {
	embedder  interfaces.EmbeddingService
	dimension int
	logger    arbor.ILogger

	mu     sync.RWMutex
	nextID int64
	docs   map[int64]*models.Document
}

// New creates an empty in-memory store
func New(embedder interfaces.EmbeddingService, logger arbor.ILogger) *Store {
	return &Store{
		embedder:  embedder,
		dimension: embedder.Dimension(),
		logger:    logger,
		nextID:    1,
		docs:      make(map[int64]*models.Document),
	}
}

// Connect is a no-op; the store is always available
func (s *Store) Connect(ctx context.Context) error {
	return nil
}

// AddDocument embeds content and stores the document, assigning the next
// monotonic ID. Nothing is stored when embedding fails.
func (s *Store) AddDocument(ctx context.Context, content string, metadata map[string]interface{}) (int64, error) {
	if content == "" {
		return 0, models.ErrEmptyContent
	}

	embedding, err := s.embedder.GenerateEmbedding(ctx, content)
	if err != nil {
		return 0, err
	}
	if err := models.ValidateVector(embedding, s.dimension); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.docs[id] = &models.Document{
		ID:        id,
		Content:   content,
		Metadata:  metadata,
		Embedding: embedding,
		CreatedAt: time.Now().UTC(),
	}

	return id, nil
}

// GetDocument returns the stored document without its embedding
func (s *Store) GetDocument(ctx context.Context, id int64) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, models.ErrNotFound
	}

	return &models.Document{
		ID:        doc.ID,
		Content:   doc.Content,
		Metadata:  doc.Metadata,
		CreatedAt: doc.CreatedAt,
	}, nil
}

// DeleteDocument removes a document; a repeated delete reports NotFound
func (s *Store) DeleteDocument(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

// SearchSimilar ranks all documents by cosine similarity to the query
// embedding, descending, ties broken by ascending ID, truncated to limit.
// The threshold filters the already-ranked set.
func (s *Store) SearchSimilar(ctx context.Context, query string, limit int, threshold *float64) ([]models.ScoredDocument, error) {
	if query == "" {
		return nil, models.ErrEmptyContent
	}

	embedding, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	scored := make([]models.ScoredDocument, 0, len(s.docs))
	for _, doc := range s.docs {
		scored = append(scored, models.ScoredDocument{
			ID:         doc.ID,
			Content:    doc.Content,
			Metadata:   doc.Metadata,
			Similarity: cosineSimilarity(embedding, doc.Embedding),
		})
	}
	s.mu.RUnlock()

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Similarity != scored[j].Similarity {
			return scored[i].Similarity > scored[j].Similarity
		}
		return scored[i].ID < scored[j].ID
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}

	if threshold != nil {
		filtered := scored[:0]
		for _, r := range scored {
			if r.Similarity >= *threshold {
				filtered = append(filtered, r)
			}
		}
		scored = filtered
	}

	return scored, nil
}

// Clear removes all documents
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = make(map[int64]*models.Document)
	return nil
}

// Stats reports collection-level statistics
func (s *Store) Stats(ctx context.Context) (*models.DocumentStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.DocumentStats{TotalDocuments: len(s.docs)}
	for _, doc := range s.docs {
		if stats.LastUpdated == nil || doc.CreatedAt.After(*stats.LastUpdated) {
			created := doc.CreatedAt
			stats.LastUpdated = &created
		}
	}
	return stats, nil
}

// Close is a no-op
func (s *Store) Close() error {
	return nil
}

// cosineSimilarity computes dot(a,b) / (|a| * |b|); zero when either vector
// has zero magnitude. Matches 1 - cosine distance as pgvector reports it.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
