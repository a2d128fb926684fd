// Package postgres implements the document store on PostgreSQL with the
// pgvector extension. Similarity search uses cosine distance (`<=>`);
// similarity is reported as 1 - distance. OpenAI embeddings are
// unit-normalized, so distance lies in [0,2] and similarity in [-1,1],
// monotonically decreasing with distance. Ties are broken by ascending
// document ID.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognita/internal/common"
	"github.com/ternarybob/cognita/internal/interfaces"
	"github.com/ternarybob/cognita/internal/models"
)

var _ interfaces.DocumentStorage = (*Store)(nil)

// Store is a pgxpool-backed document store. Connections are drawn from a
// shared pool per operation; nothing holds a connection across requests.
type Store struct {
	cfg       common.DatabaseConfig
	embedder  interfaces.EmbeddingService
	dimension int
	logger    arbor.ILogger

	mu   sync.Mutex
	pool *pgxpool.Pool
}

// New creates a document store. The pool is established by Connect, or
// implicitly by the first operation.
func New(cfg common.DatabaseConfig, embedder interfaces.EmbeddingService, logger arbor.ILogger) *Store {
	return &Store{
		cfg:       cfg,
		embedder:  embedder,
		dimension: embedder.Dimension(),
		logger:    logger,
	}
}

// Connect establishes the connection pool and ensures the schema exists
func (s *Store) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pool != nil {
		return nil
	}

	poolCfg, err := pgxpool.ParseConfig(s.cfg.ConnString())
	if err != nil {
		return fmt.Errorf("parse database config: %w", err)
	}
	if s.cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(s.cfg.MaxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("%w: %v", models.ErrNotConnected, err)
	}

	if err := ensureSchema(ctx, pool, s.dimension); err != nil {
		pool.Close()
		return fmt.Errorf("ensure schema: %w", err)
	}

	s.pool = pool
	s.logger.Info().
		Str("host", s.cfg.Host).
		Str("dbname", s.cfg.DBName).
		Int("max_conns", s.cfg.MaxConns).
		Int("dimension", s.dimension).
		Msg("Connected to document store")

	return nil
}

// getPool returns the active pool, attempting one implicit connect when the
// store has none.
func (s *Store) getPool(ctx context.Context) (*pgxpool.Pool, error) {
	s.mu.Lock()
	pool := s.pool
	s.mu.Unlock()

	if pool != nil {
		return pool, nil
	}

	if err := s.Connect(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool, nil
}

// AddDocument embeds content and atomically inserts the document. Nothing is
// written when the embedding cannot be produced; an insert failure rolls the
// transaction back.
func (s *Store) AddDocument(ctx context.Context, content string, metadata map[string]interface{}) (int64, error) {
	if content == "" {
		return 0, models.ErrEmptyContent
	}

	pool, err := s.getPool(ctx)
	if err != nil {
		return 0, err
	}

	embedding, err := s.embedder.GenerateEmbedding(ctx, content)
	if err != nil {
		return 0, fmt.Errorf("add document: %w", err)
	}

	vec, err := models.EncodeVector(embedding)
	if err != nil {
		return 0, fmt.Errorf("add document: %w", err)
	}

	var metadataJSON []byte
	if metadata != nil {
		metadataJSON, err = json.Marshal(metadata)
		if err != nil {
			return 0, fmt.Errorf("add document: marshal metadata: %w", err)
		}
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("add document: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO documents (content, metadata, embedding) VALUES ($1, $2::jsonb, $3::vector) RETURNING id`,
		content, metadataJSON, vec,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("add document: insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("add document: commit: %w", err)
	}

	s.logger.Debug().
		Int64("doc_id", id).
		Int("content_length", len(content)).
		Msg("Document added")

	return id, nil
}

// GetDocument returns content and metadata for an ID. The embedding stays
// internal to the store.
func (s *Store) GetDocument(ctx context.Context, id int64) (*models.Document, error) {
	pool, err := s.getPool(ctx)
	if err != nil {
		return nil, err
	}

	doc := &models.Document{}
	var metadataJSON []byte
	err = pool.QueryRow(ctx,
		`SELECT id, content, metadata, created_at FROM documents WHERE id = $1`,
		id,
	).Scan(&doc.ID, &doc.Content, &metadataJSON, &doc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &doc.Metadata); err != nil {
			return nil, fmt.Errorf("get document: unmarshal metadata: %w", err)
		}
	}

	return doc, nil
}

// DeleteDocument removes a document. A repeated delete reports NotFound.
func (s *Store) DeleteDocument(ctx context.Context, id int64) error {
	pool, err := s.getPool(ctx)
	if err != nil {
		return err
	}

	ct, err := pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	s.logger.Debug().Int64("doc_id", id).Msg("Document deleted")
	return nil
}

// SearchSimilar embeds the query and returns up to limit documents by
// ascending cosine distance. The threshold is applied to the already-ranked
// set so it never changes top-K selection.
func (s *Store) SearchSimilar(ctx context.Context, query string, limit int, threshold *float64) ([]models.ScoredDocument, error) {
	if query == "" {
		return nil, models.ErrEmptyContent
	}

	pool, err := s.getPool(ctx)
	if err != nil {
		return nil, err
	}

	embedding, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	vec, err := models.EncodeVector(embedding)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	rows, err := pool.Query(ctx,
		`SELECT id, content, metadata, 1 - (embedding <=> $1::vector) AS similarity
		 FROM documents
		 ORDER BY embedding <=> $1::vector, id
		 LIMIT $2`,
		vec, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer rows.Close()

	results := []models.ScoredDocument{}
	for rows.Next() {
		var doc models.ScoredDocument
		var metadataJSON []byte
		if err := rows.Scan(&doc.ID, &doc.Content, &metadataJSON, &doc.Similarity); err != nil {
			return nil, fmt.Errorf("search: scan: %w", err)
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &doc.Metadata); err != nil {
				return nil, fmt.Errorf("search: unmarshal metadata: %w", err)
			}
		}
		results = append(results, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	if threshold != nil {
		filtered := results[:0]
		for _, r := range results {
			if r.Similarity >= *threshold {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	return results, nil
}

// Clear unconditionally removes all documents
func (s *Store) Clear(ctx context.Context) error {
	pool, err := s.getPool(ctx)
	if err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `DELETE FROM documents`); err != nil {
		return fmt.Errorf("clear collection: %w", err)
	}

	s.logger.Info().Msg("Document collection cleared")
	return nil
}

// Stats reports collection-level statistics
func (s *Store) Stats(ctx context.Context) (*models.DocumentStats, error) {
	pool, err := s.getPool(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.DocumentStats{}
	err = pool.QueryRow(ctx,
		`SELECT count(*), max(created_at) FROM documents`,
	).Scan(&stats.TotalDocuments, &stats.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	return stats, nil
}

// Close releases the connection pool
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
	return nil
}
