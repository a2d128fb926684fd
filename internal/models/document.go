package models

import (
	"time"
)

// Document represents a stored text document with its embedding vector.
// The embedding is an internal field owned by the store; it is never
// surfaced to API consumers.
type Document struct {
	// Identity (BIGSERIAL, assigned by the store on insert)
	ID int64 `json:"id"`

	// Content (required, non-empty UTF-8 text)
	Content string `json:"content"`

	// Metadata is an open-ended JSON mapping (stored as JSONB)
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// Embedding vector; length equals the embedding model's output dimension
	Embedding []float32 `json:"-"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}

// ScoredDocument is a search result: a document plus its similarity score.
// Similarity is 1 - cosine distance, monotonically decreasing with rank.
type ScoredDocument struct {
	ID         int64                  `json:"id"`
	Content    string                 `json:"content"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Similarity float64                `json:"similarity"`
}

// RAGAnswer is a grounded answer plus the ranked sources used to build it.
type RAGAnswer struct {
	Answer  string           `json:"answer"`
	Sources []ScoredDocument `json:"sources"`
}

// ImportResult reports the outcome of a news import batch. Success is false
// both for a source fetch failure and for a zero-item fetch; Message
// distinguishes the two.
type ImportResult struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	ImportedCount int     `json:"imported_count"`
	DocumentIDs   []int64 `json:"document_ids"`
}

// DocumentStats represents statistics about the document collection
type DocumentStats struct {
	TotalDocuments int        `json:"total_documents"`
	LastUpdated    *time.Time `json:"last_updated,omitempty"`
}
