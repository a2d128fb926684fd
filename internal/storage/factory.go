// Package storage selects the document store implementation from
// configuration.
package storage

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognita/internal/common"
	"github.com/ternarybob/cognita/internal/interfaces"
	"github.com/ternarybob/cognita/internal/storage/memory"
	"github.com/ternarybob/cognita/internal/storage/postgres"
)

// NewDocumentStorage creates the store selected by the database driver:
// "postgres" (default) or "memory".
func NewDocumentStorage(cfg common.DatabaseConfig, embedder interfaces.EmbeddingService, logger arbor.ILogger) (interfaces.DocumentStorage, error) {
	switch cfg.Driver {
	case "", "postgres":
		return postgres.New(cfg, embedder, logger), nil
	case "memory":
		return memory.New(embedder, logger), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
