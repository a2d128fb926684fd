// Package app wires configuration, storage, services and handlers into a
// running application.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognita/internal/common"
	"github.com/ternarybob/cognita/internal/handlers"
	"github.com/ternarybob/cognita/internal/interfaces"
	"github.com/ternarybob/cognita/internal/services/embeddings"
	"github.com/ternarybob/cognita/internal/services/importer"
	"github.com/ternarybob/cognita/internal/services/llm"
	"github.com/ternarybob/cognita/internal/services/news"
	"github.com/ternarybob/cognita/internal/services/rag"
	"github.com/ternarybob/cognita/internal/services/scheduler"
	"github.com/ternarybob/cognita/internal/storage"
)

// connectTimeout bounds initial storage connection at startup.
const connectTimeout = 30 * time.Second

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Core services
	EmbeddingService interfaces.EmbeddingService
	Storage          interfaces.DocumentStorage
	LLMService       interfaces.LLMService
	RAGService       interfaces.RAGService
	NewsSource       interfaces.NewsSource
	ImportService    interfaces.ImportService
	Scheduler        *scheduler.Scheduler

	// HTTP handlers
	DocumentHandler *handlers.DocumentHandler
	SearchHandler   *handlers.SearchHandler
	RAGHandler      *handlers.RAGHandler
	NewsHandler     *handlers.NewsHandler
	StatusHandler   *handlers.StatusHandler
}

// New creates the application: storage first, then services, then handlers.
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := a.initServices(); err != nil {
		return nil, err
	}
	a.initHandlers()

	logger.Info().
		Str("environment", cfg.Environment).
		Str("storage", cfg.Database.Driver).
		Str("llm_provider", string(cfg.LLM.DefaultProvider)).
		Msg("Application initialized")

	return a, nil
}

func (a *App) initServices() error {
	a.EmbeddingService = embeddings.NewService(a.Config.OpenAI, a.Logger)

	store, err := storage.NewDocumentStorage(a.Config.Database, a.EmbeddingService, a.Logger)
	if err != nil {
		return fmt.Errorf("create storage: %w", err)
	}
	a.Storage = store

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := a.Storage.Connect(ctx); err != nil {
		return fmt.Errorf("connect storage: %w", err)
	}

	llmService, err := llm.NewService(a.Config, a.Logger)
	if err != nil {
		return fmt.Errorf("create llm service: %w", err)
	}
	a.LLMService = llmService

	a.RAGService = rag.NewService(a.Storage, a.LLMService, a.Config.RAG, a.Logger)
	a.NewsSource = news.NewSource(a.Config.News, a.Logger)
	a.ImportService = importer.NewService(a.NewsSource, a.Storage, a.Logger)

	if a.Config.Importer.Enabled {
		a.Scheduler = scheduler.NewScheduler(a.ImportService, a.Config.Importer, a.Logger)
		if err := a.Scheduler.Start(); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
	}

	return nil
}

func (a *App) initHandlers() {
	a.DocumentHandler = handlers.NewDocumentHandler(a.Storage, a.Logger)
	a.SearchHandler = handlers.NewSearchHandler(a.Storage, a.Logger)
	a.RAGHandler = handlers.NewRAGHandler(a.RAGService, a.Logger)
	a.NewsHandler = handlers.NewNewsHandler(a.ImportService, a.NewsSource, a.Logger)
	a.StatusHandler = handlers.NewStatusHandler(a.Config, a.Storage, a.Logger)
}

// Close releases application resources in reverse initialization order.
func (a *App) Close() error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}

	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage")
		}
	}

	a.Logger.Info().Msg("Application closed")
	return nil
}
