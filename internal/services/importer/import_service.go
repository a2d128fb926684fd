// Package importer pulls news articles from a news source and stores them
// as searchable documents.
package importer

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognita/internal/interfaces"
	"github.com/ternarybob/cognita/internal/models"
)

// Service ties a news source to document storage.
type Service struct {
	source  interfaces.NewsSource
	storage interfaces.DocumentStorage
	logger  arbor.ILogger
}

// NewService creates an import service
func NewService(source interfaces.NewsSource, storage interfaces.DocumentStorage, logger arbor.ILogger) interfaces.ImportService {
	return &Service{
		source:  source,
		storage: storage,
		logger:  logger,
	}
}

// ImportNews fetches articles per the options and stores each one as a
// document. Fetch failures abort the import; per-article storage failures
// are skipped so one bad item cannot sink the batch.
func (s *Service) ImportNews(ctx context.Context, opts models.ImportOptions) (*models.ImportResult, error) {
	articles, err := s.fetch(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("import: fetch news: %w", err)
	}

	if len(articles) == 0 {
		s.logger.Warn().
			Str("query", opts.Query).
			Str("category", opts.Category).
			Msg("No news data to import")
		return &models.ImportResult{
			Success:     false,
			Message:     "no news data to import",
			DocumentIDs: []int64{},
		}, nil
	}

	result := &models.ImportResult{
		DocumentIDs: make([]int64, 0, len(articles)),
	}

	for _, article := range articles {
		content := article.Title + "\n\n" + article.Content

		metadata := map[string]interface{}{
			"source":   article.Source,
			"date":     article.Date,
			"category": article.Category,
			"keywords": article.Keywords,
			"news_id":  article.ID,
		}

		id, err := s.storage.AddDocument(ctx, content, metadata)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("news_id", article.ID).
				Msg("Skipping article that failed to store")
			continue
		}

		result.ImportedCount++
		result.DocumentIDs = append(result.DocumentIDs, id)
	}

	result.Success = result.ImportedCount > 0
	result.Message = fmt.Sprintf("imported %d of %d articles", result.ImportedCount, len(articles))

	s.logger.Info().
		Int("imported", result.ImportedCount).
		Int("fetched", len(articles)).
		Msg("News import complete")

	return result, nil
}

// fetch selects the source operation: query takes precedence over category,
// category over the recent listing.
func (s *Service) fetch(ctx context.Context, opts models.ImportOptions) ([]models.NewsArticle, error) {
	switch {
	case opts.Query != "":
		return s.source.SearchNews(ctx, opts.Query, opts.Limit)
	case opts.Category != "":
		return s.source.NewsByCategory(ctx, opts.Category, opts.Limit)
	default:
		return s.source.RecentNews(ctx, opts.Limit)
	}
}
