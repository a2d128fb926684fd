package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognita/internal/interfaces"
	"github.com/ternarybob/cognita/internal/models"
)

// ImportNewsRequest is the body of POST /api/import-news
type ImportNewsRequest struct {
	Query    string `json:"query"`
	Category string `json:"category"`
	Limit    int    `json:"limit" validate:"omitempty,gte=1,lte=50"`
}

// NewsHandler handles news import HTTP requests
type NewsHandler struct {
	importer interfaces.ImportService
	source   interfaces.NewsSource
	logger   arbor.ILogger
}

// NewNewsHandler creates a new news handler with dependencies
func NewNewsHandler(importer interfaces.ImportService, source interfaces.NewsSource, logger arbor.ILogger) *NewsHandler {
	return &NewsHandler{
		importer: importer,
		source:   source,
		logger:   logger,
	}
}

// ImportHandler handles POST /api/import-news. A fetch that yields nothing
// is reported in the payload with success=false, not as an HTTP error.
func (h *NewsHandler) ImportHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req ImportNewsRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	if req.Limit == 0 {
		req.Limit = 10
	}

	result, err := h.importer.ImportNews(r.Context(), models.ImportOptions{
		Query:    req.Query,
		Category: req.Category,
		Limit:    req.Limit,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("News import failed")
		WriteJSON(w, http.StatusOK, &models.ImportResult{
			Success:     false,
			Message:     "news source unavailable",
			DocumentIDs: []int64{},
		})
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// CategoriesHandler handles GET /api/news-categories
func (h *NewsHandler) CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	categories, err := h.source.Categories(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list news categories")
		WriteError(w, http.StatusInternalServerError, "Failed to list news categories")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
	})
}
