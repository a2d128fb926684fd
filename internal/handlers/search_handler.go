package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognita/internal/interfaces"
)

// SearchRequest is the body of POST /api/search
type SearchRequest struct {
	Query          string   `json:"query" validate:"required"`
	Limit          int      `json:"limit" validate:"omitempty,gte=1,lte=100"`
	ScoreThreshold *float64 `json:"score_threshold"`
}

// SearchHandler handles similarity search HTTP requests
type SearchHandler struct {
	storage interfaces.DocumentStorage
	logger  arbor.ILogger
}

// NewSearchHandler creates a new search handler with dependencies
func NewSearchHandler(storage interfaces.DocumentStorage, logger arbor.ILogger) *SearchHandler {
	return &SearchHandler{
		storage: storage,
		logger:  logger,
	}
}

// SearchHandler handles POST /api/search
func (h *SearchHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req SearchRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	if req.Limit == 0 {
		req.Limit = 5
	}

	results, err := h.storage.SearchSimilar(r.Context(), req.Query, req.Limit, req.ScoreThreshold)
	if err != nil {
		h.logger.Error().Err(err).Str("query", req.Query).Msg("Search failed")
		WriteError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	h.logger.Debug().
		Str("query", req.Query).
		Int("count", len(results)).
		Msg("Search complete")

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"query":   req.Query,
		"results": results,
		"count":   len(results),
	})
}
