package handlers

import (
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognita/internal/interfaces"
	"github.com/ternarybob/cognita/internal/models"
)

// RAGRequest is the body of POST /api/rag
type RAGRequest struct {
	Query string `json:"query" validate:"required"`
	Limit int    `json:"limit" validate:"omitempty,gte=1,lte=20"`
}

// RAGHandler handles retrieval-augmented answer HTTP requests
type RAGHandler struct {
	rag    interfaces.RAGService
	logger arbor.ILogger
}

// NewRAGHandler creates a new RAG handler with dependencies
func NewRAGHandler(rag interfaces.RAGService, logger arbor.ILogger) *RAGHandler {
	return &RAGHandler{
		rag:    rag,
		logger: logger,
	}
}

// AnswerHandler handles POST /api/rag
func (h *RAGHandler) AnswerHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req RAGRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	if req.Limit == 0 {
		req.Limit = 5
	}

	answer, err := h.rag.Answer(r.Context(), req.Query, req.Limit)
	if err != nil {
		if errors.Is(err, models.ErrNoResults) {
			WriteError(w, http.StatusNotFound, "No relevant documents found")
			return
		}
		h.logger.Error().Err(err).Str("query", req.Query).Msg("RAG answer failed")
		WriteError(w, http.StatusInternalServerError, "Failed to compose answer")
		return
	}

	WriteJSON(w, http.StatusOK, answer)
}
