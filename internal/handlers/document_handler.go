package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognita/internal/interfaces"
	"github.com/ternarybob/cognita/internal/models"
)

// AddDocumentRequest is the body of POST /api/documents
type AddDocumentRequest struct {
	Content  string                 `json:"content" validate:"required"`
	Metadata map[string]interface{} `json:"metadata"`
}

// DocumentHandler handles document CRUD HTTP requests
type DocumentHandler struct {
	storage interfaces.DocumentStorage
	logger  arbor.ILogger
}

// NewDocumentHandler creates a new document handler with dependencies
func NewDocumentHandler(storage interfaces.DocumentStorage, logger arbor.ILogger) *DocumentHandler {
	return &DocumentHandler{
		storage: storage,
		logger:  logger,
	}
}

// AddHandler handles POST /api/documents
func (h *DocumentHandler) AddHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req AddDocumentRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.storage.AddDocument(r.Context(), req.Content, req.Metadata)
	if err != nil {
		if errors.Is(err, models.ErrEmptyContent) {
			WriteError(w, http.StatusBadRequest, "Document content must not be empty")
			return
		}
		h.logger.Error().Err(err).Msg("Failed to add document")
		WriteError(w, http.StatusInternalServerError, "Failed to add document")
		return
	}

	h.logger.Info().Int64("id", id).Msg("Document added")
	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"id":       id,
		"content":  req.Content,
		"metadata": req.Metadata,
	})
}

// DocumentByIDHandler routes GET and DELETE /api/documents/{id}
func (h *DocumentHandler) DocumentByIDHandler(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/documents/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, http.StatusBadRequest, "Invalid document ID")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getDocument(w, r, id)
	case http.MethodDelete:
		h.deleteDocument(w, r, id)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *DocumentHandler) getDocument(w http.ResponseWriter, r *http.Request, id int64) {
	doc, err := h.storage.GetDocument(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Document not found")
			return
		}
		h.logger.Error().Err(err).Int64("id", id).Msg("Failed to get document")
		WriteError(w, http.StatusInternalServerError, "Failed to get document")
		return
	}

	WriteJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) deleteDocument(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.storage.DeleteDocument(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Document not found")
			return
		}
		h.logger.Error().Err(err).Int64("id", id).Msg("Failed to delete document")
		WriteError(w, http.StatusInternalServerError, "Failed to delete document")
		return
	}

	h.logger.Info().Int64("id", id).Msg("Document deleted")
	w.WriteHeader(http.StatusNoContent)
}

// ClearHandler handles DELETE /api/collection, the administrative reset
// that removes every document.
func (h *DocumentHandler) ClearHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	if err := h.storage.Clear(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("Failed to clear collection")
		WriteError(w, http.StatusInternalServerError, "Failed to clear collection")
		return
	}

	h.logger.Info().Msg("Document collection cleared")
	w.WriteHeader(http.StatusNoContent)
}

// StatsHandler handles GET /api/documents/stats
func (h *DocumentHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	stats, err := h.storage.Stats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to get document stats")
		WriteError(w, http.StatusInternalServerError, "Failed to get document stats")
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}
