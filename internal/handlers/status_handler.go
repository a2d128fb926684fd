package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognita/internal/common"
	"github.com/ternarybob/cognita/internal/interfaces"
)

// StatusHandler handles application status HTTP requests
type StatusHandler struct {
	cfg     *common.Config
	storage interfaces.DocumentStorage
	logger  arbor.ILogger
}

// NewStatusHandler creates a new status handler with dependencies
func NewStatusHandler(cfg *common.Config, storage interfaces.DocumentStorage, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{
		cfg:     cfg,
		storage: storage,
		logger:  logger,
	}
}

// GetStatusHandler handles GET /api/status
func (h *StatusHandler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	status := map[string]interface{}{
		"status":             "running",
		"version":            common.GetVersion(),
		"environment":        h.cfg.Environment,
		"using_sample_data":  h.cfg.News.UseSampleData || h.cfg.News.APIKey == "",
		"news_api_available": h.cfg.News.APIKey != "",
	}

	stats, err := h.storage.Stats(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to read document stats for status")
		status["documents"] = nil
	} else {
		status["documents"] = stats
	}

	WriteJSON(w, http.StatusOK, status)
}

// HealthHandler handles GET /api/health
func (h *StatusHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// VersionHandler handles GET /api/version
func (h *StatusHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.Build,
		"commit":  common.GitCommit,
	})
}

// NotFoundHandler handles unmatched API routes
func (h *StatusHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, "Not found")
}
