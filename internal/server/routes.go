package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Documents
	mux.HandleFunc("/api/documents/stats", s.app.DocumentHandler.StatsHandler)
	mux.HandleFunc("/api/documents", s.app.DocumentHandler.AddHandler)
	mux.HandleFunc("/api/documents/", s.app.DocumentHandler.DocumentByIDHandler) // GET/DELETE /{id}
	mux.HandleFunc("/api/collection", s.app.DocumentHandler.ClearHandler)        // DELETE - administrative reset

	// API routes - Search and RAG
	mux.HandleFunc("/api/search", s.app.SearchHandler.SearchHandler)
	mux.HandleFunc("/api/rag", s.app.RAGHandler.AnswerHandler)

	// API routes - News import
	mux.HandleFunc("/api/import-news", s.app.NewsHandler.ImportHandler)
	mux.HandleFunc("/api/news-categories", s.app.NewsHandler.CategoriesHandler)

	// API routes - System
	mux.HandleFunc("/api/status", s.app.StatusHandler.GetStatusHandler)
	mux.HandleFunc("/api/health", s.app.StatusHandler.HealthHandler)
	mux.HandleFunc("/api/version", s.app.StatusHandler.VersionHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.StatusHandler.NotFoundHandler)

	return mux
}
