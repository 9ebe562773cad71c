package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - system
	mux.HandleFunc("/health", s.app.APIHandler.HealthHandler)   // GET
	mux.HandleFunc("/version", s.app.APIHandler.VersionHandler) // GET

	// API routes - domain
	mux.HandleFunc("/company", s.app.CompanyHandler.GetCompanyHandler)     // GET ?business_id=
	mux.HandleFunc("/extract", s.app.ExtractHandler.ExtractMetricsHandler) // POST {"text": ...}

	// 404 handler for unmatched routes
	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}
