package http

import (
	"net/http"

	"github.com/smartstart/smartstart-money/internal/application/query"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"name":        "SmartStart Money API",
		"version":     s.config.Version,
		"description": "Personalized money lessons, practice scenarios and progress tracking",
		"endpoints": map[string]string{
			"health":    "/health",
			"questions": "/api/v1/questions",
			"sessions":  "/api/v1/sessions",
		},
	})
}

// handleHealth runs every registered check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.deps.HealthChecker.Check(r.Context())
	if !status.Healthy {
		writeJSON(w, r, http.StatusServiceUnavailable, status)
		return
	}
	writeJSON(w, r, http.StatusOK, status)
}

// handleReady handles the readiness probe endpoint.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := s.deps.HealthChecker.Check(r.Context())
	if !status.Ready {
		writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": status.Message,
		})
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}

// handleLive handles the liveness probe endpoint.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "alive",
		"uptime": s.Uptime().String(),
	})
}

// handleListQuestions serves the quiz question bank.
func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	qs := query.ListQuestions()
	writeJSONWithMeta(w, r, http.StatusOK, qs, &ResponseMeta{TotalCount: len(qs.Questions)})
}
