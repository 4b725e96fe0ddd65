package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jonathan/atsfit/internal/db"
)

// usageWindow is how far back the per-action counts look.
const usageWindow = 24 * time.Hour

// recordUsage logs a feature invocation. Accounting failures are logged, not
// surfaced; they must never block the feature itself.
func (s *Server) recordUsage(ctx context.Context, scope, action string) {
	if s.usage == nil {
		return
	}
	if err := s.usage.RecordUsage(ctx, scope, action); err != nil {
		log.Printf("[usage] Failed to record %s for %s: %v", action, scope, err)
	}
}

// handleGetUsage returns the caller's per-action counts for the last 24 hours
// plus their most recent invocations.
func (s *Server) handleGetUsage(w http.ResponseWriter, r *http.Request) {
	if s.usage == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "usage tracking unavailable")
		return
	}

	scope := s.clientID(r)
	since := time.Now().Add(-usageWindow)

	counts := make(map[string]int)
	for _, action := range []string{db.ActionScore, db.ActionKeywords, db.ActionAnalyze} {
		count, err := s.usage.CountUsage(r.Context(), scope, action, since)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		counts[action] = count
	}

	records, err := s.usage.ListUsage(r.Context(), scope, 20)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"counts": counts,
		"recent": records,
	})
}
