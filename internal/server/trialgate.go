package server

import (
	"fmt"
	"log"
	"net/http"
)

// withTrialGate guards an endpoint behind the free-usage counter. The
// attempt is consumed before the handler runs; a spent session gets a 429
// with the remaining-attempt headers set.
func (s *Server) withTrialGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope := s.clientID(r)

		allowed, err := s.trials.IncrementAttempt(r.Context(), scope)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "trial session unavailable")
			return
		}

		remaining, err := s.trials.RemainingAttempts(r.Context(), scope)
		if err == nil {
			w.Header().Set("X-Trial-Remaining", fmt.Sprintf("%d", remaining))
		}

		if !allowed {
			log.Printf("[trial] Attempt cap reached for %s", scope)
			display, _ := s.trials.DisplayText(r.Context(), scope)
			s.jsonResponse(w, HTTPStatus(&ErrTrialExhausted{}), map[string]any{
				"error":   "trial_limit_reached",
				"message": "You have used all free optimization attempts.",
				"display": display,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
