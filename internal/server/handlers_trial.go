package server

import "net/http"

// handleGetTrial returns the caller's trial session and its display text.
func (s *Server) handleGetTrial(w http.ResponseWriter, r *http.Request) {
	scope := s.clientID(r)

	session, err := s.trials.GetSession(r.Context(), scope)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	display, err := s.trials.DisplayText(r.Context(), scope)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"session": session,
		"display": display,
	})
}

// handleResetTrial clears the caller's trial session. Intended for local
// development; production deployments should disable or protect this route.
func (s *Server) handleResetTrial(w http.ResponseWriter, r *http.Request) {
	if err := s.trials.ResetSession(r.Context(), s.clientID(r)); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "reset"})
}
