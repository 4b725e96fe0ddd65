package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/atsfit/internal/db"
	"github.com/jonathan/atsfit/internal/scoring"
)

type scoreRequest struct {
	ResumeText string   `json:"resumeText"`
	Keywords   []string `json:"keywords"`
}

// handleATSScore scores resume text against a keyword list.
func (s *Server) handleATSScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result := scoring.ScoreWithWeights(req.ResumeText, req.Keywords, s.weights)
	s.recordUsage(r.Context(), s.clientID(r), db.ActionScore)
	s.jsonResponse(w, http.StatusOK, result)
}

type extractKeywordsRequest struct {
	JobDescription string `json:"jobDescription"`
}

// handleExtractKeywords pulls ATS keywords from a job description.
func (s *Server) handleExtractKeywords(w http.ResponseWriter, r *http.Request) {
	var req extractKeywordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.JobDescription == "" {
		s.errorResponse(w, http.StatusBadRequest, "jobDescription is required")
		return
	}

	keywords, err := s.extractor.ExtractKeywords(r.Context(), req.JobDescription)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	s.recordUsage(r.Context(), s.clientID(r), db.ActionKeywords)
	s.jsonResponse(w, http.StatusOK, map[string]any{"keywords": keywords})
}
