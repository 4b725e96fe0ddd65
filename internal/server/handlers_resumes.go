package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonathan/atsfit/internal/db"
	"github.com/jonathan/atsfit/internal/resume"
)

type saveResumeRequest struct {
	ResumeMd string `json:"resume_md"`
}

// handleGetResume returns the caller's stored resume, falling back to the
// starter template so the editor is never empty.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	content, err := s.resumes.GetContent(r.Context(), s.clientID(r))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"resume_md": content})
}

// handleSaveResume validates and stores the caller's resume.
func (s *Server) handleSaveResume(w http.ResponseWriter, r *http.Request) {
	var req saveResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := resume.ValidateContent(req.ResumeMd); err != nil {
		verr := &ErrValidation{Field: "resume_md", Message: err.Error()}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	saved, err := s.resumes.Save(r.Context(), s.clientID(r), req.ResumeMd)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"resume_md":  saved.ResumeMd,
		"updated_at": saved.UpdatedAt.String(),
	})
}

// handleDeleteResume removes the caller's stored resume.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	if err := s.resumes.Delete(r.Context(), s.clientID(r)); err != nil {
		if errors.Is(err, db.ErrResumeNotFound) {
			nf := &ErrResumeNotFound{}
			s.errorResponse(w, HTTPStatus(nf), nf.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}
