package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/atsfit/internal/ingestion"
)

// handleExtractText accepts a multipart resume upload and returns the
// extracted plain text.
func (s *Server) handleExtractText(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(ingestion.MaxUploadSize); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, ingestion.MaxUploadSize+1))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	extraction, err := ingestion.ExtractText(header.Filename, data)
	if err != nil {
		var typeErr *ingestion.ErrUnsupportedType
		if errors.As(err, &typeErr) {
			s.errorResponse(w, http.StatusUnsupportedMediaType, err.Error())
			return
		}
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, extraction)
}
