package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avery/copydesk/internal/generation"
)

// ---------------------------------------------------------------------
// Generation Handlers
// ---------------------------------------------------------------------

func (s *Server) handleGenerateTemplate(w http.ResponseWriter, r *http.Request) {
	var req generation.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.generator.Generate(r.Context(), &req)
	if err != nil {
		s.generationErrorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleAssemblePreview returns the prompt a request would produce without
// calling the model. The editor uses it for its prompt preview pane.
func (s *Server) handleAssemblePreview(w http.ResponseWriter, r *http.Request) {
	var req generation.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	prompt, err := generation.AssemblePreview(&req)
	if err != nil {
		s.generationErrorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"prompt": prompt})
}

// generationErrorResponse maps generation failures onto HTTP statuses.
// Validation problems never reached the model; upstream failures are
// reported as a bad gateway with the upstream message preserved.
func (s *Server) generationErrorResponse(w http.ResponseWriter, err error) {
	var valErr *generation.ValidationError
	if errors.As(err, &valErr) {
		s.errorResponseWithDetails(w, http.StatusBadRequest, "Form validation failed", valErr.Fields)
		return
	}

	var tplErr *generation.UnknownTemplateError
	if errors.As(err, &tplErr) {
		s.errorResponse(w, http.StatusNotFound, tplErr.Error())
		return
	}

	var apiErr *generation.APICallError
	if errors.As(err, &apiErr) {
		s.errorResponse(w, http.StatusBadGateway, apiErr.Error())
		return
	}

	s.errorResponse(w, http.StatusInternalServerError, err.Error())
}
