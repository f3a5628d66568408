package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/avery/copydesk/internal/alignment"
	"github.com/avery/copydesk/internal/optimize"
	"github.com/avery/copydesk/internal/types"
)

// ---------------------------------------------------------------------
// Alignment Handlers
// ---------------------------------------------------------------------

type brandAlignmentRequest struct {
	Text       string            `json:"text"`
	BrandVoice *types.BrandVoice `json:"brandVoice"`
}

func (s *Server) handleCheckBrandAlignment(w http.ResponseWriter, r *http.Request) {
	var req brandAlignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		s.errorResponse(w, http.StatusBadRequest, "Text is required")
		return
	}
	if req.BrandVoice == nil {
		s.errorResponse(w, http.StatusBadRequest, "Brand voice is required")
		return
	}

	result, err := s.checker.CheckBrand(r.Context(), req.Text, req.BrandVoice)
	if err != nil {
		s.alignmentErrorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

type personaAlignmentRequest struct {
	Text    string         `json:"text"`
	Persona *types.Persona `json:"persona"`
}

func (s *Server) handleCheckPersonaAlignment(w http.ResponseWriter, r *http.Request) {
	var req personaAlignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		s.errorResponse(w, http.StatusBadRequest, "Text is required")
		return
	}
	if req.Persona == nil {
		s.errorResponse(w, http.StatusBadRequest, "Persona is required")
		return
	}

	result, err := s.checker.CheckPersona(r.Context(), req.Text, req.Persona)
	if err != nil {
		s.alignmentErrorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// ---------------------------------------------------------------------
// Optimize Handler
// ---------------------------------------------------------------------

type optimizeRequest struct {
	Alignment  *types.AlignmentResult `json:"alignment"`
	BrandVoice *types.BrandVoice      `json:"brandVoice,omitempty"`
	Persona    *types.Persona         `json:"persona,omitempty"`
}

func (s *Server) handleOptimizeCopy(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Alignment == nil {
		s.errorResponse(w, http.StatusBadRequest, "Alignment result is required")
		return
	}
	if strings.TrimSpace(req.Alignment.AnalyzedText) == "" {
		s.errorResponse(w, http.StatusBadRequest, "Alignment result carries no analyzed text")
		return
	}

	result, err := s.optimizer.Rewrite(r.Context(), &optimize.Request{
		Alignment:  req.Alignment,
		BrandVoice: req.BrandVoice,
		Persona:    req.Persona,
	})
	if err != nil {
		var apiErr *optimize.APICallError
		if errors.As(err, &apiErr) {
			s.errorResponse(w, http.StatusBadGateway, apiErr.Error())
			return
		}
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) alignmentErrorResponse(w http.ResponseWriter, err error) {
	var apiErr *alignment.APICallError
	if errors.As(err, &apiErr) {
		s.errorResponse(w, http.StatusBadGateway, apiErr.Error())
		return
	}
	s.errorResponse(w, http.StatusInternalServerError, err.Error())
}
