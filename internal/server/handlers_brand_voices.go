package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/avery/copydesk/internal/db"
	"github.com/avery/copydesk/internal/types"
)

// ---------------------------------------------------------------------
// Brand Voice Handlers
// ---------------------------------------------------------------------

type saveBrandVoiceRequest struct {
	ProjectID  uuid.UUID         `json:"projectId"`
	BrandVoice *types.BrandVoice `json:"brandVoice"`
}

func (s *Server) handleSaveBrandVoice(w http.ResponseWriter, r *http.Request) {
	var req saveBrandVoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ProjectID == uuid.Nil {
		s.errorResponse(w, http.StatusBadRequest, "Project ID is required")
		return
	}
	if req.BrandVoice == nil || strings.TrimSpace(req.BrandVoice.BrandName) == "" {
		s.errorResponse(w, http.StatusBadRequest, "Brand voice with a brand name is required")
		return
	}

	id, err := s.db.SaveBrandVoiceToProject(r.Context(), req.ProjectID, req.BrandVoice)
	if err != nil {
		if errors.Is(err, db.ErrUniqueViolation) {
			s.errorResponseWithDetails(w, http.StatusConflict,
				"Project already has a brand voice",
				map[string]string{"hint": "run POST /api/db/run-migration, or update the existing brand voice"})
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) handleGetProjectBrandVoice(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(r.URL.Query().Get("projectId"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	voice, err := s.db.GetProjectBrandVoice(r.Context(), projectID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if voice == nil {
		s.errorResponse(w, http.StatusNotFound, "Brand voice not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, voice)
}

func (s *Server) handleUpdateBrandVoice(w http.ResponseWriter, r *http.Request) {
	voiceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid brand voice ID")
		return
	}

	var voice types.BrandVoice
	if err := json.NewDecoder(r.Body).Decode(&voice); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	voice.ID = voiceID

	if err := s.db.UpdateBrandVoice(r.Context(), &voice); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteBrandVoice(w http.ResponseWriter, r *http.Request) {
	voiceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid brand voice ID")
		return
	}

	if err := s.db.DeleteBrandVoice(r.Context(), voiceID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListAllBrandVoices(w http.ResponseWriter, r *http.Request) {
	voices, err := s.db.ListAllBrandVoices(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"brand_voices": voices,
		"count":        len(voices),
	})
}

// handleRunMigration deduplicates brand voices and installs the one-per-project
// constraint. Safe to run repeatedly.
func (s *Server) handleRunMigration(w http.ResponseWriter, r *http.Request) {
	if err := s.db.RunBrandVoiceMigration(r.Context()); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Migration failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "migrated"})
}
