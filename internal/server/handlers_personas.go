package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/avery/copydesk/internal/types"
)

// ---------------------------------------------------------------------
// Persona Handlers
// ---------------------------------------------------------------------

type createPersonaRequest struct {
	ProjectID uuid.UUID      `json:"projectId"`
	Persona   *types.Persona `json:"persona"`
}

func (s *Server) handleCreatePersona(w http.ResponseWriter, r *http.Request) {
	var req createPersonaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ProjectID == uuid.Nil {
		s.errorResponse(w, http.StatusBadRequest, "Project ID is required")
		return
	}
	if req.Persona == nil || strings.TrimSpace(req.Persona.Name) == "" {
		s.errorResponse(w, http.StatusBadRequest, "Persona with a name is required")
		return
	}

	id, err := s.db.CreatePersona(r.Context(), req.ProjectID, req.Persona)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) handleGetPersona(w http.ResponseWriter, r *http.Request) {
	personaID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid persona ID")
		return
	}

	persona, err := s.db.GetPersona(r.Context(), personaID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if persona == nil {
		s.errorResponse(w, http.StatusNotFound, "Persona not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, persona)
}

func (s *Server) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(r.URL.Query().Get("projectId"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	personas, err := s.db.GetProjectPersonas(r.Context(), projectID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"personas": personas,
		"count":    len(personas),
	})
}

func (s *Server) handleUpdatePersona(w http.ResponseWriter, r *http.Request) {
	personaID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid persona ID")
		return
	}

	var persona types.Persona
	if err := json.NewDecoder(r.Body).Decode(&persona); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	persona.ID = personaID

	if err := s.db.UpdatePersona(r.Context(), &persona); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeletePersona(w http.ResponseWriter, r *http.Request) {
	personaID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid persona ID")
		return
	}

	if err := s.db.DeletePersona(r.Context(), personaID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}
