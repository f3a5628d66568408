package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------
// Snippet Handlers
// ---------------------------------------------------------------------

type createSnippetRequest struct {
	ProjectID uuid.UUID `json:"projectId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
}

func (s *Server) handleCreateSnippet(w http.ResponseWriter, r *http.Request) {
	var req createSnippetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ProjectID == uuid.Nil || strings.TrimSpace(req.Content) == "" {
		s.errorResponse(w, http.StatusBadRequest, "Project ID and content are required")
		return
	}

	id, err := s.db.CreateSnippet(r.Context(), req.ProjectID, req.Title, req.Content)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) handleListSnippets(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(r.URL.Query().Get("projectId"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	snippets, err := s.db.ListSnippets(r.Context(), projectID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"snippets": snippets,
		"count":    len(snippets),
	})
}

func (s *Server) handleDeleteSnippet(w http.ResponseWriter, r *http.Request) {
	snippetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid snippet ID")
		return
	}

	if err := s.db.DeleteSnippet(r.Context(), snippetID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}
