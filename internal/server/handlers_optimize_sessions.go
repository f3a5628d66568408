package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/avery/copydesk/internal/optimize"
	"github.com/avery/copydesk/internal/types"
)

// ---------------------------------------------------------------------
// Optimize Session Handlers
// ---------------------------------------------------------------------
//
// These endpoints run the optimize-and-compare workflow server-side: a
// session is bound to a document and the selection range the alignment
// was scored on, and accepting the rewrite splices it into the stored
// document with a version snapshot. Clients that only want the rewrite
// text can keep using POST /api/optimize-copy.

type createOptimizeSessionRequest struct {
	DocumentID string                 `json:"documentId"`
	Selection  optimize.Range         `json:"selection"`
	Alignment  *types.AlignmentResult `json:"alignment"`
	BrandVoice *types.BrandVoice      `json:"brandVoice,omitempty"`
	Persona    *types.Persona         `json:"persona,omitempty"`
}

type optimizeSessionView struct {
	SessionID string                `json:"sessionId"`
	State     optimize.State        `json:"state"`
	Editing   bool                  `json:"editing"`
	Result    *types.OptimizeResult `json:"result,omitempty"`
}

func sessionView(id uuid.UUID, session *optimize.Session) optimizeSessionView {
	return optimizeSessionView{
		SessionID: id.String(),
		State:     session.State(),
		Editing:   session.Editing(),
		Result:    session.Result(),
	}
}

// handleCreateOptimizeSession starts a compare session: it runs the rewrite
// against the model and parks the result on the session for accept or reject.
func (s *Server) handleCreateOptimizeSession(w http.ResponseWriter, r *http.Request) {
	var req createOptimizeSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	docID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid document ID")
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

	id, session := s.sessions.Create(docID, req.Selection)
	if err := session.Begin(); err != nil {
		s.sessions.Delete(id)
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := s.optimizer.Rewrite(r.Context(), &optimize.Request{
		Alignment:  req.Alignment,
		BrandVoice: req.BrandVoice,
		Persona:    req.Persona,
	})
	if err != nil {
		session.Fail()
		s.sessions.Delete(id)

		var apiErr *optimize.APICallError
		if errors.As(err, &apiErr) {
			s.errorResponse(w, http.StatusBadGateway, apiErr.Error())
			return
		}
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := session.Deliver(result); err != nil {
		s.sessions.Delete(id)
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, sessionView(id, session))
}

func (s *Server) handleGetOptimizeSession(w http.ResponseWriter, r *http.Request) {
	id, session, ok := s.lookupOptimizeSession(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, sessionView(id, session))
}

type acceptOptimizeSessionRequest struct {
	// EditedCopy replaces the server rewrite when the user edited the preview.
	EditedCopy *string `json:"editedCopy,omitempty"`
}

// handleAcceptOptimizeSession commits the pending rewrite into the document
// at the session's selection range.
func (s *Server) handleAcceptOptimizeSession(w http.ResponseWriter, r *http.Request) {
	id, session, ok := s.lookupOptimizeSession(w, r)
	if !ok {
		return
	}

	var req acceptOptimizeSessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	if err := session.Accept(r.Context(), req.EditedCopy); err != nil {
		var stateErr *optimize.StateError
		if errors.As(err, &stateErr) {
			s.errorResponse(w, http.StatusConflict, stateErr.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, sessionView(id, session))
}

func (s *Server) handleRejectOptimizeSession(w http.ResponseWriter, r *http.Request) {
	id, session, ok := s.lookupOptimizeSession(w, r)
	if !ok {
		return
	}

	if err := session.Reject(); err != nil {
		var stateErr *optimize.StateError
		if errors.As(err, &stateErr) {
			s.errorResponse(w, http.StatusConflict, stateErr.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, sessionView(id, session))
}

func (s *Server) handleToggleOptimizeSessionEditing(w http.ResponseWriter, r *http.Request) {
	id, session, ok := s.lookupOptimizeSession(w, r)
	if !ok {
		return
	}

	if err := session.ToggleEditing(); err != nil {
		var stateErr *optimize.StateError
		if errors.As(err, &stateErr) {
			s.errorResponse(w, http.StatusConflict, stateErr.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, sessionView(id, session))
}

func (s *Server) lookupOptimizeSession(w http.ResponseWriter, r *http.Request) (uuid.UUID, *optimize.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return uuid.Nil, nil, false
	}

	session := s.sessions.Get(id)
	if session == nil {
		s.errorResponse(w, http.StatusNotFound, "Session not found")
		return uuid.Nil, nil, false
	}
	return id, session, true
}
