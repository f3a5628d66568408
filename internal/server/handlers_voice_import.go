package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/avery/copydesk/internal/voice"
)

// ---------------------------------------------------------------------
// Brand Voice Import Handler
// ---------------------------------------------------------------------

type importBrandVoiceRequest struct {
	URL        string `json:"url"`
	UseBrowser bool   `json:"useBrowser,omitempty"`
}

// handleImportBrandVoice extracts a draft brand voice from a public website.
// The draft is returned for review; nothing is persisted until the client
// saves it through the brand voice endpoints.
func (s *Server) handleImportBrandVoice(w http.ResponseWriter, r *http.Request) {
	var req importBrandVoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	target := strings.TrimSpace(req.URL)
	if target == "" {
		s.errorResponse(w, http.StatusBadRequest, "URL is required")
		return
	}
	parsed, err := url.Parse(target)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		s.errorResponse(w, http.StatusBadRequest, "URL must be absolute http or https")
		return
	}

	draft, err := s.importer.FromURL(r.Context(), target, &voice.ImportOptions{
		UseBrowser: req.UseBrowser || s.useBrowser,
	})
	if err != nil {
		var impErr *voice.ImportError
		if errors.As(err, &impErr) {
			s.errorResponse(w, http.StatusBadGateway, impErr.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, draft)
}
