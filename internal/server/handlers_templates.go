package server

import (
	"net/http"

	"github.com/avery/copydesk/internal/catalog"
)

// ---------------------------------------------------------------------
// Template Catalog Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	var templates []catalog.Template
	if category := r.URL.Query().Get("category"); category != "" {
		templates = catalog.ListByCategory(category)
	} else {
		templates = catalog.List()
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"templates": templates,
		"count":     len(templates),
	})
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	tpl := catalog.Get(r.PathValue("id"))
	if tpl == nil {
		s.errorResponse(w, http.StatusNotFound, "Template not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, tpl)
}
