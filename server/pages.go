package server

import (
	"net/http"

	"github.com/sonderworks/beacon/renderer"
)

func (s *Server) homeGet(w http.ResponseWriter, r *http.Request) {
	s.serveHTML(w, r, http.StatusOK, renderer.TemplateHome, &renderer.Data{
		MetaDescription: s.c.Site.Description,
		Alternates:      s.alternates("/"),
	})
}
