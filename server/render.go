package server

import (
	"bytes"
	"net/http"

	"github.com/sonderworks/beacon/renderer"
)

func (s *Server) serveHTML(w http.ResponseWriter, r *http.Request, code int, template string, data *renderer.Data) {
	data.Locale = s.locales.FromPath(r.URL.Path)

	var buf bytes.Buffer
	err := s.renderer.Render(&buf, template, data)
	if err != nil {
		s.log.Errorw("render failed", "template", template, "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if data.DraftPreview {
		w.Header().Set("Cache-Control", "no-store")
	} else {
		w.Header().Set("Cache-Control", "no-cache, no-store, max-age=0")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}

// serveNotFound is the single not-found outcome. Resolution failures, gating
// denials and unknown routes are indistinguishable here on purpose.
func (s *Server) serveNotFound(w http.ResponseWriter, r *http.Request) {
	s.serveHTML(w, r, http.StatusNotFound, renderer.TemplateError, &renderer.Data{
		Title: "Page Not Found",
		Data:  "The page you are looking for does not exist.",
	})
}

func (s *Server) serveErrorHTML(w http.ResponseWriter, r *http.Request, code int, err error) {
	data := &renderer.Data{
		Title: http.StatusText(code),
	}

	if err != nil {
		s.log.Errorw("request failed", "path", r.URL.Path, "code", code, "err", err)
		if code < http.StatusInternalServerError {
			data.Data = err.Error()
		}
	}

	s.serveHTML(w, r, code, renderer.TemplateError, data)
}
