package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/sonderworks/beacon/landing"
	"github.com/sonderworks/beacon/renderer"
)

func (s *Server) landingGet(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	locale := s.locales.FromPath(r.URL.Path)
	draft := s.isDraftPreview(r)

	page, err := s.resolver.Resolve(r.Context(), slug, landing.ResolveOptions{
		ContentID: r.URL.Query().Get("cid"),
		Locale:    locale,
		Draft:     draft,
	})
	if err != nil {
		s.serveNotFound(w, r)
		return
	}

	now := time.Now()
	if !landing.CanRender(page, draft, now) {
		s.serveNotFound(w, r)
		return
	}

	rc := &landing.Context{
		Page:         page,
		Locale:       locale,
		DraftPreview: draft,
	}

	s.serveHTML(w, r, http.StatusOK, renderer.TemplateLanding, &renderer.Data{
		Title:           page.Title,
		MetaTitle:       page.MetaTitle,
		MetaDescription: page.MetaDescription,
		OGImage:         page.OGImage,
		Alternates:      s.alternates("/lp/" + page.Slug),
		DraftPreview:    draft,
		Unpublished:     draft && !landing.CanRender(page, false, now),
		Sections:        s.sections.RenderAll(page.Sections, rc),
		Tracking:        landing.TrackingSnippets(page.TrackingPixels),
	})
}

// alternates lists every locale variant of a canonical path.
func (s *Server) alternates(canonical string) []renderer.Alternate {
	return lo.Map(s.locales.All(), func(locale string, _ int) renderer.Alternate {
		return renderer.Alternate{
			Locale: locale,
			Href:   s.c.BaseURL + s.locales.Localize(canonical, locale),
		}
	})
}
