package server

import (
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/sonderworks/beacon/blog"
	"github.com/sonderworks/beacon/renderer"
)

type blogListItem struct {
	Title   string
	Summary string
	Path    string
	Date    time.Time
}

func (s *Server) blogGet(w http.ResponseWriter, r *http.Request) {
	locale := s.locales.FromPath(r.URL.Path)
	posts := s.blog.List(locale, s.isDraftPreview(r))

	items := lo.Map(posts, func(p *blog.Post, _ int) blogListItem {
		return blogListItem{
			Title:   p.Title,
			Summary: p.Summary,
			Path:    s.locales.Localize(p.Path(), locale),
			Date:    p.Date,
		}
	})

	s.serveHTML(w, r, http.StatusOK, renderer.TemplateBlog, &renderer.Data{
		Title:        "Blog",
		Alternates:   s.alternates("/blog"),
		DraftPreview: s.isDraftPreview(r),
		Data:         items,
	})
}

func (s *Server) blogEntryGet(w http.ResponseWriter, r *http.Request) {
	locale := s.locales.FromPath(r.URL.Path)
	draft := s.isDraftPreview(r)

	post, err := s.blog.Get(chi.URLParam(r, "slug"), locale, draft)
	if err != nil {
		s.serveNotFound(w, r)
		return
	}

	s.serveHTML(w, r, http.StatusOK, renderer.TemplateBlogSingle, &renderer.Data{
		Title:           post.Title,
		MetaDescription: post.Summary,
		Alternates:      s.alternates(post.Path()),
		DraftPreview:    draft,
		Unpublished:     draft && post.Draft,
		Data: struct {
			Title string
			Date  time.Time
			Body  template.HTML
		}{
			Title: post.Title,
			Date:  post.Date,
			Body:  s.renderer.Markdown(post.Content),
		},
	})
}
