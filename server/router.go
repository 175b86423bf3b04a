package server

import (
	"net/http"
	"path"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sonderworks/beacon/log"
)

func (s *Server) makeRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(s.withRecoverer)
	r.Use(log.WithZap)
	r.Use(withCleanPath)
	r.Use(middleware.GetHead)
	r.Use(s.withSecurityHeaders)
	r.Use(s.withPreview)

	// Static assets, shared across locales.
	staticDir := filepath.Join(s.c.SourceDirectory, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	if s.extractor != nil {
		r.Get("/ocr", s.ocrGet)
		r.Post("/ocr", s.ocrPost)
	}

	r.Post("/forms/{form}", s.formPost)

	// Content routes exist once per locale: unprefixed for the default
	// locale, prefixed for every other.
	prefixes := []string{""}
	for _, locale := range s.locales.All() {
		if locale != s.locales.Default() {
			prefixes = append(prefixes, "/"+locale)
		}
	}

	for _, prefix := range prefixes {
		if prefix == "" {
			r.Get("/", s.homeGet)
		} else {
			r.Get(prefix, s.homeGet)
		}

		r.Get(prefix+"/lp/{slug}", s.landingGet)
		r.Get(prefix+"/blog", s.blogGet)
		r.Get(prefix+"/blog/{slug}", s.blogEntryGet)
	}

	r.NotFound(s.serveNotFound)
	return r
}

// withCleanPath normalizes dot segments and trailing slashes so every page
// has a single canonical URL.
func withCleanPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cleaned := path.Clean(r.URL.Path)

		if r.URL.Path != cleaned {
			r.URL.Path = cleaned
			http.Redirect(w, r, r.URL.String(), http.StatusTemporaryRedirect)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}
