package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const previewContextKey contextKey = "preview"

const previewCookie = "preview"

// withPreview resolves the editor preview session. A signed token may arrive
// on the preview query parameter (from a CMS preview link), after which it is
// kept in a short-lived cookie. Invalid or absent tokens silently mean "not
// preview"; they never produce an error page.
func (s *Server) withPreview(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.URL.Query().Get("preview")
		fromQuery := tokenString != ""

		if tokenString == "" {
			if cookie, err := r.Cookie(previewCookie); err == nil {
				tokenString = cookie.Value
			}
		}

		if tokenString != "" && s.validPreviewToken(tokenString) {
			if fromQuery {
				http.SetCookie(w, &http.Cookie{
					Name:     previewCookie,
					Value:    tokenString,
					Path:     "/",
					MaxAge:   int(time.Hour.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			r = r.WithContext(context.WithValue(r.Context(), previewContextKey, true))
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) validPreviewToken(tokenString string) bool {
	token, err := jwtauth.VerifyToken(s.jwtAuth, tokenString)
	if err != nil {
		return false
	}

	scope, ok := token.Get("scope")
	return ok && scope == "preview"
}

func (s *Server) isDraftPreview(r *http.Request) bool {
	preview, ok := r.Context().Value(previewContextKey).(bool)
	return ok && preview
}
