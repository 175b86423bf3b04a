package server

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonderworks/beacon/config"
)

func newTestServer(t *testing.T, cmsHandler http.Handler) (*Server, http.Handler) {
	t.Helper()

	cmsServer := httptest.NewServer(cmsHandler)
	t.Cleanup(cmsServer.Close)

	c := &config.Config{
		Development:     true,
		Port:            8080,
		BaseURL:         "https://example.com",
		SourceDirectory: t.TempDir(),
		DataDirectory:   t.TempDir(),
		TokensSecret:    "test-secret",
		Site: config.Site{
			Title:         "Beacon",
			Description:   "Marketing pages",
			DefaultLocale: "en",
			Locales:       []string{"en", "es"},
		},
		CMS: config.CMS{
			Endpoint: cmsServer.URL,
			Token:    "cms-token",
			CacheTTL: time.Minute,
		},
		Forms: map[string]config.Form{
			"contact": {
				Required:    []string{"name", "email"},
				RedirectURL: "/thanks",
			},
		},
	}

	s, err := NewServer(c)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.leadsStore.Close()
	})

	return s, s.makeRouter()
}

func (s *Server) previewToken(t *testing.T) string {
	t.Helper()

	_, tokenString, err := s.jwtAuth.Encode(map[string]interface{}{"scope": "preview"})
	require.NoError(t, err)
	return tokenString
}

func landingJSON(slug string, active bool, expiresAt string) string {
	expires := ""
	if expiresAt != "" {
		expires = fmt.Sprintf(`"expiresAt": %q,`, expiresAt)
	}

	return fmt.Sprintf(`{
		"slug": %q,
		"contentId": "doc-1",
		"title": "Launch Offer",
		"metaDescription": "Limited time deal",
		"isActive": %t,
		%s
		"trackingPixels": {"meta": "px-1"},
		"sections": [
			{"type": "hero", "id": "h1", "headline": "Big Launch", "subheadline": "Now", "ctaText": "Go", "ctaUrl": "#contact"},
			{"type": "faq", "id": "f1", "heading": "FAQ", "items": [{"question": "Q?", "answer": "A."}]},
			{"type": "cta", "heading": "Ready?", "buttonText": "Start", "buttonUrl": "#contact"}
		]
	}`, slug, active, expires)
}

func serveLanding(t *testing.T, pages map[string]string) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := strings.TrimPrefix(r.URL.Path, "/landing-pages/"); id != r.URL.Path {
			if body, ok := pages["id:"+id]; ok {
				_, _ = w.Write([]byte(body))
				return
			}
			w.WriteHeader(http.StatusNotFound)
			return
		}

		key := r.URL.Query().Get("slug") + "|" + r.URL.Query().Get("locale")
		if body, ok := pages[key]; ok {
			_, _ = w.Write([]byte(body))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
}

func get(t *testing.T, router http.Handler, target string) (*http.Response, string) {
	t.Helper()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	res := w.Result()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func TestLandingPagePublished(t *testing.T) {
	_, router := newTestServer(t, serveLanding(t, map[string]string{
		"launch|en": landingJSON("launch", true, ""),
	}))

	res, body := get(t, router, "/lp/launch")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	assert.Contains(t, body, "Big Launch")
	assert.Contains(t, body, "connect.facebook.net")
	assert.Contains(t, body, "px-1")
	assert.NotContains(t, body, "preview-banner")

	// Sections come out in document order with stable keys.
	hero := strings.Index(body, `data-key="hero:h1"`)
	faq := strings.Index(body, `data-key="faq:f1"`)
	cta := strings.Index(body, `data-key="cta#2"`)
	assert.True(t, hero >= 0 && faq > hero && cta > faq, "sections out of order: %d %d %d", hero, faq, cta)
}

func TestLandingPageLocaleVariant(t *testing.T) {
	_, router := newTestServer(t, serveLanding(t, map[string]string{
		"launch|es": landingJSON("launch", true, ""),
	}))

	res, body := get(t, router, "/es/lp/launch")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `lang="es"`)
	assert.Contains(t, body, `hreflang="en" href="https://example.com/lp/launch"`)
	assert.Contains(t, body, `hreflang="es" href="https://example.com/es/lp/launch"`)

	// The same slug does not exist for the default locale.
	res, _ = get(t, router, "/lp/launch")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestLandingPagePreviewUnpublished(t *testing.T) {
	s, router := newTestServer(t, serveLanding(t, map[string]string{
		"id:doc-1": landingJSON("new-offer", false, ""),
	}))

	target := "/lp/new-offer?cid=doc-1&preview=" + url.QueryEscape(s.previewToken(t))
	res, body := get(t, router, target)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "This page is unpublished")
	assert.Contains(t, body, "Big Launch")

	// Without the preview session the same page does not exist.
	res, _ = get(t, router, "/lp/new-offer?cid=doc-1")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestLandingPageExpired(t *testing.T) {
	yesterday := time.Now().Add(-24 * time.Hour).Format(time.RFC3339)
	_, router := newTestServer(t, serveLanding(t, map[string]string{
		"old|en": landingJSON("old", true, yesterday),
	}))

	res, expiredBody := get(t, router, "/lp/old")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, missingBody := get(t, router, "/lp/never-existed")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	// An expired page is indistinguishable from one that never existed.
	assert.Equal(t, missingBody, expiredBody)
}

func TestLandingPageInvalidPreviewToken(t *testing.T) {
	_, router := newTestServer(t, serveLanding(t, map[string]string{
		"id:doc-1": landingJSON("new-offer", false, ""),
	}))

	res, _ := get(t, router, "/lp/new-offer?cid=doc-1&preview=garbage")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestFormPost(t *testing.T) {
	s, router := newTestServer(t, serveLanding(t, nil))

	form := url.Values{}
	form.Set("name", "Jo")
	form.Set("email", "jo@example.com")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/forms/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	res := w.Result()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/thanks", res.Header.Get("Location"))

	subs, err := s.leadsStore.All("contact")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "jo@example.com", subs[0].Fields["email"])
}

func TestFormPostMissingRequired(t *testing.T) {
	s, router := newTestServer(t, serveLanding(t, nil))

	form := url.Values{}
	form.Set("name", "Jo")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/forms/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Result().StatusCode)

	subs, err := s.leadsStore.All("contact")
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestFormPostHoneypot(t *testing.T) {
	s, router := newTestServer(t, serveLanding(t, nil))

	form := url.Values{}
	form.Set("name", "Jo")
	form.Set("email", "jo@example.com")
	form.Set("_honey", "gotcha")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/forms/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	// Bots get the success redirect, but nothing is stored.
	res := w.Result()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/thanks", res.Header.Get("Location"))

	subs, err := s.leadsStore.All("contact")
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestFormPostUnknownForm(t *testing.T) {
	_, router := newTestServer(t, serveLanding(t, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/forms/nope", strings.NewReader("a=b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestPreviewCookieSet(t *testing.T) {
	s, router := newTestServer(t, serveLanding(t, map[string]string{
		"launch|en": landingJSON("launch", true, ""),
	}))

	token := s.previewToken(t)
	res, body := get(t, router, "/lp/launch?preview="+url.QueryEscape(token))
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Editor preview session")

	var cookie *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == "preview" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, token, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	// The cookie alone keeps the session alive on later requests.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/lp/launch", nil)
	req.AddCookie(cookie)
	router.ServeHTTP(w, req)
	cookieBody, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(cookieBody), "Editor preview session")
}

func TestHomeAndNotFound(t *testing.T) {
	_, router := newTestServer(t, serveLanding(t, nil))

	res, body := get(t, router, "/")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Beacon")

	res, _ = get(t, router, "/no/such/page")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
