package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sonderworks/beacon/leads"
)

const forwardTimeout = 30 * time.Second

func (s *Server) formPost(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "form")
	form, ok := s.c.Forms[name]
	if !ok {
		s.serveNotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.serveErrorHTML(w, r, http.StatusBadRequest, err)
		return
	}

	fields := map[string]string{}
	for key, values := range r.PostForm {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}

	locale := s.locales.FromPath(r.Header.Get("Referer"))
	sub, err := leads.NewSubmission(name, form, fields, locale)
	if err != nil {
		var verr *leads.ValidationError
		switch {
		case errors.Is(err, leads.ErrSpam):
			// Pretend the submission went through so bots learn nothing.
			s.redirectAfterForm(w, r, form.RedirectURL)
		case errors.As(err, &verr):
			s.serveErrorHTML(w, r, http.StatusUnprocessableEntity, verr)
		default:
			s.serveErrorHTML(w, r, http.StatusInternalServerError, err)
		}
		return
	}

	if err := s.leadsStore.Add(sub); err != nil {
		s.serveErrorHTML(w, r, http.StatusInternalServerError, err)
		return
	}

	go s.forwardLead(sub, form.WebhookURL)

	s.redirectAfterForm(w, r, form.RedirectURL)
}

func (s *Server) forwardLead(sub *leads.Submission, webhookURL string) {
	ctx, cancel := context.WithTimeout(context.Background(), forwardTimeout)
	defer cancel()

	if err := s.forwarder.Forward(ctx, sub, webhookURL); err != nil {
		s.n.Error(fmt.Errorf("forwarding lead %s: %w", sub.ID, err))
		return
	}

	s.n.Info(fmt.Sprintf("📬 New lead via %s (%s)", sub.Form, sub.ID))
}

func (s *Server) redirectAfterForm(w http.ResponseWriter, r *http.Request, redirectURL string) {
	if redirectURL == "" {
		redirectURL = "/"
	}

	// Only accept local or same-site targets.
	if !strings.HasPrefix(redirectURL, "/") && !strings.HasPrefix(redirectURL, s.c.BaseURL) {
		redirectURL = "/"
	}

	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}
