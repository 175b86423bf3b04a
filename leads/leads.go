// Package leads handles lead-capture form submissions: validation, a local
// audit store, and forwarding to the CMS and per-form automation webhooks.
package leads

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"

	"github.com/sonderworks/beacon/config"
)

// honeypotField is a hidden input real visitors never fill in.
const honeypotField = "_honey"

const maxFieldLength = 2000

var (
	ErrSpam       = errors.New("leads: honeypot triggered")
	ErrUnknownForm = errors.New("leads: unknown form")
)

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("leads: invalid fields: %v", e.Fields)
}

// Submission is one accepted lead. It is written to the audit store before
// any forwarding happens, so a downstream outage cannot lose it.
type Submission struct {
	ID          string            `json:"id"`
	Form        string            `json:"form"`
	Fields      map[string]string `json:"fields"`
	Locale      string            `json:"locale"`
	SubmittedAt time.Time         `json:"submittedAt"`
}

// NewSubmission validates and sanitizes raw form fields against the form's
// configuration and builds a Submission from them.
func NewSubmission(formName string, form config.Form, fields map[string]string, locale string) (*Submission, error) {
	if fields[honeypotField] != "" {
		return nil, ErrSpam
	}

	sanitize := bluemonday.StrictPolicy()
	clean := map[string]string{}
	for key, value := range fields {
		if key == honeypotField {
			continue
		}
		if len(value) > maxFieldLength {
			value = value[:maxFieldLength]
		}
		clean[key] = sanitize.Sanitize(value)
	}

	invalid := lo.Filter(form.Required, func(field string, _ int) bool {
		return clean[field] == ""
	})

	if email, ok := clean["email"]; ok && email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			invalid = append(invalid, "email")
		}
	}

	if len(invalid) > 0 {
		return nil, &ValidationError{Fields: lo.Uniq(invalid)}
	}

	return &Submission{
		ID:          uuid.NewString(),
		Form:        formName,
		Fields:      clean,
		Locale:      locale,
		SubmittedAt: time.Now().UTC(),
	}, nil
}
