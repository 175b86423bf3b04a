package cms

import (
	"encoding/json"
	"time"

	"github.com/araddon/dateparse"
	"github.com/karlseguin/typed"
)

// LandingPage is a CMS-authored landing page. The content store is the only
// writer; the render pipeline holds a request-scoped, read-only copy.
type LandingPage struct {
	Slug            string
	ContentID       string
	Title           string
	MetaTitle       string
	MetaDescription string
	OGImage         string
	IsActive        bool
	ExpiresAt       *time.Time
	CalendlyURL     string
	TrackingPixels  map[string]string
	Sections        []Section
}

func (p *LandingPage) UnmarshalJSON(data []byte) error {
	var raw struct {
		Slug            string            `json:"slug"`
		ContentID       string            `json:"contentId"`
		Title           string            `json:"title"`
		MetaTitle       string            `json:"metaTitle"`
		MetaDescription string            `json:"metaDescription"`
		OGImage         string            `json:"ogImage"`
		IsActive        bool              `json:"isActive"`
		ExpiresAt       string            `json:"expiresAt"`
		CalendlyURL     string            `json:"calendlyUrl"`
		TrackingPixels  map[string]string `json:"trackingPixels"`
		Sections        []Section         `json:"sections"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	p.Slug = raw.Slug
	p.ContentID = raw.ContentID
	p.Title = raw.Title
	p.MetaTitle = raw.MetaTitle
	p.MetaDescription = raw.MetaDescription
	p.OGImage = raw.OGImage
	p.IsActive = raw.IsActive
	p.CalendlyURL = raw.CalendlyURL
	p.TrackingPixels = raw.TrackingPixels
	p.Sections = raw.Sections

	// Editors author this field by hand, so accept any parseable format
	// and treat garbage as unset.
	if raw.ExpiresAt != "" {
		if t, err := dateparse.ParseAny(raw.ExpiresAt); err == nil {
			p.ExpiresAt = &t
		}
	}

	return nil
}

// Expired reports whether the page's expiry date, if any, is strictly in the past.
func (p *LandingPage) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && p.ExpiresAt.Before(now)
}

// Section is one record of a landing page's ordered content sequence. Type is
// the discriminant tag; Fields carries the variant-specific payload as-is.
type Section struct {
	Type   string
	ID     string
	Fields typed.Typed
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var fields typed.Typed
	err := json.Unmarshal(data, &fields)
	if err != nil {
		return err
	}

	s.Type = fields.String("type")
	s.ID = fields.String("id")
	s.Fields = fields
	return nil
}
