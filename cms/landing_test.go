package cms

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLandingPageUnmarshal(t *testing.T) {
	payload := `{
		"slug": "spring-sale",
		"contentId": "abc123",
		"title": "Spring Sale",
		"metaTitle": "Spring Sale | Beacon",
		"metaDescription": "Save big this spring.",
		"isActive": true,
		"expiresAt": "2026-06-01T00:00:00Z",
		"calendlyUrl": "https://calendly.com/beacon/intro",
		"trackingPixels": {"meta": "111", "google": "G-1"},
		"sections": [
			{"type": "hero", "id": "h1", "headline": "Hello"},
			{"type": "faq", "id": "f1", "items": [{"q": "Why?", "a": "Because."}]}
		]
	}`

	page := &LandingPage{}
	require.NoError(t, json.Unmarshal([]byte(payload), page))

	assert.Equal(t, "spring-sale", page.Slug)
	assert.Equal(t, "abc123", page.ContentID)
	assert.True(t, page.IsActive)
	require.NotNil(t, page.ExpiresAt)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), page.ExpiresAt.UTC())
	assert.Equal(t, "111", page.TrackingPixels["meta"])

	require.Len(t, page.Sections, 2)
	assert.Equal(t, "hero", page.Sections[0].Type)
	assert.Equal(t, "h1", page.Sections[0].ID)
	assert.Equal(t, "Hello", page.Sections[0].Fields.String("headline"))
}

func TestLandingPageExpiresAtFormats(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		expired bool
		set     bool
	}{
		{"rfc3339", `"2020-01-01T00:00:00Z"`, true, true},
		{"date only", `"2020-01-01"`, true, true},
		{"us format", `"01/02/2020"`, true, true},
		{"empty", `""`, false, false},
		{"garbage", `"next tuesday-ish"`, false, false},
	}

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for _, tt := range tests {
		page := &LandingPage{}
		err := json.Unmarshal([]byte(`{"slug": "x", "isActive": true, "expiresAt": `+tt.raw+`}`), page)
		require.NoError(t, err, "failed for: %s", tt.name)
		assert.Equal(t, tt.set, page.ExpiresAt != nil, "failed for: %s", tt.name)
		assert.Equal(t, tt.expired, page.Expired(now), "failed for: %s", tt.name)
	}
}

func TestSectionUnmarshalKeepsPayload(t *testing.T) {
	raw := `{"type": "services", "id": "s1", "heading": "What we do", "items": ["a", "b"]}`

	s := &Section{}
	require.NoError(t, json.Unmarshal([]byte(raw), s))

	assert.Equal(t, "services", s.Type)
	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, "What we do", s.Fields.String("heading"))
	assert.Len(t, s.Fields.Strings("items"), 2)
}
