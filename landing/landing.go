// Package landing implements the landing-page resolution and rendering
// pipeline: locale routing, content resolution with a preview fallback,
// activation/expiry gating, section dispatch and tracking injection.
package landing

import (
	"github.com/sonderworks/beacon/cms"
)

// Context is the request-scoped outcome of resolution. It is built once per
// request and never mutated afterwards.
type Context struct {
	Page         *cms.LandingPage
	Locale       string
	DraftPreview bool
}
