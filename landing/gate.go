package landing

import (
	"time"

	"github.com/sonderworks/beacon/cms"
)

// CanRender decides whether a resolved document may be served. Draft preview
// bypasses both activation and expiry so editors can review content before it
// goes live or after it lapses. A false result must surface as a plain
// not-found outcome: visitors cannot tell a gated page from a missing one.
func CanRender(page *cms.LandingPage, draftPreview bool, now time.Time) bool {
	if draftPreview {
		return true
	}

	if !page.IsActive {
		return false
	}

	if page.Expired(now) {
		return false
	}

	return true
}
