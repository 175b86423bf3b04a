package landing

import (
	"html/template"
	"strconv"

	"go.uber.org/zap"

	"github.com/sonderworks/beacon/cms"
	"github.com/sonderworks/beacon/log"
)

// Known section discriminant tags.
const (
	SectionHero            = "hero"
	SectionProblemSolution = "problemSolution"
	SectionServices        = "services"
	SectionSocialProof     = "socialProof"
	SectionProcess         = "process"
	SectionFAQ             = "faq"
	SectionCTA             = "cta"
	SectionUrgencyBanner   = "urgencyBanner"
	SectionText            = "text"
)

// SectionHandler renders one section variant. The handler receives the raw
// payload plus the request context, which carries shared fields such as the
// scheduling widget URL for interactive variants.
type SectionHandler func(section cms.Section, rc *Context) (template.HTML, error)

// Rendered is one output node of the section renderer. Key is stable across
// reorders of the source sequence.
type Rendered struct {
	Key  string
	HTML template.HTML
}

type SectionRenderer struct {
	handlers map[string]SectionHandler
	log      *zap.SugaredLogger
}

func NewSectionRenderer(handlers map[string]SectionHandler) *SectionRenderer {
	return &SectionRenderer{
		handlers: handlers,
		log:      log.S().Named("sections"),
	}
}

// RenderAll dispatches every section in document order. The array order is
// the display order. Unknown variants and handler failures are logged and
// skipped; the rest of the sequence still renders.
func (sr *SectionRenderer) RenderAll(sections []cms.Section, rc *Context) []Rendered {
	out := make([]Rendered, 0, len(sections))

	for i, section := range sections {
		handler, ok := sr.handlers[section.Type]
		if !ok {
			sr.log.Warnw("skipping unknown section variant", "type", section.Type, "index", i)
			continue
		}

		html, err := handler(section, rc)
		if err != nil {
			sr.log.Warnw("section render failed", "type", section.Type, "id", section.ID, "err", err)
			continue
		}

		out = append(out, Rendered{
			Key:  renderKey(section, i),
			HTML: html,
		})
	}

	return out
}

// renderKey prefers the section's stable id over its position so that
// reordering the source sequence keeps each node bound to its content.
func renderKey(s cms.Section, index int) string {
	if s.ID != "" {
		return s.Type + ":" + s.ID
	}
	return s.Type + "#" + strconv.Itoa(index)
}
