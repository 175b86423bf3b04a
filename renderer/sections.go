package renderer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/karlseguin/typed"
	"github.com/samber/lo"

	"github.com/sonderworks/beacon/cms"
	"github.com/sonderworks/beacon/landing"
)

// SectionHandlers returns the presentation handler for every known section
// variant, each backed by its embedded partial template.
func (r *Renderer) SectionHandlers() map[string]landing.SectionHandler {
	return map[string]landing.SectionHandler{
		landing.SectionHero:            r.section("hero", heroView),
		landing.SectionProblemSolution: r.section("problem-solution", problemSolutionView),
		landing.SectionServices:        r.section("services", servicesView),
		landing.SectionSocialProof:     r.section("social-proof", socialProofView),
		landing.SectionProcess:         r.section("process", processView),
		landing.SectionFAQ:             r.section("faq", faqView),
		landing.SectionCTA:             r.section("cta", ctaView),
		landing.SectionUrgencyBanner:   r.section("urgency-banner", urgencyBannerView),
		landing.SectionText:            r.textSection(),
	}
}

type viewFunc func(s cms.Section, rc *landing.Context) interface{}

func (r *Renderer) section(name string, view viewFunc) landing.SectionHandler {
	return func(s cms.Section, rc *landing.Context) (template.HTML, error) {
		tpl, ok := r.sections[name]
		if !ok {
			return "", fmt.Errorf("missing section template %q", name)
		}

		var buf bytes.Buffer
		err := tpl.Execute(&buf, view(s, rc))
		if err != nil {
			return "", err
		}

		return template.HTML(buf.String()), nil
	}
}

// calendlyURL is only threaded into interactive variants.
func calendlyURL(rc *landing.Context) string {
	if rc == nil || rc.Page == nil {
		return ""
	}
	return rc.Page.CalendlyURL
}

type titledItem struct {
	Title string
	Text  string
	Icon  string
}

func items(fields typed.Typed, key string) []titledItem {
	return lo.Map(fields.Objects(key), func(o typed.Typed, _ int) titledItem {
		return titledItem{
			Title: o.String("title"),
			Text:  o.String("text"),
			Icon:  o.String("icon"),
		}
	})
}

func heroView(s cms.Section, rc *landing.Context) interface{} {
	return struct {
		Headline    string
		Subheadline string
		Image       string
		CTAText     string
		CTAURL      string
		Calendly    string
	}{
		Headline:    s.Fields.String("headline"),
		Subheadline: s.Fields.String("subheadline"),
		Image:       s.Fields.String("image"),
		CTAText:     s.Fields.String("ctaText"),
		CTAURL:      s.Fields.String("ctaUrl"),
		Calendly:    calendlyURL(rc),
	}
}

func problemSolutionView(s cms.Section, _ *landing.Context) interface{} {
	return struct {
		Heading  string
		Problems []titledItem
		Solution string
	}{
		Heading:  s.Fields.String("heading"),
		Problems: items(s.Fields, "problems"),
		Solution: s.Fields.String("solution"),
	}
}

func servicesView(s cms.Section, rc *landing.Context) interface{} {
	return struct {
		Heading  string
		Services []titledItem
		Calendly string
	}{
		Heading:  s.Fields.String("heading"),
		Services: items(s.Fields, "services"),
		Calendly: calendlyURL(rc),
	}
}

func socialProofView(s cms.Section, _ *landing.Context) interface{} {
	type testimonial struct {
		Quote  string
		Author string
		Role   string
	}

	return struct {
		Heading      string
		Testimonials []testimonial
		Logos        []string
	}{
		Heading: s.Fields.String("heading"),
		Testimonials: lo.Map(s.Fields.Objects("testimonials"), func(o typed.Typed, _ int) testimonial {
			return testimonial{
				Quote:  o.String("quote"),
				Author: o.String("author"),
				Role:   o.String("role"),
			}
		}),
		Logos: s.Fields.Strings("logos"),
	}
}

func processView(s cms.Section, _ *landing.Context) interface{} {
	return struct {
		Heading string
		Steps   []titledItem
	}{
		Heading: s.Fields.String("heading"),
		Steps:   items(s.Fields, "steps"),
	}
}

func faqView(s cms.Section, _ *landing.Context) interface{} {
	type question struct {
		Question string
		Answer   string
	}

	return struct {
		Heading   string
		Questions []question
	}{
		Heading: s.Fields.String("heading"),
		Questions: lo.Map(s.Fields.Objects("items"), func(o typed.Typed, _ int) question {
			return question{
				Question: o.String("question"),
				Answer:   o.String("answer"),
			}
		}),
	}
}

func ctaView(s cms.Section, rc *landing.Context) interface{} {
	return struct {
		Heading    string
		Text       string
		ButtonText string
		ButtonURL  string
		Calendly   string
	}{
		Heading:    s.Fields.String("heading"),
		Text:       s.Fields.String("text"),
		ButtonText: s.Fields.String("buttonText"),
		ButtonURL:  s.Fields.String("buttonUrl"),
		Calendly:   calendlyURL(rc),
	}
}

func urgencyBannerView(s cms.Section, rc *landing.Context) interface{} {
	return struct {
		Text     string
		Deadline string
		Calendly string
	}{
		Text:     s.Fields.String("text"),
		Deadline: s.Fields.String("deadline"),
		Calendly: calendlyURL(rc),
	}
}

func (r *Renderer) textSection() landing.SectionHandler {
	return func(s cms.Section, _ *landing.Context) (template.HTML, error) {
		tpl, ok := r.sections["text"]
		if !ok {
			return "", fmt.Errorf("missing section template %q", "text")
		}

		var buf bytes.Buffer
		err := tpl.Execute(&buf, struct {
			Title string
			Body  template.HTML
		}{
			Title: s.Fields.String("title"),
			Body:  r.Markdown(s.Fields.String("body")),
		})
		if err != nil {
			return "", err
		}

		return template.HTML(buf.String()), nil
	}
}
