package renderer

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/sonderworks/beacon/log"
)

type markdown struct {
	md       goldmark.Markdown
	sanitize *bluemonday.Policy
}

func newMarkdown() *markdown {
	return &markdown{
		md: goldmark.New(
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
				extension.Linkify,
				extension.Typographer,
			),
		),
		sanitize: bluemonday.UGCPolicy(),
	}
}

// render converts markdown to HTML and sanitizes it. Content always comes
// from the CMS or local files, but it is authored outside this process and
// gets no free pass.
func (m *markdown) render(source string) template.HTML {
	var buf bytes.Buffer
	err := m.md.Convert([]byte(source), &buf)
	if err != nil {
		log.S().Named("renderer").Warnw("markdown conversion failed", "err", err)
		return ""
	}

	return template.HTML(m.sanitize.SanitizeBytes(buf.Bytes()))
}
