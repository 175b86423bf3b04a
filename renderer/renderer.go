// Package renderer turns resolved content into HTML pages. Templates ship
// embedded with the binary: a base layout, named page templates cloned from
// it, and one partial per landing-section variant.
package renderer

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"

	"github.com/sonderworks/beacon/config"
	"github.com/sonderworks/beacon/landing"
)

//go:embed templates
var templatesFS embed.FS

const (
	templatesExtension = ".html"
	templatesDirectory = "templates"
	sectionsDirectory  = "templates/sections"

	TemplateBase       = "base"
	TemplateHome       = "home"
	TemplateLanding    = "landing"
	TemplateBlog       = "blog"
	TemplateBlogSingle = "blog-single"
	TemplateOCR        = "ocr"
	TemplateError      = "error"
)

type Renderer struct {
	site      config.Site
	minify    *minify.M
	templates map[string]*template.Template
	sections  map[string]*template.Template
	markdown  *markdown
}

func NewRenderer(site config.Site) (*Renderer, error) {
	r := &Renderer{
		site:     site,
		minify:   newMinify(),
		markdown: newMarkdown(),
	}

	err := r.loadTemplates()
	if err != nil {
		return nil, err
	}

	err = r.loadSectionTemplates()
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Alternate is a locale variant of the current page, used for hreflang links.
type Alternate struct {
	Locale string
	Href   string
}

type Data struct {
	Site config.Site

	Title           string
	MetaTitle       string
	MetaDescription string
	OGImage         string

	Locale     string
	Alternates []Alternate

	// DraftPreview marks an editor preview session; Unpublished additionally
	// marks content that would not pass gating for regular visitors.
	DraftPreview bool
	Unpublished  bool

	Sections []landing.Rendered
	Tracking []template.HTML

	// For page-specific variables.
	Data interface{}
}

func (r *Renderer) Render(w io.Writer, name string, data *Data) error {
	tpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unrecognized template %q", name)
	}

	data.Site = r.site

	mw := r.minify.Writer("text/html", w)
	err := tpl.Execute(mw, data)
	if err != nil {
		return err
	}

	return mw.Close()
}

// Markdown converts untrusted markdown into sanitized HTML.
func (r *Renderer) Markdown(source string) template.HTML {
	return r.markdown.render(source)
}

func (r *Renderer) loadTemplates() error {
	baseRaw, err := templatesFS.ReadFile(filepath.Join(templatesDirectory, TemplateBase+templatesExtension))
	if err != nil {
		return err
	}

	baseTemplate, err := template.New(TemplateBase).Parse(string(baseRaw))
	if err != nil {
		return err
	}

	parsed := map[string]*template.Template{}

	entries, err := templatesFS.ReadDir(templatesDirectory)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := filepath.Ext(name)
		id := strings.TrimSuffix(name, ext)
		if ext != templatesExtension || id == TemplateBase {
			continue
		}

		raw, err := templatesFS.ReadFile(filepath.Join(templatesDirectory, name))
		if err != nil {
			return err
		}

		parsed[id], err = template.Must(baseTemplate.Clone()).New(id).Parse(string(raw))
		if err != nil {
			return err
		}
	}

	if len(parsed) == 0 {
		return errors.New("no templates found")
	}

	r.templates = parsed
	return nil
}

func (r *Renderer) loadSectionTemplates() error {
	parsed := map[string]*template.Template{}

	err := fs.WalkDir(templatesFS, sectionsDirectory, func(filename string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		name := d.Name()
		ext := filepath.Ext(name)
		if ext != templatesExtension {
			return nil
		}

		raw, err := templatesFS.ReadFile(filename)
		if err != nil {
			return err
		}

		id := strings.TrimSuffix(name, ext)
		parsed[id], err = template.New(id).Parse(string(raw))
		return err
	})
	if err != nil {
		return err
	}

	r.sections = parsed
	return nil
}
