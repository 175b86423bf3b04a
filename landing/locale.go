package landing

import (
	"strings"

	"github.com/samber/lo"
)

// Locales is a closed set of locale tags. Exactly one locale is the default
// and is never represented with a path prefix; all others always carry one.
type Locales struct {
	def    string
	others []string
}

func NewLocales(def string, others []string) *Locales {
	return &Locales{
		def:    def,
		others: lo.Without(lo.Uniq(others), def),
	}
}

func (l *Locales) Default() string {
	return l.def
}

// All returns every known locale, default first.
func (l *Locales) All() []string {
	return append([]string{l.def}, l.others...)
}

func (l *Locales) Known(tag string) bool {
	return tag == l.def || lo.Contains(l.others, tag)
}

// FromPath returns the locale indicated by the path's first segment, or the
// default locale. It never fails.
func (l *Locales) FromPath(path string) string {
	if seg := firstSegment(path); lo.Contains(l.others, seg) {
		return seg
	}
	return l.def
}

// Strip removes a recognized non-default locale prefix. Paths without one are
// returned unchanged; the default locale has no prefix to strip.
func (l *Locales) Strip(path string) string {
	seg := firstSegment(path)
	if !lo.Contains(l.others, seg) {
		return path
	}

	stripped := strings.TrimPrefix(path, "/"+seg)
	if stripped == "" {
		return "/"
	}
	return stripped
}

// Localize strips any existing locale prefix and, for a non-default locale,
// prepends it. Idempotent.
func (l *Locales) Localize(path, locale string) string {
	path = l.Strip(path)
	if locale == l.def || !lo.Contains(l.others, locale) {
		return path
	}

	if path == "/" {
		return "/" + locale
	}
	return "/" + locale + path
}

func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
