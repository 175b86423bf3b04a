package renderer

import (
	"github.com/tdewolff/minify/v2"
	mCss "github.com/tdewolff/minify/v2/css"
	mHtml "github.com/tdewolff/minify/v2/html"
	mJs "github.com/tdewolff/minify/v2/js"
)

func newMinify() *minify.M {
	m := minify.New()
	m.AddFunc("text/html", mHtml.Minify)
	m.AddFunc("text/css", mCss.Minify)
	m.AddFunc("application/javascript", mJs.Minify)
	return m
}
