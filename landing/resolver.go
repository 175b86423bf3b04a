package landing

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sonderworks/beacon/cms"
	"github.com/sonderworks/beacon/log"
)

// Store is the content-store lookup surface the resolver needs. Lookups
// return [cms.ErrNotFound] when no document matches; any other error is a
// transport or decoding failure.
type Store interface {
	LandingPageBySlug(ctx context.Context, slug, locale string, drafts bool) (*cms.LandingPage, error)
	LandingPageByID(ctx context.Context, contentID string, drafts bool) (*cms.LandingPage, error)
}

type ResolveOptions struct {
	// ContentID enables the fallback lookup for preview links whose slug may
	// have changed since the link was issued. Upstream integrations do not
	// guarantee its presence, so it is optional.
	ContentID string
	Locale    string
	Draft     bool
}

type Resolver struct {
	store Store
	log   *zap.SugaredLogger
}

func NewResolver(store Store) *Resolver {
	return &Resolver{
		store: store,
		log:   log.S().Named("resolver"),
	}
}

// Resolve fetches the landing page for slug, falling back to the content
// identifier when the slug lookup definitively fails. The two lookups are
// strictly sequential. Transport failures are demoted to "no match" for that
// step so a flaky store degrades to a not-found page instead of a crash; they
// are still logged so outages remain visible.
func (r *Resolver) Resolve(ctx context.Context, slug string, opts ResolveOptions) (*cms.LandingPage, error) {
	page, err := r.store.LandingPageBySlug(ctx, slug, opts.Locale, opts.Draft)
	if err == nil {
		return page, nil
	}
	if !errors.Is(err, cms.ErrNotFound) {
		r.log.Warnw("slug lookup failed", "slug", slug, "locale", opts.Locale, "err", err)
	}

	if opts.ContentID == "" {
		return nil, cms.ErrNotFound
	}

	page, err = r.store.LandingPageByID(ctx, opts.ContentID, opts.Draft)
	if err == nil {
		return page, nil
	}
	if !errors.Is(err, cms.ErrNotFound) {
		r.log.Warnw("content id lookup failed", "contentId", opts.ContentID, "err", err)
	}

	return nil, cms.ErrNotFound
}
