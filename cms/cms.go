// Package cms implements a read-only client for the headless content store.
package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/maypok86/otter/v2"
	"go.uber.org/zap"

	"github.com/sonderworks/beacon/config"
	"github.com/sonderworks/beacon/log"
)

// ErrNotFound is returned when the content store has no matching document.
var ErrNotFound = errors.New("cms: not found")

type Client struct {
	httpClient   *http.Client
	endpoint     string
	token        string
	previewToken string
	cache        *otter.Cache[string, *LandingPage]
	log          *zap.SugaredLogger
}

func NewClient(c *config.CMS) *Client {
	ttl := c.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &Client{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		endpoint:     c.Endpoint,
		token:        c.Token,
		previewToken: c.PreviewToken,
		cache: otter.Must(&otter.Options[string, *LandingPage]{
			MaximumSize:      500,
			ExpiryCalculator: otter.ExpiryWriting[string, *LandingPage](ttl),
		}),
		log: log.S().Named("cms"),
	}
}

// LandingPageBySlug looks a landing page up by its slug and locale. Draft
// lookups query with elevated access and never touch the cache.
func (c *Client) LandingPageBySlug(ctx context.Context, slug, locale string, drafts bool) (*LandingPage, error) {
	key := slug + "|" + locale

	if !drafts {
		if page, ok := c.cache.GetIfPresent(key); ok {
			return page, nil
		}
	}

	query := url.Values{}
	query.Set("slug", slug)
	query.Set("locale", locale)
	page, err := c.fetch(ctx, "/landing-pages", query, drafts)
	if err != nil {
		return nil, err
	}

	if !drafts {
		c.cache.Set(key, page)
	}

	return page, nil
}

// LandingPageByID looks a landing page up by its stable content identifier.
// Used by preview links, whose slug may be stale, so it is never cached.
func (c *Client) LandingPageByID(ctx context.Context, contentID string, drafts bool) (*LandingPage, error) {
	return c.fetch(ctx, "/landing-pages/"+url.PathEscape(contentID), nil, drafts)
}

// PurgeCache drops all cached content-store responses.
func (c *Client) PurgeCache() {
	c.cache.InvalidateAll()
}

func (c *Client) fetch(ctx context.Context, path string, query url.Values, drafts bool) (*LandingPage, error) {
	if c.endpoint == "" {
		return nil, ErrNotFound
	}

	if query == nil {
		query = url.Values{}
	}
	if drafts {
		query.Set("drafts", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	token := c.token
	if drafts && c.previewToken != "" {
		token = c.previewToken
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("cms: unexpected status %d for %s", resp.StatusCode, path)
	}

	page := &LandingPage{}
	err = json.NewDecoder(resp.Body).Decode(page)
	if err != nil {
		return nil, err
	}

	if page.Slug == "" && page.ContentID == "" {
		return nil, ErrNotFound
	}

	return page, nil
}
