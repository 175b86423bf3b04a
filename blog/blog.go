// Package blog is a small JSON-file storage adapter for blog posts. Posts are
// plain documents in a directory; an in-memory index is rebuilt on demand.
package blog

import (
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/sonderworks/beacon/log"
)

var ErrNotFound = errors.New("blog: post not found")

type Post struct {
	Slug    string    `json:"slug"`
	Title   string    `json:"title"`
	Summary string    `json:"summary"`
	Locale  string    `json:"locale"`
	Draft   bool      `json:"draft"`
	Date    time.Time `json:"date"`
	Content string    `json:"content"`
}

// Path is the canonical, unlocalized path of the post.
func (p *Post) Path() string {
	return "/blog/" + p.Slug
}

type Storage struct {
	fs  afero.Fs
	dir string
	log *zap.SugaredLogger

	mu    sync.RWMutex
	posts []*Post
}

func NewStorage(afs afero.Fs, dir string) *Storage {
	return &Storage{
		fs:  afs,
		dir: dir,
		log: log.S().Named("blog"),
	}
}

// Reindex reloads every post document from disk. Files that fail to decode
// are skipped with a warning so one bad document cannot take the blog down.
func (s *Storage) Reindex() error {
	posts := []*Post{}

	err := afero.Walk(s.fs, s.dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}

		raw, err := afero.ReadFile(s.fs, path)
		if err != nil {
			return err
		}

		post := &Post{}
		if err := json.Unmarshal(raw, post); err != nil {
			s.log.Warnw("skipping malformed post", "file", path, "err", err)
			return nil
		}

		if post.Slug == "" {
			post.Slug = strings.TrimSuffix(filepath.Base(path), ".json")
		}

		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return err
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})

	s.mu.Lock()
	s.posts = posts
	s.mu.Unlock()

	s.log.Infow("blog reindexed", "posts", len(posts))
	return nil
}

// List returns the posts visible under a locale, newest first. Posts without
// an explicit locale are visible everywhere. Drafts are only included for
// preview sessions.
func (s *Storage) List(locale string, drafts bool) []*Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Filter(s.posts, func(p *Post, _ int) bool {
		if p.Draft && !drafts {
			return false
		}
		return p.Locale == "" || p.Locale == locale
	})
}

// Get returns the post for a slug under a locale.
func (s *Storage) Get(slug, locale string, drafts bool) (*Post, error) {
	for _, p := range s.List(locale, drafts) {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, ErrNotFound
}
