// Package avatar keeps mentor avatars as data URIs so they render without
// a network round trip.
package avatar

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/daksh-app/daksh/backend/pkg/client"
	"github.com/daksh-app/daksh/backend/pkg/kvstore"
	"github.com/daksh-app/daksh/backend/pkg/logger"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultKey          = "mentor_avatar_cache"
	DefaultMaxEntries   = 256
	DefaultFetchTimeout = 15 * time.Second
)

// Fetcher downloads raw image bytes. *client.API implements it.
type Fetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, string, error)
}

var _ Fetcher = (*client.API)(nil)

type Options struct {
	Key          string
	MaxEntries   int
	// FetchTimeout bounds a shared download, which outlives any one caller.
	FetchTimeout time.Duration
	Logger       logger.Logger
}

// entry is the persisted form; entries are stored least recently used first.
type entry struct {
	URL  string `json:"url"`
	Data string `json:"data"`
}

type Cache struct {
	fetcher Fetcher
	store   kvstore.Store
	key     string
	timeout time.Duration
	log     logger.Logger

	entries *lru.Cache[string, string]
	group   singleflight.Group
	// persistMu serializes snapshots so an older one never lands last.
	persistMu sync.Mutex
}

// New builds a cache and hydrates it from store.
func New(fetcher Fetcher, store kvstore.Store, opts Options) (*Cache, error) {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}

	entries, err := lru.New[string, string](opts.MaxEntries)
	if err != nil {
		return nil, fmt.Errorf("avatar: %w", err)
	}

	c := &Cache{
		fetcher: fetcher,
		store:   store,
		key:     opts.Key,
		timeout: opts.FetchTimeout,
		log:     opts.Logger.WithComponent("avatar-cache"),
		entries: entries,
	}
	c.hydrate()
	return c, nil
}

func (c *Cache) hydrate() {
	var saved []entry
	err := kvstore.GetJSON(c.store, c.key, &saved)
	if errors.Is(err, kvstore.ErrNotFound) {
		return
	}
	if err != nil {
		c.log.Warn("discarding unreadable avatar cache", "error", err)
		return
	}
	for _, e := range saved {
		c.entries.Add(e.URL, e.Data)
	}
}

func (c *Cache) persist() {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	keys := c.entries.Keys()
	saved := make([]entry, 0, len(keys))
	for _, url := range keys {
		if data, ok := c.entries.Peek(url); ok {
			saved = append(saved, entry{URL: url, Data: data})
		}
	}
	if err := kvstore.SetJSON(c.store, c.key, saved); err != nil {
		c.log.Warn("failed to persist avatar cache", "error", err)
	}
}

// Get returns the cached data URI for url, or url itself when absent.
func (c *Cache) Get(url string) string {
	if data, ok := c.entries.Get(url); ok {
		return data
	}
	return url
}

// Preload returns the data URI for url, fetching it at most once across
// concurrent callers. A caller whose ctx ends stops waiting, but the shared
// download keeps going for the others. Any failure yields url unchanged.
func (c *Cache) Preload(ctx context.Context, url string) string {
	if url == "" || strings.HasPrefix(url, "data:") {
		return url
	}
	if data, ok := c.entries.Get(url); ok {
		return data
	}

	ch := c.group.DoChan(url, func() (any, error) {
		if data, ok := c.entries.Get(url); ok {
			return data, nil
		}
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		body, contentType, err := c.fetcher.FetchBytes(fetchCtx, url)
		if err != nil {
			return nil, err
		}
		if len(body) == 0 {
			return nil, errors.New("empty avatar body")
		}

		data := toDataURI(body, contentType)
		c.entries.Add(url, data)
		c.persist()
		return data, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			c.log.Debug("avatar preload failed", "url", url, "error", res.Err)
			return url
		}
		return res.Val.(string)
	case <-ctx.Done():
		return url
	}
}

func (c *Cache) Len() int {
	return c.entries.Len()
}

func toDataURI(body []byte, contentType string) string {
	mime := strings.TrimSpace(strings.Split(contentType, ";")[0])
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(body)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(body)
}
