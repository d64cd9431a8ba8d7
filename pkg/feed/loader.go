// Package feed drives infinite-scroll pagination of the post feed.
package feed

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/daksh-app/daksh/backend/pkg/client"
	"github.com/daksh-app/daksh/backend/pkg/logger"
)

const (
	DefaultPageSize = 4
	// DefaultPrefetchMargin is how far below the viewport, in pixels, the
	// sentinel counts as visible.
	DefaultPrefetchMargin = 800
	EmptyMessage          = "No posts to show right now."
)

// Fetcher loads one page of the feed. *client.API implements it.
type Fetcher interface {
	FeedPage(ctx context.Context, page, limit int) (*client.FeedPage, error)
}

var _ Fetcher = (*client.API)(nil)

// Snapshot is the state a Loader starts from, e.g. restored after navigation.
type Snapshot struct {
	Posts       []client.Post
	CurrentPage int
	HasMore     bool
}

type Options struct {
	PageSize       int
	PrefetchMargin float64
	Initial        *Snapshot
	// OnChange is called after every state change, outside the lock.
	OnChange func(View)
	Logger   logger.Logger
}

// View is what a renderer needs.
type View struct {
	Posts     []client.Post
	HasMore   bool
	IsLoading bool
	Err       error
	// EmptyMessage is set when there is nothing to show and nothing coming.
	EmptyMessage string
}

type Loader struct {
	fetcher  Fetcher
	pageSize int
	margin   float64
	onChange func(View)
	log      logger.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	loading atomic.Bool

	mu              sync.Mutex
	posts           []client.Post
	seen            map[string]struct{}
	currentPage     int
	hasMore         bool
	err             error
	closed          bool
	sentinelVisible bool
	lastItemVisible bool
}

func NewLoader(fetcher Fetcher, opts Options) *Loader {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.PrefetchMargin <= 0 {
		opts.PrefetchMargin = DefaultPrefetchMargin
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	l := &Loader{
		fetcher:  fetcher,
		pageSize: opts.PageSize,
		margin:   opts.PrefetchMargin,
		onChange: opts.OnChange,
		log:      opts.Logger.WithComponent("feed-loader"),
		ctx:      ctx,
		cancel:   cancel,
		seen:     make(map[string]struct{}),
		hasMore:  true,
	}
	if s := opts.Initial; s != nil {
		l.currentPage = s.CurrentPage
		l.hasMore = s.HasMore
		l.appendUnique(s.Posts)
	}
	return l
}

// LoadMore starts fetching the next page unless the feed is exhausted or a
// fetch is already running. It reports whether a fetch was started.
func (l *Loader) LoadMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || !l.hasMore {
		return false
	}
	if !l.loading.CompareAndSwap(false, true) {
		return false
	}

	page := l.currentPage + 1
	l.wg.Add(1)
	go l.fetch(page)
	return true
}

func (l *Loader) fetch(page int) {
	defer l.wg.Done()

	l.notify()
	res, err := l.fetcher.FeedPage(l.ctx, page, l.pageSize)

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		l.loading.Store(false)
		return
	}
	if err != nil {
		l.log.Warn("feed page fetch failed", "page", page, "error", err)
		l.err = err
		l.hasMore = false
	} else {
		l.err = nil
		l.appendUnique(res.Data)
		l.currentPage = res.CurrentPage
		if l.currentPage == 0 {
			l.currentPage = page
		}
		l.hasMore = len(res.Data) > 0 && l.currentPage < res.TotalPages
	}
	l.loading.Store(false)
	l.mu.Unlock()

	l.notify()
}

// appendUnique adds posts not seen before. A grown list has a new last item,
// so the fallback trigger is re-armed. Caller holds mu.
func (l *Loader) appendUnique(posts []client.Post) {
	before := len(l.posts)
	for _, p := range posts {
		if _, dup := l.seen[p.ID]; dup {
			continue
		}
		l.seen[p.ID] = struct{}{}
		l.posts = append(l.posts, p)
	}
	if len(l.posts) > before {
		l.lastItemVisible = false
	}
}

// ObserveSentinel reports the sentinel's visibility within the expanded
// viewport. Only a hidden-to-visible change triggers a load.
func (l *Loader) ObserveSentinel(visible bool) bool {
	l.mu.Lock()
	entered := visible && !l.sentinelVisible
	l.sentinelVisible = visible
	l.mu.Unlock()

	return entered && l.LoadMore()
}

// OnScroll derives sentinel visibility from scroll geometry: the sentinel
// counts as visible once its top is within PrefetchMargin of the viewport
// bottom.
func (l *Loader) OnScroll(scrollTop, viewportHeight, sentinelTop float64) bool {
	visible := sentinelTop <= scrollTop+viewportHeight+l.margin
	return l.ObserveSentinel(visible)
}

// ObserveItem is the fallback trigger: only the last rendered post counts.
func (l *Loader) ObserveItem(index int, visible bool) bool {
	l.mu.Lock()
	if index != len(l.posts)-1 {
		l.mu.Unlock()
		return false
	}
	entered := visible && !l.lastItemVisible
	l.lastItemVisible = visible
	l.mu.Unlock()

	return entered && l.LoadMore()
}

func (l *Loader) View() View {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.viewLocked()
}

func (l *Loader) viewLocked() View {
	v := View{
		Posts:     append([]client.Post(nil), l.posts...),
		HasMore:   l.hasMore,
		IsLoading: l.loading.Load(),
		Err:       l.err,
	}
	if len(v.Posts) == 0 && !v.IsLoading && !v.HasMore {
		v.EmptyMessage = EmptyMessage
	}
	return v
}

func (l *Loader) notify() {
	if l.onChange == nil {
		return
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	v := l.viewLocked()
	l.mu.Unlock()
	l.onChange(v)
}

// Wait blocks until in-flight fetches finish.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Close cancels in-flight fetches; their results are dropped.
func (l *Loader) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	l.cancel()
}
