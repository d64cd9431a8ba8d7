// Package scroll saves the feed scroll offset and restores it once when
// the feed is shown again.
package scroll

import (
	"errors"
	"sync"
	"time"

	"github.com/daksh-app/daksh/backend/pkg/kvstore"
	"github.com/daksh-app/daksh/backend/pkg/logger"
	"github.com/jonboulle/clockwork"
)

const (
	DefaultKey          = "feed_scroll_position"
	DefaultRestoreDelay = 100 * time.Millisecond
)

// Viewport is the scroll container.
type Viewport interface {
	SetScrollTop(offset float64)
}

type Options struct {
	Key string
	// Fallback is used when nothing is stored under Key.
	Fallback     float64
	RestoreDelay time.Duration
	Clock        clockwork.Clock
	OnChange     func(offset float64)
	Logger       logger.Logger
}

type Restorer struct {
	viewport Viewport
	store    kvstore.Store
	opts     Options
	log      logger.Logger

	mu       sync.Mutex
	timer    clockwork.Timer
	restored bool
}

func New(viewport Viewport, store kvstore.Store, opts Options) *Restorer {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.RestoreDelay <= 0 {
		opts.RestoreDelay = DefaultRestoreDelay
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	return &Restorer{
		viewport: viewport,
		store:    store,
		opts:     opts,
		log:      opts.Logger.WithComponent("scroll"),
	}
}

// Mount schedules the one-time restore once posts have rendered. With no
// posts there is nothing to scroll and the restore is skipped.
func (r *Restorer) Mount(postCount int) {
	if postCount == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.restored || r.timer != nil {
		return
	}
	r.timer = r.opts.Clock.AfterFunc(r.opts.RestoreDelay, r.restore)
}

func (r *Restorer) restore() {
	offset := r.opts.Fallback
	var stored float64
	err := kvstore.GetJSON(r.store, r.opts.Key, &stored)
	switch {
	case err == nil:
		offset = stored
	case !errors.Is(err, kvstore.ErrNotFound):
		r.log.Warn("ignoring unreadable scroll position", "key", r.opts.Key, "error", err)
	}

	r.mu.Lock()
	if r.restored {
		r.mu.Unlock()
		return
	}
	r.restored = true
	r.mu.Unlock()

	r.viewport.SetScrollTop(offset)
}

// OnScroll records the current offset. Events before the restore are
// ignored so the initial offset of 0 never overwrites the saved one.
func (r *Restorer) OnScroll(offset float64) {
	r.mu.Lock()
	restored := r.restored
	r.mu.Unlock()
	if !restored {
		return
	}

	if err := kvstore.SetJSON(r.store, r.opts.Key, offset); err != nil {
		r.log.Warn("failed to save scroll position", "error", err)
	}
	if r.opts.OnChange != nil {
		r.opts.OnChange(offset)
	}
}

func (r *Restorer) Restored() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.restored
}

// Unmount cancels a pending restore.
func (r *Restorer) Unmount() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil && !r.restored {
		r.timer.Stop()
		r.timer = nil
	}
}
