package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/daksh-app/daksh/backend/internal/repositories"
	"github.com/daksh-app/daksh/backend/pkg/logger"
	"github.com/go-co-op/gocron/v2"
)

const reconcileTimeout = 2 * time.Minute

// StatsReconciler rewrites the denormalized like/comment counters on posts
// from the highlight stats table.
type StatsReconciler struct {
	posts     repositories.PostRepository
	stats     repositories.HighlightStatRepository
	log       logger.Logger
	scheduler gocron.Scheduler
}

func NewStatsReconciler(posts repositories.PostRepository, stats repositories.HighlightStatRepository, log logger.Logger) *StatsReconciler {
	return &StatsReconciler{
		posts: posts,
		stats: stats,
		log:   log.WithComponent("stats-reconciler"),
	}
}

// Reconcile runs one pass. Posts without any stats get zero counters.
// It returns the number of posts updated.
func (r *StatsReconciler) Reconcile(ctx context.Context) (int, error) {
	counters, err := r.stats.CountersByPost(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading counters: %w", err)
	}
	postIDs, err := r.posts.ListPostIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing posts: %w", err)
	}

	updated := 0
	for _, id := range postIDs {
		if ctx.Err() != nil {
			return updated, ctx.Err()
		}
		c := counters[id]
		if err := r.posts.SetCounters(ctx, id, c.Likes, c.Comments); err != nil {
			r.log.Warn("failed to set counters", "post_id", id, "error", err)
			continue
		}
		updated++
	}
	return updated, nil
}

// Start schedules Reconcile every interval.
func (r *StatsReconciler) Start(interval time.Duration) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
			defer cancel()

			start := time.Now()
			n, err := r.Reconcile(ctx)
			if err != nil {
				r.log.Error("stats reconcile failed", "error", err)
				return
			}
			r.log.Info("stats reconciled", "posts", n, "took", time.Since(start).String())
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create reconcile job: %w", err)
	}

	r.scheduler = scheduler
	scheduler.Start()
	r.log.Info("stats reconciler scheduled", "interval", interval.String())
	return nil
}

// Stop shuts the scheduler down.
func (r *StatsReconciler) Stop() error {
	if r.scheduler == nil {
		return nil
	}
	return r.scheduler.Shutdown()
}
