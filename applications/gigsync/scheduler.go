package gigsync

import (
	"context"
	"fmt"
	"time"

	"soundwalk/applications/push"
	"soundwalk/logger"

	"github.com/robfig/cron/v3"
)

const scheduledRunTimeout = 5 * time.Minute

type syncer interface {
	Invoke(ctx context.Context) (*Result, error)
}

type notifier interface {
	Invoke(ctx context.Context, n push.Notification) (*push.BroadcastResult, error)
}

// Scheduler runs the sync on a cron schedule in the band's timezone.
type Scheduler struct {
	cron     *cron.Cron
	sync     syncer
	notifier notifier
}

func NewScheduler(spec string, loc *time.Location, sync syncer, n notifier) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		sync:     sync,
		notifier: n,
	}
	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return nil, fmt.Errorf("invalid sync schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Log.Info("[gigs-sync] Scheduler started.")
}

// Stop prevents new runs and waits for a running one to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
	logger.Log.Info("[gigs-sync] Scheduler stopped.")
}

// RunOnce performs one scheduled sync and announces new calendar links.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), scheduledRunTimeout)
	defer cancel()

	res, err := s.sync.Invoke(ctx)
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[gigs-sync] Scheduled run failed: %v", err))
		return
	}
	if s.notifier == nil || res.CreatedCount+res.LinkedExistingCount == 0 {
		return
	}
	if _, err := s.notifier.Invoke(ctx, summaryNotification(res)); err != nil {
		logger.Log.Warn(fmt.Sprintf("[gigs-sync] Summary broadcast failed: %v", err))
	}
}

func summaryNotification(res *Result) push.Notification {
	return push.Notification{
		Title: "Calendar synced",
		Body: fmt.Sprintf("%d created, %d linked, %d updated, %d errors",
			res.CreatedCount, res.LinkedExistingCount, res.UpdatedCount, len(res.Errors)),
		Tag: "gigs-sync",
		URL: "/admin",
	}
}
