package push

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"soundwalk/logger"

	"golang.org/x/sync/errgroup"
)

const maxConcurrentSends = 8

type BroadcastResult struct {
	Delivered int  `json:"delivered"`
	Failed    int  `json:"failed"`
	Pruned    int  `json:"pruned"`
	Skipped   bool `json:"skipped"`
}

// Broadcaster fans a notification out to every stored subscription.
// A nil sender means VAPID keys are missing and every broadcast is skipped.
type Broadcaster struct {
	store  Store
	sender Sender
}

func NewBroadcaster(store Store, sender Sender) *Broadcaster {
	return &Broadcaster{store: store, sender: sender}
}

func (b *Broadcaster) Invoke(ctx context.Context, n Notification) (*BroadcastResult, error) {
	if b == nil || b.sender == nil {
		logger.Log.Warn("[push] VAPID keys not configured, skipping broadcast.")
		return &BroadcastResult{Skipped: true}, nil
	}

	payload, err := n.payload()
	if err != nil {
		return nil, fmt.Errorf("encode notification: %w", err)
	}

	subs, err := b.store.List(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu    sync.Mutex
		res   BroadcastResult
		stale []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSends)
	for _, sub := range subs {
		sub := sub
		g.Go(func() error {
			status, err := b.sender.Send(gctx, sub, payload)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				res.Delivered++
				return nil
			}
			res.Failed++
			if status == http.StatusNotFound || status == http.StatusGone {
				stale = append(stale, sub.Endpoint)
			} else {
				logger.Log.Warn(fmt.Sprintf("[push] Send to %s failed: %v", endpointHost(sub.Endpoint), err))
			}
			// one bad endpoint must not cancel the others
			return nil
		})
	}
	_ = g.Wait()

	if len(stale) > 0 {
		pruned, err := b.store.DeleteByEndpoints(ctx, stale)
		if err != nil {
			logger.Log.Error(fmt.Sprintf("[push] Pruning stale subscriptions failed: %v", err))
		}
		res.Pruned = int(pruned)
	}

	logger.Log.Info(fmt.Sprintf("[push] Broadcast %q: delivered=%d failed=%d pruned=%d", n.Tag, res.Delivered, res.Failed, res.Pruned))
	return &res, nil
}
