package push

import (
	"context"
	"fmt"
	"time"

	"soundwalk/logger"
)

type SaveResult struct {
	OK       bool   `json:"ok"`
	Endpoint string `json:"endpoint"`
}

type SaveSubscriptionUC struct {
	store Store
	now   func() time.Time
}

func NewSaveSubscriptionUC(store Store) *SaveSubscriptionUC {
	return &SaveSubscriptionUC{store: store, now: time.Now}
}

// Invoke validates and upserts a browser subscription, keyed by endpoint.
func (uc *SaveSubscriptionUC) Invoke(ctx context.Context, p *SubscriptionParams, userAgent string) (*SaveResult, error) {
	if err := p.Validate(); err != nil {
		logger.Log.Warn("[push] Rejected malformed subscription payload.")
		return nil, err
	}

	now := uc.now().UTC()
	sub := &Subscription{
		Endpoint:       p.Endpoint,
		ExpirationTime: p.ExpirationTime,
		Keys:           *p.Keys,
		UserAgent:      userAgent,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.store.Upsert(ctx, sub); err != nil {
		logger.Log.Error(fmt.Sprintf("[push] Saving subscription failed: %v", err))
		return nil, err
	}

	logger.Log.Info(fmt.Sprintf("[push] Subscription stored for endpoint host %s", endpointHost(sub.Endpoint)))
	return &SaveResult{OK: true, Endpoint: sub.Endpoint}, nil
}
