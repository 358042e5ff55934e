package gig

import (
	"context"
	"fmt"
	"time"

	"soundwalk/logger"
)

// StartOfToday returns the stored form (UTC midnight) of today's date in loc.
// Gigs dated on or after it are upcoming.
func StartOfToday(now time.Time, loc *time.Location) time.Time {
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// UpcomingPublic filters gigs down to the ones the public may see.
func UpcomingPublic(gigs []*Gig) []*Gig {
	out := make([]*Gig, 0, len(gigs))
	for _, g := range gigs {
		if g.PrivateEvent {
			continue
		}
		out = append(out, g)
	}
	return out
}

type ListPublicGigsUC struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

func NewListPublicGigsUC(store Store, loc *time.Location) *ListPublicGigsUC {
	return &ListPublicGigsUC{store: store, loc: loc, now: time.Now}
}

// Invoke returns upcoming, non-private gigs earliest first.
func (uc *ListPublicGigsUC) Invoke(ctx context.Context) ([]*Gig, error) {
	gigs, err := uc.store.ListFrom(ctx, StartOfToday(uc.now(), uc.loc))
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[public-gigs-uc] Listing upcoming gigs failed: %v", err))
		return nil, err
	}
	return UpcomingPublic(gigs), nil
}
