package revenue

import (
	"context"
	"fmt"

	"soundwalk/applications/gig"
	"soundwalk/logger"
)

type gigLister interface {
	List(ctx context.Context) ([]*gig.Gig, error)
}

type SummaryUC struct {
	gigs gigLister
}

func NewSummaryUC(gigs gigLister) *SummaryUC {
	return &SummaryUC{gigs: gigs}
}

func (uc *SummaryUC) Invoke(ctx context.Context, q Query) (*Summary, error) {
	gigs, err := uc.gigs.List(ctx)
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[revenue-uc] Listing gigs failed: %v", err))
		return nil, err
	}
	sum, err := BuildSummary(gigs, q)
	if err != nil {
		return nil, err
	}
	logger.Log.Info(fmt.Sprintf("[revenue-uc] %s summary: %d gigs, %d buckets", q.Granularity, sum.TotalGigs, len(sum.ChartData)))
	return sum, nil
}
