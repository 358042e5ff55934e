package gig

import (
	"context"
	"fmt"

	"soundwalk/logger"
)

type GetAllGigsUC struct {
	store Store
}

func NewGetAllGigsUC(store Store) *GetAllGigsUC {
	return &GetAllGigsUC{store: store}
}

// Invoke returns every gig, earliest first.
func (uc *GetAllGigsUC) Invoke(ctx context.Context) ([]*Gig, error) {
	gigs, err := uc.store.List(ctx)
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[get-all-gigs-uc] Listing gigs failed: %v", err))
		return nil, err
	}
	logger.Log.Info(fmt.Sprintf("[get-all-gigs-uc] Returning %d gigs.", len(gigs)))
	return gigs, nil
}

type GetGigUC struct {
	store Store
}

func NewGetGigUC(store Store) *GetGigUC {
	return &GetGigUC{store: store}
}

func (uc *GetGigUC) Invoke(ctx context.Context, id string) (*Gig, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	g, err := uc.store.Get(ctx, oid)
	if err != nil {
		logger.Log.Warn(fmt.Sprintf("[get-gig-uc] Gig %s lookup failed: %v", id, err))
		return nil, err
	}
	return g, nil
}
