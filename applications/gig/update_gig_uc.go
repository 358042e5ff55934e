package gig

import (
	"context"
	"fmt"

	"soundwalk/logger"
)

type UpdateGigUC struct {
	store  Store
	mirror *CalendarMirror
}

func NewUpdateGigUC(store Store, mirror *CalendarMirror) *UpdateGigUC {
	return &UpdateGigUC{store: store, mirror: mirror}
}

// Invoke replaces the editable fields of a gig. id may be empty, in which case
// the id carried in the payload is used.
func (uc *UpdateGigUC) Invoke(ctx context.Context, id string, p *GigParams) (*Gig, error) {
	if id == "" {
		id = p.TargetID()
	}
	if id == "" {
		return nil, fmt.Errorf("%w: missing gig id", ErrInvalidID)
	}
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	g, err := p.ToGig()
	if err != nil {
		logger.Log.Warn(fmt.Sprintf("[update-gig-uc] Validation failed for %s: %v", id, err))
		return nil, err
	}

	updated, err := uc.store.Update(ctx, oid, g)
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[update-gig-uc] Update of %s failed: %v", id, err))
		return nil, err
	}
	logger.Log.Info(fmt.Sprintf("[update-gig-uc] Gig %s updated.", id))

	if err := uc.mirror.Update(ctx, updated); err != nil {
		logger.Log.Error(fmt.Sprintf("[update-gig-uc] Calendar patch for %s failed: %v", id, err))
	}
	return updated, nil
}
