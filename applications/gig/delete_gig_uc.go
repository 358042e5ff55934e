package gig

import (
	"context"
	"fmt"

	"soundwalk/logger"
)

type DeleteGigUC struct {
	store  Store
	mirror *CalendarMirror
}

func NewDeleteGigUC(store Store, mirror *CalendarMirror) *DeleteGigUC {
	return &DeleteGigUC{store: store, mirror: mirror}
}

func (uc *DeleteGigUC) Invoke(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: missing gig id", ErrInvalidID)
	}
	oid, err := ParseID(id)
	if err != nil {
		return err
	}

	// read first so the linked event id survives the delete
	g, err := uc.store.Get(ctx, oid)
	if err != nil {
		logger.Log.Warn(fmt.Sprintf("[delete-gig-uc] Gig %s lookup failed: %v", id, err))
		return err
	}

	if err := uc.store.Delete(ctx, oid); err != nil {
		logger.Log.Error(fmt.Sprintf("[delete-gig-uc] Delete of %s failed: %v", id, err))
		return err
	}
	logger.Log.Info(fmt.Sprintf("[delete-gig-uc] Gig %s deleted.", id))

	if err := uc.mirror.Delete(ctx, g); err != nil {
		logger.Log.Error(fmt.Sprintf("[delete-gig-uc] Calendar delete for %s failed: %v", id, err))
	}
	return nil
}
