package gig

import (
	"context"
	"fmt"

	"soundwalk/applications/push"
	"soundwalk/logger"
)

// Notifier is satisfied by *push.Broadcaster.
type Notifier interface {
	Invoke(ctx context.Context, n push.Notification) (*push.BroadcastResult, error)
}

type CreateGigUC struct {
	store    Store
	mirror   *CalendarMirror
	notifier Notifier
}

func NewCreateGigUC(store Store, mirror *CalendarMirror, notifier Notifier) *CreateGigUC {
	return &CreateGigUC{store: store, mirror: mirror, notifier: notifier}
}

// Invoke validates and stores a new gig, then mirrors it to the calendar and
// announces it. Only the database write can fail the request.
func (uc *CreateGigUC) Invoke(ctx context.Context, p *GigParams) (*Gig, error) {
	logger.Log.Info(fmt.Sprintf("[create-gig-uc] Creating gig at %q on %s", p.Venue, p.Date))

	g, err := p.ToGig()
	if err != nil {
		logger.Log.Warn(fmt.Sprintf("[create-gig-uc] Validation failed: %v", err))
		return nil, err
	}

	if err := uc.store.Insert(ctx, g); err != nil {
		logger.Log.Error(fmt.Sprintf("[create-gig-uc] Insert failed: %v", err))
		return nil, err
	}
	logger.Log.Info(fmt.Sprintf("[create-gig-uc] Gig %s stored.", g.ID.Hex()))

	eventID, err := uc.mirror.Create(ctx, g)
	switch {
	case err != nil:
		logger.Log.Error(fmt.Sprintf("[create-gig-uc] Calendar insert for gig %s failed: %v", g.ID.Hex(), err))
	case eventID != "":
		if err := uc.store.SetCalendarEventID(ctx, g.ID, eventID); err != nil {
			logger.Log.Error(fmt.Sprintf("[create-gig-uc] Linking event %s to gig %s failed: %v", eventID, g.ID.Hex(), err))
		} else {
			g.CalendarEventID = &eventID
			logger.Log.Info(fmt.Sprintf("[create-gig-uc] Gig %s linked to calendar event %s.", g.ID.Hex(), eventID))
		}
	}

	if uc.notifier != nil {
		if _, err := uc.notifier.Invoke(ctx, newGigNotification(g)); err != nil {
			logger.Log.Warn(fmt.Sprintf("[create-gig-uc] Push broadcast failed: %v", err))
		}
	}

	return g, nil
}

func newGigNotification(g *Gig) push.Notification {
	body := fmt.Sprintf("%s on %s", g.Venue, g.Day())
	if g.StartTime != "" {
		body += " at " + g.StartTime
	}
	return push.Notification{
		Title: "New gig added",
		Body:  body,
		Tag:   "gig-created",
		URL:   "/admin",
	}
}
