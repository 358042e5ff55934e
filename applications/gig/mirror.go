package gig

import (
	"context"
	"fmt"
	"time"

	"soundwalk/applications/calendar"
	"soundwalk/logger"
)

// CalendarMirror keeps a linked Google Calendar event in step with gig CRUD.
// A nil mirror does nothing, which is how an unconfigured calendar behaves.
type CalendarMirror struct {
	events calendar.EventService
	loc    *time.Location
}

func NewCalendarMirror(events calendar.EventService, loc *time.Location) *CalendarMirror {
	if events == nil {
		return nil
	}
	return &CalendarMirror{events: events, loc: loc}
}

func (m *CalendarMirror) payload(g *Gig) calendar.EventInput {
	return calendar.EventInput{
		Venue:         g.Venue,
		InternalNotes: g.InternalNotes,
		Start:         g.StartIn(m.loc),
	}
}

// Create inserts an event for g and returns its id.
func (m *CalendarMirror) Create(ctx context.Context, g *Gig) (string, error) {
	if m == nil {
		return "", nil
	}
	created, err := m.events.InsertEvent(ctx, calendar.BuildEventPayload(m.payload(g)))
	if err != nil {
		return "", err
	}
	if created == nil || created.Id == "" {
		return "", fmt.Errorf("insert returned no eventId")
	}
	return created.Id, nil
}

// Update patches the linked event. Unlinked gigs are left for the sync to pick up.
func (m *CalendarMirror) Update(ctx context.Context, g *Gig) error {
	if m == nil || g.LinkedEventID() == "" {
		return nil
	}
	_, err := m.events.PatchEvent(ctx, g.LinkedEventID(), calendar.BuildEventPayload(m.payload(g)))
	return err
}

// Delete removes the linked event. An event that is already gone is not an error.
func (m *CalendarMirror) Delete(ctx context.Context, g *Gig) error {
	if m == nil || g.LinkedEventID() == "" {
		return nil
	}
	err := m.events.DeleteEvent(ctx, g.LinkedEventID())
	if err != nil && calendar.IsGone(err) {
		logger.Log.Info(fmt.Sprintf("[calendar] Event %s already removed upstream.", g.LinkedEventID()))
		return nil
	}
	return err
}
