package gigsync

import (
	"time"

	"soundwalk/applications/calendar"

	gcal "google.golang.org/api/calendar/v3"
)

const (
	// SearchRadius bounds the calendar query around a gig's start.
	SearchRadius = 6 * time.Hour
	// MatchWindow is how close an event's start must be to count as the same gig.
	MatchWindow = 180 * time.Minute
	// maxSearchResults caps the per-gig calendar query.
	maxSearchResults = 50
)

type Action int

const (
	ActionCreate Action = iota
	ActionLink
	ActionUpdate
)

func (a Action) String() string {
	switch a {
	case ActionLink:
		return "linkedExisting"
	case ActionUpdate:
		return "updated"
	}
	return "created"
}

// Decision is what the sync does for one gig. EventID is empty for ActionCreate.
type Decision struct {
	Action  Action
	EventID string
}

// Candidates keeps the events that have an id and start within MatchWindow of
// gigStart. Order is preserved.
func Candidates(items []*gcal.Event, gigStart time.Time, loc *time.Location) []*gcal.Event {
	out := make([]*gcal.Event, 0, len(items))
	for _, ev := range items {
		if ev == nil || ev.Id == "" {
			continue
		}
		start, ok := calendar.EventStart(ev, loc)
		if !ok {
			continue
		}
		diff := start.Sub(gigStart)
		if diff < 0 {
			diff = -diff
		}
		if diff <= MatchWindow {
			out = append(out, ev)
		}
	}
	return out
}

// Resolve picks the event a gig should be reconciled with. The stored id wins
// when it is among the candidates; a single candidate is linked; anything else
// (none, or several with no stored match) creates a new event.
func Resolve(storedID string, candidates []*gcal.Event) Decision {
	if storedID != "" {
		for _, ev := range candidates {
			if ev.Id == storedID {
				return Decision{Action: ActionUpdate, EventID: storedID}
			}
		}
	}
	if len(candidates) == 1 {
		return Decision{Action: ActionLink, EventID: candidates[0].Id}
	}
	return Decision{Action: ActionCreate}
}
